package taxonomy_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"risk-monitor/taxonomy"
)

func TestDefaultTaxonomy(t *testing.T) {
	tax := taxonomy.Default()
	assert.Equal(t, 10, tax.Len())

	cat, ok := tax.Get("electoral_integrity")
	require.True(t, ok)
	assert.Contains(t, cat.Keywords, "voter id law")
	assert.Contains(t, cat.Keywords, "gerrymandering")
	assert.Contains(t, cat.OrangeIndicators, "election interference")
	assert.Contains(t, cat.RedIndicators, "cancel election")

	_, ok = tax.Get("nonexistent")
	assert.False(t, ok)

	ids := tax.IDs()
	assert.Len(t, ids, 10)
	assert.Contains(t, ids, "media_censorship")
}

func TestNewRejectsDuplicates(t *testing.T) {
	_, err := taxonomy.New([]taxonomy.Category{
		{ID: "a", Keywords: []string{"x"}},
		{ID: "a", Keywords: []string{"y"}},
	})
	assert.Error(t, err)

	_, err = taxonomy.New(nil)
	assert.Error(t, err)

	_, err = taxonomy.New([]taxonomy.Category{{Name: "no id"}})
	assert.Error(t, err)
}

func TestNewFoldsTerms(t *testing.T) {
	tax, err := taxonomy.New([]taxonomy.Category{{
		ID:       "a",
		Keywords: []string{"  Voter ID Law ", "voter id law", ""},
	}})
	require.NoError(t, err)
	cat, _ := tax.Get("a")
	assert.Equal(t, []string{"voter id law"}, cat.Keywords)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "categories.yaml")
	doc := `categories:
  - id: custom_cat
    name: Custom
    keywords: ["Alpha Term"]
    orange_indicators: ["beta term"]
    red_indicators: ["gamma term"]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	tax, err := taxonomy.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, tax.Len())
	cat, ok := tax.Get("custom_cat")
	require.True(t, ok)
	assert.Equal(t, []string{"alpha term"}, cat.Keywords)

	_, err = taxonomy.LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
