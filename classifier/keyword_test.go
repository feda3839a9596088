package classifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"risk-monitor/classifier"
	"risk-monitor/models"
	"risk-monitor/taxonomy"
)

func testTaxonomy(t *testing.T) *taxonomy.Taxonomy {
	t.Helper()
	tax, err := taxonomy.New([]taxonomy.Category{
		{
			ID:               "electoral_integrity",
			Keywords:         []string{"voter id law", "gerrymandering", "ballot"},
			OrangeIndicators: []string{"election interference"},
			RedIndicators:    []string{"cancel election"},
		},
		{
			ID:               "media_censorship",
			Keywords:         []string{"press freedom"},
			OrangeIndicators: []string{"journalist arrest"},
			RedIndicators:    []string{"internet shutdown"},
		},
	})
	require.NoError(t, err)
	return tax
}

func article(title, content string) *models.Article {
	return &models.Article{Title: title, Content: content}
}

func TestClassifyNoMatchesIsAllGreen(t *testing.T) {
	tax := testTaxonomy(t)
	res := classifier.Classify(article("Weather report", "Sunny with light winds."), tax)

	assert.False(t, res.Categorized)
	assert.Zero(t, res.MatchCount)
	for id, sev := range res.Categories {
		assert.Equal(t, models.SeverityGreen, sev, id)
	}
	assert.Len(t, res.Categories, 2)
}

func TestClassifyBaseKeywordYieldsYellow(t *testing.T) {
	tax := testTaxonomy(t)
	res := classifier.Classify(article("Voter ID Law Passed", "Debate continues."), tax)

	assert.True(t, res.Categorized)
	assert.Equal(t, models.SeverityYellow, res.Categories["electoral_integrity"])
	assert.Equal(t, models.SeverityGreen, res.Categories["media_censorship"])
	assert.Equal(t, 1, res.MatchCount)
}

func TestClassifyEscalatesThroughOrangeToRed(t *testing.T) {
	tax := testTaxonomy(t)
	text := "ballot measures disputed amid election interference claims; officials may cancel election"
	res := classifier.Classify(article("", text), tax)

	assert.Equal(t, models.SeverityRed, res.Categories["electoral_integrity"])
	// yellow(1) + orange(2) + red(3)
	assert.Equal(t, 6, res.MatchCount)
}

func TestClassifyOrangeRequiresBaseKeyword(t *testing.T) {
	tax := testTaxonomy(t)
	res := classifier.Classify(article("", "claims of election interference only"), tax)

	// Orange indicator alone never escalates: no base keyword, stays green.
	assert.Equal(t, models.SeverityGreen, res.Categories["electoral_integrity"])
	assert.False(t, res.Categorized)
}

func TestClassifyRedIndicatorAloneStaysGreen(t *testing.T) {
	tax := testTaxonomy(t)
	res := classifier.Classify(article("", "government moves to cancel election"), tax)

	assert.Equal(t, models.SeverityGreen, res.Categories["electoral_integrity"])
}

func TestClassifyRedRequiresOrange(t *testing.T) {
	tax := testTaxonomy(t)
	// Base keyword + red indicator but no orange indicator: stops at yellow.
	res := classifier.Classify(article("", "ballot printed; plot to cancel election alleged"), tax)

	assert.Equal(t, models.SeverityYellow, res.Categories["electoral_integrity"])
}

func TestClassifyScoresSumAcrossCategories(t *testing.T) {
	tax := testTaxonomy(t)
	text := "gerrymandering row deepens as press freedom advocates decry journalist arrest"
	res := classifier.Classify(article("", text), tax)

	assert.Equal(t, models.SeverityYellow, res.Categories["electoral_integrity"])
	assert.Equal(t, models.SeverityOrange, res.Categories["media_censorship"])
	// 1 + (1+2)
	assert.Equal(t, 4, res.MatchCount)
}

func TestClassifyCaseFoldsAndHandlesMissingFields(t *testing.T) {
	tax := testTaxonomy(t)
	res := classifier.Classify(article("GERRYMANDERING Concerns", ""), tax)
	assert.Equal(t, models.SeverityYellow, res.Categories["electoral_integrity"])

	res = classifier.Classify(article("", ""), tax)
	assert.False(t, res.Categorized)
}

func TestClassifyMatchesAcrossLineBreaks(t *testing.T) {
	tax := testTaxonomy(t)
	res := classifier.Classify(article("", "new voter\nid law introduced"), tax)
	assert.Equal(t, models.SeverityYellow, res.Categories["electoral_integrity"])
}
