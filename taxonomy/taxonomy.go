// Package taxonomy holds the static political-risk category framework: for
// each category an id, a display name and three ordered keyword sets (base
// keywords trigger yellow, orange indicators escalate to orange, red
// indicators escalate to red). Loaded once at process start, never mutated.
package taxonomy

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is one axis of the risk framework.
type Category struct {
	ID               string   `yaml:"id" json:"id"`
	Name             string   `yaml:"name" json:"name"`
	Description      string   `yaml:"description" json:"description,omitempty"`
	Keywords         []string `yaml:"keywords" json:"keywords"`
	OrangeIndicators []string `yaml:"orange_indicators" json:"orange_indicators"`
	RedIndicators    []string `yaml:"red_indicators" json:"red_indicators"`
}

// Taxonomy is an immutable, ordered set of categories.
type Taxonomy struct {
	categories []Category
	byID       map[string]int
}

// New builds a taxonomy from the given categories. Keywords and indicators
// are lowercased so the classifier can match against case-folded text.
// Categories without an id, and duplicate ids, are rejected.
func New(categories []Category) (*Taxonomy, error) {
	t := &Taxonomy{byID: make(map[string]int, len(categories))}
	for _, c := range categories {
		if c.ID == "" {
			return nil, fmt.Errorf("taxonomy: category %q has no id", c.Name)
		}
		if _, dup := t.byID[c.ID]; dup {
			return nil, fmt.Errorf("taxonomy: duplicate category id %q", c.ID)
		}
		c.Keywords = foldTerms(c.Keywords)
		c.OrangeIndicators = foldTerms(c.OrangeIndicators)
		c.RedIndicators = foldTerms(c.RedIndicators)
		t.byID[c.ID] = len(t.categories)
		t.categories = append(t.categories, c)
	}
	if len(t.categories) == 0 {
		return nil, fmt.Errorf("taxonomy: no categories defined")
	}
	return t, nil
}

// Default returns the built-in ten-category framework.
func Default() *Taxonomy {
	t, err := New(defaultCategories)
	if err != nil {
		// The built-in set is validated by tests; this is unreachable.
		panic(err)
	}
	return t
}

// LoadFile reads a YAML category list, replacing the built-in framework.
func LoadFile(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: read %s: %w", path, err)
	}
	var doc struct {
		Categories []Category `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("taxonomy: parse %s: %w", path, err)
	}
	return New(doc.Categories)
}

// Categories returns the categories in definition order.
func (t *Taxonomy) Categories() []Category {
	return t.categories
}

// IDs returns all category ids, sorted for stable iteration.
func (t *Taxonomy) IDs() []string {
	ids := make([]string, 0, len(t.categories))
	for _, c := range t.categories {
		ids = append(ids, c.ID)
	}
	sort.Strings(ids)
	return ids
}

// Get looks up a category by id.
func (t *Taxonomy) Get(id string) (Category, bool) {
	i, ok := t.byID[id]
	if !ok {
		return Category{}, false
	}
	return t.categories[i], true
}

// Len returns the number of categories.
func (t *Taxonomy) Len() int { return len(t.categories) }

func foldTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}
