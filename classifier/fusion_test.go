package classifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"risk-monitor/classifier"
	"risk-monitor/models"
)

func keywordResult(categories map[string]models.Severity, matchCount int) *models.KeywordResult {
	categorized := false
	for _, sev := range categories {
		if sev.IsElevated() {
			categorized = true
		}
	}
	return &models.KeywordResult{
		Categorized: categorized,
		Categories:  categories,
		MatchCount:  matchCount,
	}
}

func TestFuseLLMOverridesDownward(t *testing.T) {
	tax := testTaxonomy(t)
	kw := keywordResult(map[string]models.Severity{
		"electoral_integrity": models.SeverityRed,
		"media_censorship":    models.SeverityGreen,
	}, 6)
	ref := &models.Refinement{
		Categories: map[string]models.Severity{"electoral_integrity": models.SeverityOrange},
	}

	fused := classifier.Fuse(kw, ref, tax)
	assert.Equal(t, models.SeverityOrange, fused.Categories["electoral_integrity"])
	assert.True(t, fused.Categorized)
	assert.Equal(t, []string{models.MethodKeyword, models.MethodLLM}, fused.Methods)
}

func TestFuseKeywordFloorWhenLLMGreen(t *testing.T) {
	tax := testTaxonomy(t)
	kw := keywordResult(map[string]models.Severity{
		"electoral_integrity": models.SeverityOrange,
		"media_censorship":    models.SeverityGreen,
	}, 3)
	ref := &models.Refinement{
		Categories: map[string]models.Severity{"electoral_integrity": models.SeverityGreen},
	}

	fused := classifier.Fuse(kw, ref, tax)
	assert.Equal(t, models.SeverityOrange, fused.Categories["electoral_integrity"])
}

func TestFuseLLMUpgrades(t *testing.T) {
	tax := testTaxonomy(t)
	kw := keywordResult(map[string]models.Severity{
		"electoral_integrity": models.SeverityYellow,
		"media_censorship":    models.SeverityGreen,
	}, 1)
	ref := &models.Refinement{
		Categories: map[string]models.Severity{"electoral_integrity": models.SeverityRed},
	}

	fused := classifier.Fuse(kw, ref, tax)
	assert.Equal(t, models.SeverityRed, fused.Categories["electoral_integrity"])
}

func TestFuseWithoutRefinementKeepsKeywordResult(t *testing.T) {
	tax := testTaxonomy(t)
	kw := keywordResult(map[string]models.Severity{
		"electoral_integrity": models.SeverityYellow,
		"media_censorship":    models.SeverityGreen,
	}, 1)

	fused := classifier.Fuse(kw, nil, tax)
	assert.Equal(t, models.SeverityYellow, fused.Categories["electoral_integrity"])
	assert.Equal(t, []string{models.MethodKeyword}, fused.Methods)
	assert.Equal(t, 1, fused.KeywordMatchCount)
	assert.True(t, fused.Categorized)
}

func TestFuseRecomputesCategorized(t *testing.T) {
	tax := testTaxonomy(t)
	kw := keywordResult(map[string]models.Severity{
		"electoral_integrity": models.SeverityYellow,
		"media_censorship":    models.SeverityGreen,
	}, 1)
	// LLM downgrades the only elevated category to... still elevated wins;
	// only a keyword-green + LLM-green set is uncategorized.
	ref := &models.Refinement{
		Categories: map[string]models.Severity{"electoral_integrity": models.SeverityYellow},
	}
	fused := classifier.Fuse(kw, ref, tax)
	assert.True(t, fused.Categorized)

	kwGreen := keywordResult(map[string]models.Severity{
		"electoral_integrity": models.SeverityGreen,
		"media_censorship":    models.SeverityGreen,
	}, 0)
	fused = classifier.Fuse(kwGreen, nil, tax)
	assert.False(t, fused.Categorized)
}

func TestFuseIgnoresUnknownCategoriesFromLLM(t *testing.T) {
	tax := testTaxonomy(t)
	kw := keywordResult(map[string]models.Severity{
		"electoral_integrity": models.SeverityGreen,
		"media_censorship":    models.SeverityGreen,
	}, 0)
	ref := &models.Refinement{
		Categories: map[string]models.Severity{"made_up": models.SeverityRed},
	}

	fused := classifier.Fuse(kw, ref, tax)
	assert.NotContains(t, fused.Categories, "made_up")
	assert.False(t, fused.Categorized)
}

func TestFuseCarriesRefinementMetadata(t *testing.T) {
	tax := testTaxonomy(t)
	usBased := true
	kw := keywordResult(map[string]models.Severity{
		"electoral_integrity": models.SeverityYellow,
		"media_censorship":    models.SeverityGreen,
	}, 1)
	ref := &models.Refinement{
		Categories:  map[string]models.Severity{"electoral_integrity": models.SeverityYellow},
		Evidence:    map[string][]string{"electoral_integrity": {"a direct quote"}},
		Confidence:  map[string]int{"electoral_integrity": 4},
		IsUSBased:   &usBased,
		Explanation: "summary",
		Reasoning:   "reasoning",
	}

	fused := classifier.Fuse(kw, ref, tax)
	assert.Equal(t, []string{"a direct quote"}, fused.Evidence["electoral_integrity"])
	assert.Equal(t, 4, fused.Confidence["electoral_integrity"])
	assert.Equal(t, &usBased, fused.IsUSBased)
	assert.Equal(t, "summary", fused.Explanation)
	assert.Equal(t, "reasoning", fused.Reasoning)
}
