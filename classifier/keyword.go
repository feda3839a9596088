// Package classifier implements the two deterministic stages of article
// classification: the first-stage keyword scan and the fusion of keyword and
// LLM assessments into a final per-article result.
package classifier

import (
	"strings"

	"risk-monitor/models"
	"risk-monitor/taxonomy"
)

// Match-strength contributions per escalation step.
const (
	scoreYellow = 1
	scoreOrange = 2
	scoreRed    = 3
)

// Classify runs the escalating-match keyword scan over the article's
// case-folded title+body. Per category: a base keyword match promotes green
// to yellow; only then is an orange indicator checked, and only after orange
// a red indicator. A text containing a red-indicator phrase but no base
// keyword or orange indicator therefore stays green; that gating is
// deliberate and pinned by tests.
//
// Pure function over text and taxonomy; no side effects.
func Classify(article *models.Article, tax *taxonomy.Taxonomy) *models.KeywordResult {
	text := article.Text()

	result := &models.KeywordResult{
		Categories: make(map[string]models.Severity, tax.Len()),
		Matched:    make(map[string][]string),
	}

	for _, cat := range tax.Categories() {
		severity := models.SeverityGreen
		score := 0
		var matched []string

		if term, ok := firstMatch(text, cat.Keywords); ok {
			severity = models.SeverityYellow
			score += scoreYellow
			matched = append(matched, term)
		}
		if severity == models.SeverityYellow {
			if term, ok := firstMatch(text, cat.OrangeIndicators); ok {
				severity = models.SeverityOrange
				score += scoreOrange
				matched = append(matched, term)
			}
		}
		if severity == models.SeverityOrange {
			if term, ok := firstMatch(text, cat.RedIndicators); ok {
				severity = models.SeverityRed
				score += scoreRed
				matched = append(matched, term)
			}
		}

		result.Categories[cat.ID] = severity
		result.MatchCount += score
		if len(matched) > 0 {
			result.Matched[cat.ID] = matched
		}
		if severity.IsElevated() {
			result.Categorized = true
		}
	}

	return result
}

// firstMatch returns the first term that occurs as a substring of text.
func firstMatch(text string, terms []string) (string, bool) {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return term, true
		}
	}
	return "", false
}
