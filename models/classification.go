package models

import "strings"

// Analysis method names recorded in provenance lists.
const (
	MethodKeyword = "keyword"
	MethodLLM     = "llm"
)

// KeywordResult is the output of the first-stage keyword scan. Pure data;
// every configured category id is present in Categories, defaulting to green.
type KeywordResult struct {
	Categorized bool                  `json:"categorized"`
	Categories  map[string]Severity   `json:"categories"`
	MatchCount  int                   `json:"match_count"`
	Matched     map[string][]string   `json:"matched,omitempty"`
}

// Refinement is the normalized result of one external LLM call, covering only
// the categories that were flagged by the keyword stage.
type Refinement struct {
	Categorized bool                `json:"categorized"`
	IsUSBased   *bool               `json:"is_us_based,omitempty"`
	Categories  map[string]Severity `json:"categories"`
	Evidence    map[string][]string `json:"evidence"`
	Confidence  map[string]int      `json:"confidence"`
	Explanation string              `json:"explanation"`
	Reasoning   string              `json:"reasoning"`
}

// ClassificationResult is the fused per-article outcome written back onto the
// article document. Invariant: Categories contains every configured category
// id, green when unassessed.
type ClassificationResult struct {
	Categorized       bool                `bson:"categorized" json:"categorized"`
	Categories        map[string]Severity `bson:"categories" json:"categories"`
	Methods           []string            `bson:"methods" json:"methods"`
	KeywordMatchCount int                 `bson:"keyword_match_count" json:"keyword_match_count"`
	Evidence          map[string][]string `bson:"evidence,omitempty" json:"evidence,omitempty"`
	Confidence        map[string]int      `bson:"confidence,omitempty" json:"confidence,omitempty"`
	IsUSBased         *bool               `bson:"is_us_based,omitempty" json:"is_us_based,omitempty"`
	Explanation       string              `bson:"explanation,omitempty" json:"explanation,omitempty"`
	Reasoning         string              `bson:"reasoning,omitempty" json:"reasoning,omitempty"`
}

// ElevatedCategories returns the category ids assessed above green, in no
// particular order.
func (r *ClassificationResult) ElevatedCategories() []string {
	var ids []string
	for id, sev := range r.Categories {
		if sev.IsElevated() {
			ids = append(ids, id)
		}
	}
	return ids
}

// normalizeText lowercases and collapses the whitespace the substring scan
// runs against.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
