package classifier

import (
	"risk-monitor/models"
	"risk-monitor/taxonomy"
)

// Fuse merges the keyword result with an optional LLM refinement into the
// final per-article classification. Precedence per category:
//
//  1. An elevated LLM assessment wins outright, in either direction: the
//     refinement stage is trusted to correct keyword false positives, so an
//     LLM yellow overrides even a keyword red.
//  2. If the LLM assessed green but the keyword stage was elevated, the
//     keyword severity stands (keyword floor).
//  3. Without a refinement the keyword result is authoritative as-is.
//
// The Categorized flag is recomputed over the fused severities, and every
// configured category id is present in the output, defaulting to green.
func Fuse(keyword *models.KeywordResult, refinement *models.Refinement, tax *taxonomy.Taxonomy) *models.ClassificationResult {
	result := &models.ClassificationResult{
		Categories:        make(map[string]models.Severity, tax.Len()),
		Methods:           []string{models.MethodKeyword},
		KeywordMatchCount: keyword.MatchCount,
	}

	for _, id := range tax.IDs() {
		result.Categories[id] = keyword.Categories[id]
	}

	if refinement != nil {
		result.Methods = append(result.Methods, models.MethodLLM)
		result.Evidence = refinement.Evidence
		result.Confidence = refinement.Confidence
		result.IsUSBased = refinement.IsUSBased
		result.Explanation = refinement.Explanation
		result.Reasoning = refinement.Reasoning

		for id, llmSeverity := range refinement.Categories {
			if _, known := result.Categories[id]; !known {
				continue
			}
			if llmSeverity.IsElevated() {
				result.Categories[id] = llmSeverity
			}
			// LLM green: the keyword severity already in place is the floor.
		}
	}

	for _, severity := range result.Categories {
		if severity.IsElevated() {
			result.Categorized = true
			break
		}
	}

	return result
}
