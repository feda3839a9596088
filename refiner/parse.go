package refiner

import (
	"encoding/json"
	"fmt"
	"strings"

	"risk-monitor/models"
)

// wireCategory tolerates loosely typed provider output; every field is
// validated and normalized before it reaches the event model.
type wireCategory struct {
	Severity   any `json:"severity"`
	Evidence   any `json:"evidence"`
	Confidence any `json:"confidence"`
}

type wireResponse struct {
	IsUSBased  any                     `json:"is_us_based"`
	Categories map[string]wireCategory `json:"categories"`
	Summary    string                  `json:"summary"`
	Reasoning  string                  `json:"reasoning"`
}

// ParseResponse extracts and validates the JSON object expected in the model
// response. It tolerates markdown code fences and surrounding prose. Per
// requested category, independently: a missing or malformed entry defaults to
// green with confidence 1 and no evidence; an unrecognized severity string
// defaults to green; a confidence outside 1-5 is clamped to 3.
//
// Only an absent or undecodable JSON object is an error; the caller then
// falls back to keyword-only classification.
func ParseResponse(raw string, flagged []string) (*models.Refinement, error) {
	jsonStr, ok := extractJSON(raw)
	if !ok {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var wire wireResponse
	if err := json.Unmarshal([]byte(jsonStr), &wire); err != nil {
		return nil, fmt.Errorf("decode response JSON: %w", err)
	}

	refinement := &models.Refinement{
		Categories:  make(map[string]models.Severity, len(flagged)),
		Evidence:    make(map[string][]string, len(flagged)),
		Confidence:  make(map[string]int, len(flagged)),
		Explanation: wire.Summary,
		Reasoning:   wire.Reasoning,
	}

	if b, ok := wire.IsUSBased.(bool); ok {
		refinement.IsUSBased = &b
	}

	for _, id := range flagged {
		cat, present := wire.Categories[id]
		if !present {
			refinement.Categories[id] = models.SeverityGreen
			refinement.Evidence[id] = []string{}
			refinement.Confidence[id] = 1
			continue
		}
		refinement.Categories[id] = normalizeSeverity(cat.Severity)
		refinement.Evidence[id] = normalizeEvidence(cat.Evidence)
		refinement.Confidence[id] = normalizeConfidence(cat.Confidence)
	}

	for _, sev := range refinement.Categories {
		if sev.IsElevated() {
			refinement.Categorized = true
			break
		}
	}
	return refinement, nil
}

// extractJSON locates the JSON object within a free-form response: a fenced
// block first, then the raw object, then the outermost brace pair.
func extractJSON(raw string) (string, bool) {
	text := strings.TrimSpace(raw)

	if start := strings.Index(text, "```json"); start != -1 {
		rest := text[start+len("```json"):]
		if end := strings.Index(rest, "```"); end != -1 {
			if candidate := strings.TrimSpace(rest[:end]); candidate != "" {
				return candidate, true
			}
		}
	}
	if strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
		return text, true
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// normalizeSeverity maps provider severity values onto the enum; anything
// unrecognized defaults to green (documented policy, see DESIGN.md).
func normalizeSeverity(v any) models.Severity {
	s, ok := v.(string)
	if !ok {
		return models.SeverityGreen
	}
	sev, ok := models.ParseSeverity(s)
	if !ok {
		return models.SeverityGreen
	}
	return sev
}

// normalizeEvidence keeps only string quotes from whatever list shape the
// provider returned.
func normalizeEvidence(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	quotes := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			quotes = append(quotes, s)
		}
	}
	return quotes
}

// normalizeConfidence coerces to an integer in 1..5; out-of-range and
// non-numeric values become the midpoint 3.
func normalizeConfidence(v any) int {
	f, ok := v.(float64)
	if !ok {
		return 3
	}
	n := int(f)
	if float64(n) != f || n < 1 || n > 5 {
		return 3
	}
	return n
}
