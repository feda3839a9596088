// Package refiner is the second-stage classifier: it sends articles that the
// keyword stage flagged to an external text-analysis model (Gemini) and
// normalizes the structured response. Every failure mode (network, timeout,
// empty body, undecodable JSON) surfaces as an error so the pipeline can
// fall back to the keyword-only result; the refiner never panics on provider
// output.
package refiner

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"google.golang.org/genai"

	"risk-monitor/models"
)

const systemInstruction = `
You are a political-risk analyst. You will receive a news article and a list
of risk framework categories. For EACH listed category:
  a. Assign one severity: GREEN (no concerning indicators), YELLOW (early
     warning signs or ambiguous indicators), ORANGE (significant concerns or
     clear problems), RED (critical threat or severe problem).
  b. Provide a JSON list of direct quotes from the article that justify the
     severity. Empty list for GREEN; 1-3 key quotes otherwise.
  c. Provide a confidence integer from 1 (low) to 5 (high).
Also determine whether the article primarily concerns the United States, and
write a brief relevance summary and step-by-step reasoning.

Respond with a single valid JSON object and nothing else, following exactly:
{
  "is_us_based": <true_or_false>,
  "categories": {
    "<category_id>": {"severity": "GREEN | YELLOW | ORANGE | RED", "evidence": ["quote", ...], "confidence": <1-5>}
  },
  "summary": "...",
  "reasoning": "..."
}
Include every requested category id. Do not wrap the JSON in a markdown code
block; ensure all strings are properly escaped.
`

// maxContentChars bounds the article body sent to the model.
const maxContentChars = 10000

// Config carries the external service settings.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Refiner calls the Gemini API. Construct with New; safe for sequential use
// from the batch loop.
type Refiner struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// New builds a Refiner from config. The API key is required; the model
// defaults are the caller's concern (config package).
func New(ctx context.Context, cfg Config) (*Refiner, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("refiner: API key is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("refiner: create client: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Refiner{client: client, model: cfg.Model, timeout: timeout}, nil
}

// Analyze asks the model to assess the flagged categories for one article.
// Any provider or parse failure returns a nil refinement with an error; the
// caller degrades to keyword-only classification.
func (r *Refiner) Analyze(ctx context.Context, article *models.Article, flagged []string) (*models.Refinement, error) {
	if len(flagged) == 0 {
		return nil, fmt.Errorf("refiner: no flagged categories")
	}

	prompt := BuildPrompt(article, flagged)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.client.Models.GenerateContent(
		ctx,
		r.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
			Temperature:       genai.Ptr[float32](0.1),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("refiner: generate content: %w", err)
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("refiner: empty response body")
	}

	refinement, err := ParseResponse(text, flagged)
	if err != nil {
		// Keep the head of the raw text for diagnostics without crashing.
		return nil, fmt.Errorf("refiner: parse response (raw: %.200s): %w", text, err)
	}
	return refinement, nil
}

// BuildPrompt renders the per-article request. Exported for tests and for
// prompt logging.
func BuildPrompt(article *models.Article, flagged []string) string {
	ids := append([]string(nil), flagged...)
	sort.Strings(ids)

	content := article.Content
	if content == "" {
		content = "No content"
	}
	if len(content) > maxContentChars {
		content = content[:maxContentChars] + "... (truncated)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Assess the following article against these framework categories: %s\n\n", strings.Join(ids, ", "))
	fmt.Fprintf(&b, "Title: %s\n", article.Title)
	fmt.Fprintf(&b, "Source: %s\n", article.Source)
	if !article.PublishedDate.IsZero() {
		fmt.Fprintf(&b, "Date: %s\n", article.PublishedDate.Format(time.RFC3339))
	}
	b.WriteString("\n--- START ARTICLE ---\n")
	b.WriteString(content)
	b.WriteString("\n--- END ARTICLE ---\n")
	return b.String()
}
