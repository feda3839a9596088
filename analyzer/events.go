package analyzer

import (
	"context"
	"sort"

	"risk-monitor/logger"
	"risk-monitor/models"
)

// writeEvents appends one event per elevated category of the fused result,
// computing the streak fields from the most recent prior event for that
// category within the persistence lookback. A failed insert for one
// category is logged and does not block the remaining categories.
func (a *Analyzer) writeEvents(ctx context.Context, article *models.Article, result *models.ClassificationResult) int {
	elevated := result.ElevatedCategories()
	sort.Strings(elevated)

	written := 0
	for _, category := range elevated {
		event := a.buildEvent(ctx, article, result, category)
		if err := a.events.Insert(ctx, event); err != nil {
			logger.ErrorWithFields("failed to append event", logger.Fields{
				"article_id": article.ID.Hex(),
				"category":   category,
				"error":      err.Error(),
			})
			continue
		}
		written++
	}
	return written
}

// buildEvent assembles the event document for one category, carrying the
// article reference, the per-category assessment, and the streak fields.
//
// Streak rules: no prior event starts a fresh streak at now. A prior event
// at the same severity carries its start date forward. A prior event at a
// different severity starts a new streak at now and records the change.
func (a *Analyzer) buildEvent(ctx context.Context, article *models.Article, result *models.ClassificationResult, category string) *models.Event {
	now := a.Now()
	event := &models.Event{
		ArticleID:     article.ID,
		ArticleTitle:  article.Title,
		ArticleURL:    article.URL,
		Source:        article.Source,
		PublishedDate: article.PublishedDate,
		Category:      category,
		Severity:      result.Categories[category],
		DetectedDate:  now,
		Methods:       result.Methods,
		Evidence:      result.Evidence[category],
		Confidence:    result.Confidence[category],
		IsUSBased:     result.IsUSBased,
		Explanation:   result.Explanation,
		Reasoning:     result.Reasoning,
		StartDate:     now,
	}

	since := now.AddDate(0, 0, -a.cfg.PersistenceLookbackDays)
	prior, err := a.events.LatestByCategory(ctx, category, since)
	if err != nil {
		logger.ErrorWithFields("prior event lookup failed, starting a fresh streak", logger.Fields{
			"category": category,
			"error":    err.Error(),
		})
		return event
	}
	if prior == nil {
		return event
	}

	priorSeverity := prior.Severity
	event.PreviousSeverity = &priorSeverity
	if prior.Severity == event.Severity {
		event.StartDate = prior.StartDate
	} else {
		changeDate := now
		event.SeverityChangeDate = &changeDate
	}
	return event
}
