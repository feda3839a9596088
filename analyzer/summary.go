package analyzer

import (
	"context"

	"risk-monitor/models"
)

// generateSummary aggregates the rolling event window into an immutable
// snapshot: period counts, per-category persistence state, overall status
// from confirmed categories, and the tiered alert level.
func (a *Analyzer) generateSummary(ctx context.Context, runID string, articlesProcessed int) (*models.Summary, error) {
	now := a.Now()
	since := now.AddDate(0, 0, -a.cfg.SummaryPeriodDays)

	events, err := a.events.FindSince(ctx, since)
	if err != nil {
		return nil, err
	}

	summary := &models.Summary{
		Date:              now,
		PeriodDays:        a.cfg.SummaryPeriodDays,
		TotalEvents:       len(events),
		SeverityCounts:    models.NewSeverityCounts(),
		Categories:        make(map[string]models.CategorySummary, a.tax.Len()),
		OverallStatus:     models.SeverityGreen,
		RunID:             runID,
		ArticlesProcessed: articlesProcessed,
	}

	type periodState struct {
		counts map[models.Severity]int
		latest *models.Event
	}
	perCategory := make(map[string]*periodState)
	for _, id := range a.tax.IDs() {
		perCategory[id] = &periodState{counts: models.NewSeverityCounts()}
	}

	for i := range events {
		e := &events[i]
		summary.SeverityCounts[e.Severity]++
		state, ok := perCategory[e.Category]
		if !ok {
			// Category no longer configured; count it only in the totals.
			continue
		}
		state.counts[e.Severity]++
		if state.latest == nil || e.DetectedDate.After(state.latest.DetectedDate) {
			state.latest = e
		}
	}

	var confirmedRed, confirmedOrangeOrRed int
	for _, id := range a.tax.IDs() {
		persistence, err := a.tracker.CheckCategoryPersistence(ctx, id)
		if err != nil {
			return nil, err
		}

		state := perCategory[id]
		cat := models.CategorySummary{
			SeverityCounts:  state.counts,
			CurrentSeverity: persistence.CurrentSeverity,
			IsPersistent:    persistence.IsPersistent,
			DurationDays:    persistence.DurationDays,
			Confirmed:       persistence.Confirmed,
			RapidEscalation: persistence.RapidEscalation,
			StartDate:       persistence.StartDate,
		}
		for _, n := range state.counts {
			cat.EventCount += n
		}
		if state.latest != nil {
			latest := state.latest.DetectedDate
			cat.LatestEventDate = &latest
		}
		summary.Categories[id] = cat

		if persistence.Confirmed {
			switch persistence.CurrentSeverity {
			case models.SeverityRed:
				confirmedRed++
				confirmedOrangeOrRed++
			case models.SeverityOrange:
				confirmedOrangeOrRed++
			}
		}
	}

	summary.Thresholds = models.ThresholdState{
		OrangeThreshold:           a.cfg.OrangeThreshold,
		RedThreshold:              a.cfg.RedThreshold,
		ConfirmedOrangeOrRedCount: confirmedOrangeOrRed,
		ConfirmedRedCount:         confirmedRed,
		OrangeThresholdCrossed:    confirmedOrangeOrRed >= a.cfg.OrangeThreshold,
		RedThresholdCrossed:       confirmedRed >= a.cfg.RedThreshold,
	}

	// Overall status counts confirmed categories only; unconfirmed elevated
	// activity in the period still lifts the baseline to yellow.
	switch {
	case summary.Thresholds.RedThresholdCrossed:
		summary.OverallStatus = models.SeverityRed
	case summary.Thresholds.OrangeThresholdCrossed:
		summary.OverallStatus = models.SeverityOrange
	case summary.TotalEvents > 0:
		summary.OverallStatus = models.SeverityYellow
	}

	summary.AlertLevel, summary.Recommendations = a.tracker.CalculateAlertLevel(summary)

	if err := a.summaries.Insert(ctx, summary); err != nil {
		return nil, err
	}
	return summary, nil
}
