// Package tracker derives time-based state from the append-only event log
// and the summary history: streak persistence and confirmation, rapid
// escalation, the tiered alert level, and the read-side trend analytics.
package tracker

import (
	"context"
	"time"

	"risk-monitor/models"
	"risk-monitor/storage"
	"risk-monitor/taxonomy"
)

// Config carries the duration thresholds. All values are in days.
type Config struct {
	PersistenceLookbackDays int
	YellowConfirmDays       int
	OrangeConfirmDays       int
	RedConfirmDays          int
	RapidEscalationDays     int
}

// Tracker reads events and summaries; it never writes.
type Tracker struct {
	events    storage.EventStore
	summaries storage.SummaryStore
	tax       *taxonomy.Taxonomy
	cfg       Config

	// Now is replaceable in tests; defaults to time.Now.
	Now func() time.Time
}

func New(events storage.EventStore, summaries storage.SummaryStore, tax *taxonomy.Taxonomy, cfg Config) *Tracker {
	return &Tracker{
		events:    events,
		summaries: summaries,
		tax:       tax,
		cfg:       cfg,
		Now:       time.Now,
	}
}

// Persistence is the derived streak state for one category.
type Persistence struct {
	CurrentSeverity models.Severity
	IsPersistent    bool
	DurationDays    int
	Confirmed       bool
	RapidEscalation bool
	StartDate       *time.Time
	LatestEventDate *time.Time
}

// CheckCategoryPersistence computes the current streak state for a category
// from its events within the persistence lookback.
//
// Confirmation is duration-gated per severity: yellow must persist
// YellowConfirmDays, orange OrangeConfirmDays, red RedConfirmDays (zero
// means immediate). Green is never confirmed. Duration runs from the
// streak's start date to the latest event's detection date, so a streak
// cannot be confirmed by wall-clock time alone without fresh observations.
func (t *Tracker) CheckCategoryPersistence(ctx context.Context, categoryID string) (Persistence, error) {
	since := t.Now().AddDate(0, 0, -t.cfg.PersistenceLookbackDays)
	events, err := t.events.FindByCategorySince(ctx, categoryID, since)
	if err != nil {
		return Persistence{}, err
	}
	if len(events) == 0 {
		return Persistence{CurrentSeverity: models.SeverityGreen}, nil
	}

	// Newest first per the store contract.
	newest := events[0]
	severity := newest.Severity

	streakLen := 0
	for _, e := range events {
		if e.Severity != severity {
			break
		}
		streakLen++
	}

	startDate := newest.StartDate
	if startDate.IsZero() {
		startDate = newest.DetectedDate
	}
	duration := daysBetween(startDate, newest.DetectedDate)

	p := Persistence{
		CurrentSeverity: severity,
		IsPersistent:    streakLen > 1,
		DurationDays:    duration,
		StartDate:       &startDate,
		LatestEventDate: &newest.DetectedDate,
	}

	switch severity {
	case models.SeverityYellow:
		p.Confirmed = duration >= t.cfg.YellowConfirmDays
	case models.SeverityOrange:
		p.Confirmed = duration >= t.cfg.OrangeConfirmDays
	case models.SeverityRed:
		p.Confirmed = duration >= t.cfg.RedConfirmDays
	}

	p.RapidEscalation = t.isRapidEscalation(events, newest)

	return p, nil
}

// isRapidEscalation reports a direct jump from the green baseline to orange
// or red: the current streak is orange/red, it started within the
// rapid-escalation window, and no elevated event for the category precedes
// the streak inside the lookback.
func (t *Tracker) isRapidEscalation(events []models.Event, newest models.Event) bool {
	if newest.Severity != models.SeverityOrange && newest.Severity != models.SeverityRed {
		return false
	}
	if t.Now().Sub(newest.StartDate) > time.Duration(t.cfg.RapidEscalationDays)*24*time.Hour {
		return false
	}
	for _, e := range events {
		if e.DetectedDate.Before(newest.StartDate) {
			return false
		}
	}
	return true
}

// Alert level recommendation text per tier.
var recommendations = map[int]string{
	1: "Normal monitoring, no action required.",
	2: "Heightened awareness: verify sources for the flagged categories and review monitoring coverage.",
	3: "Elevated: multiple categories confirmed at orange; increase collection frequency and brief stakeholders.",
	4: "Severe: confirmed red activity or broad orange escalation; convene an incident review and notify subscribers.",
	5: "Critical: multiple categories confirmed at red; move to continuous monitoring and execute contingency plans.",
}

// CalculateAlertLevel derives the tiered 1-5 alert level from a summary's
// confirmed category states. A rapid escalation counts as one extra
// effective orange. The tiering is monotonic in the confirmed counts.
func (t *Tracker) CalculateAlertLevel(summary *models.Summary) (int, string) {
	var yellow, orange, red, rapid int
	for _, cat := range summary.Categories {
		if cat.RapidEscalation {
			rapid++
		}
		if !cat.Confirmed {
			continue
		}
		switch cat.CurrentSeverity {
		case models.SeverityYellow:
			yellow++
		case models.SeverityOrange:
			orange++
		case models.SeverityRed:
			red++
		}
	}

	effectiveOrange := orange + rapid

	level := 1
	if yellow >= 3 || (yellow >= 1 && orange >= 1) {
		level = 2
	}
	if effectiveOrange >= 3 {
		level = 3
	}
	if effectiveOrange >= 4 || red >= 1 {
		level = 4
	}
	if red >= 2 {
		level = 5
	}
	return level, recommendations[level]
}

// ConfirmedIndicatorCounts reports how many categories the latest summary
// confirms at each elevated severity. All zeros when no summary exists.
func (t *Tracker) ConfirmedIndicatorCounts(ctx context.Context) (map[models.Severity]int, error) {
	counts := map[models.Severity]int{
		models.SeverityYellow: 0,
		models.SeverityOrange: 0,
		models.SeverityRed:    0,
	}
	latest, err := t.summaries.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return counts, nil
	}
	for _, cat := range latest.Categories {
		if cat.Confirmed && cat.CurrentSeverity.IsElevated() {
			counts[cat.CurrentSeverity]++
		}
	}
	return counts, nil
}

// daysBetween returns whole elapsed days from a to b, never negative.
func daysBetween(a, b time.Time) int {
	d := int(b.Sub(a).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
