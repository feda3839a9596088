package tracker

import (
	"context"
	"sort"
	"time"

	"risk-monitor/models"
)

const dateLayout = "2006-01-02"

// Trend classifications for a category history.
const (
	TrendStable               = "stable"
	TrendImproving            = "improving"
	TrendDeteriorating        = "deteriorating"
	TrendRapidlyDeteriorating = "rapidly_deteriorating"
)

// rapidTrendWindowDays bounds how recent severity changes must be for a
// deteriorating trend to count as rapidly deteriorating.
const rapidTrendWindowDays = 30

// TrendPoint is one day-bucketed observation of a category's severity.
type TrendPoint struct {
	Date     string          `json:"date"`
	Severity models.Severity `json:"severity"`
}

// CategoryTrend is the derived trend state for one category.
type CategoryTrend struct {
	CategoryID         string          `json:"category_id"`
	Trend              string          `json:"trend"`
	CurrentSeverity    models.Severity `json:"current_severity"`
	DaysAtCurrentLevel int             `json:"days_at_current_level"`
	History            []TrendPoint    `json:"history"`
}

// CategoryHistory builds a day-bucketed [date, severity] series for a
// category from the summaries of the last days. When several summaries
// share a day the latest one wins.
func (t *Tracker) CategoryHistory(ctx context.Context, categoryID string, days int) ([]TrendPoint, error) {
	since := t.Now().AddDate(0, 0, -days)
	summaries, err := t.summaries.FindSince(ctx, since)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]models.Severity)
	for _, s := range summaries {
		severity := models.SeverityGreen
		if cat, ok := s.Categories[categoryID]; ok {
			severity = cat.CurrentSeverity
		}
		byDay[s.Date.Format(dateLayout)] = severity
	}

	dates := make([]string, 0, len(byDay))
	for d := range byDay {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	points := make([]TrendPoint, 0, len(dates))
	for _, d := range dates {
		points = append(points, TrendPoint{Date: d, Severity: byDay[d]})
	}
	return points, nil
}

// CategoryTrendFor classifies the severity trajectory of one category over
// the last days.
//
// The trend compares the oldest and newest observed severities. A
// deteriorating trajectory is rapidly deteriorating when the history shows
// two or more severity changes inside the trailing rapid-trend window.
func (t *Tracker) CategoryTrendFor(ctx context.Context, categoryID string, days int) (*CategoryTrend, error) {
	history, err := t.CategoryHistory(ctx, categoryID, days)
	if err != nil {
		return nil, err
	}

	trend := &CategoryTrend{
		CategoryID:      categoryID,
		Trend:           TrendStable,
		CurrentSeverity: models.SeverityGreen,
		History:         history,
	}
	if len(history) == 0 {
		return trend, nil
	}

	current := history[len(history)-1].Severity
	trend.CurrentSeverity = current
	trend.DaysAtCurrentLevel = trailingRun(history)

	first := history[0].Severity
	switch {
	case current.Above(first):
		trend.Trend = TrendDeteriorating
		if recentChanges(history, t.Now()) >= 2 {
			trend.Trend = TrendRapidlyDeteriorating
		}
	case first.Above(current):
		trend.Trend = TrendImproving
	}
	return trend, nil
}

// trailingRun counts the consecutive day buckets at the newest severity.
func trailingRun(history []TrendPoint) int {
	current := history[len(history)-1].Severity
	run := 0
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Severity != current {
			break
		}
		run++
	}
	return run
}

// recentChanges counts severity transitions between adjacent day buckets
// that fall inside the trailing rapid-trend window.
func recentChanges(history []TrendPoint, now time.Time) int {
	cutoff := now.AddDate(0, 0, -rapidTrendWindowDays).Format(dateLayout)
	changes := 0
	for i := 1; i < len(history); i++ {
		if history[i].Severity == history[i-1].Severity {
			continue
		}
		if history[i].Date >= cutoff {
			changes++
		}
	}
	return changes
}

// AcceleratingCategory is a category currently in a rapid-escalation streak.
type AcceleratingCategory struct {
	CategoryID         string          `json:"category_id"`
	Name               string          `json:"name"`
	CurrentSeverity    models.Severity `json:"current_severity"`
	StreakDurationDays int             `json:"streak_duration_days"`
}

// AcceleratingCategories lists every taxonomy category whose current streak
// qualifies as a rapid escalation.
func (t *Tracker) AcceleratingCategories(ctx context.Context) ([]AcceleratingCategory, error) {
	out := make([]AcceleratingCategory, 0)
	for _, id := range t.tax.IDs() {
		p, err := t.CheckCategoryPersistence(ctx, id)
		if err != nil {
			return nil, err
		}
		if !p.RapidEscalation {
			continue
		}
		cat, _ := t.tax.Get(id)
		out = append(out, AcceleratingCategory{
			CategoryID:         id,
			Name:               cat.Name,
			CurrentSeverity:    p.CurrentSeverity,
			StreakDurationDays: p.DurationDays,
		})
	}
	return out, nil
}

// ThresholdHistory records, per summary day, whether the orange and red
// count thresholds were crossed and what alert level was in effect.
type ThresholdHistory struct {
	Dates           []string `json:"dates"`
	OrangeCrossed   []bool   `json:"orange_crossed"`
	RedCrossed      []bool   `json:"red_crossed"`
	AlertLevels     []int    `json:"alert_levels"`
	DaysOrangeState int      `json:"days_orange_state"`
	DaysRedState    int      `json:"days_red_state"`
}

// ThresholdHistoryFor builds the day-bucketed threshold crossing record
// from the summaries of the last days.
func (t *Tracker) ThresholdHistoryFor(ctx context.Context, days int) (*ThresholdHistory, error) {
	since := t.Now().AddDate(0, 0, -days)
	summaries, err := t.summaries.FindSince(ctx, since)
	if err != nil {
		return nil, err
	}

	type dayState struct {
		orange bool
		red    bool
		level  int
	}
	byDay := make(map[string]dayState)
	for _, s := range summaries {
		byDay[s.Date.Format(dateLayout)] = dayState{
			orange: s.Thresholds.OrangeThresholdCrossed,
			red:    s.Thresholds.RedThresholdCrossed,
			level:  s.AlertLevel,
		}
	}

	dates := make([]string, 0, len(byDay))
	for d := range byDay {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	h := &ThresholdHistory{
		Dates:         make([]string, 0, len(dates)),
		OrangeCrossed: make([]bool, 0, len(dates)),
		RedCrossed:    make([]bool, 0, len(dates)),
		AlertLevels:   make([]int, 0, len(dates)),
	}
	for _, d := range dates {
		state := byDay[d]
		h.Dates = append(h.Dates, d)
		h.OrangeCrossed = append(h.OrangeCrossed, state.orange)
		h.RedCrossed = append(h.RedCrossed, state.red)
		h.AlertLevels = append(h.AlertLevels, state.level)
		if state.orange {
			h.DaysOrangeState++
		}
		if state.red {
			h.DaysRedState++
		}
	}
	return h, nil
}

// AlertLevelStats is the system-wide alert level occupancy over a window.
type AlertLevelStats struct {
	DaysAtLevel     map[int]int `json:"days_at_level"`
	CurrentLevel    int         `json:"current_level"`
	CurrentStreak   int         `json:"current_streak_days"`
	HighestLevel    int         `json:"highest_level"`
	HighestLevelDay string      `json:"highest_level_day,omitempty"`
}

// AlertLevelStatistics aggregates alert level occupancy from the summary
// history of the last days. Current level is 1 when no summaries exist.
func (t *Tracker) AlertLevelStatistics(ctx context.Context, days int) (*AlertLevelStats, error) {
	since := t.Now().AddDate(0, 0, -days)
	summaries, err := t.summaries.FindSince(ctx, since)
	if err != nil {
		return nil, err
	}

	stats := &AlertLevelStats{
		DaysAtLevel:  map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
		CurrentLevel: 1,
	}
	if len(summaries) == 0 {
		return stats, nil
	}

	byDay := make(map[string]int)
	for _, s := range summaries {
		byDay[s.Date.Format(dateLayout)] = s.AlertLevel
	}

	dates := make([]string, 0, len(byDay))
	for d := range byDay {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, d := range dates {
		level := byDay[d]
		stats.DaysAtLevel[level]++
		if level > stats.HighestLevel {
			stats.HighestLevel = level
			stats.HighestLevelDay = d
		}
	}

	stats.CurrentLevel = byDay[dates[len(dates)-1]]
	for i := len(dates) - 1; i >= 0; i-- {
		if byDay[dates[i]] != stats.CurrentLevel {
			break
		}
		stats.CurrentStreak++
	}
	return stats, nil
}
