package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategorySummary is the per-category slice of a Summary: period counts plus
// the derived persistence state from the tracker.
type CategorySummary struct {
	EventCount      int              `bson:"event_count_in_period" json:"event_count_in_period"`
	SeverityCounts  map[Severity]int `bson:"severity_counts_in_period" json:"severity_counts_in_period"`
	CurrentSeverity Severity         `bson:"current_severity" json:"current_severity"`
	IsPersistent    bool             `bson:"is_persistent" json:"is_persistent"`
	DurationDays    int              `bson:"duration_days" json:"duration_days"`
	Confirmed       bool             `bson:"confirmed" json:"confirmed"`
	RapidEscalation bool             `bson:"rapid_escalation" json:"rapid_escalation"`
	StartDate       *time.Time       `bson:"start_date,omitempty" json:"start_date,omitempty"`
	LatestEventDate *time.Time       `bson:"latest_event_date_in_period,omitempty" json:"latest_event_date_in_period,omitempty"`
}

// ThresholdState records the confirmed counts measured against the configured
// alert thresholds at summary time.
type ThresholdState struct {
	OrangeThreshold           int  `bson:"orange_alert_threshold" json:"orange_alert_threshold"`
	RedThreshold              int  `bson:"red_alert_threshold" json:"red_alert_threshold"`
	ConfirmedOrangeOrRedCount int  `bson:"confirmed_orange_or_red_count" json:"confirmed_orange_or_red_count"`
	ConfirmedRedCount         int  `bson:"confirmed_red_count" json:"confirmed_red_count"`
	OrangeThresholdCrossed    bool `bson:"orange_threshold_crossed" json:"orange_threshold_crossed"`
	RedThresholdCrossed       bool `bson:"red_threshold_crossed" json:"red_threshold_crossed"`
}

// Summary is the immutable snapshot written after each analysis batch over a
// rolling event window. The current system state is always the most recent
// summary by Date; prior summaries are never updated.
// Collection: summaries
type Summary struct {
	ID                primitive.ObjectID          `bson:"_id,omitempty" json:"id"`
	Date              time.Time                   `bson:"date" json:"date"`
	PeriodDays        int                         `bson:"summary_period_days" json:"summary_period_days"`
	TotalEvents       int                         `bson:"total_events_in_period" json:"total_events_in_period"`
	SeverityCounts    map[Severity]int            `bson:"severity_counts_in_period" json:"severity_counts_in_period"`
	Categories        map[string]CategorySummary  `bson:"categories" json:"categories"`
	OverallStatus     Severity                    `bson:"overall_status" json:"overall_status"`
	AlertLevel        int                         `bson:"alert_level" json:"alert_level"`
	Recommendations   string                      `bson:"alert_recommendations" json:"alert_recommendations"`
	Thresholds        ThresholdState              `bson:"thresholds" json:"thresholds"`
	RunID             string                      `bson:"run_id,omitempty" json:"run_id,omitempty"`
	ArticlesProcessed int                         `bson:"articles_processed" json:"articles_processed"`
}

// DefaultSummary is what the read side hands out before any batch has run:
// all categories green, baseline alert level 1.
func DefaultSummary(categoryIDs []string, periodDays, orangeThreshold, redThreshold int, now time.Time) *Summary {
	categories := make(map[string]CategorySummary, len(categoryIDs))
	for _, id := range categoryIDs {
		categories[id] = CategorySummary{
			SeverityCounts:  NewSeverityCounts(),
			CurrentSeverity: SeverityGreen,
		}
	}
	return &Summary{
		Date:            now,
		PeriodDays:      periodDays,
		SeverityCounts:  NewSeverityCounts(),
		Categories:      categories,
		OverallStatus:   SeverityGreen,
		AlertLevel:      1,
		Recommendations: "Normal monitoring, no action required.",
		Thresholds: ThresholdState{
			OrangeThreshold: orangeThreshold,
			RedThreshold:    redThreshold,
		},
	}
}
