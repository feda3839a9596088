// Package services exposes the read side consumed by the API: current
// status, event listings, and trend analytics.
package services

import (
	"context"
	"fmt"
	"time"

	"risk-monitor/models"
	"risk-monitor/storage"
	"risk-monitor/taxonomy"
	"risk-monitor/tracker"
)

// Defaults for read queries.
const (
	DefaultPageSize  = 20
	MaxPageSize      = 100
	DefaultTrendDays = 90
)

// Config carries the values the read side needs to synthesize a default
// summary before any batch has run.
type Config struct {
	SummaryPeriodDays int
	OrangeThreshold   int
	RedThreshold      int
}

// MonitorService encapsulates the display-facing queries over events,
// summaries, and the trend analytics. It never writes.
type MonitorService struct {
	events    storage.EventStore
	summaries storage.SummaryStore
	tracker   *tracker.Tracker
	tax       *taxonomy.Taxonomy
	cfg       Config

	// Now is replaceable in tests; defaults to time.Now.
	Now func() time.Time
}

func NewMonitorService(events storage.EventStore, summaries storage.SummaryStore, trk *tracker.Tracker, tax *taxonomy.Taxonomy, cfg Config) *MonitorService {
	return &MonitorService{
		events:    events,
		summaries: summaries,
		tracker:   trk,
		tax:       tax,
		cfg:       cfg,
		Now:       time.Now,
	}
}

// CurrentStatus returns the most recent summary. Before any batch has run
// it returns a synthesized all-green baseline instead of an error.
func (s *MonitorService) CurrentStatus(ctx context.Context) (*models.Summary, error) {
	latest, err := s.summaries.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return models.DefaultSummary(s.tax.IDs(), s.cfg.SummaryPeriodDays, s.cfg.OrangeThreshold, s.cfg.RedThreshold, s.Now()), nil
	}
	return latest, nil
}

// ListEventsInput narrows the event listing; zero values mean no filter.
type ListEventsInput struct {
	Category string
	Severity string
	Days     int
	Page     int
	PageSize int
}

// ListEvents returns filtered events newest first with pagination.
func (s *MonitorService) ListEvents(ctx context.Context, in ListEventsInput) ([]models.Event, error) {
	filter := storage.EventFilter{
		Category: in.Category,
		Page:     in.Page,
		PageSize: in.PageSize,
	}
	if in.Severity != "" {
		sev, ok := models.ParseSeverity(in.Severity)
		if !ok {
			return nil, fmt.Errorf("unknown severity %q", in.Severity)
		}
		filter.Severity = sev
	}
	if in.Category != "" {
		if _, ok := s.tax.Get(in.Category); !ok {
			return nil, fmt.Errorf("unknown category %q", in.Category)
		}
	}
	if in.Days > 0 {
		filter.Since = s.Now().AddDate(0, 0, -in.Days)
	}
	if filter.PageSize <= 0 {
		filter.PageSize = DefaultPageSize
	}
	if filter.PageSize > MaxPageSize {
		filter.PageSize = MaxPageSize
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	return s.events.List(ctx, filter)
}

// CategoryTrend returns the day-bucketed severity history and trend
// classification for one category.
func (s *MonitorService) CategoryTrend(ctx context.Context, categoryID string, days int) (*tracker.CategoryTrend, error) {
	if _, ok := s.tax.Get(categoryID); !ok {
		return nil, fmt.Errorf("unknown category %q", categoryID)
	}
	if days <= 0 {
		days = DefaultTrendDays
	}
	return s.tracker.CategoryTrendFor(ctx, categoryID, days)
}

// AcceleratingCategories lists categories currently in a rapid escalation.
func (s *MonitorService) AcceleratingCategories(ctx context.Context) ([]tracker.AcceleratingCategory, error) {
	return s.tracker.AcceleratingCategories(ctx)
}

// ThresholdHistory returns the day-bucketed threshold crossing record.
func (s *MonitorService) ThresholdHistory(ctx context.Context, days int) (*tracker.ThresholdHistory, error) {
	if days <= 0 {
		days = DefaultTrendDays
	}
	return s.tracker.ThresholdHistoryFor(ctx, days)
}

// AlertStatistics returns alert level occupancy over the window.
func (s *MonitorService) AlertStatistics(ctx context.Context, days int) (*tracker.AlertLevelStats, error) {
	if days <= 0 {
		days = DefaultTrendDays
	}
	return s.tracker.AlertLevelStatistics(ctx, days)
}

// ConfirmedIndicators reports the confirmed category counts per elevated
// severity from the latest summary.
func (s *MonitorService) ConfirmedIndicators(ctx context.Context) (map[models.Severity]int, error) {
	return s.tracker.ConfirmedIndicatorCounts(ctx)
}

// Categories exposes the configured category framework.
func (s *MonitorService) Categories() []taxonomy.Category {
	return s.tax.Categories()
}
