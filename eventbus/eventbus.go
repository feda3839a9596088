// Package eventbus publishes run lifecycle notifications to Kafka so
// downstream consumers (alerting, dashboards) can react without polling the
// database. Publishing is strictly best-effort: a delivery failure is
// logged and never propagates into the batch.
package eventbus

import (
	"context"
	"time"

	"risk-monitor/models"
)

// Notification types carried on the bus.
const (
	TypeAnalysisCompleted = "analysis.completed"
	TypeSummaryGenerated  = "summary.generated"
)

// Notification is the wire payload for one lifecycle message.
type Notification struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`

	RunID             string `json:"run_id,omitempty"`
	ArticlesProcessed int    `json:"articles_processed,omitempty"`
	EventsWritten     int    `json:"events_written,omitempty"`

	SummaryID     string          `json:"summary_id,omitempty"`
	OverallStatus models.Severity `json:"overall_status,omitempty"`
	AlertLevel    int             `json:"alert_level,omitempty"`
}

// Bus is the producer contract the pipeline wiring depends on. Noop stands
// in when no brokers are configured.
type Bus interface {
	AnalysisCompleted(ctx context.Context, runID string, articlesProcessed, eventsWritten int)
	SummaryGenerated(ctx context.Context, summary *models.Summary)
	Close()
}

// Noop discards all notifications.
type Noop struct{}

func (Noop) AnalysisCompleted(context.Context, string, int, int) {}

func (Noop) SummaryGenerated(context.Context, *models.Summary) {}

func (Noop) Close() {}

// New returns a Kafka-backed bus, or Noop when brokers is empty.
func New(brokers, topic string) (Bus, error) {
	if brokers == "" {
		return Noop{}, nil
	}
	return NewKafkaBus(brokers, topic)
}
