// Package storage defines the persistence capability set the pipeline and
// read side depend on, decoupled from MongoDB. The repositories package
// provides the Mongo implementations; Memory in this package backs tests.
package storage

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"risk-monitor/models"
)

// ArticleStore is the pipeline's view of the article collection: read a
// bounded page of pending work, write back the analysis exactly once.
type ArticleStore interface {
	// FindUnanalyzed returns up to limit articles collected at or after
	// since that have not been analyzed, oldest first.
	FindUnanalyzed(ctx context.Context, since time.Time, limit int) ([]models.Article, error)
	// MarkAnalyzed flips the analyzed flag and attaches the fused result.
	MarkAnalyzed(ctx context.Context, id primitive.ObjectID, analyzedAt time.Time, result *models.ClassificationResult) error
}

// EventFilter narrows List queries; zero values mean "no constraint".
type EventFilter struct {
	Category string
	Severity models.Severity
	Since    time.Time
	Page     int
	PageSize int
}

// EventStore is append-only: events are inserted and queried, never updated
// or deleted.
type EventStore interface {
	Insert(ctx context.Context, event *models.Event) error
	// LatestByCategory returns the most recent event for a category with
	// detected_date at or after since, or nil when none exists.
	LatestByCategory(ctx context.Context, category string, since time.Time) (*models.Event, error)
	// FindByCategorySince returns a category's events since the cutoff,
	// newest first.
	FindByCategorySince(ctx context.Context, category string, since time.Time) ([]models.Event, error)
	// FindSince returns all events since the cutoff, in no guaranteed order.
	FindSince(ctx context.Context, since time.Time) ([]models.Event, error)
	// List returns filtered events newest first with pagination.
	List(ctx context.Context, filter EventFilter) ([]models.Event, error)
}

// SummaryStore holds the immutable batch snapshots.
type SummaryStore interface {
	Insert(ctx context.Context, summary *models.Summary) error
	// Latest returns the most recent summary by date, or nil when none has
	// been written yet.
	Latest(ctx context.Context) (*models.Summary, error)
	// FindSince returns summaries dated at or after since, oldest first.
	FindSince(ctx context.Context, since time.Time) ([]models.Summary, error)
}
