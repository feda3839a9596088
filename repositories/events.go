package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"risk-monitor/models"
	"risk-monitor/storage"
)

// EventRepository is the Mongo-backed storage.EventStore. The collection is
// append-only; there is deliberately no update or delete method.
type EventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection("events")}
}

func (r *EventRepository) Insert(ctx context.Context, event *models.Event) error {
	_, err := r.col.InsertOne(ctx, event)
	return err
}

// LatestByCategory returns the most recent event for a category within the
// lookback, or nil when the category has no recent history.
func (r *EventRepository) LatestByCategory(ctx context.Context, category string, since time.Time) (*models.Event, error) {
	filter := bson.M{
		"category":      category,
		"detected_date": bson.M{"$gte": since},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "detected_date", Value: -1}})

	var event models.Event
	err := r.col.FindOne(ctx, filter, opts).Decode(&event)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) FindByCategorySince(ctx context.Context, category string, since time.Time) ([]models.Event, error) {
	filter := bson.M{
		"category":      category,
		"detected_date": bson.M{"$gte": since},
	}
	opts := options.Find().SetSort(bson.D{{Key: "detected_date", Value: -1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) FindSince(ctx context.Context, since time.Time) ([]models.Event, error) {
	cur, err := r.col.Find(ctx, bson.M{"detected_date": bson.M{"$gte": since}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// List returns filtered events newest first with pagination for the read API.
func (r *EventRepository) List(ctx context.Context, filter storage.EventFilter) ([]models.Event, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Severity != "" {
		query["severity"] = filter.Severity
	}
	if !filter.Since.IsZero() {
		query["detected_date"] = bson.M{"$gte": filter.Since}
	}

	opts := options.Find().SetSort(bson.D{{Key: "detected_date", Value: -1}})
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		opts = opts.SetSkip(int64((page - 1) * filter.PageSize)).SetLimit(int64(filter.PageSize))
	}

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
