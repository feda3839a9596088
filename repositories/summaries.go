package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"risk-monitor/models"
)

// SummaryRepository is the Mongo-backed storage.SummaryStore. Summaries are
// immutable snapshots; only inserts and reads.
type SummaryRepository struct {
	col *mongo.Collection
}

func NewSummaryRepository(db *mongo.Database) *SummaryRepository {
	return &SummaryRepository{col: db.Collection("summaries")}
}

func (r *SummaryRepository) Insert(ctx context.Context, summary *models.Summary) error {
	_, err := r.col.InsertOne(ctx, summary)
	return err
}

// Latest returns the most recent summary by date, nil when none exists yet.
func (r *SummaryRepository) Latest(ctx context.Context) (*models.Summary, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})

	var summary models.Summary
	err := r.col.FindOne(ctx, bson.M{}, opts).Decode(&summary)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *SummaryRepository) FindSince(ctx context.Context, since time.Time) ([]models.Summary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cur, err := r.col.Find(ctx, bson.M{"date": bson.M{"$gte": since}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var summaries []models.Summary
	if err := cur.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}
