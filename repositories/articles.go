package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"risk-monitor/models"
)

// ArticleRepository is the Mongo-backed storage.ArticleStore.
type ArticleRepository struct {
	col *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{col: db.Collection("articles")}
}

// FindUnanalyzed returns up to limit unanalyzed articles collected at or
// after since, oldest first so persistence sees events in arrival order.
func (r *ArticleRepository) FindUnanalyzed(ctx context.Context, since time.Time, limit int) ([]models.Article, error) {
	filter := bson.M{
		"analyzed":     false,
		"collected_at": bson.M{"$gte": since},
	}
	opts := options.Find().SetSort(bson.D{{Key: "collected_at", Value: 1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var articles []models.Article
	if err := cur.All(ctx, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// MarkAnalyzed flips the analyzed flag and stores the fused result. The
// article-level idempotence gate: once set, the batch query never returns
// this article again.
func (r *ArticleRepository) MarkAnalyzed(ctx context.Context, id primitive.ObjectID, analyzedAt time.Time, result *models.ClassificationResult) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"analyzed":         true,
			"analysis_date":    analyzedAt,
			"analysis_results": result,
		},
	})
	return err
}
