package db

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"risk-monitor/logger"
)

var (
	clientOnce sync.Once
	client     *mongo.Client
	db         *mongo.Database
)

// Init connects the global Mongo client and ensures the indexes the pipeline
// queries depend on.
func Init(ctx context.Context, uri, dbName string) error {
	var initErr error
	clientOnce.Do(func() {
		cl, err := mongo.NewClient(options.Client().ApplyURI(uri))
		if err != nil {
			initErr = err
			return
		}
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := cl.Connect(ctx); err != nil {
			initErr = err
			return
		}
		if err := cl.Ping(ctx, readpref.Primary()); err != nil {
			initErr = err
			return
		}
		client = cl
		db = client.Database(dbName)

		if err := ensureIndexes(ctx, db); err != nil {
			initErr = err
			return
		}
		logger.Log.Info("MongoDB connected and indexes ensured")
	})
	return initErr
}

func Client() *mongo.Client { return client }

func Database() *mongo.Database { return db }

func ensureIndexes(ctx context.Context, d *mongo.Database) error {
	// articles: the batch query filters on analyzed + collected_at
	{
		if _, err := d.Collection("articles").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "analyzed", Value: 1}, {Key: "collected_at", Value: 1}},
			Options: options.Index().SetName("idx_analyzed_collected_at"),
		}); err != nil {
			return err
		}
		if _, err := d.Collection("articles").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "url", Value: 1}},
			Options: options.Index().SetName("uniq_url").SetUnique(true),
		}); err != nil {
			return err
		}
	}

	// events: streak lookups are (category, detected_date desc); the summary
	// window scans detected_date alone
	{
		if _, err := d.Collection("events").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "detected_date", Value: -1}},
			Options: options.Index().SetName("idx_category_detected_desc"),
		}); err != nil {
			return err
		}
		if _, err := d.Collection("events").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "detected_date", Value: -1}},
			Options: options.Index().SetName("idx_detected_desc"),
		}); err != nil {
			return err
		}
		if _, err := d.Collection("events").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "severity", Value: 1}, {Key: "detected_date", Value: -1}},
			Options: options.Index().SetName("idx_severity_detected_desc"),
		}); err != nil {
			return err
		}
	}

	// summaries: "current state" is the most recent summary by date
	{
		if _, err := d.Collection("summaries").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "date", Value: -1}},
			Options: options.Index().SetName("idx_date_desc"),
		}); err != nil {
			return err
		}
	}
	return nil
}
