package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"risk-monitor/models"
	"risk-monitor/storage"
)

var base = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func TestFindUnanalyzedOrderAndLimit(t *testing.T) {
	mem := storage.NewMemory()
	ctx := context.Background()

	newer := mem.Articles.Add(models.Article{Title: "newer", CollectedAt: base})
	older := mem.Articles.Add(models.Article{Title: "older", CollectedAt: base.AddDate(0, 0, -2)})
	mem.Articles.Add(models.Article{Title: "done", CollectedAt: base, Analyzed: true})
	mem.Articles.Add(models.Article{Title: "stale", CollectedAt: base.AddDate(0, 0, -30)})

	articles, err := mem.Articles.FindUnanalyzed(ctx, base.AddDate(0, 0, -7), 10)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	// Oldest first.
	assert.Equal(t, older.ID, articles[0].ID)
	assert.Equal(t, newer.ID, articles[1].ID)

	articles, err = mem.Articles.FindUnanalyzed(ctx, base.AddDate(0, 0, -7), 1)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, older.ID, articles[0].ID)
}

func TestMarkAnalyzedUnknownArticle(t *testing.T) {
	mem := storage.NewMemory()

	err := mem.Articles.MarkAnalyzed(context.Background(), primitive.NewObjectID(), base, &models.ClassificationResult{})
	assert.Error(t, err)
}

func TestLatestByCategoryRespectsLookback(t *testing.T) {
	mem := storage.NewMemory()
	ctx := context.Background()

	require.NoError(t, mem.Events.Insert(ctx, &models.Event{
		Category: "a", Severity: models.SeverityYellow, DetectedDate: base.AddDate(0, 0, -200),
	}))

	latest, err := mem.Events.LatestByCategory(ctx, "a", base.AddDate(0, 0, -180))
	require.NoError(t, err)
	assert.Nil(t, latest)

	require.NoError(t, mem.Events.Insert(ctx, &models.Event{
		Category: "a", Severity: models.SeverityOrange, DetectedDate: base.AddDate(0, 0, -5),
	}))
	require.NoError(t, mem.Events.Insert(ctx, &models.Event{
		Category: "a", Severity: models.SeverityYellow, DetectedDate: base.AddDate(0, 0, -10),
	}))

	latest, err = mem.Events.LatestByCategory(ctx, "a", base.AddDate(0, 0, -180))
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, models.SeverityOrange, latest.Severity)
}

func TestListFiltersAndPaginates(t *testing.T) {
	mem := storage.NewMemory()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, mem.Events.Insert(ctx, &models.Event{
			Category: "a", Severity: models.SeverityYellow,
			DetectedDate: base.Add(-time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, mem.Events.Insert(ctx, &models.Event{
		Category: "b", Severity: models.SeverityRed, DetectedDate: base,
	}))

	out, err := mem.Events.List(ctx, storage.EventFilter{Category: "a", Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, out, 2)
	// Newest first; page 2 starts at the third newest.
	assert.Equal(t, base.Add(-2*time.Hour), out[0].DetectedDate)

	out, err = mem.Events.List(ctx, storage.EventFilter{Severity: models.SeverityRed})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "b", out[0].Category)

	out, err = mem.Events.List(ctx, storage.EventFilter{Category: "a", Page: 9, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSummariesLatestAndFindSince(t *testing.T) {
	mem := storage.NewMemory()
	ctx := context.Background()

	latest, err := mem.Summaries.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	require.NoError(t, mem.Summaries.Insert(ctx, &models.Summary{Date: base.AddDate(0, 0, -3), AlertLevel: 1}))
	require.NoError(t, mem.Summaries.Insert(ctx, &models.Summary{Date: base.AddDate(0, 0, -1), AlertLevel: 2}))

	latest, err = mem.Summaries.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 2, latest.AlertLevel)

	since, err := mem.Summaries.FindSince(ctx, base.AddDate(0, 0, -7))
	require.NoError(t, err)
	require.Len(t, since, 2)
	// Oldest first.
	assert.Equal(t, 1, since[0].AlertLevel)
}
