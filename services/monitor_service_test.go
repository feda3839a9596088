package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"risk-monitor/models"
	"risk-monitor/services"
	"risk-monitor/storage"
	"risk-monitor/taxonomy"
	"risk-monitor/tracker"
)

var base = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*services.MonitorService, *storage.Memory) {
	t.Helper()
	tax, err := taxonomy.New([]taxonomy.Category{
		{ID: "electoral_integrity", Name: "Electoral Integrity", Keywords: []string{"ballot"}},
		{ID: "media_censorship", Name: "Media Censorship", Keywords: []string{"press freedom"}},
	})
	require.NoError(t, err)

	mem := storage.NewMemory()
	trk := tracker.New(mem.Events, mem.Summaries, tax, tracker.Config{
		PersistenceLookbackDays: 180,
		YellowConfirmDays:       30,
		OrangeConfirmDays:       14,
		RedConfirmDays:          0,
		RapidEscalationDays:     60,
	})
	trk.Now = func() time.Time { return base }

	svc := services.NewMonitorService(mem.Events, mem.Summaries, trk, tax, services.Config{
		SummaryPeriodDays: 7,
		OrangeThreshold:   3,
		RedThreshold:      1,
	})
	svc.Now = func() time.Time { return base }
	return svc, mem
}

func TestCurrentStatusDefaultsToGreenBaseline(t *testing.T) {
	svc, _ := newTestService(t)

	summary, err := svc.CurrentStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SeverityGreen, summary.OverallStatus)
	assert.Equal(t, 1, summary.AlertLevel)
	assert.Len(t, summary.Categories, 2)
	assert.Equal(t, models.SeverityGreen, summary.Categories["electoral_integrity"].CurrentSeverity)
	assert.Equal(t, 3, summary.Thresholds.OrangeThreshold)
}

func TestCurrentStatusReturnsLatestSummary(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	require.NoError(t, mem.Summaries.Insert(ctx, &models.Summary{
		Date: base.AddDate(0, 0, -2), OverallStatus: models.SeverityGreen, AlertLevel: 1,
	}))
	require.NoError(t, mem.Summaries.Insert(ctx, &models.Summary{
		Date: base.AddDate(0, 0, -1), OverallStatus: models.SeverityOrange, AlertLevel: 3,
	}))

	summary, err := svc.CurrentStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SeverityOrange, summary.OverallStatus)
	assert.Equal(t, 3, summary.AlertLevel)
}

func TestListEventsFiltersAndValidates(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, mem.Events.Insert(ctx, &models.Event{
			Category: "electoral_integrity", Severity: models.SeverityYellow,
			DetectedDate: base.AddDate(0, 0, -i), StartDate: base.AddDate(0, 0, -i),
		}))
	}
	require.NoError(t, mem.Events.Insert(ctx, &models.Event{
		Category: "media_censorship", Severity: models.SeverityOrange,
		DetectedDate: base, StartDate: base,
	}))

	events, err := svc.ListEvents(ctx, services.ListEventsInput{Category: "electoral_integrity"})
	require.NoError(t, err)
	assert.Len(t, events, 3)

	events, err = svc.ListEvents(ctx, services.ListEventsInput{Severity: "orange"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "media_censorship", events[0].Category)

	events, err = svc.ListEvents(ctx, services.ListEventsInput{Days: 1})
	require.NoError(t, err)
	assert.Len(t, events, 3)

	_, err = svc.ListEvents(ctx, services.ListEventsInput{Category: "unknown"})
	assert.Error(t, err)

	_, err = svc.ListEvents(ctx, services.ListEventsInput{Severity: "purple"})
	assert.Error(t, err)
}

func TestListEventsPagination(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, mem.Events.Insert(ctx, &models.Event{
			Category: "electoral_integrity", Severity: models.SeverityYellow,
			DetectedDate: base.Add(-time.Duration(i) * time.Hour), StartDate: base,
		}))
	}

	page1, err := svc.ListEvents(ctx, services.ListEventsInput{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, base, page1[0].DetectedDate)

	page3, err := svc.ListEvents(ctx, services.ListEventsInput{Page: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page3, 1)
}

func TestCategoryTrendRejectsUnknownCategory(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CategoryTrend(context.Background(), "nope", 30)
	assert.Error(t, err)

	trend, err := svc.CategoryTrend(context.Background(), "electoral_integrity", 0)
	require.NoError(t, err)
	assert.NotNil(t, trend)
}

func TestCategoriesExposesTaxonomy(t *testing.T) {
	svc, _ := newTestService(t)

	categories := svc.Categories()
	require.Len(t, categories, 2)
	assert.Equal(t, "electoral_integrity", categories[0].ID)
}
