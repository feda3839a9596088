package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"risk-monitor/api/handlers"
	"risk-monitor/models"
	"risk-monitor/services"
	"risk-monitor/storage"
	"risk-monitor/taxonomy"
	"risk-monitor/tracker"
)

var base = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T) (*gin.Engine, *storage.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tax, err := taxonomy.New([]taxonomy.Category{
		{ID: "electoral_integrity", Name: "Electoral Integrity", Keywords: []string{"ballot"}},
	})
	require.NoError(t, err)

	mem := storage.NewMemory()
	trk := tracker.New(mem.Events, mem.Summaries, tax, tracker.Config{
		PersistenceLookbackDays: 180,
		YellowConfirmDays:       30,
		OrangeConfirmDays:       14,
		RapidEscalationDays:     60,
	})
	trk.Now = func() time.Time { return base }

	svc := services.NewMonitorService(mem.Events, mem.Summaries, trk, tax, services.Config{
		SummaryPeriodDays: 7,
		OrangeThreshold:   3,
		RedThreshold:      1,
	})
	svc.Now = func() time.Time { return base }

	r := gin.New()
	api := r.Group("/api/v1")
	api.GET("/status", handlers.GetStatusHandler(svc))
	api.GET("/events", handlers.ListEventsHandler(svc))
	api.GET("/categories", handlers.ListCategoriesHandler(svc))
	api.GET("/categories/:id/trend", handlers.GetCategoryTrendHandler(svc))
	api.GET("/alerts/statistics", handlers.GetAlertStatisticsHandler(svc))
	return r, mem
}

func doGet(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetStatusReturnsBaseline(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doGet(t, r, "/api/v1/status")
	require.Equal(t, http.StatusOK, w.Code)

	var summary models.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, models.SeverityGreen, summary.OverallStatus)
	assert.Equal(t, 1, summary.AlertLevel)
}

func TestListEventsEndpoint(t *testing.T) {
	r, mem := newTestRouter(t)

	require.NoError(t, mem.Events.Insert(context.Background(), &models.Event{
		Category: "electoral_integrity", Severity: models.SeverityYellow,
		DetectedDate: base, StartDate: base,
	}))

	w := doGet(t, r, "/api/v1/events?category=electoral_integrity&severity=yellow")
	require.Equal(t, http.StatusOK, w.Code)

	var events []models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "electoral_integrity", events[0].Category)

	w = doGet(t, r, "/api/v1/events?severity=purple")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryTrendEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doGet(t, r, "/api/v1/categories/electoral_integrity/trend")
	require.Equal(t, http.StatusOK, w.Code)

	var trend tracker.CategoryTrend
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trend))
	assert.Equal(t, tracker.TrendStable, trend.Trend)

	w = doGet(t, r, "/api/v1/categories/unknown/trend")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoriesEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doGet(t, r, "/api/v1/categories")
	require.Equal(t, http.StatusOK, w.Code)

	var categories []taxonomy.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	require.Len(t, categories, 1)
	assert.Equal(t, "Electoral Integrity", categories[0].Name)
}

func TestAlertStatisticsEndpoint(t *testing.T) {
	r, mem := newTestRouter(t)

	require.NoError(t, mem.Summaries.Insert(context.Background(), &models.Summary{
		Date: base.AddDate(0, 0, -1), AlertLevel: 2,
	}))

	w := doGet(t, r, "/api/v1/alerts/statistics?days=30")
	require.Equal(t, http.StatusOK, w.Code)

	var stats tracker.AlertLevelStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.CurrentLevel)
	assert.Equal(t, 1, stats.DaysAtLevel[2])
}
