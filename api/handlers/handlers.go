package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"risk-monitor/services"
)

// GetStatusHandler godoc
// @Summary      Current monitoring status
// @Description  Latest summary snapshot; an all-green baseline before any batch has run
// @Tags         status
// @Produce      json
// @Success      200  {object}  models.Summary
// @Router       /status [get]
func GetStatusHandler(svc *services.MonitorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := svc.CurrentStatus(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// ListEventsHandler godoc
// @Summary      List events
// @Description  Recent events, newest first, with filters and pagination
// @Tags         events
// @Param        category   query  string  false  "Category id"
// @Param        severity   query  string  false  "Severity (yellow|orange|red)"
// @Param        days       query  int     false  "Lookback in days"
// @Param        page       query  int     false  "Page number (1-based)"
// @Param        page_size  query  int     false  "Page size (<=100)"
// @Produce      json
// @Success      200  {array}  models.Event
// @Router       /events [get]
func ListEventsHandler(svc *services.MonitorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.ListEventsInput
		in.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
		in.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
		in.Days, _ = strconv.Atoi(c.DefaultQuery("days", "0"))
		in.Category = c.Query("category")
		in.Severity = c.Query("severity")

		events, err := svc.ListEvents(c.Request.Context(), in)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, events)
	}
}

// ListCategoriesHandler godoc
// @Summary      List categories
// @Description  The configured category framework
// @Tags         categories
// @Produce      json
// @Success      200  {array}  taxonomy.Category
// @Router       /categories [get]
func ListCategoriesHandler(svc *services.MonitorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Categories())
	}
}

// GetCategoryTrendHandler godoc
// @Summary      Category trend
// @Description  Day-bucketed severity history and trend classification for one category
// @Tags         trends
// @Param        id    path   string  true   "Category id"
// @Param        days  query  int     false  "History window in days (default 90)"
// @Produce      json
// @Success      200  {object}  tracker.CategoryTrend
// @Router       /categories/{id}/trend [get]
func GetCategoryTrendHandler(svc *services.MonitorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, _ := strconv.Atoi(c.DefaultQuery("days", "0"))
		trend, err := svc.CategoryTrend(c.Request.Context(), c.Param("id"), days)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, trend)
	}
}

// ListAcceleratingHandler godoc
// @Summary      Accelerating categories
// @Description  Categories currently in a rapid escalation streak
// @Tags         trends
// @Produce      json
// @Success      200  {array}  tracker.AcceleratingCategory
// @Router       /trends/accelerating [get]
func ListAcceleratingHandler(svc *services.MonitorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.AcceleratingCategories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// GetThresholdHistoryHandler godoc
// @Summary      Threshold history
// @Description  Day-bucketed record of orange/red threshold crossings and alert levels
// @Tags         alerts
// @Param        days  query  int  false  "History window in days (default 90)"
// @Produce      json
// @Success      200  {object}  tracker.ThresholdHistory
// @Router       /alerts/thresholds [get]
func GetThresholdHistoryHandler(svc *services.MonitorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, _ := strconv.Atoi(c.DefaultQuery("days", "0"))
		history, err := svc.ThresholdHistory(c.Request.Context(), days)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, history)
	}
}

// GetAlertStatisticsHandler godoc
// @Summary      Alert level statistics
// @Description  Days spent at each alert level plus the current streak
// @Tags         alerts
// @Param        days  query  int  false  "History window in days (default 90)"
// @Produce      json
// @Success      200  {object}  tracker.AlertLevelStats
// @Router       /alerts/statistics [get]
func GetAlertStatisticsHandler(svc *services.MonitorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, _ := strconv.Atoi(c.DefaultQuery("days", "0"))
		stats, err := svc.AlertStatistics(c.Request.Context(), days)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// GetConfirmedIndicatorsHandler godoc
// @Summary      Confirmed indicator counts
// @Description  Confirmed category counts per elevated severity from the latest summary
// @Tags         alerts
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /alerts/confirmed [get]
func GetConfirmedIndicatorsHandler(svc *services.MonitorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := svc.ConfirmedIndicators(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, counts)
	}
}
