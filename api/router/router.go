package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"risk-monitor/api/handlers"
	"risk-monitor/db"
	"risk-monitor/services"
)

func New(svc *services.MonitorService) *gin.Engine {
	r := gin.Default()

	// Health check
	r.GET("/health", func(c *gin.Context) {
		// Try ping MongoDB
		if err := db.Database().RunCommand(context.Background(), bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.GET("/status", handlers.GetStatusHandler(svc))
		api.GET("/events", handlers.ListEventsHandler(svc))
		api.GET("/categories", handlers.ListCategoriesHandler(svc))
		api.GET("/categories/:id/trend", handlers.GetCategoryTrendHandler(svc))
		api.GET("/trends/accelerating", handlers.ListAcceleratingHandler(svc))
		api.GET("/alerts/thresholds", handlers.GetThresholdHistoryHandler(svc))
		api.GET("/alerts/statistics", handlers.GetAlertStatisticsHandler(svc))
		api.GET("/alerts/confirmed", handlers.GetConfirmedIndicatorsHandler(svc))
	}

	return r
}
