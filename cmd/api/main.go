package main

import (
	"context"
	"log"
	"net/http"
	"path/filepath"

	"github.com/rs/cors"

	"risk-monitor/api/router"
	"risk-monitor/config"
	"risk-monitor/db"
	"risk-monitor/logger"
	"risk-monitor/repositories"
	"risk-monitor/services"
	"risk-monitor/taxonomy"
	"risk-monitor/tracker"
)

// @title           Risk Monitor API
// @version         1.0
// @description     Read API over classified events, summaries, and trends
// @BasePath        /api/v1
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	if err := db.Init(context.Background(), cfg.Mongo.URI, cfg.Mongo.Database); err != nil {
		log.Fatal("failed to initialize MongoDB:", err)
	}

	tax := loadTaxonomy(cfg)

	eventRepo := repositories.NewEventRepository(db.Database())
	summaryRepo := repositories.NewSummaryRepository(db.Database())

	trk := tracker.New(eventRepo, summaryRepo, tax, tracker.Config{
		PersistenceLookbackDays: cfg.Analysis.PersistenceLookbackDays,
		YellowConfirmDays:       cfg.Analysis.YellowConfirmDays,
		OrangeConfirmDays:       cfg.Analysis.OrangeConfirmDays,
		RedConfirmDays:          cfg.Analysis.RedConfirmDays,
		RapidEscalationDays:     cfg.Analysis.RapidEscalationDays,
	})

	svc := services.NewMonitorService(eventRepo, summaryRepo, trk, tax, services.Config{
		SummaryPeriodDays: cfg.Analysis.SummaryPeriodDays,
		OrangeThreshold:   cfg.Analysis.OrangeThreshold,
		RedThreshold:      cfg.Analysis.RedThreshold,
	})

	r := router.New(svc)
	handler := cors.Default().Handler(r)

	if err := http.ListenAndServe(cfg.API.Addr, handler); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func loadTaxonomy(cfg config.AppConfig) *taxonomy.Taxonomy {
	if cfg.TaxonomyFile == "" {
		return taxonomy.Default()
	}
	path := cfg.TaxonomyFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(config.GetBasePath(), path)
	}
	tax, err := taxonomy.LoadFile(path)
	if err != nil {
		log.Fatal("failed to load taxonomy file:", err)
	}
	return tax
}
