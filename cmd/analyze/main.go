package main

import (
	"context"
	"log"
	"path/filepath"

	"risk-monitor/analyzer"
	"risk-monitor/config"
	"risk-monitor/db"
	"risk-monitor/eventbus"
	"risk-monitor/logger"
	"risk-monitor/refiner"
	"risk-monitor/repositories"
	"risk-monitor/taxonomy"
	"risk-monitor/tracker"
)

// One-shot batch runner: classify pending articles, append events, write a
// summary, exit. Scheduling (cron, systemd timer) lives outside.
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx := context.Background()
	if err := db.Init(ctx, cfg.Mongo.URI, cfg.Mongo.Database); err != nil {
		log.Fatal("failed to initialize MongoDB:", err)
	}

	tax := loadTaxonomy(cfg)

	articleRepo := repositories.NewArticleRepository(db.Database())
	eventRepo := repositories.NewEventRepository(db.Database())
	summaryRepo := repositories.NewSummaryRepository(db.Database())

	trk := tracker.New(eventRepo, summaryRepo, tax, tracker.Config{
		PersistenceLookbackDays: cfg.Analysis.PersistenceLookbackDays,
		YellowConfirmDays:       cfg.Analysis.YellowConfirmDays,
		OrangeConfirmDays:       cfg.Analysis.OrangeConfirmDays,
		RedConfirmDays:          cfg.Analysis.RedConfirmDays,
		RapidEscalationDays:     cfg.Analysis.RapidEscalationDays,
	})

	var llm analyzer.LLMRefiner
	if cfg.LLM.Enabled {
		r, err := refiner.New(ctx, refiner.Config{
			APIKey:  config.GeminiAPIKey(),
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLMTimeout(),
		})
		if err != nil {
			logger.Log.Errorf("refiner unavailable, running keyword-only: %v", err)
		} else {
			llm = r
		}
	}

	bus, err := eventbus.New(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if err != nil {
		logger.Log.Errorf("event bus unavailable, notifications disabled: %v", err)
		bus = eventbus.Noop{}
	}
	defer bus.Close()

	a := analyzer.New(articleRepo, eventRepo, summaryRepo, tax, trk, llm, bus, analyzer.Config{
		ArticleWindowDays:       cfg.Analysis.ArticleWindowDays,
		BatchLimit:              cfg.Analysis.BatchLimit,
		PersistenceLookbackDays: cfg.Analysis.PersistenceLookbackDays,
		SummaryPeriodDays:       cfg.Analysis.SummaryPeriodDays,
		OrangeThreshold:         cfg.Analysis.OrangeThreshold,
		RedThreshold:            cfg.Analysis.RedThreshold,
		LLMDelay:                cfg.LLMDelay(),
	})

	result, err := a.Run(ctx)
	if err != nil {
		log.Fatal("analysis run failed:", err)
	}
	logger.Log.Infof("run %s done: %d articles, %d events", result.RunID, result.ArticlesProcessed, result.EventsWritten)
}

// loadTaxonomy returns the configured category framework, falling back to
// the built-in categories when no file is configured.
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
