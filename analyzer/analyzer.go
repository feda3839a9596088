// Package analyzer runs the batch pipeline: pick up unanalyzed articles,
// classify them, append events for elevated categories, and write the run's
// summary snapshot.
package analyzer

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"risk-monitor/classifier"
	"risk-monitor/logger"
	"risk-monitor/models"
	"risk-monitor/storage"
	"risk-monitor/taxonomy"
	"risk-monitor/tracker"
)

// LLMRefiner is the refinement stage contract. A nil refiner runs the
// pipeline keyword-only.
type LLMRefiner interface {
	Analyze(ctx context.Context, article *models.Article, flagged []string) (*models.Refinement, error)
}

// Notifier receives lifecycle notifications after a run. Implementations
// must not fail the batch; errors stay on their side of the boundary.
type Notifier interface {
	AnalysisCompleted(ctx context.Context, runID string, articlesProcessed, eventsWritten int)
	SummaryGenerated(ctx context.Context, summary *models.Summary)
}

// Config holds the batch tunables.
type Config struct {
	ArticleWindowDays       int
	BatchLimit              int
	PersistenceLookbackDays int
	SummaryPeriodDays       int
	OrangeThreshold         int
	RedThreshold            int
	// LLMDelay is the pause after each refinement call.
	LLMDelay time.Duration
}

// Analyzer owns one batch pipeline. Runs are serialized with a mutex: the
// streak computation reads the most recent prior event non-transactionally,
// so two concurrent runs could fork divergent streak starts.
type Analyzer struct {
	articles  storage.ArticleStore
	events    storage.EventStore
	summaries storage.SummaryStore
	tax       *taxonomy.Taxonomy
	tracker   *tracker.Tracker
	refiner   LLMRefiner
	notifier  Notifier
	cfg       Config

	mu sync.Mutex

	// Now is replaceable in tests; defaults to time.Now.
	Now func() time.Time
}

// New wires an analyzer. refiner and notifier may be nil.
func New(articles storage.ArticleStore, events storage.EventStore, summaries storage.SummaryStore,
	tax *taxonomy.Taxonomy, trk *tracker.Tracker, refiner LLMRefiner, notifier Notifier, cfg Config) *Analyzer {
	return &Analyzer{
		articles:  articles,
		events:    events,
		summaries: summaries,
		tax:       tax,
		tracker:   trk,
		refiner:   refiner,
		notifier:  notifier,
		cfg:       cfg,
		Now:       time.Now,
	}
}

// RunResult reports what one batch did.
type RunResult struct {
	RunID             string
	ArticlesProcessed int
	ArticlesFailed    int
	Refined           int
	EventsWritten     int
	Summary           *models.Summary
}

// Run executes one analysis batch: a bounded page of unanalyzed articles is
// classified sequentially, events are appended per elevated category, and a
// summary is generated afterwards even when the page was empty so that
// streak durations keep accruing.
//
// A failing article is logged and skipped; it stays unanalyzed and the next
// run picks it up again. A failing summary is logged and dropped; the next
// run recomputes over an overlapping window.
func (a *Analyzer) Run(ctx context.Context) (*RunResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	result := &RunResult{RunID: uuid.NewString()}
	since := a.Now().AddDate(0, 0, -a.cfg.ArticleWindowDays)

	articles, err := a.articles.FindUnanalyzed(ctx, since, a.cfg.BatchLimit)
	if err != nil {
		return nil, err
	}
	logger.Log.Infof("analysis run %s: %d articles pending", result.RunID, len(articles))

	for i := range articles {
		article := &articles[i]
		classification, refined := a.analyzeArticle(ctx, article)
		if refined {
			result.Refined++
		}

		if err := a.articles.MarkAnalyzed(ctx, article.ID, a.Now(), classification); err != nil {
			logger.ErrorWithFields("failed to mark article analyzed", logger.Fields{
				"article_id": article.ID.Hex(),
				"error":      err.Error(),
			})
			result.ArticlesFailed++
			continue
		}
		result.ArticlesProcessed++
		result.EventsWritten += a.writeEvents(ctx, article, classification)
	}

	summary, err := a.generateSummary(ctx, result.RunID, result.ArticlesProcessed)
	if err != nil {
		logger.ErrorWithFields("summary generation failed, skipping this run's snapshot", logger.Fields{
			"run_id": result.RunID,
			"error":  err.Error(),
		})
	} else {
		result.Summary = summary
		if a.notifier != nil {
			a.notifier.SummaryGenerated(ctx, summary)
		}
	}

	if a.notifier != nil {
		a.notifier.AnalysisCompleted(ctx, result.RunID, result.ArticlesProcessed, result.EventsWritten)
	}

	logger.InfoWithFields("analysis run finished", logger.Fields{
		"run_id":    result.RunID,
		"processed": result.ArticlesProcessed,
		"failed":    result.ArticlesFailed,
		"events":    result.EventsWritten,
	})
	return result, nil
}

// analyzeArticle runs the keyword scan, optionally refines flagged
// categories through the LLM, and fuses the two results. A refinement
// failure degrades to keyword-only; it never fails the article.
func (a *Analyzer) analyzeArticle(ctx context.Context, article *models.Article) (*models.ClassificationResult, bool) {
	keyword := classifier.Classify(article, a.tax)

	var refinement *models.Refinement
	if a.refiner != nil && keyword.Categorized {
		flagged := flaggedCategories(keyword)
		ref, err := a.refiner.Analyze(ctx, article, flagged)
		if err != nil {
			logger.ErrorWithFields("refinement failed, falling back to keyword result", logger.Fields{
				"article_id": article.ID.Hex(),
				"error":      err.Error(),
			})
		} else {
			refinement = ref
		}
		if a.cfg.LLMDelay > 0 {
			time.Sleep(a.cfg.LLMDelay)
		}
	}

	return classifier.Fuse(keyword, refinement, a.tax), refinement != nil
}

// flaggedCategories lists the keyword-elevated category ids in stable order.
func flaggedCategories(keyword *models.KeywordResult) []string {
	var ids []string
	for id, sev := range keyword.Categories {
		if sev.IsElevated() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
