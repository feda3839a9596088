package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"risk-monitor/models"
)

// Memory bundles in-process implementations of the three stores. It backs
// unit tests and local runs without a database; semantics mirror the Mongo
// repositories (same ordering and filters).
type Memory struct {
	Articles  *MemoryArticles
	Events    *MemoryEvents
	Summaries *MemorySummaries
}

// NewMemory returns an empty in-memory store set.
func NewMemory() *Memory {
	return &Memory{
		Articles:  &MemoryArticles{},
		Events:    &MemoryEvents{},
		Summaries: &MemorySummaries{},
	}
}

// MemoryArticles implements ArticleStore.
type MemoryArticles struct {
	mu       sync.Mutex
	articles []models.Article
}

// Add seeds an article, assigning an id when missing.
func (m *MemoryArticles) Add(article models.Article) models.Article {
	m.mu.Lock()
	defer m.mu.Unlock()
	if article.ID.IsZero() {
		article.ID = primitive.NewObjectID()
	}
	m.articles = append(m.articles, article)
	return article
}

// Get returns a stored article by id, for test assertions.
func (m *MemoryArticles) Get(id primitive.ObjectID) (models.Article, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.articles {
		if a.ID == id {
			return a, true
		}
	}
	return models.Article{}, false
}

func (m *MemoryArticles) FindUnanalyzed(_ context.Context, since time.Time, limit int) ([]models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Article
	for _, a := range m.articles {
		if !a.Analyzed && !a.CollectedAt.Before(since) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CollectedAt.Before(out[j].CollectedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryArticles) MarkAnalyzed(_ context.Context, id primitive.ObjectID, analyzedAt time.Time, result *models.ClassificationResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.articles {
		if m.articles[i].ID == id {
			m.articles[i].Analyzed = true
			m.articles[i].AnalysisDate = &analyzedAt
			m.articles[i].Analysis = result
			return nil
		}
	}
	return fmt.Errorf("storage: article %s not found", id.Hex())
}

// MemoryEvents implements EventStore.
type MemoryEvents struct {
	mu     sync.Mutex
	events []models.Event

	// FailCategories simulates per-category write failures in tests.
	FailCategories map[string]bool
}

func (m *MemoryEvents) Insert(_ context.Context, event *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCategories[event.Category] {
		return fmt.Errorf("storage: simulated write failure for %s", event.Category)
	}
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	m.events = append(m.events, *event)
	return nil
}

func (m *MemoryEvents) LatestByCategory(_ context.Context, category string, since time.Time) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *models.Event
	for i := range m.events {
		e := &m.events[i]
		if e.Category != category || e.DetectedDate.Before(since) {
			continue
		}
		if latest == nil || e.DetectedDate.After(latest.DetectedDate) {
			latest = e
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (m *MemoryEvents) FindByCategorySince(_ context.Context, category string, since time.Time) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Event
	for _, e := range m.events {
		if e.Category == category && !e.DetectedDate.Before(since) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DetectedDate.After(out[j].DetectedDate) })
	return out, nil
}

func (m *MemoryEvents) FindSince(_ context.Context, since time.Time) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Event
	for _, e := range m.events {
		if !e.DetectedDate.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MemoryEvents) List(_ context.Context, filter EventFilter) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Event
	for _, e := range m.events {
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.Severity != "" && e.Severity != filter.Severity {
			continue
		}
		if !filter.Since.IsZero() && e.DetectedDate.Before(filter.Since) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DetectedDate.After(out[j].DetectedDate) })

	page, size := filter.Page, filter.PageSize
	if size <= 0 {
		return out, nil
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(out) {
		return nil, nil
	}
	end := start + size
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], nil
}

// MemorySummaries implements SummaryStore.
type MemorySummaries struct {
	mu        sync.Mutex
	summaries []models.Summary
}

func (m *MemorySummaries) Insert(_ context.Context, summary *models.Summary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if summary.ID.IsZero() {
		summary.ID = primitive.NewObjectID()
	}
	m.summaries = append(m.summaries, *summary)
	return nil
}

func (m *MemorySummaries) Latest(_ context.Context) (*models.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *models.Summary
	for i := range m.summaries {
		if latest == nil || m.summaries[i].Date.After(latest.Date) {
			latest = &m.summaries[i]
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (m *MemorySummaries) FindSince(_ context.Context, since time.Time) ([]models.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Summary
	for _, s := range m.summaries {
		if !s.Date.Before(since) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
