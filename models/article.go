package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Article is a raw news article supplied by the ingestion collaborator.
// Collection: articles
//
// The analysis pipeline only ever reads an article and writes back
// Analyzed/AnalysisDate/AnalysisResults exactly once; everything else is
// owned by the collector.
type Article struct {
	ID            primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	Title         string                `bson:"title" json:"title"`
	Content       string                `bson:"content" json:"content"`
	URL           string                `bson:"url" json:"url"`
	Source        string                `bson:"source" json:"source"`
	PublishedDate time.Time             `bson:"published_date" json:"published_date"`
	CollectedAt   time.Time             `bson:"collected_at" json:"collected_at"`
	Analyzed      bool                  `bson:"analyzed" json:"analyzed"`
	AnalysisDate  *time.Time            `bson:"analysis_date,omitempty" json:"analysis_date,omitempty"`
	Analysis      *ClassificationResult `bson:"analysis_results,omitempty" json:"analysis_results,omitempty"`
}

// Text returns the case-folded title+body used by the keyword stage. Missing
// fields degrade to the empty string rather than failing classification.
func (a *Article) Text() string {
	return normalizeText(a.Title + " " + a.Content)
}
