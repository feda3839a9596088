package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is one append-only observation: "category X was seen at severity Y at
// time T because of article A". Events are never updated or deleted;
// corrections happen by appending new events.
// Collection: events
type Event struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ArticleID     primitive.ObjectID `bson:"article_id" json:"article_id"`
	ArticleTitle  string             `bson:"article_title" json:"article_title"`
	ArticleURL    string             `bson:"article_url" json:"article_url"`
	Source        string             `bson:"source" json:"source"`
	PublishedDate time.Time          `bson:"published_date" json:"published_date"`

	Category     string    `bson:"category" json:"category"`
	Severity     Severity  `bson:"severity" json:"severity"`
	DetectedDate time.Time `bson:"detected_date" json:"detected_date"`

	Methods     []string `bson:"methods" json:"methods"`
	Evidence    []string `bson:"evidence,omitempty" json:"evidence,omitempty"`
	Confidence  int      `bson:"confidence" json:"confidence"`
	IsUSBased   *bool    `bson:"is_us_based,omitempty" json:"is_us_based,omitempty"`
	Explanation string   `bson:"explanation,omitempty" json:"explanation,omitempty"`
	Reasoning   string   `bson:"reasoning,omitempty" json:"reasoning,omitempty"`

	// Streak bookkeeping, computed at append time from the most recent prior
	// event for the same category. StartDate is the first detection of the
	// current unbroken same-severity streak; a severity change starts a new
	// streak at this event's own DetectedDate.
	StartDate          time.Time  `bson:"start_date" json:"start_date"`
	PreviousSeverity   *Severity  `bson:"previous_severity,omitempty" json:"previous_severity,omitempty"`
	SeverityChangeDate *time.Time `bson:"severity_change_date,omitempty" json:"severity_change_date,omitempty"`
}
