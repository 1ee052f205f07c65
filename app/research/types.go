package research

import (
	"time"
)

// ProjectName is fixed to a single project; kept as a type so item
// comparisons stay project-scoped.
const ProjectName = "marina"

type Category string

const (
	CategoryMarketIntel Category = "market_intel"
	CategoryPainPoints  Category = "reddit_pain_points"
	CategoryUrgentNews  Category = "urgent_news"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryMarketIntel, CategoryPainPoints, CategoryUrgentNews:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Query struct {
	Query    string   `yaml:"query" json:"query"`
	Project  string   `yaml:"-" json:"project"`
	Category Category `yaml:"category" json:"category"`
}

type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type PainPoint struct {
	Description string `json:"description"`
	Frequency   string `json:"frequency"` // common, occasional, rare
	Source      string `json:"source,omitempty"`
}

// Finding is the structured result of one research query. It is produced
// by the provider and never mutated downstream.
type Finding struct {
	Query                string      `json:"query"`
	Project              string      `json:"project"`
	Category             Category    `json:"category"`
	KeyFindings          []string    `json:"keyFindings"`
	MostImportantInsight string      `json:"mostImportantInsight"`
	PainPoints           []PainPoint `json:"painPoints"`
	SolutionRequests     []string    `json:"solutionRequests"`
	ActionItems          []string    `json:"actionItems"`
	Priority             Priority    `json:"priority"`
	Sources              []Source    `json:"sources"`
	RawResponse          string      `json:"rawResponse"`
	Timestamp            time.Time   `json:"timestamp"`
}

// UrgentItem is the projection of a Finding that passed the urgency check.
type UrgentItem struct {
	Project   string    `json:"project"`
	Summary   string    `json:"summary"`
	Source    string    `json:"source"`
	Priority  Priority  `json:"priority"`
	Category  Category  `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// CoveredTopic is a previously published topic retained to prevent
// repetition. Persisted shape, see ledger package.
type CoveredTopic struct {
	Topic     string    `json:"topic"`
	Keywords  []string  `json:"keywords"`
	DateAdded time.Time `json:"dateAdded"`
	Source    string    `json:"source"` // "blog" or "email"
}

type ExistingPost struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// BlogTopic is a candidate blog topic annotated with the duplicate check
// result. Computed per run, not persisted.
type BlogTopic struct {
	Title             string   `json:"title"`
	TargetKeywords    []string `json:"targetKeywords"`
	IsDuplicate       bool     `json:"isDuplicate"`
	ExistingPostTitle string   `json:"existingPostTitle,omitempty"`
}
