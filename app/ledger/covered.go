// Package ledger implements the two persisted records of the pipeline: the
// covered-topics log that suppresses repeated findings across runs, and the
// per-day record of urgent items shared by the morning and evening jobs.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/edguillen/research-digest/app/research"
	"github.com/edguillen/research-digest/app/store"
)

const (
	coveredTopicsKey = "covered_topics"

	// Topics older than this are pruned on every append to keep the
	// ledger from growing without bound.
	topicRetention = 28 * 24 * time.Hour

	coveredKeywordLimit   = 10
	coveredTopicMaxLength = 100
)

const (
	TopicSourceEmail = "email"
	TopicSourceBlog  = "blog"
)

// CoveredTopicsData is the persisted document shape.
type CoveredTopicsData struct {
	LastUpdated time.Time               `json:"lastUpdated"`
	Topics      []research.CoveredTopic `json:"topics"`
}

// CoveredTopicsLedger is the append-only log of previously emailed or
// published topics. Topics are never deduplicated at write time, only
// compared at read time.
type CoveredTopicsLedger struct {
	store store.Store
}

func NewCoveredTopicsLedger(s store.Store) *CoveredTopicsLedger {
	return &CoveredTopicsLedger{store: s}
}

// Load returns the persisted topics, or an empty document with a fresh
// stamp when nothing has been persisted yet. Only genuine storage faults
// propagate.
func (l *CoveredTopicsLedger) Load(ctx context.Context) (CoveredTopicsData, error) {
	raw, found, err := l.store.Get(ctx, coveredTopicsKey)
	if err != nil {
		return CoveredTopicsData{}, fmt.Errorf("failed to load covered topics: %w", err)
	}

	if !found {
		return CoveredTopicsData{
			LastUpdated: time.Now(),
			Topics:      []research.CoveredTopic{},
		}, nil
	}

	var data CoveredTopicsData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return CoveredTopicsData{}, fmt.Errorf("failed to decode covered topics: %w", err)
	}

	return data, nil
}

// Save persists the full document, stamping LastUpdated.
func (l *CoveredTopicsLedger) Save(ctx context.Context, data CoveredTopicsData) error {
	data.LastUpdated = time.Now()

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode covered topics: %w", err)
	}

	if err := l.store.Set(ctx, coveredTopicsKey, string(raw), 0); err != nil {
		return fmt.Errorf("failed to save covered topics: %w", err)
	}

	return nil
}

// MarkFindingsCovered appends one topic per finding, using the insight plus
// the top two key findings as keyword material. Called only after the
// digest email was accepted, so nothing unsent ever counts as covered.
func (l *CoveredTopicsLedger) MarkFindingsCovered(ctx context.Context, findings []research.Finding) error {
	data, err := l.Load(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, finding := range findings {
		text := finding.MostImportantInsight
		for i, kf := range finding.KeyFindings {
			if i >= 2 {
				break
			}
			text += " " + kf
		}

		keywords := research.ExtractKeywords(text)
		if len(keywords) > coveredKeywordLimit {
			keywords = keywords[:coveredKeywordLimit]
		}

		data.Topics = append(data.Topics, research.CoveredTopic{
			Topic:     truncate(finding.MostImportantInsight, coveredTopicMaxLength),
			Keywords:  keywords,
			DateAdded: now,
			Source:    TopicSourceEmail,
		})
	}

	data.Topics = PruneTopics(data.Topics, now)

	if err := l.Save(ctx, data); err != nil {
		return err
	}

	slog.Info("Marked findings as covered", "count", len(findings), "total_topics", len(data.Topics))
	return nil
}

// MarkBlogTopicCovered appends a single blog-sourced topic, extracting
// keywords from the title when the caller has none.
func (l *CoveredTopicsLedger) MarkBlogTopicCovered(ctx context.Context, title string, keywords []string) error {
	data, err := l.Load(ctx)
	if err != nil {
		return err
	}

	if len(keywords) == 0 {
		keywords = research.ExtractKeywords(title)
	}

	now := time.Now()
	data.Topics = append(data.Topics, research.CoveredTopic{
		Topic:     title,
		Keywords:  keywords,
		DateAdded: now,
		Source:    TopicSourceBlog,
	})

	data.Topics = PruneTopics(data.Topics, now)

	return l.Save(ctx, data)
}

// PruneTopics drops topics older than the retention window relative to now.
func PruneTopics(topics []research.CoveredTopic, now time.Time) []research.CoveredTopic {
	cutoff := now.Add(-topicRetention)

	kept := make([]research.CoveredTopic, 0, len(topics))
	for _, topic := range topics {
		if topic.DateAdded.After(cutoff) {
			kept = append(kept, topic)
		}
	}

	return kept
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
