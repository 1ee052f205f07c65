// Package posts fetches the titles of already-published blog posts from
// the blog's RSS feed. They are the reference set for the blog-topic
// duplicate check.
package posts

import (
	"context"
	"log/slog"

	"github.com/mmcdole/gofeed"

	"github.com/edguillen/research-digest/app/research"
)

type Source struct {
	feedURL string
	parser  *gofeed.Parser
}

func NewSource(feedURL, userAgent string) *Source {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent

	return &Source{
		feedURL: feedURL,
		parser:  parser,
	}
}

// FetchExisting returns the published posts, or an empty list on any
// failure. Errors never propagate past this boundary; a missing post list
// only means no topic gets flagged as a duplicate this run.
func (s *Source) FetchExisting(ctx context.Context) []research.ExistingPost {
	if s.feedURL == "" {
		slog.Debug("No blog feed URL configured, skipping existing posts fetch")
		return []research.ExistingPost{}
	}

	feed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		slog.Warn("Failed to fetch blog feed", "url", s.feedURL, "error", err)
		return []research.ExistingPost{}
	}

	existing := make([]research.ExistingPost, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Title == "" {
			continue
		}
		existing = append(existing, research.ExistingPost{
			Title: item.Title,
			URL:   item.Link,
		})
	}

	slog.Info("Fetched existing blog posts", "count", len(existing))
	return existing
}
