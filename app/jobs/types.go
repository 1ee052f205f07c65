package jobs

import (
	"context"
	"time"

	"github.com/edguillen/research-digest/app/ledger"
	"github.com/edguillen/research-digest/app/notifier"
	"github.com/edguillen/research-digest/app/provider"
	"github.com/edguillen/research-digest/app/queries"
	"github.com/edguillen/research-digest/app/research"
)

const (
	JobTypeMorningDigest  = "morning-digest"
	JobTypeEveningCatchup = "evening-catchup"
)

// Result is the outcome of one job run, returned to the cron caller.
type Result struct {
	Success          bool      `json:"success"`
	JobType          string    `json:"jobType"`
	Timestamp        time.Time `json:"timestamp"`
	QueriesProcessed int       `json:"queriesProcessed"`
	UrgentItemsFound int       `json:"urgentItemsFound"`
	EmailSent        bool      `json:"emailSent"`
	Errors           []string  `json:"errors"`
}

// ResearchProvider issues research queries and blog topic suggestions.
type ResearchProvider interface {
	ProcessQueries(ctx context.Context, qs []research.Query, mode provider.Mode) ([]research.Finding, []string)
	TrendingBlogTopics(ctx context.Context) ([]string, error)
}

// PostsSource fetches the existing blog post titles.
type PostsSource interface {
	FetchExisting(ctx context.Context) []research.ExistingPost
}

// Renderer turns structured results into email HTML.
type Renderer interface {
	RenderMorning(ctx context.Context, findings []research.Finding, blogTopics []research.BlogTopic, urgentItems []research.UrgentItem) string
	RenderEvening(urgentItems []research.UrgentItem) string
}

// Sender delivers rendered emails.
type Sender interface {
	SendMorningDigest(ctx context.Context, htmlBody string) notifier.SendResult
	SendEveningCatchup(ctx context.Context, htmlBody string, urgentCount int) notifier.SendResult
	SendErrorNotification(ctx context.Context, jobType string, errors []string) notifier.SendResult
}

// Deps bundles the collaborators shared by both jobs.
type Deps struct {
	Provider ResearchProvider
	Posts    PostsSource
	Renderer Renderer
	Sender   Sender
	Covered  *ledger.CoveredTopicsLedger
	Daily    *ledger.DailyRunLedger
	Filterer *research.Filterer
	Queries  queries.Sets
}
