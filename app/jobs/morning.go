package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edguillen/research-digest/app/provider"
	"github.com/edguillen/research-digest/app/research"
)

// errorNotifyThreshold is the number of accumulated errors above which a
// separate error notification is sent alongside a successful digest.
const errorNotifyThreshold = 5

// MorningDigestJob runs the comprehensive morning pipeline: query, filter
// covered topics, check blog topics on Mondays, classify urgency, send the
// digest, and only then mark findings as covered.
type MorningDigestJob struct {
	deps Deps
	now  func() time.Time
}

func NewMorningDigestJob(deps Deps) *MorningDigestJob {
	return &MorningDigestJob{deps: deps, now: time.Now}
}

func (j *MorningDigestJob) Execute(ctx context.Context) Result {
	started := j.now()
	errors := make([]string, 0)

	slog.Info("Starting morning digest job")

	rawFindings, queryErrors := j.deps.Provider.ProcessQueries(ctx, j.deps.Queries.Morning(), provider.ModeComprehensive)
	errors = append(errors, queryErrors...)

	coveredData, err := j.deps.Covered.Load(ctx)
	if err != nil {
		errors = append(errors, fmt.Sprintf("Covered topics load error: %v", err))
	}

	findings, duplicateCount := j.deps.Filterer.Run(rawFindings, coveredData.Topics)
	slog.Info("Filtered covered topics", "duplicates", duplicateCount, "new", len(findings))

	blogTopics := j.checkBlogTopics(ctx, &errors)

	urgentItems := make([]research.UrgentItem, 0)
	for _, finding := range findings {
		if research.IsUrgent(finding) {
			urgentItems = append(urgentItems, research.UrgentItemFrom(finding))
		}
	}

	if err := j.deps.Daily.SaveMorning(ctx, urgentItems); err != nil {
		errors = append(errors, fmt.Sprintf("Failed to save morning urgent items: %v", err))
	}

	htmlBody := j.deps.Renderer.RenderMorning(ctx, findings, blogTopics, urgentItems)

	sendResult := j.deps.Sender.SendMorningDigest(ctx, htmlBody)
	if !sendResult.Success {
		errors = append(errors, fmt.Sprintf("Email send error: %s", sendResult.Error))
	}

	// Coverage is conditional on delivery: an unsent digest must not
	// suppress the same findings tomorrow.
	if sendResult.Success && len(findings) > 0 {
		if err := j.deps.Covered.MarkFindingsCovered(ctx, findings); err != nil {
			errors = append(errors, fmt.Sprintf("Failed to mark findings as covered: %v", err))
		}
	}

	if len(errors) > errorNotifyThreshold && sendResult.Success {
		j.deps.Sender.SendErrorNotification(ctx, JobTypeMorningDigest, errors)
	}

	slog.Info("Morning digest job completed", "duration", time.Since(started), "findings", len(findings), "urgent", len(urgentItems), "errors", len(errors))

	return Result{
		Success:          sendResult.Success,
		JobType:          JobTypeMorningDigest,
		Timestamp:        j.now(),
		QueriesProcessed: len(findings),
		UrgentItemsFound: len(urgentItems),
		EmailSent:        sendResult.Success,
		Errors:           errors,
	}
}

// checkBlogTopics fetches trending topic suggestions and flags duplicates
// against the published posts. Suggestions are only fetched on Mondays;
// failures degrade to an empty list.
func (j *MorningDigestJob) checkBlogTopics(ctx context.Context, errors *[]string) []research.BlogTopic {
	if j.now().Weekday() != time.Monday {
		slog.Debug("Not Monday, skipping blog topics")
		return nil
	}

	titles, err := j.deps.Provider.TrendingBlogTopics(ctx)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("Blog topics error: %v", err))
		return nil
	}
	if len(titles) == 0 {
		return nil
	}

	existing := j.deps.Posts.FetchExisting(ctx)

	blogTopics := research.CheckBlogTopics(titles, existing)

	duplicates := 0
	for _, t := range blogTopics {
		if t.IsDuplicate {
			duplicates++
		}
	}
	slog.Info("Checked blog topics", "topics", len(blogTopics), "duplicates", duplicates)

	return blogTopics
}
