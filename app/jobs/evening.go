package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edguillen/research-digest/app/provider"
	"github.com/edguillen/research-digest/app/research"
)

// EveningCatchupJob runs the urgent-only evening pipeline. It compares
// against the same day's morning items and only emails when something new
// turned up. Precondition: the morning job runs earlier the same local day;
// without a morning record every evening item counts as new.
type EveningCatchupJob struct {
	deps Deps
	now  func() time.Time
}

func NewEveningCatchupJob(deps Deps) *EveningCatchupJob {
	return &EveningCatchupJob{deps: deps, now: time.Now}
}

func (j *EveningCatchupJob) Execute(ctx context.Context) Result {
	started := j.now()
	errors := make([]string, 0)

	slog.Info("Starting evening catchup job")

	morningItems, err := j.deps.Daily.LoadMorning(ctx)
	if err != nil {
		errors = append(errors, fmt.Sprintf("Failed to load morning urgent items: %v", err))
		morningItems = []research.UrgentItem{}
	}
	slog.Info("Loaded morning urgent items", "count", len(morningItems))

	findings, queryErrors := j.deps.Provider.ProcessQueries(ctx, j.deps.Queries.EveningQueries(), provider.ModeUrgentOnly)
	errors = append(errors, queryErrors...)

	eveningItems := make([]research.UrgentItem, 0)
	for _, finding := range findings {
		if research.IsUrgent(finding) {
			eveningItems = append(eveningItems, research.UrgentItemFrom(finding))
		}
	}

	newItems := research.FilterNewUrgentItems(eveningItems, morningItems)
	slog.Info("Cross-run deduplication", "evening", len(eveningItems), "new", len(newItems))

	if err := j.deps.Daily.SaveEvening(ctx, newItems); err != nil {
		errors = append(errors, fmt.Sprintf("Failed to save evening urgent items: %v", err))
	}

	emailSent := false
	if len(newItems) > 0 {
		htmlBody := j.deps.Renderer.RenderEvening(newItems)
		sendResult := j.deps.Sender.SendEveningCatchup(ctx, htmlBody, len(newItems))
		if !sendResult.Success {
			errors = append(errors, fmt.Sprintf("Email send error: %s", sendResult.Error))
		}
		emailSent = sendResult.Success
	} else {
		slog.Info("No new urgent items, skipping email")
	}

	slog.Info("Evening catchup job completed", "duration", time.Since(started), "new_items", len(newItems), "errors", len(errors))

	return Result{
		Success:          true,
		JobType:          JobTypeEveningCatchup,
		Timestamp:        j.now(),
		QueriesProcessed: len(findings),
		UrgentItemsFound: len(newItems),
		EmailSent:        emailSent,
		Errors:           errors,
	}
}
