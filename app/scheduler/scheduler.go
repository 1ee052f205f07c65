// Package scheduler provides the optional built-in trigger for the two
// daily jobs. Deployments driven by external cron leave it disabled and
// hit the HTTP endpoints instead.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/edguillen/research-digest/app/jobs"
)

type Job interface {
	Execute(ctx context.Context) jobs.Result
}

const jobTimeout = 5 * time.Minute

type Scheduler struct {
	morning   Job
	evening   Job
	morningAt string // HH:MM local
	eveningAt string

	lastMorningDate string
	lastEveningDate string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler(morning, evening Job, morningAt, eveningAt string) (*Scheduler, error) {
	for _, at := range []string{morningAt, eveningAt} {
		if _, err := time.Parse("15:04", at); err != nil {
			return nil, fmt.Errorf("invalid schedule time %q: %w", at, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		morning:   morning,
		evening:   evening,
		morningAt: morningAt,
		eveningAt: eveningAt,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.tick(time.Now())
			}
		}
	}()

	slog.Info("Scheduler started", "morning_at", s.morningAt, "evening_at", s.eveningAt)
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

// tick runs each job at most once per local calendar day, once its
// scheduled time has passed.
func (s *Scheduler) tick(now time.Time) {
	today := now.Format("2006-01-02")

	if s.lastMorningDate != today && reached(now, s.morningAt) {
		s.lastMorningDate = today
		s.run("morning digest", s.morning)
	}

	if s.lastEveningDate != today && reached(now, s.eveningAt) {
		s.lastEveningDate = today
		s.run("evening catchup", s.evening)
	}
}

func (s *Scheduler) run(name string, job Job) {
	ctx, cancel := context.WithTimeout(s.ctx, jobTimeout)
	defer cancel()

	slog.Info("Scheduler triggering job", "job", name)

	result := job.Execute(ctx)
	if !result.Success {
		slog.Error("Scheduled job failed", "job", name, "errors", result.Errors)
	}
}

func reached(now time.Time, at string) bool {
	scheduled, err := time.Parse("15:04", at)
	if err != nil {
		return false
	}

	nowMinutes := now.Hour()*60 + now.Minute()
	atMinutes := scheduled.Hour()*60 + scheduled.Minute()

	return nowMinutes >= atMinutes
}
