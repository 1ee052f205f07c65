package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/subosito/gotenv"

	"github.com/edguillen/research-digest/app/api"
	"github.com/edguillen/research-digest/app/cfg"
	"github.com/edguillen/research-digest/app/digest"
	"github.com/edguillen/research-digest/app/jobs"
	"github.com/edguillen/research-digest/app/ledger"
	"github.com/edguillen/research-digest/app/logging"
	"github.com/edguillen/research-digest/app/notifier"
	"github.com/edguillen/research-digest/app/posts"
	"github.com/edguillen/research-digest/app/provider"
	"github.com/edguillen/research-digest/app/queries"
	"github.com/edguillen/research-digest/app/research"
	"github.com/edguillen/research-digest/app/scheduler"
	"github.com/edguillen/research-digest/app/store"
)

func main() {
	_ = gotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logging.Init(appCfg.Debug)

	slog.Info("Starting Research Digest server", "version", appCfg.Version)

	// Ledger storage: Valkey when configured, in-memory otherwise. The
	// in-memory store loses covered topics across restarts, which only
	// weakens dedup, so it is an acceptable fallback for local runs.
	var ledgerStore store.Store
	if appCfg.ValkeyAddress != "" {
		valkeyStore, err := store.NewValkeyStore(appCfg.ValkeyAddress, appCfg.ValkeyPassword, appCfg.ValkeyTLS)
		if err != nil {
			slog.Warn("Valkey unreachable, using in-memory ledger storage", "address", appCfg.ValkeyAddress, "error", err)
			ledgerStore = store.NewMemoryStore()
		} else {
			defer valkeyStore.Close()
			ledgerStore = valkeyStore
			slog.Info("Connected to Valkey", "address", appCfg.ValkeyAddress)
		}
	} else {
		ledgerStore = store.NewMemoryStore()
		slog.Warn("VALKEY_ADDRESS not set, using in-memory ledger storage")
	}

	querySets, err := queries.Load(appCfg.QueriesFile)
	if err != nil {
		slog.Error("Failed to load query sets", "file", appCfg.QueriesFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded query sets",
		"morning", len(querySets.Morning()),
		"evening", len(querySets.EveningQueries()))

	researchProvider := provider.New(appCfg.PerplexityAPIKey, appCfg.PerplexityURL)
	postsSource := posts.NewSource(appCfg.BlogFeedURL, appCfg.UserAgent)
	digestRenderer := digest.NewRenderer(appCfg.OpenAIAPIKey)
	emailNotifier := notifier.New(appCfg.ResendAPIKey, appCfg.EmailFrom, appCfg.EmailTo)

	coveredLedger := ledger.NewCoveredTopicsLedger(ledgerStore)
	dailyLedger := ledger.NewDailyRunLedger(ledgerStore)

	deps := jobs.Deps{
		Provider: researchProvider,
		Posts:    postsSource,
		Renderer: digestRenderer,
		Sender:   emailNotifier,
		Covered:  coveredLedger,
		Daily:    dailyLedger,
		Filterer: research.NewFilterer(),
		Queries:  querySets,
	}

	morningJob := jobs.NewMorningDigestJob(deps)
	eveningJob := jobs.NewEveningCatchupJob(deps)

	if appCfg.Scheduler {
		jobScheduler, err := scheduler.NewScheduler(morningJob, eveningJob, appCfg.MorningAt, appCfg.EveningAt)
		if err != nil {
			slog.Error("Failed to initialize scheduler", "error", err)
			os.Exit(1)
		}
		jobScheduler.Start()
		defer jobScheduler.Stop()
		slog.Info("Scheduler started", "morning", appCfg.MorningAt, "evening", appCfg.EveningAt)
	}

	apiHandler := api.NewHandler(morningJob, eveningJob, dailyLedger,
		digestRenderer, querySets, appCfg.BlogURL, appCfg.Version)
	server := api.NewServer(apiHandler, appCfg.CronSecret)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 6 * time.Minute, // cron endpoints run jobs synchronously
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if appCfg.CronSecret == "" {
			slog.Warn("CRON_SECRET not set, cron endpoints are unprotected")
		}
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
