package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edguillen/research-digest/app/jobs"
	"github.com/edguillen/research-digest/app/ledger"
	"github.com/edguillen/research-digest/app/queries"
)

const jobTimeout = 5 * time.Minute

type JobRunner interface {
	Execute(ctx context.Context) jobs.Result
}

type Handler struct {
	morning  JobRunner
	evening  JobRunner
	daily    *ledger.DailyRunLedger
	renderer jobs.Renderer
	sets     queries.Sets
	blogURL  string
	version  string
}

func NewHandler(morning, evening JobRunner, daily *ledger.DailyRunLedger,
	renderer jobs.Renderer, sets queries.Sets, blogURL, version string) *Handler {
	return &Handler{
		morning:  morning,
		evening:  evening,
		daily:    daily,
		renderer: renderer,
		sets:     sets,
		blogURL:  blogURL,
		version:  version,
	}
}

func (h *Handler) GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     "Research Digest",
		"version":     h.version,
		"description": "Scheduled market research aggregator with dedup and urgency classification",
		"endpoints": map[string]string{
			"health":  "/health",
			"status":  "/status",
			"preview": "/preview-email",
			"morning": "/cron/morning-digest (requires secret)",
			"evening": "/cron/evening-catchup (requires secret)",
		},
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
	})
}

// GetStatus reports operational health based on how long ago the morning
// job last ran: over 36 hours is an error, over 26 hours degraded.
func (h *Handler) GetStatus(c *gin.Context) {
	morning, evening, err := h.daily.LastRunTimestamps(c.Request.Context())
	if err != nil {
		slog.Error("Status check failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
		return
	}

	status := "operational"
	if morning == nil {
		status = "degraded"
	} else {
		hoursSinceRun := time.Since(*morning).Hours()
		if hoursSinceRun > 36 {
			status = "error"
		} else if hoursSinceRun > 26 {
			status = "degraded"
		}
	}

	resp := gin.H{
		"status":            status,
		"morningQueryCount": len(h.sets.Morning()),
		"eveningQueryCount": len(h.sets.EveningQueries()),
		"blogUrl":           h.blogURL,
	}
	if morning != nil {
		resp["lastMorningRun"] = morning.Format(time.RFC3339)
	}
	if evening != nil {
		resp["lastEveningRun"] = evening.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) RunMorningDigest(c *gin.Context) {
	h.runJob(c, h.morning)
}

func (h *Handler) RunEveningCatchup(c *gin.Context) {
	h.runJob(c, h.evening)
}

func (h *Handler) runJob(c *gin.Context, job JobRunner) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), jobTimeout)
	defer cancel()

	result := job.Execute(ctx)

	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}

	c.JSON(status, result)
}

// GetPreviewEmail renders the morning digest from sample data so the email
// layout can be inspected without burning provider quota or sending mail.
func (h *Handler) GetPreviewEmail(c *gin.Context) {
	findings, blogTopics, urgentItems := sampleDigestData()

	html := h.renderer.RenderMorning(c.Request.Context(), findings, blogTopics, urgentItems)

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, html)
}
