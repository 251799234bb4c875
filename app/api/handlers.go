package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/bbz662/english-teacher/app/tasks"
	"github.com/gin-gonic/gin"
)

func NewHandler(newRunner tasks.RunnerFactory, version string, taskTimeout time.Duration) *Handler {
	return &Handler{
		newRunner:   newRunner,
		version:     version,
		taskTimeout: taskTimeout,
		startedAt: time.Now(),
	}
}

// FeedCheck runs one feed check synchronously. The run reports its own
// failures through the webhook, so the response is 200 unless it panics.
// A client disconnect does not cancel the run; the task timeout bounds it.
func (h *Handler) FeedCheck(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Error processing request", "path", c.Request.URL.Path, "panic", r)
			c.String(http.StatusInternalServerError, internalServerError)
		}
	}()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), h.taskTimeout)
	defer cancel()

	outcome := h.newRunner().Run(ctx)

	slog.Info("On-demand feed check finished", "run_id", outcome.RunID, "success", outcome.Succeeded())

	c.String(http.StatusOK, feedCheckCompleted)
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
	})
}

func (h *Handler) NotFound(c *gin.Context) {
	c.String(http.StatusNotFound, notFound)
}
