package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/oshokin/spot-grabber/internal/config"
	"github.com/oshokin/spot-grabber/internal/logger"
	"github.com/oshokin/spot-grabber/internal/service/grabber"
	"github.com/oshokin/spot-grabber/internal/version"
)

// taskEventName is the SSE event name of task events.
const taskEventName = "task"

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	// baseCtx outlives requests; submitted tasks run under it.
	baseCtx context.Context //nolint:containedctx // Tasks must outlive the request that started them.
	// cfg provides request defaults.
	cfg *config.Config
	// service runs the tasks.
	service grabber.Service
	// broadcaster feeds the event stream.
	broadcaster *Broadcaster
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(
	baseCtx context.Context,
	cfg *config.Config,
	service grabber.Service,
	broadcaster *Broadcaster,
) *TaskHandler {
	return &TaskHandler{
		baseCtx:     baseCtx,
		cfg:         cfg,
		service:     service,
		broadcaster: broadcaster,
	}
}

// StartTaskRequest is the body of POST /api/v1/tasks.
type StartTaskRequest struct {
	// ID is the task id. A random id is generated when empty.
	ID string `json:"id,omitempty"`
	// URL is the link to download.
	URL string `json:"url" binding:"required"`
	// OutputDir overrides the configured output path.
	OutputDir string `json:"outputDir,omitempty"`
	// Bitrate overrides the configured bitrate.
	Bitrate string `json:"bitrate,omitempty"`
	// SkipExisting overrides the configured skip policy.
	SkipExisting *bool `json:"skipExisting,omitempty"`
	// EmbedArt overrides the configured artwork policy.
	EmbedArt *bool `json:"embedArt,omitempty"`
}

// StartTask handles POST /api/v1/tasks.
func (h *TaskHandler) StartTask(c *gin.Context) {
	var body StartTaskRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	req := &grabber.StartRequest{
		TaskID:       strings.TrimSpace(body.ID),
		URL:          body.URL,
		OutputDir:    body.OutputDir,
		Bitrate:      body.Bitrate,
		SkipExisting: h.cfg.SkipExisting,
		EmbedArt:     h.cfg.EmbedArt,
	}

	if req.TaskID == "" {
		req.TaskID = uuid.NewString()
	}

	if body.SkipExisting != nil {
		req.SkipExisting = *body.SkipExisting
	}

	if body.EmbedArt != nil {
		req.EmbedArt = *body.EmbedArt
	}

	if err := h.service.Submit(h.baseCtx, req); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, grabber.ErrTaskAlreadyRunning) {
			status = http.StatusConflict
		}

		c.JSON(status, gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusAccepted, gin.H{"id": req.TaskID})
}

// ListTasks handles GET /api/v1/tasks.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tasks": h.service.ActiveTasks()})
}

// CancelTask handles POST /api/v1/tasks/:id/cancel.
func (h *TaskHandler) CancelTask(c *gin.Context) {
	id := c.Param("id")

	if !h.service.Cancel(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})

		return
	}

	c.JSON(http.StatusAccepted, gin.H{"id": id, "cancelled": true})
}

// CancelAllTasks handles POST /api/v1/tasks/cancel.
func (h *TaskHandler) CancelAllTasks(c *gin.Context) {
	c.JSON(http.StatusAccepted, gin.H{"cancelled": h.service.CancelAll()})
}

// Validate handles GET /api/v1/validate.
func (h *TaskHandler) Validate(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Validate(c.Query("url")))
}

// Version handles GET /api/v1/version.
func (h *TaskHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.BackendVersion(c.Request.Context()))
}

// Events handles GET /api/v1/events as a Server-Sent Events stream.
func (h *TaskHandler) Events(c *gin.Context) {
	events, unsubscribe := h.broadcaster.Subscribe()
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	// Send headers right away so clients know the stream is open.
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()

	logger.Debug(ctx, "Event stream subscriber connected")

	c.Stream(func(_ io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-h.baseCtx.Done():
			return false
		case event, ok := <-events:
			if !ok {
				return false
			}

			c.SSEvent(taskEventName, event)

			return true
		}
	})

	logger.Debug(ctx, "Event stream subscriber disconnected")
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	// service reports running tasks.
	service grabber.Service
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(service grabber.Service) *HealthHandler {
	return &HealthHandler{service: service}
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	ActiveTasks int    `json:"activeTasks"`
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:      "ok",
		Version:     version.Short(),
		ActiveTasks: len(h.service.ActiveTasks()),
	})
}
