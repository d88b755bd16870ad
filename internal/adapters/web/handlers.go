package web

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"reposter/internal/domain"
	"reposter/internal/usecases"
	"reposter/pkg/log"

	"github.com/gofiber/fiber/v2"
)

// downloadTimeout bounds one complete background download.
const downloadTimeout = 10 * time.Minute

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	adjust   *usecases.AdjustThreadUseCase
	preview  *usecases.PreviewPostUseCase
	download *usecases.DownloadPostUseCase
	tasks    *TaskStore
	limiter  *RateLimiter
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(adjust *usecases.AdjustThreadUseCase, preview *usecases.PreviewPostUseCase, download *usecases.DownloadPostUseCase, tasks *TaskStore, limiter *RateLimiter) *Handlers {
	return &Handlers{
		adjust:   adjust,
		preview:  preview,
		download: download,
		tasks:    tasks,
		limiter:  limiter,
	}
}

// Health reports liveness.
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

type adjustRequest struct {
	Text string `json:"text"`
}

// AdjustThread splits posted text into validated thread parts.
func (h *Handlers) AdjustThread(c *fiber.Ctx) error {
	var req adjustRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "text is required"})
	}

	result := h.adjust.Execute(c.UserContext(), req.Text)
	return c.JSON(result)
}

type parseRequest struct {
	URL string `json:"url"`
}

type parseResponse struct {
	Type         domain.InputKind `json:"type"`
	Value        string           `json:"value"`
	Description  string           `json:"description"`
	Preview      *domain.Preview  `json:"preview,omitempty"`
	PreviewError string           `json:"preview_error,omitempty"`
}

// ParseInput classifies an Instagram URL or username, attaching a cached
// preview for post-like inputs.
func (h *Handlers) ParseInput(c *fiber.Ctx) error {
	var req parseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.URL) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "url or username is required"})
	}

	kind, value, err := ParseInput(req.URL)
	if err != nil {
		log.GlobalWarnCtx(c.UserContext(), "invalid input", "input", req.URL)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": h.friendlyError(err)})
	}

	resp := parseResponse{
		Type:        kind,
		Value:       value,
		Description: describeInput(kind, value),
	}

	if kind.IsPost() {
		ctx, cancel := context.WithTimeout(c.UserContext(), 30*time.Second)
		defer cancel()

		preview, err := h.preview.Execute(ctx, value)
		if err != nil {
			log.GlobalWarnCtx(ctx, "preview failed", "shortcode", value, "error", err)
			resp.PreviewError = h.friendlyError(err)
		} else {
			resp.Preview = preview
		}
	}

	return c.JSON(resp)
}

type downloadRequest struct {
	URL           string  `json:"url"`
	AddCover      *bool   `json:"add_cover"`
	CustomCaption *string `json:"custom_caption"`
}

// StartDownload kicks off a background download task and returns its id.
func (h *Handlers) StartDownload(c *fiber.Ctx) error {
	var req downloadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.URL) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "url or username is required"})
	}

	kind, value, err := ParseInput(req.URL)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": h.friendlyError(err)})
	}

	ip := c.IP()
	if !h.limiter.Allow(ip) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": h.friendlyError(domain.ErrRateLimited)})
	}
	h.limiter.Record(ip)

	// Cover creation defaults to on, like the form it replaces.
	addCover := true
	if req.AddCover != nil {
		addCover = *req.AddCover
	}

	taskID := h.tasks.Create()
	go h.runDownload(taskID, kind, value, usecases.DownloadOptions{
		AddCover:      addCover,
		CustomCaption: req.CustomCaption,
	})

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"task_id": taskID})
}

// DownloadStatus returns the state of a background download task.
func (h *Handlers) DownloadStatus(c *fiber.Ctx) error {
	task, ok := h.tasks.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": h.friendlyError(domain.ErrTaskNotFound)})
	}
	return c.JSON(task)
}

// runDownload executes a download task in the background, feeding progress
// into the task store.
func (h *Handlers) runDownload(taskID string, kind domain.InputKind, value string, opts usecases.DownloadOptions) {
	ctx, cancel := context.WithTimeout(context.Background(), downloadTimeout)
	defer cancel()

	progress := func(pct int, message string) {
		h.tasks.Progress(taskID, pct, message)
	}

	var result *domain.DownloadResult
	var err error
	if kind.IsPost() {
		result, err = h.download.Execute(ctx, value, opts, progress)
	} else {
		result, err = h.download.ExecuteProfile(ctx, value, progress)
	}

	if err != nil {
		log.GlobalErrorCtx(ctx, "download task failed", "task_id", taskID, "kind", kind, "value", value, "error", err)
		h.tasks.Fail(taskID, h.friendlyError(err))
		return
	}

	log.GlobalInfoCtx(ctx, "download task completed", "task_id", taskID, "folder", result.Folder, "files", len(result.Files))
	h.tasks.Complete(taskID, result)
}

func describeInput(kind domain.InputKind, value string) string {
	if kind.IsPost() {
		return fmt.Sprintf("Post/Reel: %s", value)
	}
	return fmt.Sprintf("Profile: %s", value)
}

// friendlyError returns a neutral, non-blaming error message.
func (h *Handlers) friendlyError(err error) string {
	switch {
	case errors.Is(err, domain.ErrPostNotFound):
		return "Post not found. Check the URL/shortcode."
	case errors.Is(err, domain.ErrLoginRequired):
		return "Login required for this content. Please login first."
	case errors.Is(err, domain.ErrConnection):
		return "Connection trouble reaching Instagram. Please try again later."
	case errors.Is(err, domain.ErrInvalidInput):
		return "That doesn't look like an Instagram URL or username."
	case errors.Is(err, domain.ErrRateLimited):
		return "Too many requests. Please wait a moment and try again."
	case errors.Is(err, domain.ErrTaskNotFound):
		return "Unknown download task."
	default:
		return "Something went wrong. Please try again in a moment."
	}
}
