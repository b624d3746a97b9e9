package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"blog_server/internal/domain"
	"blog_server/internal/service"
)

// APIHandler serves the JSON endpoints used by the browser widget and
// the publish webhook.
type APIHandler struct {
	pages     *service.PageService
	subscribe *service.SubscribeService
	notify    *service.NotifyService
	logger    *slog.Logger
}

func NewAPIHandler(
	pages *service.PageService,
	subscribe *service.SubscribeService,
	notify *service.NotifyService,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		pages:     pages,
		subscribe: subscribe,
		notify:    notify,
		logger:    logger,
	}
}

type postSummary struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Excerpt     *string       `json:"excerpt,omitempty"`
	Slug        string        `json:"slug"`
	PublishedAt string        `json:"publishedAt,omitempty"`
	CoverImage  *imageSummary `json:"coverImage,omitempty"`
}

type imageSummary struct {
	URL string `json:"url"`
}

func toSummaries(posts []domain.Post) []postSummary {
	summaries := make([]postSummary, 0, len(posts))
	for _, p := range posts {
		s := postSummary{
			ID:      p.ID,
			Title:   p.Title,
			Excerpt: p.Excerpt,
			Slug:    p.Slug,
		}
		if !p.PublishedAt.IsZero() {
			s.PublishedAt = p.PublishedAt.UTC().Format(time.RFC3339)
		}
		if p.CoverImage != nil {
			s.CoverImage = &imageSummary{URL: p.CoverImage.URL}
		}
		summaries = append(summaries, s)
	}
	return summaries
}

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// SearchIndex returns the full post list for client-side filtering.
func (h *APIHandler) SearchIndex(c echo.Context) error {
	posts, err := h.pages.AllPosts(c.Request().Context())
	if err != nil {
		h.logger.Error("search index fetch failed", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Search failed"})
	}
	return c.JSON(http.StatusOK, toSummaries(posts))
}

// InstantSearch backs the widget's dropdown. Blank queries and upstream
// failures both return an empty list.
func (h *APIHandler) InstantSearch(c echo.Context) error {
	posts := h.pages.Instant(c.Request().Context(), c.QueryParam("q"))
	return c.JSON(http.StatusOK, toSummaries(posts))
}

type subscribeRequest struct {
	Email string `json:"email" validate:"required"`
}

func (h *APIHandler) Subscribe(c echo.Context) error {
	var req subscribeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Email required"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Email required"})
	}

	if err := h.subscribe.Subscribe(c.Request().Context(), req.Email); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Email required"})
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

type notifyRequest struct {
	Data struct {
		Title string `json:"title" validate:"required"`
		Slug  string `json:"slug" validate:"required"`
	} `json:"data"`
}

func (h *APIHandler) Notify(c echo.Context) error {
	var req notifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "title and slug required"})
	}

	event := domain.PublishEvent{Title: req.Data.Title, Slug: req.Data.Slug}
	if err := h.notify.PublishPosted(c.Request().Context(), event); err != nil {
		h.logger.Error("publish notification failed", "slug", event.Slug, "error", err)
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "notification failed"})
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func (h *APIHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
