package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"blog_server/internal/domain"
	"blog_server/internal/service"
)

// PageHandler serves the server-rendered pages. Not-found outcomes map
// to the 404 page; upstream error detail never reaches the visitor.
type PageHandler struct {
	pages *service.PageService
}

func NewPageHandler(pages *service.PageService) *PageHandler {
	return &PageHandler{pages: pages}
}

func (h *PageHandler) Home(c echo.Context) error {
	page := h.pages.Home(c.Request().Context())
	return c.Render(http.StatusOK, "home.html", page)
}

func (h *PageHandler) Article(c echo.Context) error {
	page, err := h.pages.Article(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return h.notFound(c)
		}
		return err
	}
	return c.Render(http.StatusOK, "article.html", page)
}

func (h *PageHandler) Topic(c echo.Context) error {
	page, err := h.pages.Topic(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return h.notFound(c)
		}
		return err
	}
	return c.Render(http.StatusOK, "topic.html", page)
}

func (h *PageHandler) Search(c echo.Context) error {
	page := h.pages.SearchResults(c.Request().Context(), c.QueryParam("q"))
	return c.Render(http.StatusOK, "search.html", page)
}

func (h *PageHandler) notFound(c echo.Context) error {
	return c.Render(http.StatusNotFound, "not_found.html", nil)
}
