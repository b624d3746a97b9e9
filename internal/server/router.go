package server

import (
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"blog_server/internal/service"
)

// RouterConfig holds router wiring.
type RouterConfig struct {
	Logger    *slog.Logger
	Pages     *service.PageService
	Subscribe *service.SubscribeService
	Notify    *service.NotifyService
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// NewRouter creates and configures the Echo router.
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = &requestValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())

	pageHandler := NewPageHandler(cfg.Pages)
	apiHandler := NewAPIHandler(cfg.Pages, cfg.Subscribe, cfg.Notify, cfg.Logger)

	e.GET("/", pageHandler.Home)
	e.GET("/blog/:slug", pageHandler.Article)
	e.GET("/topics/:slug", pageHandler.Topic)
	e.GET("/search", pageHandler.Search)

	api := e.Group("/api")
	api.GET("/search", apiHandler.SearchIndex)
	api.GET("/search/instant", apiHandler.InstantSearch)
	api.POST("/subscribe", apiHandler.Subscribe)
	api.POST("/notify", apiHandler.Notify)

	e.GET("/health", apiHandler.Health)

	return e, nil
}
