package http

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/demo"
	"github.com/mrlokans/library/internal/exporters"
	"github.com/mrlokans/library/internal/logging"
	"github.com/mrlokans/library/internal/security"
	"github.com/mrlokans/library/internal/web"
)

// templateFuncs are available to every template.
var templateFuncs = template.FuncMap{
	"percent": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
	"statusLabel": exporters.StatusLabel,
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(logging.GinLogger(logger))
	router.Use(logging.GinRecovery(logger))

	// Apply security headers to all responses
	router.Use(security.HeadersMiddleware())

	// CSRF must run before the session middleware so the session context
	// survives CSRF's request replacement
	if len(cfg.CSRFSecret) > 0 {
		router.Use(security.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.Sessions != nil {
		router.Use(cfg.Sessions.Middleware())
	}
	router.Use(demo.NewMiddleware(cfg.DemoMode).Handler())

	tmpl, err := web.ParseTemplates(templateFuncs, cfg.TemplatesPath)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)
	router.StaticFS("/static", http.FS(web.Static(cfg.StaticPath)))

	health := NewHealthController(cfg.Library, cfg.StorageChecker, cfg.Backups, cfg.Version)
	booksController := NewBooksController(cfg.Library, logger)
	bannerController := NewBannerController(cfg.Banner)
	uiController := NewUIController(cfg.Library, cfg.Sessions, cfg.Banner, logger, cfg.Version)

	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	// HTML UI
	router.GET("/", uiController.BooksPage)
	router.GET("/add", uiController.AddPage)
	router.POST("/add", uiController.AddBook)
	router.POST("/books/:index/remove", uiController.RemoveBook)
	router.GET("/search", uiController.SearchPage)
	router.GET("/stats", uiController.StatsPage)
	router.GET("/export.md", uiController.ExportMarkdown)

	// JSON API
	api := router.Group("/api")
	{
		api.GET("/books", booksController.GetAllBooks)
		api.POST("/books", booksController.CreateBook)
		api.DELETE("/books/:index", booksController.DeleteBook)
		api.GET("/books/search", booksController.SearchBooks)
		api.GET("/books/stats", booksController.GetStats)
		api.GET("/banner", bannerController.Banner)
	}

	return router, nil
}
