package entrypoint

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/assets"
	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/demo"
	"github.com/mrlokans/library/internal/entities"
	http_controllers "github.com/mrlokans/library/internal/http"
	"github.com/mrlokans/library/internal/library"
	"github.com/mrlokans/library/internal/scheduler"
	"github.com/mrlokans/library/internal/services"
	"github.com/mrlokans/library/internal/sessions"
	"github.com/mrlokans/library/internal/storage"
	"github.com/mrlokans/library/internal/validation"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App bundles the components every command needs.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Adapter storage.Adapter
	Store   *library.Store
	Library *services.LibraryService
	Backups *scheduler.BackupScheduler
}

// NewApp opens the configured storage and loads the collection. A load
// failure is not an error here; it is kept on the store for the UI.
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	adapter, err := storage.New(cfg.Storage.Driver, cfg.Storage.StoragePath())
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	store := library.NewStore(adapter, library.WithLogger(logger))
	auditor := audit.NewService(cfg.Audit.Dir, logger)
	lib := services.NewLibraryService(store, validation.New(), auditor)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Adapter: adapter,
		Store:   store,
		Library: lib,
		Backups: scheduler.NewBackupScheduler(store, cfg.Backup, logger),
	}, nil
}

// Close releases the storage backend.
func (a *App) Close() error {
	if closer, ok := a.Adapter.(storage.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts down
// gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, logger *zap.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info("Shutting down server", zap.String("signal", sig.String()), zap.Duration("timeout", timeout))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("Server exiting")
	return nil
}

// Run builds the web application and serves it.
func Run(cfg *config.Config, version string, logger *zap.Logger) error {
	logger.Info("Starting Library", zap.String("version", version))

	app, err := NewApp(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("Error closing storage", zap.Error(err))
		}
	}()

	if cfg.Demo.Enabled && app.Store.Len() == 0 && app.Store.LoadError() == nil {
		added, err := SeedSamples(app, services.Origin{Source: audit.OriginDemo})
		if err != nil {
			logger.Warn("Some demo books could not be added", zap.Error(err))
		}
		logger.Info("Demo mode: seeded sample books", zap.Int("books", added))
	}

	sessionManager, err := sessions.NewManager(cfg.Sessions)
	if err != nil {
		return fmt.Errorf("initialize sessions: %w", err)
	}
	defer sessionManager.Close()

	csrfSecret, generated, err := CSRFSecret(cfg.Security.CSRFSecret)
	if err != nil {
		return err
	}
	if generated {
		logger.Info("Generated CSRF secret (set CSRF_SECRET to keep forms valid across restarts)")
	}

	var banner *assets.Fetcher
	if cfg.Banner.URL != "" {
		banner = assets.NewFetcher(cfg.Banner, logger)
	}

	var checker storage.Checker
	if c, ok := app.Adapter.(storage.Checker); ok {
		checker = c
	}

	if cfg.Global.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := http_controllers.NewRouter(http_controllers.RouterConfig{
		Library:        app.Library,
		Logger:         logger,
		Sessions:       sessionManager,
		Banner:         banner,
		Backups:        app.Backups,
		StorageChecker: checker,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Sessions.SecureCookies,
		TemplatesPath:  cfg.UI.TemplatesPath,
		StaticPath:     cfg.UI.StaticPath,
		DemoMode:       cfg.Demo.Enabled,
		Version:        version,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Backups.Start(ctx); err != nil {
		logger.Error("Failed to start backup scheduler", zap.Error(err))
	}

	return Serve(router, cfg, logger, func(ctx context.Context) {
		app.Backups.Stop()
	})
}

// SeedSamples adds the demo collection through the library service, so the
// records are validated and journaled under origin like any other addition.
func SeedSamples(app *App, origin services.Origin) (int, error) {
	return demo.Seed(demo.AdderFunc(func(in entities.BookInput) (entities.Book, error) {
		return app.Library.AddBook(in, origin)
	}), demo.SampleBooks())
}

// CSRFSecret returns the 32-byte key for gorilla/csrf. A hex value is
// decoded, anything else is hashed, and an empty value yields a random key.
func CSRFSecret(configured string) (secret []byte, generated bool, err error) {
	if configured == "" {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, false, fmt.Errorf("generate CSRF secret: %w", err)
		}
		return secret, true, nil
	}

	if decoded, err := hex.DecodeString(configured); err == nil && len(decoded) == 32 {
		return decoded, false, nil
	}
	sum := sha256.Sum256([]byte(configured))
	return sum[:], false, nil
}
