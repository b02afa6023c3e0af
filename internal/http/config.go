package http

import (
	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/assets"
	"github.com/mrlokans/library/internal/scheduler"
	"github.com/mrlokans/library/internal/services"
	"github.com/mrlokans/library/internal/sessions"
	"github.com/mrlokans/library/internal/storage"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Library *services.LibraryService
	Logger  *zap.Logger

	// Optional collaborators; nil disables the feature
	Sessions       *sessions.Manager
	Banner         *assets.Fetcher
	Backups        *scheduler.BackupScheduler
	StorageChecker storage.Checker

	// CSRF protection for the HTML forms; empty disables it
	CSRFSecret    []byte
	SecureCookies bool

	// UI paths; empty means the embedded copies
	TemplatesPath string
	StaticPath    string

	// Read-only showcase; write requests are rejected
	DemoMode bool

	// Application info
	Version string
}
