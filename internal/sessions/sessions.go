// Package sessions keeps per-browser UI state (flash messages and the last
// search) in an scs session.
package sessions

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mrlokans/library/internal/config"
)

// Session data keys
const (
	KeyFlash       = "flash"
	KeyFlashLevel  = "flash_level"
	KeySearchField = "search_field"
	KeySearchTerm  = "search_term"
)

// Flash levels map to CSS classes in the layout.
const (
	FlashSuccess = "success"
	FlashWarning = "warning"
	FlashError   = "error"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Message string
	Level   string
}

// Manager wraps scs.SessionManager with application-specific methods.
type Manager struct {
	*scs.SessionManager
	db *sql.DB
}

// NewManager creates a session manager. Sessions live in memory unless
// cfg.DatabasePath is set, in which case they are stored in SQLite and
// survive restarts.
func NewManager(cfg config.Sessions) (*Manager, error) {
	sm := scs.New()

	var db *sql.DB
	if cfg.DatabasePath != "" {
		var err error
		db, err = sql.Open("sqlite3", cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("open session database: %w", err)
		}

		_, err = db.Exec(`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("create sessions table: %w", err)
		}
		sm.Store = sqlite3store.New(db)
	}

	if cfg.Lifetime > 0 {
		sm.Lifetime = cfg.Lifetime
		sm.IdleTimeout = cfg.Lifetime / 2
	}

	sm.Cookie.Name = "library_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm, db: db}, nil
}

// Close releases the session database, if any.
func (m *Manager) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}

// SetFlash stores a message for the next page render.
func (m *Manager) SetFlash(ctx context.Context, level, message string) {
	m.Put(ctx, KeyFlash, message)
	m.Put(ctx, KeyFlashLevel, level)
}

// PopFlash returns and clears the pending flash message.
func (m *Manager) PopFlash(ctx context.Context) *Flash {
	message := m.PopString(ctx, KeyFlash)
	level := m.PopString(ctx, KeyFlashLevel)
	if message == "" {
		return nil
	}
	if level == "" {
		level = FlashSuccess
	}
	return &Flash{Message: message, Level: level}
}

// RememberSearch keeps the last search so the form can be pre-filled.
func (m *Manager) RememberSearch(ctx context.Context, field, term string) {
	m.Put(ctx, KeySearchField, field)
	m.Put(ctx, KeySearchTerm, term)
}

// LastSearch returns the remembered search field and term.
func (m *Manager) LastSearch(ctx context.Context) (field, term string) {
	return m.GetString(ctx, KeySearchField), m.GetString(ctx, KeySearchTerm)
}
