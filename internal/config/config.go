package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Storage
		UI
		Sessions
		Security
		Backup
		Banner
		Audit
		Log
		Demo
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
		Environment              string // "development" or "production"
	}
	Storage struct {
		Driver       string // "json" (default) or "sqlite"
		Path         string // JSON collection file
		DatabasePath string // SQLite database file
	}
	UI struct {
		TemplatesPath string // Empty means use the embedded templates
		StaticPath    string // Empty means use the embedded static files
	}
	Sessions struct {
		Lifetime      time.Duration
		SecureCookies bool   // Set to false for local dev without HTTPS
		DatabasePath  string // Empty keeps sessions in memory
	}
	Security struct {
		CSRFSecret string // Hex or raw; generated at startup if empty
	}
	Backup struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
		Dir      string
		Keep     int // Number of snapshots to retain, 0 keeps everything
	}
	Banner struct {
		URL      string // Decorative JSON animation, empty disables the fetch
		CacheDir string
		Timeout  time.Duration
	}
	Audit struct {
		Dir string // Empty disables the mutation journal
	}
	Log struct {
		Level  string
		Format string // "json" or "console"; derived from Environment if empty
	}
	Demo struct {
		Enabled bool // Read-only mode, seeded with sample books when empty
	}
)

// StoragePath returns the file backing the configured driver.
func (s Storage) StoragePath() string {
	if s.Driver == "sqlite" {
		return s.DatabasePath
	}
	return s.Path
}

// NewConfig reads configuration from the environment, after loading an
// optional .env file from the working directory.
func NewConfig() *Config {
	// A missing .env is the normal case outside development.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8501)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("environment", "development")

	v.SetDefault("storage_driver", "json")
	v.SetDefault("library_path", DefaultLibraryPath)
	v.SetDefault("database_path", DefaultDatabasePath)

	v.SetDefault("templates_path", "")
	v.SetDefault("static_path", "")

	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("session_secure_cookies", false)
	v.SetDefault("session_db_path", "")
	v.SetDefault("csrf_secret", "")

	// Backups
	v.SetDefault("backup_enabled", false)
	v.SetDefault("backup_schedule", "0 3 * * *") // Daily at 03:00
	v.SetDefault("backup_dir", "./backups")
	v.SetDefault("backup_keep", 14)

	// Decorative banner
	v.SetDefault("banner_url", "")
	v.SetDefault("banner_cache_dir", "./cache")
	v.SetDefault("banner_timeout", "10s")

	v.SetDefault("audit_dir", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "")
	v.SetDefault("demo_mode", false)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
			Environment:              v.GetString("ENVIRONMENT"),
		},
		Storage: Storage{
			Driver:       v.GetString("STORAGE_DRIVER"),
			Path:         v.GetString("LIBRARY_PATH"),
			DatabasePath: v.GetString("DATABASE_PATH"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Sessions: Sessions{
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SESSION_SECURE_COOKIES"),
			DatabasePath:  v.GetString("SESSION_DB_PATH"),
		},
		Security: Security{
			CSRFSecret: v.GetString("CSRF_SECRET"),
		},
		Backup: Backup{
			Enabled:  v.GetBool("BACKUP_ENABLED"),
			Schedule: v.GetString("BACKUP_SCHEDULE"),
			Dir:      v.GetString("BACKUP_DIR"),
			Keep:     v.GetInt("BACKUP_KEEP"),
		},
		Banner: Banner{
			URL:      v.GetString("BANNER_URL"),
			CacheDir: v.GetString("BANNER_CACHE_DIR"),
			Timeout:  v.GetDuration("BANNER_TIMEOUT"),
		},
		Audit: Audit{
			Dir: v.GetString("AUDIT_DIR"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Demo: Demo{
			Enabled: v.GetBool("DEMO_MODE"),
		},
	}
}
