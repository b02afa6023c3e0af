package config

// Default paths for persisted state
const (
	// DefaultLibraryPath is the default location of the JSON collection file
	DefaultLibraryPath = "./library.json"

	// DefaultDatabasePath is used when STORAGE_DRIVER=sqlite
	DefaultDatabasePath = "./library.db"
)
