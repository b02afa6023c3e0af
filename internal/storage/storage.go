// Package storage persists the book collection.
//
// An Adapter owns no in-memory state: Load reads the whole collection and
// Save overwrites it. Two adapters exist:
//
//	storage.NewJSONFile("./library.json")   // default, the library.json format
//	storage.NewSQLite("./library.db")       // GORM on SQLite
//
// Load never fails hard. A missing backing store yields an empty collection
// with a nil error; an unreadable one yields an empty collection together
// with an error wrapping ErrUnreadable so the caller can report it.
package storage

import (
	"errors"
	"fmt"

	"github.com/mrlokans/library/internal/entities"
)

// Supported driver names for New.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

var (
	// ErrUnreadable is wrapped by Load errors when persisted state exists
	// but cannot be read or decoded.
	ErrUnreadable = errors.New("library storage unreadable")

	// ErrUnknownDriver is returned by New for unsupported driver names.
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// Adapter loads and saves the full collection.
type Adapter interface {
	Load() ([]entities.Book, error)
	Save(books []entities.Book) error
}

// Checker is implemented by adapters that can report whether their backing
// store is usable. Used by the health endpoint.
type Checker interface {
	Check() error
}

// Closer is implemented by adapters holding open resources.
type Closer interface {
	Close() error
}

// New builds the adapter for the given driver. path is the JSON file for
// DriverJSON and the database file for DriverSQLite. A database that cannot
// be opened yields an *Unavailable adapter rather than an error.
func New(driver, path string) (Adapter, error) {
	switch driver {
	case DriverJSON, "":
		return NewJSONFile(path), nil
	case DriverSQLite:
		adapter, err := NewSQLite(path)
		if errors.Is(err, ErrUnreadable) {
			return &Unavailable{path: path, err: err}, nil
		}
		if err != nil {
			return nil, err
		}
		return adapter, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// Describe returns a short human-readable description of an adapter.
func Describe(a Adapter) string {
	switch s := a.(type) {
	case *JSONFile:
		return "json file " + s.Path()
	case *SQLite:
		return "sqlite database " + s.Path()
	case *Unavailable:
		return "unavailable " + s.Path()
	default:
		return fmt.Sprintf("%T", a)
	}
}
