// Package library holds the in-memory book collection and the pure
// operations over it: substring search and statistics aggregation.
//
// A Store is the single piece of application state. It is built once at
// process start from a storage.Adapter and rewrites the whole collection
// through that adapter after every Add or Remove.
package library

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/storage"
)

// ErrPersist is wrapped by Add and Remove errors when the in-memory change
// succeeded but writing the collection failed.
var ErrPersist = errors.New("failed to save library")

// Clock returns the current time. Replaced in tests.
type Clock func() time.Time

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the timestamp source used by Add.
func WithClock(clock Clock) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store is the ordered book collection.
type Store struct {
	mu      sync.RWMutex
	books   []entities.Book
	adapter storage.Adapter
	clock   Clock
	logger  *zap.Logger
	loadErr error
}

// NewStore loads the collection from adapter. A load failure is not fatal:
// the store starts empty and the error is kept for LoadError.
func NewStore(adapter storage.Adapter, opts ...Option) *Store {
	s := &Store{
		adapter: adapter,
		clock:   time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	books, err := adapter.Load()
	if err != nil {
		s.loadErr = err
		s.logger.Warn("Error loading library, starting with an empty collection", zap.Error(err))
		books = nil
	}
	s.books = append([]entities.Book(nil), books...)
	s.logger.Info("Library loaded",
		zap.String("storage", storage.Describe(adapter)),
		zap.Int("books", len(s.books)))

	return s
}

// LoadError returns the error produced while loading at construction time,
// or nil.
func (s *Store) LoadError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Add appends a new record stamped with the current time and saves the
// collection. Input is not validated here.
//
// On a save failure the record stays in memory and the returned error wraps
// ErrPersist.
func (s *Store) Add(title, author string, year int, genre string, readStatus bool) (entities.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book := entities.Book{
		Title:           title,
		Author:          author,
		PublicationYear: year,
		Genre:           genre,
		ReadStatus:      readStatus,
		AddedDate:       s.clock().Format(entities.AddedDateLayout),
	}
	s.books = append(s.books, book)

	if err := s.persistLocked(); err != nil {
		return book, err
	}
	return book, nil
}

// Remove deletes the record at index and returns it. Out-of-range indices
// leave the collection unchanged and return false.
//
// On a save failure the record is still removed from memory, Remove
// reports true and the error wraps ErrPersist.
func (s *Store) Remove(index int) (entities.Book, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.books) {
		return entities.Book{}, false, nil
	}

	removed := s.books[index]
	s.books = append(s.books[:index], s.books[index+1:]...)

	if err := s.persistLocked(); err != nil {
		return removed, true, err
	}
	return removed, true, nil
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []entities.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Book, len(s.books))
	copy(out, s.books)
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books)
}

// Get returns the record at index.
func (s *Store) Get(index int) (entities.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.books) {
		return entities.Book{}, false
	}
	return s.books[index], true
}

// Search runs Search over the current collection.
func (s *Store) Search(term, field string) []entities.Book {
	return Search(s.All(), term, field)
}

// Statistics runs ComputeStatistics over the current collection.
func (s *Store) Statistics() entities.Statistics {
	return ComputeStatistics(s.All())
}

func (s *Store) persistLocked() error {
	snapshot := make([]entities.Book, len(s.books))
	copy(snapshot, s.books)

	if err := s.adapter.Save(snapshot); err != nil {
		s.logger.Error("Error saving library", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}
