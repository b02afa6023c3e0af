// Package services holds the use cases shared by the web UI, the JSON API and
// the CLI.
package services

import (
	"strings"

	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/validation"
)

// LibraryService validates input, applies it to the store and journals the
// outcome.
type LibraryService struct {
	BookReader

	store     BookStore
	validator *validation.Validator
	auditor   *audit.Service
}

// NewLibraryService creates a new LibraryService. auditor may be nil.
func NewLibraryService(store BookStore, validator *validation.Validator, auditor *audit.Service) *LibraryService {
	if validator == nil {
		validator = validation.New()
	}
	return &LibraryService{
		BookReader: store,
		store:      store,
		validator:  validator,
		auditor:    auditor,
	}
}

// Validator exposes the validator, for forms that show the accepted ranges.
func (s *LibraryService) Validator() *validation.Validator {
	return s.validator
}

// Origin identifies who asked for a change, for the audit journal.
type Origin struct {
	Source    string // one of the audit.Origin* constants
	RequestID string
}

// AddBook validates in and appends it to the collection.
//
// Invalid input returns a *validation.Error and changes nothing. A save
// failure returns the stored record together with an error wrapping
// library.ErrPersist; the record stays in memory.
func (s *LibraryService) AddBook(in entities.BookInput, origin Origin) (entities.Book, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.Genre = strings.TrimSpace(in.Genre)

	if err := s.validator.Validate(in); err != nil {
		return entities.Book{}, err
	}

	book, err := s.store.Add(in.Title, in.Author, in.PublicationYear, in.Genre, in.ReadStatus)
	s.auditor.LogAdd(audit.Entry{
		Origin:    origin.Source,
		RequestID: origin.RequestID,
		Index:     s.store.Len() - 1,
		Book:      book,
		Err:       err,
	})
	return book, err
}

// RemoveBook deletes the record at index. It reports false for an
// out-of-range index. The error wraps library.ErrPersist when the record
// was removed from memory but the collection could not be saved.
func (s *LibraryService) RemoveBook(index int, origin Origin) (entities.Book, bool, error) {
	book, removed, err := s.store.Remove(index)
	if !removed {
		return entities.Book{}, false, err
	}

	s.auditor.LogRemove(audit.Entry{
		Origin:    origin.Source,
		RequestID: origin.RequestID,
		Index:     index,
		Book:      book,
		Err:       err,
	})
	return book, true, err
}
