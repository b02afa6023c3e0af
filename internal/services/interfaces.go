package services

import "github.com/mrlokans/library/internal/entities"

// BookReader provides read-only access to the collection.
type BookReader interface {
	All() []entities.Book
	Len() int
	Get(index int) (entities.Book, bool)
	Search(term, field string) []entities.Book
	Statistics() entities.Statistics
	LoadError() error
}

// BookStore is a BookReader that can also change the collection.
// Implemented by *library.Store.
type BookStore interface {
	BookReader
	Add(title, author string, year int, genre string, readStatus bool) (entities.Book, error)
	Remove(index int) (entities.Book, bool, error)
}
