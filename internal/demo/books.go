package demo

import (
	"errors"

	"github.com/mrlokans/library/internal/entities"
)

// SampleBooks returns the demo collection: public domain classics with a
// mix of genres, decades and read states.
func SampleBooks() []entities.BookInput {
	return []entities.BookInput{
		{Title: "Pride and Prejudice", Author: "Jane Austen", PublicationYear: 1813, Genre: entities.GenreRomance, ReadStatus: true},
		{Title: "Emma", Author: "Jane Austen", PublicationYear: 1815, Genre: entities.GenreFiction},
		{Title: "Frankenstein", Author: "Mary Shelley", PublicationYear: 1818, Genre: entities.GenreSciFi, ReadStatus: true},
		{Title: "Moby-Dick", Author: "Herman Melville", PublicationYear: 1851, Genre: entities.GenreFiction},
		{Title: "On the Origin of Species", Author: "Charles Darwin", PublicationYear: 1859, Genre: entities.GenreNonFiction},
		{Title: "Twenty Thousand Leagues Under the Seas", Author: "Jules Verne", PublicationYear: 1870, Genre: entities.GenreSciFi, ReadStatus: true},
		{Title: "The Adventures of Sherlock Holmes", Author: "Arthur Conan Doyle", PublicationYear: 1892, Genre: entities.GenreMystery, ReadStatus: true},
		{Title: "The Time Machine", Author: "H. G. Wells", PublicationYear: 1895, Genre: entities.GenreSciFi},
		{Title: "The Hound of the Baskervilles", Author: "Arthur Conan Doyle", PublicationYear: 1902, Genre: entities.GenreMystery},
		{Title: "Meditations", Author: "Marcus Aurelius", PublicationYear: 1558, Genre: entities.GenreNonFiction, ReadStatus: true},
	}
}

// Adder is the part of the library service seeding needs.
type Adder interface {
	AddBookInput(in entities.BookInput) (entities.Book, error)
}

// AdderFunc adapts a function to Adder.
type AdderFunc func(in entities.BookInput) (entities.Book, error)

// AddBookInput calls f.
func (f AdderFunc) AddBookInput(in entities.BookInput) (entities.Book, error) {
	return f(in)
}

// Seed adds books in order and returns how many were added. It keeps going
// after a failure and returns the joined errors.
func Seed(adder Adder, books []entities.BookInput) (int, error) {
	var (
		added int
		errs  []error
	)
	for _, in := range books {
		if _, err := adder.AddBookInput(in); err != nil {
			errs = append(errs, err)
			continue
		}
		added++
	}
	return added, errors.Join(errs...)
}
