package library

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/mrlokans/library/internal/entities"
)

// SearchField selects the record attribute a search looks at.
type SearchField string

const (
	SearchByTitle  SearchField = "title"
	SearchByAuthor SearchField = "author"
	SearchByGenre  SearchField = "genre"
)

// SearchFields lists the supported fields in display order.
var SearchFields = []SearchField{SearchByTitle, SearchByAuthor, SearchByGenre}

// ParseSearchField matches a field name case-insensitively.
func ParseSearchField(name string) (SearchField, bool) {
	field := SearchField(strings.ToLower(strings.TrimSpace(name)))
	switch field {
	case SearchByTitle, SearchByAuthor, SearchByGenre:
		return field, true
	default:
		return "", false
	}
}

// Label is the capitalised field name shown in the UI.
func (f SearchField) Label() string {
	switch f {
	case SearchByTitle:
		return "Title"
	case SearchByAuthor:
		return "Author"
	case SearchByGenre:
		return "Genre"
	default:
		return string(f)
	}
}

func (f SearchField) value(b entities.Book) string {
	switch f {
	case SearchByTitle:
		return b.Title
	case SearchByAuthor:
		return b.Author
	default:
		return b.Genre
	}
}

// Search returns the records whose field contains term, ignoring case,
// in collection order. An empty term matches every record. An unknown
// field matches nothing.
func Search(books []entities.Book, term, field string) []entities.Book {
	results := []entities.Book{}

	f, ok := ParseSearchField(field)
	if !ok {
		return results
	}

	folder := cases.Fold()
	needle := folder.String(term)
	for _, book := range books {
		if strings.Contains(folder.String(f.value(book)), needle) {
			results = append(results, book)
		}
	}
	return results
}
