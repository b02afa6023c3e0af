package library

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/library/internal/entities"
)

func searchFixture() []entities.Book {
	return []entities.Book{
		{Title: "The Hobbit", Author: "J.R.R. Tolkien", Genre: "Fiction"},
		{Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi"},
		{Title: "The Silmarillion", Author: "J.R.R. Tolkien", Genre: "Fiction"},
		{Title: "Straße der Bücher", Author: "Anon", Genre: "Other"},
	}
}

func TestSearch(t *testing.T) {
	books := searchFixture()

	tests := []struct {
		name     string
		term     string
		field    string
		expected []string
	}{
		{"empty term matches everything", "", "title", []string{"The Hobbit", "Dune", "The Silmarillion", "Straße der Bücher"}},
		{"no match", "xyz_no_match", "author", []string{}},
		{"unknown field", "Tolkien", "unknown_field", []string{}},
		{"unknown field with empty term", "", "isbn", []string{}},
		{"case-insensitive author", "tolkien", "author", []string{"The Hobbit", "The Silmarillion"}},
		{"substring title", "THE", "title", []string{"The Hobbit", "The Silmarillion"}},
		{"genre", "sci", "genre", []string{"Dune"}},
		{"field name is case-insensitive", "dune", "Title", []string{"Dune"}},
		{"unicode case folding", "STRASSE", "title", []string{"Straße der Bücher"}},
		{"title does not match author values", "Herbert", "title", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := Search(books, tt.term, tt.field)

			assert.NotNil(t, results)
			assert.Equal(t, tt.expected, titles(results))
		})
	}
}

func TestSearch_EmptyCollection(t *testing.T) {
	assert.Empty(t, Search(nil, "", "title"))
}

func TestParseSearchField(t *testing.T) {
	field, ok := ParseSearchField(" Author ")
	assert.True(t, ok)
	assert.Equal(t, SearchByAuthor, field)
	assert.Equal(t, "Author", field.Label())

	_, ok = ParseSearchField("isbn")
	assert.False(t, ok)
}
