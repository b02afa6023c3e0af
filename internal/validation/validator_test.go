package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library/internal/entities"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestValidator_BookInput(t *testing.T) {
	v := NewWithClock(fixedNow)

	valid := entities.BookInput{
		Title:           "Dune",
		Author:          "Frank Herbert",
		PublicationYear: 1965,
		Genre:           entities.GenreSciFi,
		ReadStatus:      true,
	}

	t.Run("valid input", func(t *testing.T) {
		assert.NoError(t, v.Validate(valid))
	})

	t.Run("boundary years", func(t *testing.T) {
		in := valid
		in.PublicationYear = 1000
		assert.NoError(t, v.Validate(in))
		in.PublicationYear = 2024
		assert.NoError(t, v.Validate(in))
	})

	tests := []struct {
		name    string
		mutate  func(*entities.BookInput)
		field   string
		message string
	}{
		{"missing title", func(b *entities.BookInput) { b.Title = "" }, "title", "is required"},
		{"missing author", func(b *entities.BookInput) { b.Author = "" }, "author", "is required"},
		{"missing genre", func(b *entities.BookInput) { b.Genre = "" }, "genre", "is required"},
		{"year too early", func(b *entities.BookInput) { b.PublicationYear = 999 }, "publication_year", "must be greater than or equal to 1000"},
		{"year in the future", func(b *entities.BookInput) { b.PublicationYear = 2025 }, "publication_year", "must not be later than 2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			err := v.Validate(in)
			require.Error(t, err)

			var verr *Error
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.message, verr.Fields[tt.field])
			assert.Len(t, verr.Fields, 1)
		})
	}
}

func TestError_Message(t *testing.T) {
	err := &Error{Fields: map[string]string{
		"title":  "is required",
		"author": "is required",
	}}
	assert.Equal(t, "validation failed: author is required; title is required", err.Error())
}

func TestValidator_MaxYear(t *testing.T) {
	assert.Equal(t, 2024, NewWithClock(fixedNow).MaxYear())
}
