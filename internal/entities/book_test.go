package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBook_Decade(t *testing.T) {
	tests := []struct {
		year     int
		expected int
	}{
		{1965, 1960},
		{1960, 1960},
		{1815, 1810},
		{2024, 2020},
		{1000, 1000},
		{9, 0},
		{-5, -10},
		{-10, -10},
	}

	for _, tt := range tests {
		book := Book{PublicationYear: tt.year}
		assert.Equal(t, tt.expected, book.Decade(), "year %d", tt.year)
	}
}

func TestBook_AddedAt(t *testing.T) {
	t.Run("parses stored timestamp", func(t *testing.T) {
		book := Book{AddedDate: "2023-05-01 10:20:30"}

		got := book.AddedAt()

		assert.Equal(t, time.Date(2023, 5, 1, 10, 20, 30, 0, time.Local), got)
	})

	t.Run("returns zero time for malformed value", func(t *testing.T) {
		book := Book{AddedDate: "yesterday"}

		assert.True(t, book.AddedAt().IsZero())
	})
}

func TestStatistics_Maps(t *testing.T) {
	stats := Statistics{
		Genres:  []CountEntry{{Key: "Sci-Fi", Count: 2}, {Key: "Fiction", Count: 1}},
		Authors: []CountEntry{{Key: "Herbert", Count: 1}},
		Decades: []DecadeCount{{Decade: 1810, Count: 1}, {Decade: 1960, Count: 1}},
	}

	assert.Equal(t, map[string]int{"Sci-Fi": 2, "Fiction": 1}, stats.GenreCounts())
	assert.Equal(t, map[string]int{"Herbert": 1}, stats.AuthorCounts())
	assert.Equal(t, map[int]int{1810: 1, 1960: 1}, stats.DecadeCounts())
}
