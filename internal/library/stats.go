package library

import (
	"sort"

	"github.com/mrlokans/library/internal/entities"
)

// ComputeStatistics aggregates a collection snapshot.
//
// Equal genre or author counts keep the order in which the key was first
// seen in the collection.
func ComputeStatistics(books []entities.Book) entities.Statistics {
	stats := entities.Statistics{
		TotalBooks: len(books),
		Genres:     []entities.CountEntry{},
		Authors:    []entities.CountEntry{},
		Decades:    []entities.DecadeCount{},
	}

	genres := newCounter()
	authors := newCounter()
	decades := make(map[int]int)

	for _, book := range books {
		if book.ReadStatus {
			stats.ReadBooks++
		}
		genres.add(book.Genre)
		authors.add(book.Author)
		decades[book.Decade()]++
	}

	stats.UnreadBooks = stats.TotalBooks - stats.ReadBooks
	if stats.TotalBooks > 0 {
		stats.PercentageRead = float64(stats.ReadBooks) / float64(stats.TotalBooks) * 100
	}

	stats.Genres = genres.sorted()
	stats.Authors = authors.sorted()

	for decade, count := range decades {
		stats.Decades = append(stats.Decades, entities.DecadeCount{Decade: decade, Count: count})
	}
	sort.Slice(stats.Decades, func(i, j int) bool {
		return stats.Decades[i].Decade < stats.Decades[j].Decade
	})

	return stats
}

// counter counts keys and remembers first-seen order.
type counter struct {
	index   map[string]int
	entries []entities.CountEntry
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) add(key string) {
	if i, ok := c.index[key]; ok {
		c.entries[i].Count++
		return
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, entities.CountEntry{Key: key, Count: 1})
}

func (c *counter) sorted() []entities.CountEntry {
	out := make([]entities.CountEntry, len(c.entries))
	copy(out, c.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
