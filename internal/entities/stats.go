package entities

// CountEntry is one bucket of a grouped count (genre or author).
type CountEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// DecadeCount is one bucket of the publication decade histogram.
type DecadeCount struct {
	Decade int `json:"decade"`
	Count  int `json:"count"`
}

// Statistics summarises a collection snapshot.
//
// Genres and Authors are ordered by descending count, ties in first-seen
// order. Decades are ordered ascending.
type Statistics struct {
	TotalBooks     int           `json:"total_books"`
	ReadBooks      int           `json:"read_books"`
	UnreadBooks    int           `json:"unread_books"`
	PercentageRead float64       `json:"percentage_read"`
	Genres         []CountEntry  `json:"genres"`
	Authors        []CountEntry  `json:"authors"`
	Decades        []DecadeCount `json:"decades"`
}

// GenreCounts returns the genre buckets as a map, mostly for callers that
// do not care about ordering.
func (s Statistics) GenreCounts() map[string]int {
	return countsToMap(s.Genres)
}

// AuthorCounts returns the author buckets as a map.
func (s Statistics) AuthorCounts() map[string]int {
	return countsToMap(s.Authors)
}

// DecadeCounts returns the decade buckets as a map.
func (s Statistics) DecadeCounts() map[int]int {
	m := make(map[int]int, len(s.Decades))
	for _, d := range s.Decades {
		m[d.Decade] = d.Count
	}
	return m
}

func countsToMap(entries []CountEntry) map[string]int {
	m := make(map[string]int, len(entries))
	for _, e := range entries {
		m[e.Key] = e.Count
	}
	return m
}
