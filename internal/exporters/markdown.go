// Package exporters renders the collection into portable documents.
package exporters

import (
	"fmt"
	"strings"
	"time"

	"github.com/mrlokans/library/internal/entities"
)

// GenerateMarkdown renders the collection as a Markdown document with YAML
// front matter and one table row per book, in collection order.
func GenerateMarkdown(books []entities.Book, stats entities.Statistics, now time.Time) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "content_type: book_library\n")
	fmt.Fprintf(&builder, "created_at: %s\n", now.Format("2006-01-02"))
	fmt.Fprintf(&builder, "total_books: %d\n", stats.TotalBooks)
	fmt.Fprintf(&builder, "read_books: %d\n", stats.ReadBooks)
	fmt.Fprintf(&builder, "tags: books, library\n")
	fmt.Fprintf(&builder, "---\n\n")
	fmt.Fprintf(&builder, "# My Library\n\n")

	if len(books) == 0 {
		fmt.Fprintf(&builder, "_No books in the library yet._\n")
		return builder.String()
	}

	fmt.Fprintf(&builder, "%.2f%% read.\n\n", stats.PercentageRead)
	fmt.Fprintf(&builder, "| # | Title | Author | Year | Genre | Status | Added |\n")
	fmt.Fprintf(&builder, "|---|---|---|---|---|---|---|\n")
	for i, book := range books {
		fmt.Fprintf(&builder, "| %d | %s | %s | %d | %s | %s | %s |\n",
			i,
			escapeCell(book.Title),
			escapeCell(book.Author),
			book.PublicationYear,
			escapeCell(book.Genre),
			StatusLabel(book.ReadStatus),
			escapeCell(book.AddedDate),
		)
	}

	return builder.String()
}

// StatusLabel is the human label of a read flag.
func StatusLabel(read bool) string {
	if read {
		return "Read"
	}
	return "Unread"
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
