package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/entrypoint"
	"github.com/mrlokans/library/internal/exporters"
	"github.com/mrlokans/library/internal/library"
	"github.com/mrlokans/library/internal/services"
	"github.com/mrlokans/library/internal/validation"
)

const (
	msgEmptyLibrary = "Your library is empty. Add some books!"
	msgNoMatches    = "No books found matching your search."
	msgBookAdded    = "Book added successfully!"
)

var cliOrigin = services.Origin{Source: audit.OriginCLI}

func newListCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all books in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *entrypoint.App) error {
				books := app.Library.All()
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), books)
				}
				if len(books) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), msgEmptyLibrary)
					return nil
				}
				return printBooks(cmd.OutOrStdout(), books, true)
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the collection as JSON")

	return cmd
}

func newAddCommand() *cobra.Command {
	var in entities.BookInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		Example: `  library add --title "Dune" --author "Frank Herbert" --year 1965 --genre Sci-Fi --read
  library add --title "Emma" --author "Jane Austen" --year 1815 --genre Fiction`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *entrypoint.App) error {
				if err := requireLoaded(app); err != nil {
					return err
				}

				book, err := app.Library.AddBook(in, cliOrigin)
				var verr *validation.Error
				switch {
				case errors.As(err, &verr):
					return err
				case errors.Is(err, library.ErrPersist):
					return fmt.Errorf("book kept for this run only: %w", err)
				case err != nil:
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), msgBookAdded)
				return printBooks(cmd.OutOrStdout(), []entities.Book{book}, false)
			})
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "Book title")
	cmd.Flags().StringVar(&in.Author, "author", "", "Author name")
	cmd.Flags().IntVar(&in.PublicationYear, "year", time.Now().Year(), "Publication year")
	cmd.Flags().StringVar(&in.Genre, "genre", entities.GenreFiction,
		"Genre, for example "+strings.Join(entities.Genres, ", "))
	cmd.Flags().BoolVar(&in.ReadStatus, "read", false, "Mark the book as read")

	return cmd
}

func newRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <index>",
		Short: "Remove the book at a position shown by list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[0])
			}

			return withApp(cmd, func(app *entrypoint.App) error {
				if err := requireLoaded(app); err != nil {
					return err
				}

				book, removed, err := app.Library.RemoveBook(index, cliOrigin)
				if !removed {
					return fmt.Errorf("no book at index %d", index)
				}
				if err != nil {
					return fmt.Errorf("removed %q for this run only: %w", book.Title, err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Removed %q.\n", book.Title)
				return nil
			})
		},
	}
}

func newSearchCommand() *cobra.Command {
	var (
		by     string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Find books whose field contains term, ignoring case",
		Long: `Find books whose title, author or genre contains the term. Matching is
case-insensitive. An empty term matches every book.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := library.ParseSearchField(by); !ok {
				return fmt.Errorf("unknown search field %q", by)
			}
			term := ""
			if len(args) == 1 {
				term = args[0]
			}

			return withApp(cmd, func(app *entrypoint.App) error {
				books := app.Library.Search(term, by)
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), books)
				}
				if len(books) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), msgNoMatches)
					return nil
				}
				return printBooks(cmd.OutOrStdout(), books, false)
			})
		},
	}
	cmd.Flags().StringVar(&by, "by", string(library.SearchByTitle), "Field to search: title, author or genre")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print matches as JSON")

	return cmd
}

// printBooks writes an aligned table. Positions are only printed for the
// full collection, where they are valid arguments to remove.
func printBooks(w io.Writer, books []entities.Book, withIndex bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if withIndex {
		fmt.Fprint(tw, "#\t")
	}
	fmt.Fprintln(tw, "TITLE\tAUTHOR\tYEAR\tGENRE\tSTATUS\tADDED")
	for i, b := range books {
		if withIndex {
			fmt.Fprintf(tw, "%d\t", i)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			b.Title, b.Author, b.PublicationYear, b.Genre, exporters.StatusLabel(b.ReadStatus), b.AddedDate)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
