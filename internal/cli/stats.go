package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/entrypoint"
)

const msgNoStats = "Add some books to see statistics!"

func newStatsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show reading statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *entrypoint.App) error {
				stats := app.Library.Statistics()
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), stats)
				}
				if stats.TotalBooks == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), msgNoStats)
					return nil
				}
				return printStats(cmd.OutOrStdout(), stats)
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print statistics as JSON")

	return cmd
}

func printStats(w io.Writer, s entities.Statistics) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Total books:\t%d\n", s.TotalBooks)
	fmt.Fprintf(tw, "Read:\t%d\n", s.ReadBooks)
	fmt.Fprintf(tw, "Unread:\t%d\n", s.UnreadBooks)
	fmt.Fprintf(tw, "Read percentage:\t%.2f%%\n", s.PercentageRead)

	fmt.Fprintln(tw, "\nGenres")
	for _, g := range s.Genres {
		fmt.Fprintf(tw, "  %s\t%d\n", g.Key, g.Count)
	}

	fmt.Fprintln(tw, "\nDecades")
	for _, d := range s.Decades {
		fmt.Fprintf(tw, "  %ds\t%d\n", d.Decade, d.Count)
	}

	fmt.Fprintln(tw, "\nAuthors")
	for _, a := range s.Authors {
		fmt.Fprintf(tw, "  %s\t%d\n", a.Key, a.Count)
	}

	return tw.Flush()
}
