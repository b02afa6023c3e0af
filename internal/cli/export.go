package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrlokans/library/internal/entrypoint"
	"github.com/mrlokans/library/internal/exporters"
)

func newExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the collection as Markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *entrypoint.App) error {
				markdown := exporters.GenerateMarkdown(app.Library.All(), app.Library.Statistics(), time.Now())

				if output == "" || output == "-" {
					_, err := fmt.Fprint(cmd.OutOrStdout(), markdown)
					return err
				}
				if err := os.WriteFile(output, []byte(markdown), 0644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d books to %s\n", app.Library.Len(), output)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (default stdout)")

	return cmd
}
