package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/library/internal/entrypoint"
)

func newSeedCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty library with sample books",
		Long: `Add a handful of public domain classics, useful for trying out the web
interface. The library must be empty unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *entrypoint.App) error {
				if err := requireLoaded(app); err != nil {
					return err
				}
				if n := app.Library.Len(); n > 0 && !force {
					return fmt.Errorf("library already has %d books, use --force to add samples anyway", n)
				}

				added, err := entrypoint.SeedSamples(app, cliOrigin)
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d sample books.\n", added)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Add samples to a non-empty library")

	return cmd
}
