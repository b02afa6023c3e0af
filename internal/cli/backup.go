package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/library/internal/entrypoint"
)

func newBackupCommand() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a snapshot of the library to BACKUP_DIR",
		Long: `Write a timestamped JSON snapshot of the collection to BACKUP_DIR and prune
old snapshots beyond BACKUP_KEEP. Works whether or not scheduled backups are
enabled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *entrypoint.App) error {
				if list {
					snapshots, err := app.Backups.Snapshots()
					if err != nil {
						return err
					}
					for _, s := range snapshots {
						fmt.Fprintln(cmd.OutOrStdout(), s)
					}
					return nil
				}

				if err := requireLoaded(app); err != nil {
					return err
				}
				path, err := app.Backups.RunNow()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "List existing snapshots instead of writing one")

	return cmd
}
