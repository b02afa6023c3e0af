// Package cli holds the command line interface. Running the binary without
// a subcommand starts the web server.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/entrypoint"
	"github.com/mrlokans/library/internal/logging"
)

// errUnreadableLibrary stops commands that would overwrite a collection
// that failed to load.
var errUnreadableLibrary = errors.New("refusing to modify a library that could not be loaded")

// BuildInfo is stamped into the binary at build time.
type BuildInfo struct {
	Version string
	Commit  string
}

// NewRootCommand assembles the command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "library",
		Short: "Personal book library tracker",
		Long: `Keep track of the books you own: add and remove titles, mark them read,
search by title, author or genre and look at reading statistics.

Without a subcommand the web interface is started.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, info)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log informational messages to stderr")

	root.AddCommand(
		newServeCommand(info),
		newListCommand(),
		newAddCommand(),
		newRemoveCommand(),
		newSearchCommand(),
		newStatsCommand(),
		newExportCommand(),
		newSeedCommand(),
		newBackupCommand(),
		newVersionCommand(info),
	)

	return root
}

// commandLogger builds the logger for one-shot commands. Below warn level
// is muted unless --verbose is given so that stdout stays clean.
func commandLogger(cmd *cobra.Command, cfg *config.Config) (*zap.Logger, error) {
	logCfg := cfg.Log
	if verbose, _ := cmd.Flags().GetBool("verbose"); !verbose {
		logCfg.Level = "warn"
	}
	return logging.New(logCfg, cfg.Global.Environment)
}

// withApp opens the configured library, reports a load failure on stderr
// and runs fn.
func withApp(cmd *cobra.Command, fn func(app *entrypoint.App) error) error {
	cfg := config.NewConfig()
	logger, err := commandLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	app, err := entrypoint.NewApp(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("Error closing storage", zap.Error(err))
		}
	}()

	if err := app.Store.LoadError(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error loading library: %v\n", err)
	}
	return fn(app)
}

// requireLoaded guards mutating commands.
func requireLoaded(app *entrypoint.App) error {
	if err := app.Store.LoadError(); err != nil {
		return fmt.Errorf("%w: %v", errUnreadableLibrary, err)
	}
	return nil
}
