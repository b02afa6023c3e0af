package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/entrypoint"
	"github.com/mrlokans/library/internal/logging"
)

func newServeCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web interface (default)",
		Long: `Start the HTTP server with the HTML interface and the JSON API.

The server is configured through environment variables or a .env file in the
working directory, for example PORT, STORAGE_DRIVER and LIBRARY_PATH.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, info)
		},
	}
}

func runServe(cmd *cobra.Command, info BuildInfo) error {
	cfg := config.NewConfig()
	logger, err := logging.New(cfg.Log, cfg.Global.Environment)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return entrypoint.Run(cfg, info.Version, logger)
}
