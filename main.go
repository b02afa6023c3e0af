package main

import (
	"os"

	"github.com/mrlokans/library/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	root := cli.NewRootCommand(cli.BuildInfo{Version: Version, Commit: Commit})
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
