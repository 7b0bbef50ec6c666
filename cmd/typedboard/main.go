// Command typedboard runs the board: it publishes the schema artifact,
// generates the typed request builders and serves the GraphQL endpoint.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/GauBen/typed-board/config"
)

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		cfgPath string
		verbose bool
	)

	root := &cobra.Command{
		Use:           "typedboard",
		Short:         "Typed message board toolchain",
		Long:          "typedboard derives a GraphQL schema from entity declarations,\npublishes it as an SDL artifact, generates typed request builders\nfrom operation documents and serves the board over HTTP.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (default "+config.DefaultFile+")")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		serveCmd(&cfgPath, &verbose),
		publishCmd(&cfgPath, &verbose),
		generateCmd(&cfgPath, &verbose),
	)
	return root
}

// newLogger builds the process logger from the merged configuration; the
// --verbose flag forces debug regardless of the configured level.
func newLogger(cfg *config.Config, verbose bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "typedboard",
	})
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	if verbose {
		level = log.DebugLevel
	}
	logger.SetLevel(level)
	return logger
}
