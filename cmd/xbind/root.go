package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-xbind/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "xbind",
	Short: "Bind an HTML page to state and drive it from the terminal",
	Long: `xbind parses a page annotated with xb-* directives, binds it to a state
tree seeded from a YAML params file and either prints the result or opens an
interactive session that edits the state and shows the page react.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
}

func loggerFor(cmd *cobra.Command) (*slog.Logger, error) {
	raw, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(raw)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}
