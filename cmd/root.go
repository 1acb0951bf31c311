// Package cmd holds the scorebook command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DhavalSuthar-24/scorebook/config"
	"github.com/DhavalSuthar-24/scorebook/internal/logger"
)

// Set at build time with -ldflags.
var (
	Version = "dev"
	Commit  = "none"
)

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "scorebook",
		Short: "Live cricket scoring service",
		Long: `Scorebook records matches ball by ball and serves live scorecards.

Commands:
  serve     run the HTTP API and live feed
  migrate   create or update the database schema
  adduser   create a login
  token     mint an access token for an existing user`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newAddUserCommand())
	root.AddCommand(newTokenCommand())
	root.AddCommand(newVersionCommand())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap loads configuration, connects to the database and builds the
// logger every command except version needs.
func bootstrap() (*config.Config, *zap.Logger, error) {
	if err := config.Initialize(); err != nil {
		return nil, nil, err
	}
	cfg := config.GetConfig()

	log, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "scorebook %s (commit: %s)\n", Version, Commit)
		},
	}
}
