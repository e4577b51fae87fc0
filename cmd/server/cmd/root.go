package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sivaprasad1108/event-sync-api/internal/platform/config"
)

type rootOptions struct {
	logLevel  string
	logFormat string
}

// applyTo lets flags override the environment.
func (o *rootOptions) applyTo(cfg *config.Config) {
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	serve := newServeCommand(opts)

	root := &cobra.Command{
		Use:   "server",
		Short: "Event Sync API server - events, registrations and confirmations",
		Long: `Event Sync API lets organizers publish events and attendees register
for them. Every accepted registration queues a confirmation email.

Configuration is read from the environment (and an optional .env file).
JWT_SECRET is required.`,
		SilenceUsage: true,
		// Run the serve command by default if no subcommand is specified
		RunE: serve.RunE,
	}
	root.Flags().AddFlagSet(serve.Flags())

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error) (default: info)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format (json, console) (default: json)")

	root.AddCommand(serve)
	root.AddCommand(newTokenCommand(opts))
	return root
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
