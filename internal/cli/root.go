// Package cli defines the command-line interface for osmchactl.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/osm-qa/osmchactl/internal/logging"
)

const (
	// defaultConfigPath is the default path to the run configuration file.
	defaultConfigPath = "osmchactl.yaml"
)

// Options stores global CLI options shared between commands.
type Options struct {
	ConfigPath string
	LogLevel   slog.Level
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, slog.LevelInfo)
	}

	rootOpts := &Options{
		ConfigPath: defaultConfigPath,
		LogLevel:   slog.LevelInfo,
	}

	var envIn baseEnv
	if err := parseEnv(&envIn); err != nil {
		return fmt.Errorf("parse OSMCHACTL_* environment: %w", err)
	}
	if envIn.ConfigPath != "" {
		rootOpts.ConfigPath = envIn.ConfigPath
	}

	rootCmd := newRootCommand(rootOpts, logger, envIn.LogLevel)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger, defaultLogLevel string) *cobra.Command {
	if defaultLogLevel == "" {
		defaultLogLevel = "info"
	}

	cmd := &cobra.Command{
		Use:   "osmchactl",
		Short: "osmchactl reports OSMCHA changeset discussion state per OSM user",
		Long:  "osmchactl queries the OSMCHA changeset-review API and reports, per OpenStreetMap user, which discussed changesets still wait for a reply from their author.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := logging.ParseLevel(cmd.Flag("log-level").Value.String())
			opts.LogLevel = level
			logger = logging.NewLogger(os.Stderr, level)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", level)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", opts.ConfigPath, "Path to the osmchactl.yaml configuration file")
	cmd.PersistentFlags().String("log-level", defaultLogLevel, "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newReportCommand(opts),
		newVersionCommand(),
	)

	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, slog.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, slog.LevelInfo)
}
