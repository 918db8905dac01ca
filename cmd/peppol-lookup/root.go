// Package main provides the entry point for the peppol-lookup CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/snapbooks-app/peppol-lookup/internal/config"
)

// NewRootCmd creates the root command for peppol-lookup.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "peppol-lookup",
		Short: "Discover PEPPOL participants and their supported document types",
		Long: `peppol-lookup resolves PEPPOL participant identifiers through the SML
(Service Metadata Locator) DNS zone and queries the participant's SMP
(Service Metadata Publisher) for the document types it can receive.

A participant identifier combines an ISO 6523 scheme with a value, for
example 0192:921605900 (a Norwegian organization number).`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewLookupCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	return slog.New(handler)
}

// loadConfig loads configuration for a command.
// If the user explicitly specified a config file path, error if not found.
// If no path specified, fall back to defaults when no file is discovered.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	path := config.FindFile(explicit)
	if path == "" {
		if explicit != "" {
			return nil, fmt.Errorf("configuration file not found: %s", explicit)
		}
		return config.Default(), nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return cfg, nil
}
