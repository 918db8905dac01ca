package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/snapbooks-app/peppol-lookup/internal/server"
	"github.com/snapbooks-app/peppol-lookup/pkg/discovery"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the participant lookup HTTP gateway",
		Long: `Serve starts an HTTP gateway that exposes participant lookups as a JSON API.

Endpoints:
  GET /participants/{id}  Look up a participant by identifier
  GET /health             Liveness probe
  GET /metrics            Prometheus metrics (if enabled)

Examples:
  # Serve on the default address
  peppol-lookup serve

  # Serve on a custom address with metrics enabled
  peppol-lookup serve --addr :9090 --metrics`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("addr", "a", "",
		"Listen address (default: :8080)")
	cmd.Flags().Bool("metrics", false,
		"Expose Prometheus metrics")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: peppol-lookup.yaml in current or XDG config directory)")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	if cmd.Flags().Changed("metrics") {
		metrics, err := cmd.Flags().GetBool("metrics")
		if err != nil {
			return err
		}
		cfg.Server.Metrics.Enabled = metrics
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// The gateway logs each lookup at info level, so unlike the CLI the
	// default level is info rather than warn.
	level := slog.LevelInfo
	if getVerboseFlag(cmd) {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	lookup := discovery.NewWithConfig(cfg.DiscoveryConfig())
	srv := server.New(cfg, lookup, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
