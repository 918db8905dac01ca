package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/snapbooks-app/peppol-lookup/internal/config"
	"github.com/snapbooks-app/peppol-lookup/internal/report"
	"github.com/snapbooks-app/peppol-lookup/pkg/discovery"
	"github.com/snapbooks-app/peppol-lookup/pkg/identifier"
)

// NewLookupCmd creates the lookup command.
func NewLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup [participant-id]",
		Short: "Look up a PEPPOL participant's SMP and document types",
		Long: `Lookup resolves PEPPOL participant identifiers to their SMP hostname
and lists the document types each participant can receive.

The participant identifier is a scheme:value pair, for example
0192:921605900 (Norwegian organization number 921605900).

Examples:
  # Look up a single participant
  peppol-lookup lookup 0192:921605900

  # Look up several participants concurrently
  peppol-lookup lookup 0192:921605900 0007:5567321707 9908:919779446

  # Query a test SML zone
  peppol-lookup lookup --sml-domain acc.edelivery.tech.ec.europa.eu 9908:919779446

  # Output JSON report
  peppol-lookup lookup --json 0192:921605900

  # Write a Markdown report to a file
  peppol-lookup lookup --markdown -o report.md 0192:921605900`,
		Args: cobra.ArbitraryArgs,
		RunE: runLookupCmd,
	}

	// SML resolution flags
	cmd.Flags().String("sml-domain", "",
		"SML domain to query (default: "+discovery.DefaultSMLDomain+")")
	cmd.Flags().String("dns-server", "",
		"DNS server as host:port (default: system resolver)")
	cmd.Flags().DurationP("timeout", "t", 0,
		"Timeout for DNS and SMP requests (overrides configured timeouts)")

	// SMP query flags
	cmd.Flags().Bool("https", false,
		"Query the SMP over HTTPS instead of HTTP")

	// Batch flags
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of concurrent lookups")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: peppol-lookup.yaml in current or XDG config directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	cmd.MarkFlagsMutuallyExclusive("json", "markdown")

	return cmd
}

// lookupService resolves participants. *discovery.Client satisfies it.
type lookupService interface {
	Lookup(ctx context.Context, p identifier.Participant) (*discovery.Result, error)
}

// lookupOptions holds the effective settings for one lookup run.
type lookupOptions struct {
	cfg      *config.Config
	json     bool
	markdown bool
	output   string
}

// lookupOutcome is the result of a single participant lookup.
type lookupOutcome struct {
	participant identifier.Participant
	result      *discovery.Result
	err         error
}

// runLookupCmd executes the lookup command.
func runLookupCmd(cmd *cobra.Command, args []string) error {
	opts, err := buildLookupOptions(cmd)
	if err != nil {
		return err
	}

	if err := opts.cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	if len(args) == 0 {
		return errors.New("no participants provided (specify one or more participant identifiers as arguments)")
	}

	ids := make([]identifier.Participant, 0, len(args))
	for _, arg := range args {
		p, err := identifier.Parse(arg)
		if err != nil {
			return fmt.Errorf("invalid participant identifier %q: %w", arg, err)
		}
		ids = append(ids, p)
	}

	// Set up structured logging
	verbose := getVerboseFlag(cmd)
	logger := setupLogger(verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	logger.Info("starting lookup",
		"participants", len(ids),
		"smlDomain", opts.cfg.SML.Domain,
		"concurrency", opts.cfg.Lookup.Concurrency,
	)

	client := discovery.NewWithConfig(opts.cfg.DiscoveryConfig())
	outcomes := runLookups(ctx, client, ids, opts.cfg.Lookup.Concurrency)

	if err := ctx.Err(); err != nil {
		return err
	}

	output, closeOutput, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer closeOutput()

	failed, err := writeOutcomes(opts, output, outcomes)
	if err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d lookups were unsuccessful", failed, len(outcomes))
	}
	return nil
}

// buildLookupOptions creates lookup options from cobra command flags.
func buildLookupOptions(cmd *cobra.Command) (*lookupOptions, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	smlDomain, err := cmd.Flags().GetString("sml-domain")
	if err != nil {
		return nil, err
	}
	if smlDomain != "" {
		cfg.SML.Domain = smlDomain
	}

	dnsServer, err := cmd.Flags().GetString("dns-server")
	if err != nil {
		return nil, err
	}
	if dnsServer != "" {
		cfg.SML.DNSServer = dnsServer
	}

	if cmd.Flags().Changed("timeout") {
		timeout, err := cmd.Flags().GetDuration("timeout")
		if err != nil {
			return nil, err
		}
		cfg.SML.Timeout = timeout.String()
		cfg.SMP.Timeout = timeout.String()
	}

	if cmd.Flags().Changed("https") {
		https, err := cmd.Flags().GetBool("https")
		if err != nil {
			return nil, err
		}
		cfg.SMP.HTTPS = https
	}

	if cmd.Flags().Changed("concurrency") {
		concurrency, err := cmd.Flags().GetInt("concurrency")
		if err != nil {
			return nil, err
		}
		cfg.Lookup.Concurrency = concurrency
	}

	opts := &lookupOptions{cfg: cfg}

	opts.json, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	opts.markdown, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	opts.output, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	return opts, nil
}

// runLookups resolves all participants with bounded concurrency.
// Outcomes are returned in argument order regardless of completion order.
func runLookups(ctx context.Context, svc lookupService, ids []identifier.Participant, concurrency int) []lookupOutcome {
	outcomes := make([]lookupOutcome, len(ids))

	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, p := range ids {
		g.Go(func() error {
			result, err := svc.Lookup(ctx, p)
			outcomes[i] = lookupOutcome{participant: p, result: result, err: err}
			return nil
		})
	}

	// Lookup failures are recorded per outcome, never returned to the group.
	_ = g.Wait()

	return outcomes
}

// writeOutcomes writes each outcome in the requested format and returns the
// number of lookups that failed or found no registered participant.
func writeOutcomes(opts *lookupOptions, output io.Writer, outcomes []lookupOutcome) (int, error) {
	var writer report.Writer
	switch {
	case opts.json:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case opts.markdown:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewTextWriter(output)
	}

	plainText := !opts.json && !opts.markdown
	failed := 0

	for i, outcome := range outcomes {
		if outcome.err != nil {
			fmt.Fprintf(os.Stderr, "Lookup error for %s: %v\n", outcome.participant, outcome.err)
			failed++
			continue
		}

		// With several participants, label each plain-text report.
		if plainText && len(outcomes) > 1 {
			if i > 0 {
				fmt.Fprintln(output)
			}
			fmt.Fprintf(output, "Participant: %s\n", outcome.participant)
		}

		if _, err := writer.Write(report.NewSummary(outcome.result)); err != nil {
			return failed, fmt.Errorf("failed to write report: %w", err)
		}

		if !outcome.result.Registered {
			failed++
		}
	}

	return failed, nil
}

// openOutput returns the report destination: the given file, or stdout.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}

	closeFile := func() {
		_ = f.Close()
	}
	return f, closeFile, nil
}
