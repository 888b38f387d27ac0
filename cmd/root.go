package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/cmrquery/cmr"
	"github.com/s0up4200/cmrquery/config"
	"github.com/s0up4200/cmrquery/filter"
)

var (
	cfgFile      string
	outputFormat string
	cfg          *config.Config
	logger       zerolog.Logger
	client       *cmr.Client
	filters      *filter.Manager
	registry     *prometheus.Registry
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cmrquery",
	Short: "Search NASA's Common Metadata Repository for granules and collections",
	Long: `cmrquery builds validated CMR search queries from flags or config presets,
runs them against the CMR search API and prints the matching entries.

Entries can be narrowed further with --where expressions, for example:
  cmrquery granules --short-name MOD09GA --point -63.6,44.6 --where 'num(cloud_cover) < 20'`,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: finalizeApp,
	SilenceUsage:       true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "json", "output format (json|yaml)")

	rootCmd.AddCommand(granulesCmd)
	rootCmd.AddCommand(collectionsCmd)
	rootCmd.AddCommand(presetCmd)
	rootCmd.AddCommand(urlCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	if _, err := newEncoder(outputFormat, os.Stdout); err != nil {
		return err
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	registry = prometheus.NewRegistry()
	client, err = cmr.NewClient(cfg.CMR.URL, logger,
		cmr.WithTimeout(cfg.CMR.Timeout),
		cmr.WithUserAgent(cfg.CMR.UserAgent),
		cmr.WithConcurrency(cfg.CMR.Concurrency),
		cmr.WithMetrics(registry),
	)
	if err != nil {
		return fmt.Errorf("failed to create CMR client: %w", err)
	}

	filters = filter.NewManager(filter.WithEvaluator(
		filter.NewConcurrentEvaluator(filter.WithWorkers(cfg.CMR.Concurrency)),
	))
	for name, preset := range cfg.Presets {
		if preset.Where == "" {
			continue
		}
		if err := filters.RegisterFilter(name, preset.Where); err != nil {
			return fmt.Errorf("invalid preset %s: %w", name, err)
		}
	}

	logger.Debug().
		Str("url", cfg.CMR.URL).
		Int("presets", len(cfg.Presets)).
		Msg("Initialized CMR client")

	return nil
}

// finalizeApp logs request totals gathered during the command
func finalizeApp(cmd *cobra.Command, args []string) error {
	if registry == nil || logger.GetLevel() > zerolog.DebugLevel {
		return nil
	}

	families, err := registry.Gather()
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to gather request metrics")
		return nil
	}

	for _, family := range families {
		if family.GetName() != "cmr_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			event := logger.Debug()
			for _, label := range metric.GetLabel() {
				event = event.Str(label.GetName(), label.GetValue())
			}
			event.Float64("count", metric.GetCounter().GetValue()).Msg("CMR requests")
		}
	}
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}

	// Console format; no color codes when stderr is redirected
	fd := os.Stderr.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
