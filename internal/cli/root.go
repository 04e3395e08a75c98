// Package cli implements the harscope command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/usestring/harscope/internal/cache"
	"github.com/usestring/harscope/internal/config"
	"github.com/usestring/harscope/internal/logging"
	"github.com/usestring/harscope/internal/report"
	"github.com/usestring/harscope/pkg/extract"
)

// Version is injected during build
var Version = "dev"

// globalOptions holds the persistent flags and the configuration they
// override.
type globalOptions struct {
	cfg *config.Config

	jsonOutput        bool
	logLevel          string
	logFile           string
	extractor         string
	postDataLimit     int
	responseThreshold int
	responseLimit     int
	workers           int

	logCleanup func() error
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root, _ := newRootCmd()
	return root
}

func newRootCmd() (*cobra.Command, *globalOptions) {
	g := &globalOptions{}

	root := &cobra.Command{
		Use:   "harscope",
		Short: "harscope inspects HAR captures of a course-management portal",
		Long: `harscope loads HTTP archive (HAR) files, filters entries by URL substring,
prints request/response summaries and extracts <select> options and
data-content attributes from HTML responses.

Configuration is read from HARSCOPE_* and LOG_* environment variables.
Flags override the environment.`,
		Version: Version,
		// No Run function here means 'harscope' with no args prints help.
		SilenceUsage:  true,
		SilenceErrors: true, // We handle errors in Execute()
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&g.jsonOutput, "json", false, "Write JSON lines instead of text")
	flags.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error (default: LOG_LEVEL or info)")
	flags.StringVar(&g.logFile, "log-file", "", "Write logs to this file instead of stderr (default: LOG_FILE)")
	flags.StringVar(&g.extractor, "extractor", "", "Select extractor: regex or markup (default: HARSCOPE_EXTRACTOR or regex)")
	flags.IntVar(&g.postDataLimit, "postdata-limit", config.DefaultPostDataLimitValue, "Max PostData characters, 0 for no truncation")
	flags.IntVar(&g.responseThreshold, "response-threshold", config.DefaultResponseThresholdValue, "Only print responses shorter than this many characters, 0 for no threshold")
	flags.IntVar(&g.responseLimit, "response-limit", config.DefaultResponseLimitValue, "Max Response characters, 0 for no truncation")
	flags.IntVar(&g.workers, "workers", config.DefaultLoadWorkersValue, "Archives parsed concurrently")

	root.AddCommand(
		newReportCmd(g),
		newFilterCmd(g),
		newSelectsCmd(g),
		newPairsCmd(g),
		newQueryCmd(g),
		newSchemaCmd(),
		newServeCmd(g),
	)
	return root, g
}

// Execute runs the command tree and exits non-zero on failure.
// This is called by main.main().
func Execute(ctx context.Context) {
	root, g := newRootCmd()
	err := root.ExecuteContext(ctx)
	if cerr := g.close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// init loads configuration, applies flag overrides and sets up logging.
func (g *globalOptions) init(cmd *cobra.Command) error {
	cfg := config.Load()
	flags := cmd.Flags()

	if flags.Changed("log-level") {
		cfg.LogLevel = g.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = g.logFile
	}
	if flags.Changed("extractor") {
		cfg.Extractor = g.extractor
	}
	for _, o := range []struct {
		name string
		src  int
		dst  *int
	}{
		{"postdata-limit", g.postDataLimit, &cfg.PostDataLimit},
		{"response-threshold", g.responseThreshold, &cfg.ResponseThreshold},
		{"response-limit", g.responseLimit, &cfg.ResponseLimit},
		{"workers", g.workers, &cfg.LoadWorkers},
	} {
		if !flags.Changed(o.name) {
			continue
		}
		if o.src < 0 {
			return fmt.Errorf("--%s must not be negative", o.name)
		}
		*o.dst = o.src
	}
	if cfg.PatternCacheSize <= 0 {
		cfg.PatternCacheSize = config.DefaultPatternCacheSizeValue
	}

	cleanup, err := logging.Setup(logging.FromConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	g.cfg = cfg
	g.logCleanup = cleanup
	return nil
}

func (g *globalOptions) close() error {
	if g.logCleanup == nil {
		return nil
	}
	err := g.logCleanup()
	g.logCleanup = nil
	return err
}

// newRunner builds a report runner from the effective configuration.
func (g *globalOptions) newRunner() (*report.Runner, error) {
	patterns, err := cache.NewPatternCache(g.cfg.PatternCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create pattern cache: %w", err)
	}
	extractor, err := extract.New(g.cfg.Extractor, patterns)
	if err != nil {
		return nil, err
	}
	return report.NewRunner(report.Options{
		Extractor:       extractor,
		Patterns:        patterns,
		Limits:          report.LimitsFromConfig(g.cfg),
		MaxQueryResults: g.cfg.MaxQueryResults,
		Logger:          slog.Default(),
	}), nil
}

func (g *globalOptions) newSink(w io.Writer) report.Sink {
	if g.jsonOutput {
		return report.NewJSONSink(w)
	}
	return report.NewTextSink(w)
}
