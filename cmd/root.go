// Package cmd implements the wander CLI command tree.
// This file defines the root command and registers all global persistent flags.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dstrand/wander/internal/app"
	"github.com/dstrand/wander/internal/config"
)

// globalFlags holds the parsed values of all persistent (global) flags.
// Commands read from this struct via the deps they receive.
var globalFlags struct {
	BaseURL string
	Format  string
	Out     string
	Timeout string
	Rate    float64
	Quiet   bool
	Verbose bool
	Debug   bool
}

// rootCmd is the base command. Running `wander` with no subcommand
// prints help.
var rootCmd = &cobra.Command{
	Use:   "wander",
	Short: "AI travel planning from the command line",
	Long: `wander is a command-line client for the holiday-planner backend: generate
destination-specific itineraries or destination suggestions, enrich them with
weather and places data, and manage your saved trips.

Quick start:
  wander register --name "Ada" --email ada@example.com --password secret
  wander login ada@example.com secret
  wander plan --destination Paris --budget 1500 --days 4 --people 2 --group couple
  wander trips list`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if globalFlags.Debug {
			level = slog.LevelDebug
		} else if globalFlags.Verbose {
			level = slog.LevelInfo
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute is the entry point called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// buildDeps resolves config and constructs the dependency container.
// Called at the start of each command's RunE; the caller must Close it.
func buildDeps() (*app.Deps, error) {
	cfg, err := config.Load(globalFlags.BaseURL)
	if err != nil {
		return nil, err
	}

	// Apply CLI flag overrides
	cfg.Quiet = globalFlags.Quiet
	cfg.Verbose = globalFlags.Verbose
	cfg.Debug = globalFlags.Debug

	if globalFlags.Format != "" {
		cfg.Format = globalFlags.Format
	}
	if globalFlags.Timeout != "" {
		if d, err2 := time.ParseDuration(globalFlags.Timeout); err2 == nil {
			cfg.Timeout = d
		}
	}
	if globalFlags.Rate > 0 {
		cfg.Rate = globalFlags.Rate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return app.New(cfg)
}

func init() {
	pf := rootCmd.PersistentFlags()

	pf.StringVar(&globalFlags.BaseURL, "base-url", "",
		"backend base URL (overrides env WANDER_BASE_URL and config.json)")
	pf.StringVar(&globalFlags.Format, "format", "",
		"output format: table|json|jsonl|md (default: table)")
	pf.StringVar(&globalFlags.Out, "out", "",
		"write output to file instead of stdout")
	pf.StringVar(&globalFlags.Timeout, "timeout", "",
		"HTTP request timeout (e.g. 30s, 2m); generation calls are slow")
	pf.Float64Var(&globalFlags.Rate, "rate", 0,
		"max backend requests per second (default: 5.0)")
	pf.BoolVar(&globalFlags.Quiet, "quiet", false,
		"suppress all non-error output")
	pf.BoolVar(&globalFlags.Verbose, "verbose", false,
		"log request progress")
	pf.BoolVar(&globalFlags.Debug, "debug", false,
		"log HTTP requests and responses (token never logged)")
}
