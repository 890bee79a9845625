package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valed-dm/loganalyzer/internal/cli"
	"github.com/valed-dm/loganalyzer/internal/cli/config"
	"github.com/valed-dm/loganalyzer/internal/cli/render"
	"github.com/valed-dm/loganalyzer/pkg/analyzer"
)

// Set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "loganalyzer [flags] FILE|GLOB...",
	Short: "Aggregate statistics from Django request logs",
	Long: `loganalyzer scans one or more Django request-log files concurrently and
reports per-handler request counts broken down by severity level.

Positional arguments are file paths or glob patterns (** is supported).
Files that cannot be read are listed individually without failing the run.`,
	Example: `  loganalyzer app1.log app2.log
  loganalyzer 'logs/**/*.log' --report csv --output stats.csv
  loganalyzer app.log --detect-levels
  loganalyzer app.log --report json --concurrency 8`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, logger, err := config.LoadAndValidate(cfgFile, version, cmd.Flags(), args)
		if err != nil {
			return err
		}
		return cli.Run(cmd.Context(), settings, logger)
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.String("report", render.FormatHandlers,
		fmt.Sprintf("report format (%s)", strings.Join(render.Formats, ", ")))
	flags.String("output", "", "write the report to this file instead of stdout")
	flags.Bool("detect-levels", false, "report the set of severity levels found instead of counts")
	flags.Int("concurrency", analyzer.DefaultConcurrency, "number of files scanned in parallel (0 = number of CPUs)")
	flags.Bool("encoding-fallback", analyzer.DefaultEncodingFallback, "re-decode files that are not valid UTF-8")
	flags.String("fallback-encoding", analyzer.DefaultFallbackEncoding, "encoding used when UTF-8 decoding fails")
	flags.Bool("no-tui", false, "disable the interactive progress view")
	flags.BoolP("verbose", "v", analyzer.DefaultVerbose, "enable debug logging (disables the progress view)")
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./loganalyzer.yaml or ~/.config/loganalyzer/)")
}

func execute() int {
	ctx, stop := signalContext()
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, analyzer.ErrConfigValidation) {
			return 2
		}
		return 1
	}
	return 0
}
