// Package cli orchestrates a full command invocation: it picks the progress
// surface (TUI, progress bar, or plain logging), runs the analyzer, and
// renders the report to stdout or the requested output file.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/valed-dm/loganalyzer/internal/cli/config"
	"github.com/valed-dm/loganalyzer/internal/cli/hooks"
	"github.com/valed-dm/loganalyzer/internal/cli/render"
	"github.com/valed-dm/loganalyzer/internal/cli/ui"
	"github.com/valed-dm/loganalyzer/pkg/analyzer"
)

type runResult struct {
	report analyzer.Report
	err    error
}

// Run executes the analysis described by settings and writes the rendered
// report. It returns a non-nil error only for failures that should produce
// a non-zero exit: configuration problems, output write failures, or a run
// in which no file could be read. Per-file failures are listed on stderr
// and do not fail the command.
func Run(ctx context.Context, settings config.Settings, logger *slog.Logger) error {
	report, err := execute(ctx, settings, logger)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			logger.Warn("run interrupted, reporting completed files only")
		} else {
			return err
		}
	}

	for _, failure := range report.Failures {
		fmt.Fprintf(os.Stderr, "failed to read %s: %s\n", failure.Path, failure.Error)
	}
	if report.Summary.TotalFiles > 0 && report.Summary.ScannedCount == 0 && !report.Summary.Partial {
		return fmt.Errorf("no log files could be read (%d failed)", report.Summary.FailedCount)
	}

	styled := settings.OutputPath == "" &&
		settings.ReportFormat == render.FormatHandlers &&
		term.IsTerminal(int(os.Stdout.Fd()))

	rendered, err := render.Report(settings.ReportFormat, report, styled)
	if err != nil {
		return err
	}

	if settings.OutputPath != "" {
		return writeOutput(settings.OutputPath, rendered, logger)
	}
	fmt.Print(rendered)
	return nil
}

// execute runs the analyzer with the appropriate progress surface.
func execute(ctx context.Context, settings config.Settings, logger *slog.Logger) (analyzer.Report, error) {
	opts := settings.Analyzer

	interactive := term.IsTerminal(int(os.Stderr.Fd()))
	useTUI := interactive && opts.TuiEnabled && !opts.Verbose

	switch {
	case useTUI:
		return executeWithTUI(ctx, opts, logger)
	case interactive:
		bar := progressbar.NewOptions(len(opts.Paths),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("scanning"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		opts.EventHooks = hooks.NewProgressBarHooks(bar)
		report, err := analyzer.Analyze(ctx, opts)
		_ = bar.Finish()
		return report, err
	default:
		return analyzer.Analyze(ctx, opts)
	}
}

// executeWithTUI runs the analysis in the background while the bubbletea
// program owns the terminal. The model quits itself on the run-complete
// message; if the user quits the view first, the run is cancelled and the
// partial report is used.
func executeWithTUI(ctx context.Context, opts analyzer.Options, logger *slog.Logger) (analyzer.Report, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(ui.NewModel(), tea.WithOutput(os.Stderr))
	opts.EventHooks = hooks.NewTUIHooks(program)

	resultChan := make(chan runResult, 1)
	go func() {
		report, err := analyzer.Analyze(runCtx, opts)
		resultChan <- runResult{report: report, err: err}
	}()

	if _, err := program.Run(); err != nil {
		logger.Warn("terminal UI failed, continuing without it", "error", err)
	}

	select {
	case res := <-resultChan:
		return res.report, res.err
	default:
		// The view exited before the run finished (ctrl+c).
		cancel()
		res := <-resultChan
		return res.report, res.err
	}
}

func writeOutput(path, content string, logger *slog.Logger) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing report to %s: %w", path, err)
	}
	logger.Info("report written", "path", path)
	return nil
}
