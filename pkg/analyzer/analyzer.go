// Package analyzer implements concurrent aggregation of Django request logs.
//
// The core pipeline is: a LineExtractor classifies raw lines into
// RequestRecords, a FileScanner folds one file into a PartialStats, and the
// Engine runs scanners across a bounded worker pool and merges the partials
// into an order-independent AggregateStats, returned inside a Report.
//
// The package is UI-agnostic. Progress is exposed through the Hooks
// interface and logging through an injected slog.Handler, so the same core
// serves the CLI, tests, and embedding programs.
package analyzer

import "context"

// Analyze is the primary programmatic entry point. It builds an Engine from
// the options and executes the run.
func Analyze(ctx context.Context, opts Options) (Report, error) {
	engine, err := NewEngine(ctx, opts)
	if err != nil {
		return Report{}, err
	}
	return engine.Run()
}
