package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"
)

// Engine coordinates a full analysis run: it fans input paths out to a
// bounded worker pool, folds the resulting per-file statistics into an
// aggregate, and assembles the final Report. The fold relies on the merge
// being commutative and associative, so worker completion order never
// affects the result.
type Engine struct {
	opts        *Options
	logger      *slog.Logger
	hooks       Hooks
	scanner     *FileScanner
	concurrency int

	ctx        context.Context
	cancelFunc context.CancelFunc
}

// scanResult carries one worker's outcome to the aggregator goroutine.
type scanResult struct {
	path  string
	stats *PartialStats
	err   error
}

// NewEngine validates the options and prepares a run. Validation failures
// wrap ErrConfigValidation. The supplied context governs the whole run;
// cancelling it stops dispatching and interrupts in-flight scans.
func NewEngine(ctx context.Context, opts Options) (*Engine, error) {
	if opts.Logger == nil {
		return nil, fmt.Errorf("%w: logger is required", ErrConfigValidation)
	}
	if opts.Concurrency < 0 {
		return nil, fmt.Errorf("%w: concurrency cannot be negative (got %d)", ErrConfigValidation, opts.Concurrency)
	}
	if opts.EventHooks == nil {
		opts.EventHooks = &NoOpHooks{}
	}
	if opts.FallbackEncoding == "" {
		opts.FallbackEncoding = DefaultFallbackEncoding
	}

	concurrency := opts.Concurrency
	if concurrency == 0 {
		concurrency = runtime.NumCPU()
	}

	factory := opts.ScannerFactory
	if factory == nil {
		factory = NewFileScanner
	}
	scanner, err := factory(&opts, opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("creating file scanner: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	return &Engine{
		opts:        &opts,
		logger:      slog.New(opts.Logger).With("component", "engine"),
		hooks:       opts.EventHooks,
		scanner:     scanner,
		concurrency: concurrency,
		ctx:         runCtx,
		cancelFunc:  cancel,
	}, nil
}

// Run executes the analysis. It always returns a Report; when the context
// is cancelled mid-run the report covers the files that completed and
// Summary.Partial is true, and the context's error is returned alongside it.
// An empty path list is not an error and yields a zero aggregate.
func (e *Engine) Run() (Report, error) {
	defer e.cancelFunc()
	startTime := time.Now()

	e.logger.Info("starting analysis run",
		"files", len(e.opts.Paths),
		"concurrency", e.concurrency,
	)

	pathsChan := make(chan string, e.concurrency)
	resultsChan := make(chan scanResult, e.concurrency)

	var workerWg sync.WaitGroup
	for i := 0; i < e.concurrency; i++ {
		workerWg.Add(1)
		go e.scanWorker(&workerWg, pathsChan, resultsChan)
	}

	go func() {
		defer close(pathsChan)
		for _, path := range e.opts.Paths {
			e.hooks.OnFileDiscovered(path)
			select {
			case pathsChan <- path:
			case <-e.ctx.Done():
				return
			}
		}
	}()

	aggregate := NewAggregateStats()
	var failures []FileError
	scanned := 0

	var aggWg sync.WaitGroup
	aggWg.Add(1)
	go func() {
		defer aggWg.Done()
		for res := range resultsChan {
			if res.err != nil {
				failures = append(failures, FileError{Path: res.path, Error: res.err.Error()})
				continue
			}
			aggregate.Merge(res.stats)
			scanned++
		}
	}()

	workerWg.Wait()
	close(resultsChan)
	aggWg.Wait()

	partial := e.ctx.Err() != nil
	sort.Slice(failures, func(i, j int) bool { return failures[i].Path < failures[j].Path })

	report := Report{
		Summary: RunSummary{
			TotalFiles:      len(e.opts.Paths),
			ScannedCount:    scanned,
			FailedCount:     len(failures),
			TotalLines:      aggregate.TotalLines,
			UnparsedLines:   aggregate.UnparsedLines,
			TotalRequests:   aggregate.TotalRequests(),
			Partial:         partial,
			DurationSeconds: time.Since(startTime).Seconds(),
			Concurrency:     e.concurrency,
			Timestamp:       startTime.UTC(),
			AppVersion:      e.opts.AppVersion,
			SchemaVersion:   ReportSchemaVersion,
		},
		Stats:    aggregate,
		Failures: failures,
	}

	e.hooks.OnRunComplete(report)
	e.logger.Info("analysis run finished",
		"scanned", scanned,
		"failed", len(failures),
		"requests", report.Summary.TotalRequests,
		"partial", partial,
		"duration", time.Since(startTime).Round(time.Millisecond),
	)

	if partial {
		return report, e.ctx.Err()
	}
	return report, nil
}

// scanWorker consumes paths until the channel closes, emitting one result
// per file. Cancellation errors are not forwarded as results; the run-level
// partial flag covers them.
func (e *Engine) scanWorker(wg *sync.WaitGroup, paths <-chan string, results chan<- scanResult) {
	defer wg.Done()
	for path := range paths {
		e.hooks.OnFileStatusUpdate(path, StatusScanning, "", 0)
		fileStart := time.Now()

		stats, err := e.scanner.Scan(e.ctx, path)
		elapsed := time.Since(fileStart).Milliseconds()

		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			e.logger.Warn("file scan failed", "path", path, "error", err)
			e.hooks.OnFileStatusUpdate(path, StatusFailed, err.Error(), elapsed)
			results <- scanResult{path: path, err: err}
			continue
		}

		e.hooks.OnFileStatusUpdate(path, StatusScanned, "", elapsed)
		results <- scanResult{path: path, stats: stats}
	}
}
