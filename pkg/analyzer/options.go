package analyzer

import "log/slog"

// Hooks defines the interface for callbacks invoked by the Engine during a
// run. Implementations allow external observation of progress (TUI, progress
// bar, logging). Implementations MUST be safe for concurrent use: workers
// invoke OnFileStatusUpdate from multiple goroutines.
type Hooks interface {
	// OnFileDiscovered is called once for each input path as it is handed to
	// the worker pool.
	OnFileDiscovered(path string)

	// OnFileStatusUpdate is called when a file transitions between processing
	// states. durationMs is meaningful for terminal states (scanned, failed).
	// message carries the error text for failed files.
	OnFileStatusUpdate(path string, status Status, message string, durationMs int64)

	// OnRunComplete is called exactly once, after all workers have finished
	// and the aggregate has been folded, with the final report.
	OnRunComplete(report Report)
}

// NoOpHooks provides a default Hooks implementation that does nothing.
type NoOpHooks struct{}

func (h *NoOpHooks) OnFileDiscovered(path string) {}
func (h *NoOpHooks) OnFileStatusUpdate(path string, status Status, message string, durationMs int64) {
}
func (h *NoOpHooks) OnRunComplete(report Report) {}

// ScannerFactory creates the per-run FileScanner. Overridable in tests to
// substitute failing or instrumented scanners.
type ScannerFactory func(opts *Options, logger slog.Handler) (*FileScanner, error)

// Options defines the complete configuration for an analysis run. Populated
// by the CLI layer from defaults, config file, environment, and flags, then
// passed to NewEngine which validates it.
type Options struct {
	// Paths is the explicit list of log files to scan. Glob expansion happens
	// in the CLI layer; the engine treats every entry as a literal file path.
	Paths []string `mapstructure:"paths"`

	// Concurrency is the worker pool size. 0 selects runtime.NumCPU().
	// Negative values fail validation.
	Concurrency int `mapstructure:"concurrency"`

	// EncodingFallback enables re-decoding files that are not valid UTF-8
	// using FallbackEncoding.
	EncodingFallback bool `mapstructure:"encodingFallback"`

	// FallbackEncoding names the lenient encoding used when UTF-8 decoding
	// fails. Defaults to latin-1.
	FallbackEncoding string `mapstructure:"fallbackEncoding"`

	// Verbose enables debug-level logging.
	Verbose bool `mapstructure:"verbose"`

	// TuiEnabled requests the terminal UI when the CLI runs interactively.
	// Carried here so the config file can set it; the engine ignores it.
	TuiEnabled bool `mapstructure:"tui"`

	// AppVersion is injected by the CLI for the run summary.
	AppVersion string `mapstructure:"-"`

	// ConfigFilePath records which config file was loaded, for logging only.
	ConfigFilePath string `mapstructure:"-"`

	// EventHooks receives progress callbacks. Nil defaults to NoOpHooks.
	EventHooks Hooks `mapstructure:"-"`

	// Logger is the slog handler the engine and its components log through.
	// Required.
	Logger slog.Handler `mapstructure:"-"`

	// ScannerFactory overrides FileScanner construction. Nil uses the default.
	ScannerFactory ScannerFactory `mapstructure:"-"`
}
