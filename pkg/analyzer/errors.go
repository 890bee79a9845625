package analyzer

import "errors"

// Exported error variables. These represent the categories of failures the
// analyzer can surface. Callers check against them using errors.Is.

var (
	// ErrConfigValidation indicates that the provided Options failed the
	// validation checks performed before any scanning begins (nil logger,
	// negative concurrency, and so on). This is the only error class that
	// prevents a run from starting.
	ErrConfigValidation = errors.New("invalid configuration options provided")

	// ErrFileAccess indicates a log file could not be opened (missing file,
	// permission denied). Recorded against that file in Report.Failures; it
	// never aborts the rest of the run.
	ErrFileAccess = errors.New("cannot access log file")

	// ErrReadFailed indicates an I/O failure after the file was opened, for
	// example a line exceeding the scanner's maximum buffer. Like
	// ErrFileAccess it is recorded per file and is non-fatal to the run.
	ErrReadFailed = errors.New("failed to read log file")
)
