package analyzer

import "time"

// FileError details a file that could not be scanned.
type FileError struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// RunSummary provides aggregate counts and metadata about a completed run.
type RunSummary struct {
	TotalFiles      int       `json:"totalFiles" yaml:"totalFiles"`
	ScannedCount    int       `json:"scannedCount" yaml:"scannedCount"`
	FailedCount     int       `json:"failedCount" yaml:"failedCount"`
	TotalLines      int       `json:"totalLines" yaml:"totalLines"`
	UnparsedLines   int       `json:"unparsedLines" yaml:"unparsedLines"`
	TotalRequests   int       `json:"totalRequests" yaml:"totalRequests"`
	Partial         bool      `json:"partial" yaml:"partial"`
	DurationSeconds float64   `json:"durationSeconds" yaml:"durationSeconds"`
	Concurrency     int       `json:"concurrency" yaml:"concurrency"`
	Timestamp       time.Time `json:"timestamp" yaml:"timestamp"`
	AppVersion      string    `json:"appVersion,omitempty" yaml:"appVersion,omitempty"`
	SchemaVersion   string    `json:"schemaVersion" yaml:"schemaVersion"`
}

// Report is the complete result of an analysis run: the merged statistics,
// per-file failures, and run metadata. Map iteration order is undefined;
// renderers use the sorted accessors on AggregateStats for stable output.
type Report struct {
	Summary  RunSummary      `json:"summary" yaml:"summary"`
	Stats    *AggregateStats `json:"stats" yaml:"stats"`
	Failures []FileError     `json:"failures,omitempty" yaml:"failures,omitempty"`
}
