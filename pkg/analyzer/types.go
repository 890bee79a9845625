package analyzer

import "time"

// Level is one of the fixed Django log severity levels. The enumeration is
// closed: lines carrying any other level token are treated as unparsed.
type Level string

// Constants representing the recognized severity levels.
const (
	LevelDebug    Level = "DEBUG"
	LevelInfo     Level = "INFO"
	LevelWarning  Level = "WARNING"
	LevelError    Level = "ERROR"
	LevelCritical Level = "CRITICAL"
)

// Levels lists the severity levels in canonical report-column order.
var Levels = []Level{LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical}

// ParseLevel maps a raw token onto the closed level enumeration.
// The comparison is case-sensitive, matching the strictness of the level
// columns in the final report.
func ParseLevel(token string) (Level, bool) {
	switch Level(token) {
	case LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical:
		return Level(token), true
	}
	return "", false
}

// KnownMethods is the set of standard HTTP methods emitted by django.request
// lines. The set is descriptive, not filtering: tokens outside it are still
// accepted and recorded verbatim.
var KnownMethods = map[string]struct{}{
	"GET":    {},
	"POST":   {},
	"PUT":    {},
	"DELETE": {},
	"PATCH":  {},
}

// Status defines the possible processing states of a file during a run.
type Status string

// Constants representing the defined file processing statuses.
const (
	StatusPending  Status = "pending"
	StatusScanning Status = "scanning"
	StatusScanned  Status = "scanned"
	StatusFailed   Status = "failed"
)

// RequestRecord is the structured form of a single matched log line.
// Records are ephemeral: they are produced by the LineExtractor, folded into
// a PartialStats, and discarded.
type RequestRecord struct {
	Timestamp time.Time
	Level     Level
	// Method is the raw method token. Empty for server-error format lines,
	// which carry no method.
	Method string
	// Path is the request endpoint, used verbatim as the aggregation key.
	// No normalization of trailing slashes, query strings, or fragments.
	Path string
	// Status and DurationMs are present only in full-format lines.
	// HasStatus/HasDuration distinguish "absent" from zero.
	Status      int
	HasStatus   bool
	DurationMs  int
	HasDuration bool
}
