package analyzer

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// timestampLayout matches Django's default asctime format, which uses a
// comma before the milliseconds.
const timestampLayout = "2006-01-02 15:04:05,000"

const (
	tsPattern    = `(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3})`
	levelPattern = `(DEBUG|INFO|WARNING|ERROR|CRITICAL)`
)

// The three recognized django.request line shapes, tried in order. The level
// alternation is deliberately closed: a line with any other level token falls
// through every rule and counts as unparsed.
var (
	// Full format: METHOD PATH STATUS DURATIONms.
	fullLineRe = regexp.MustCompile(`^` + tsPattern + ` ` + levelPattern + ` django\.request: (\S+) (\S+) (\d{3}) (\d+)ms$`)

	// Minimal format: METHOD PATH with no status or duration.
	minimalLineRe = regexp.MustCompile(`^` + tsPattern + ` ` + levelPattern + ` django\.request: (\S+) (\S+)$`)

	// Server-error format: the handler path follows the error prefix, often
	// with a request id or exception detail after it.
	serverErrorRe = regexp.MustCompile(`^` + tsPattern + ` ` + levelPattern + ` django\.request: Internal Server Error: (\S+)`)
)

// extractRule attempts to turn a line into a RequestRecord. Rules report
// no-match by returning false; they never error.
type extractRule func(line string) (RequestRecord, bool)

// LineExtractor classifies raw log lines against an ordered rule table.
// The first matching rule wins. It is stateless and safe for concurrent use.
type LineExtractor struct {
	rules []extractRule
}

// NewLineExtractor returns an extractor with the standard django.request
// rules in priority order: server-error, full, minimal. Server-error is
// checked first because its lines also satisfy the minimal shape, which
// would otherwise record "Internal" as a method.
func NewLineExtractor() *LineExtractor {
	return &LineExtractor{
		rules: []extractRule{extractServerError, extractFull, extractMinimal},
	}
}

// Extract classifies a single line. The boolean result distinguishes a
// matched django.request line from everything else (other loggers,
// tracebacks, blank lines, unknown levels). Leading and trailing whitespace
// is ignored.
func (e *LineExtractor) Extract(line string) (RequestRecord, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return RequestRecord{}, false
	}
	for _, rule := range e.rules {
		if rec, ok := rule(line); ok {
			return rec, true
		}
	}
	return RequestRecord{}, false
}

func extractFull(line string) (RequestRecord, bool) {
	m := fullLineRe.FindStringSubmatch(line)
	if m == nil {
		return RequestRecord{}, false
	}
	ts, err := time.Parse(timestampLayout, m[1])
	if err != nil {
		return RequestRecord{}, false
	}
	status, err := strconv.Atoi(m[5])
	if err != nil {
		return RequestRecord{}, false
	}
	duration, err := strconv.Atoi(m[6])
	if err != nil {
		return RequestRecord{}, false
	}
	return RequestRecord{
		Timestamp:   ts,
		Level:       Level(m[2]),
		Method:      m[3],
		Path:        m[4],
		Status:      status,
		HasStatus:   true,
		DurationMs:  duration,
		HasDuration: true,
	}, true
}

func extractMinimal(line string) (RequestRecord, bool) {
	m := minimalLineRe.FindStringSubmatch(line)
	if m == nil {
		return RequestRecord{}, false
	}
	ts, err := time.Parse(timestampLayout, m[1])
	if err != nil {
		return RequestRecord{}, false
	}
	return RequestRecord{
		Timestamp: ts,
		Level:     Level(m[2]),
		Method:    m[3],
		Path:      m[4],
	}, true
}

func extractServerError(line string) (RequestRecord, bool) {
	m := serverErrorRe.FindStringSubmatch(line)
	if m == nil {
		return RequestRecord{}, false
	}
	ts, err := time.Parse(timestampLayout, m[1])
	if err != nil {
		return RequestRecord{}, false
	}
	path := cleanErrorPath(m[3])
	if path == "" {
		return RequestRecord{}, false
	}
	return RequestRecord{
		Timestamp: ts,
		Level:     Level(m[2]),
		Path:      path,
	}, true
}

// cleanErrorPath strips the request-id bracket and any trailing colon that
// Django appends after the handler path in server-error lines.
func cleanErrorPath(token string) string {
	if i := strings.Index(token, "["); i >= 0 {
		token = token[:i]
	}
	token = strings.TrimSuffix(strings.TrimSpace(token), ":")
	return token
}
