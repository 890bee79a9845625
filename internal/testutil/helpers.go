// Package testutil provides shared fixtures for tests: log-file writers and
// a recording Hooks implementation.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/valed-dm/loganalyzer/pkg/analyzer"
)

// WriteLogFile writes lines (joined with newlines) to dir/name and returns
// the full path.
func WriteLogFile(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
	return path
}

// WriteRawFile writes arbitrary bytes to dir/name, for fixtures that are
// deliberately not valid UTF-8.
func WriteRawFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
	return path
}

// StatusEvent is one recorded OnFileStatusUpdate call.
type StatusEvent struct {
	Path    string
	Status  analyzer.Status
	Message string
}

// RecordingHooks captures every engine callback for assertions. Safe for
// concurrent use.
type RecordingHooks struct {
	mu           sync.Mutex
	Discovered   []string
	StatusEvents []StatusEvent
	Completed    []analyzer.Report
}

func (h *RecordingHooks) OnFileDiscovered(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Discovered = append(h.Discovered, path)
}

func (h *RecordingHooks) OnFileStatusUpdate(path string, status analyzer.Status, message string, durationMs int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.StatusEvents = append(h.StatusEvents, StatusEvent{Path: path, Status: status, Message: message})
}

func (h *RecordingHooks) OnRunComplete(report analyzer.Report) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Completed = append(h.Completed, report)
}

// StatusesFor returns the recorded status sequence for one path.
func (h *RecordingHooks) StatusesFor(path string) []analyzer.Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []analyzer.Status
	for _, ev := range h.StatusEvents {
		if ev.Path == path {
			out = append(out, ev.Status)
		}
	}
	return out
}
