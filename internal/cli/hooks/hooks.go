// Package hooks bridges analyzer engine events to the CLI's progress
// surfaces: the bubbletea TUI when running interactively, or a plain
// progress bar on a TTY without the TUI.
package hooks

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/valed-dm/loganalyzer/pkg/analyzer"
)

// FileDiscoveredMsg is sent to the TUI when a file enters the queue.
type FileDiscoveredMsg struct {
	Path string
}

// FileStatusUpdateMsg is sent to the TUI when a file changes state.
type FileStatusUpdateMsg struct {
	Path       string
	Status     analyzer.Status
	Message    string
	DurationMs int64
}

// RunCompleteMsg is sent to the TUI when the run has finished.
type RunCompleteMsg struct {
	Report analyzer.Report
}

// TUIProgram abstracts the bubbletea program so tests can substitute a
// recorder. tea.Program satisfies it.
type TUIProgram interface {
	Send(msg tea.Msg)
}

// ProgressBar abstracts the progress bar used in non-TUI TTY mode.
// progressbar.ProgressBar satisfies it.
type ProgressBar interface {
	Add(num int) error
	Describe(description string)
}

// CLIHooks implements analyzer.Hooks, forwarding events to whichever
// surface is active. Either program or bar may be nil. The engine calls
// these methods from multiple worker goroutines, so bar access is
// serialized; tea.Program.Send is already safe for concurrent use.
type CLIHooks struct {
	program TUIProgram

	mu  sync.Mutex
	bar ProgressBar
}

// NewTUIHooks returns hooks that forward events to a bubbletea program.
func NewTUIHooks(program TUIProgram) *CLIHooks {
	return &CLIHooks{program: program}
}

// NewProgressBarHooks returns hooks that advance a progress bar as files
// reach a terminal state.
func NewProgressBarHooks(bar ProgressBar) *CLIHooks {
	return &CLIHooks{bar: bar}
}

func (h *CLIHooks) OnFileDiscovered(path string) {
	if h.program != nil {
		h.program.Send(FileDiscoveredMsg{Path: path})
	}
}

func (h *CLIHooks) OnFileStatusUpdate(path string, status analyzer.Status, message string, durationMs int64) {
	if h.program != nil {
		h.program.Send(FileStatusUpdateMsg{
			Path:       path,
			Status:     status,
			Message:    message,
			DurationMs: durationMs,
		})
	}
	if h.bar != nil && (status == analyzer.StatusScanned || status == analyzer.StatusFailed) {
		h.mu.Lock()
		h.bar.Describe(path)
		_ = h.bar.Add(1)
		h.mu.Unlock()
	}
}

func (h *CLIHooks) OnRunComplete(report analyzer.Report) {
	if h.program != nil {
		h.program.Send(RunCompleteMsg{Report: report})
	}
}
