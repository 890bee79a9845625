// Package ui implements the interactive terminal view shown while files are
// being scanned: a spinner, live counters, and the most recent per-file
// outcomes. The view quits itself when the run-complete message arrives so
// the final report can be printed to plain stdout.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/valed-dm/loganalyzer/internal/cli/hooks"
	"github.com/valed-dm/loganalyzer/pkg/analyzer"
)

// recentLimit caps the number of per-file result lines kept on screen.
const recentLimit = 8

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

type fileLine struct {
	path       string
	status     analyzer.Status
	message    string
	durationMs int64
}

// Model is the bubbletea model for a scan in progress.
type Model struct {
	spinner    spinner.Model
	discovered int
	scanned    int
	failed     int
	active     map[string]struct{}
	recent     []fileLine
	done       bool
}

// NewModel returns a fresh progress model.
func NewModel() *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	return &Model{
		spinner: sp,
		active:  make(map[string]struct{}),
	}
}

func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil

	case hooks.FileDiscoveredMsg:
		m.discovered++
		return m, nil

	case hooks.FileStatusUpdateMsg:
		switch msg.Status {
		case analyzer.StatusScanning:
			m.active[msg.Path] = struct{}{}
		case analyzer.StatusScanned:
			delete(m.active, msg.Path)
			m.scanned++
			m.pushRecent(fileLine{path: msg.Path, status: msg.Status, durationMs: msg.DurationMs})
		case analyzer.StatusFailed:
			delete(m.active, msg.Path)
			m.failed++
			m.pushRecent(fileLine{path: msg.Path, status: msg.Status, message: msg.Message})
		}
		return m, nil

	case hooks.RunCompleteMsg:
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder

	if m.done {
		b.WriteString(titleStyle.Render("Scan complete"))
	} else {
		b.WriteString(m.spinner.View())
		b.WriteString(titleStyle.Render(" Scanning log files"))
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  %s  %s  %s\n\n",
		dimStyle.Render(fmt.Sprintf("queued: %d", m.discovered)),
		okStyle.Render(fmt.Sprintf("scanned: %d", m.scanned)),
		failStyle.Render(fmt.Sprintf("failed: %d", m.failed)),
	))

	for _, line := range m.recent {
		switch line.status {
		case analyzer.StatusScanned:
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				okStyle.Render("✓"), line.path, dimStyle.Render(fmt.Sprintf("(%dms)", line.durationMs))))
		case analyzer.StatusFailed:
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				failStyle.Render("✗"), line.path, dimStyle.Render(line.message)))
		}
	}
	for path := range m.active {
		b.WriteString(fmt.Sprintf("  %s %s\n", activeStyle.Render("…"), path))
	}

	if !m.done {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  press ctrl+c to cancel"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) pushRecent(line fileLine) {
	m.recent = append(m.recent, line)
	if len(m.recent) > recentLimit {
		m.recent = m.recent[len(m.recent)-recentLimit:]
	}
}
