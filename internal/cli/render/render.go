// Package render turns an analyzer.Report into the output formats the CLI
// offers: a human-readable handlers table, a CSV export, machine-readable
// JSON and YAML, and the level-detection view.
package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/valed-dm/loganalyzer/pkg/analyzer"
)

// Supported report format names, as accepted by the --report flag.
const (
	FormatHandlers = "handlers"
	FormatLevels   = "levels"
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// Formats lists the valid format names for flag validation and help text.
var Formats = []string{FormatHandlers, FormatLevels, FormatCSV, FormatJSON, FormatYAML}

// columnPadding is the gap appended to each column's widest cell in the
// handlers table.
const columnPadding = 4

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	totalStyle   = lipgloss.NewStyle().Bold(true)
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// Report renders rep in the requested format. styled enables lipgloss
// colors and applies only to the handlers table; all other formats are
// plain by nature.
func Report(format string, rep analyzer.Report, styled bool) (string, error) {
	switch format {
	case FormatHandlers:
		return HandlersTable(rep, styled), nil
	case FormatLevels:
		return LevelsView(rep), nil
	case FormatCSV:
		return HandlersCSV(rep)
	case FormatJSON:
		return ReportJSON(rep)
	case FormatYAML:
		return ReportYAML(rep)
	default:
		return "", fmt.Errorf("unknown report format %q (valid: %s)", format, strings.Join(Formats, ", "))
	}
}

// HandlersTable renders the per-handler/per-level count table: a total
// line, one row per handler sorted by path, and a totals footer. Column
// widths track the widest cell in each column.
func HandlersTable(rep analyzer.Report, styled bool) string {
	stats := rep.Stats
	handlers := stats.Handlers()

	headers := make([]string, 0, len(analyzer.Levels)+1)
	headers = append(headers, "HANDLER")
	for _, lv := range analyzer.Levels {
		headers = append(headers, string(lv))
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}

	levelTotals := make(map[analyzer.Level]int, len(analyzer.Levels))
	rows := make([][]string, 0, len(handlers))
	for _, handler := range handlers {
		row := make([]string, 0, len(headers))
		row = append(row, handler)
		for _, lv := range analyzer.Levels {
			n := stats.HandlerCount(handler, lv)
			levelTotals[lv] += n
			row = append(row, strconv.Itoa(n))
		}
		rows = append(rows, row)
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	footer := make([]string, 0, len(headers))
	footer = append(footer, "")
	for _, lv := range analyzer.Levels {
		footer = append(footer, strconv.Itoa(levelTotals[lv]))
	}
	for i, cell := range footer {
		if len(cell) > widths[i] {
			widths[i] = len(cell)
		}
	}

	pad := func(cells []string) string {
		var b strings.Builder
		for i, cell := range cells {
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-len(cell)+columnPadding))
		}
		return strings.TrimRight(b.String(), " ")
	}

	var b strings.Builder
	totalLine := fmt.Sprintf("Total requests: %d", stats.TotalRequests())
	headerLine := pad(headers)
	footerLine := pad(footer)
	if styled {
		totalLine = totalStyle.Render(totalLine)
		headerLine = headerStyle.Render(headerLine)
		footerLine = totalStyle.Render(footerLine)
	}
	b.WriteString(totalLine)
	b.WriteString("\n\n")
	b.WriteString(headerLine)
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(pad(row))
		b.WriteString("\n")
	}
	b.WriteString(footerLine)
	b.WriteString("\n")

	if rep.Summary.Partial {
		note := "Note: run was interrupted; counts cover completed files only."
		if styled {
			note = summaryStyle.Render(note)
		}
		b.WriteString("\n")
		b.WriteString(note)
		b.WriteString("\n")
	}
	return b.String()
}

// LevelsView renders the level-detection output: the set of severity levels
// observed on matched lines, alphabetically sorted.
func LevelsView(rep analyzer.Report) string {
	seen := rep.Stats.SeenLevels()
	names := make([]string, 0, len(seen))
	for _, lv := range seen {
		names = append(names, string(lv))
	}
	sort.Strings(names)
	return fmt.Sprintf("Found log levels in django.request: [%s]\n", strings.Join(names, ", "))
}

// HandlersCSV renders the handler table as CSV with a fixed header row.
func HandlersCSV(rep analyzer.Report) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, 0, len(analyzer.Levels)+2)
	header = append(header, "HANDLER")
	for _, lv := range analyzer.Levels {
		header = append(header, string(lv))
	}
	header = append(header, "TOTAL")
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("writing csv header: %w", err)
	}

	for _, handler := range rep.Stats.Handlers() {
		row := make([]string, 0, len(header))
		row = append(row, handler)
		rowTotal := 0
		for _, lv := range analyzer.Levels {
			n := rep.Stats.HandlerCount(handler, lv)
			rowTotal += n
			row = append(row, strconv.Itoa(n))
		}
		row = append(row, strconv.Itoa(rowTotal))
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("writing csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}
	return buf.String(), nil
}

// reportView is the serialization shape shared by the JSON and YAML
// renderers. Maps are converted to plain string keys so the encoders
// produce predictable documents.
type reportView struct {
	Summary         analyzer.RunSummary       `json:"summary" yaml:"summary"`
	Handlers        map[string]map[string]int `json:"handlers" yaml:"handlers"`
	Methods         map[string]int            `json:"methods" yaml:"methods"`
	LevelsSeen      []string                  `json:"levelsSeen" yaml:"levelsSeen"`
	PerFileUnparsed map[string]int            `json:"perFileUnparsed,omitempty" yaml:"perFileUnparsed,omitempty"`
	Failures        []analyzer.FileError      `json:"failures,omitempty" yaml:"failures,omitempty"`
}

func newReportView(rep analyzer.Report) reportView {
	handlers := make(map[string]map[string]int, len(rep.Stats.PerHandler))
	for path, levels := range rep.Stats.PerHandler {
		counts := make(map[string]int, len(levels))
		for lv, n := range levels {
			counts[string(lv)] = n
		}
		handlers[path] = counts
	}

	seen := rep.Stats.SeenLevels()
	levelNames := make([]string, 0, len(seen))
	for _, lv := range seen {
		levelNames = append(levelNames, string(lv))
	}
	sort.Strings(levelNames)

	var unparsed map[string]int
	if len(rep.Stats.PerFileUnparsed) > 0 {
		unparsed = rep.Stats.PerFileUnparsed
	}

	return reportView{
		Summary:         rep.Summary,
		Handlers:        handlers,
		Methods:         rep.Stats.PerMethod,
		LevelsSeen:      levelNames,
		PerFileUnparsed: unparsed,
		Failures:        rep.Failures,
	}
}

// ReportJSON renders the full report as indented JSON.
func ReportJSON(rep analyzer.Report) (string, error) {
	data, err := json.MarshalIndent(newReportView(rep), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling report to JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// ReportYAML renders the full report as YAML.
func ReportYAML(rep analyzer.Report) (string, error) {
	data, err := yaml.Marshal(newReportView(rep))
	if err != nil {
		return "", fmt.Errorf("marshaling report to YAML: %w", err)
	}
	return string(data), nil
}
