package render

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/valed-dm/loganalyzer/pkg/analyzer"
)

func sampleReport() analyzer.Report {
	ts := time.Date(2025, 3, 28, 12, 0, 0, 0, time.UTC)
	stats := analyzer.NewAggregateStats()

	p := analyzer.NewPartialStats("a.log")
	p.RecordMatch(analyzer.RequestRecord{Timestamp: ts, Level: analyzer.LevelInfo, Method: "GET", Path: "/api/v1/users/"})
	p.RecordMatch(analyzer.RequestRecord{Timestamp: ts, Level: analyzer.LevelInfo, Method: "GET", Path: "/api/v1/users/"})
	p.RecordMatch(analyzer.RequestRecord{Timestamp: ts, Level: analyzer.LevelError, Method: "POST", Path: "/admin/dashboard/"})
	p.RecordUnparsed()
	stats.Merge(p)

	return analyzer.Report{
		Summary: analyzer.RunSummary{
			TotalFiles:    2,
			ScannedCount:  1,
			FailedCount:   1,
			TotalLines:    stats.TotalLines,
			UnparsedLines: stats.UnparsedLines,
			TotalRequests: stats.TotalRequests(),
			Concurrency:   2,
			Timestamp:     ts,
			SchemaVersion: analyzer.ReportSchemaVersion,
		},
		Stats:    stats,
		Failures: []analyzer.FileError{{Path: "missing.log", Error: "cannot access log file"}},
	}
}

func TestHandlersTable(t *testing.T) {
	out := HandlersTable(sampleReport(), false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "Total requests: 3", lines[0])
	assert.Empty(t, lines[1])

	header := lines[2]
	assert.True(t, strings.HasPrefix(header, "HANDLER"))
	for _, lv := range analyzer.Levels {
		assert.Contains(t, header, string(lv))
	}

	// Rows sorted by handler path.
	assert.True(t, strings.HasPrefix(lines[3], "/admin/dashboard/"))
	assert.True(t, strings.HasPrefix(lines[4], "/api/v1/users/"))

	// Footer carries the per-level totals: 2 INFO, 1 ERROR.
	footer := lines[5]
	fields := strings.Fields(footer)
	assert.Equal(t, []string{"0", "2", "0", "1", "0"}, fields)
}

func TestHandlersTablePartialNote(t *testing.T) {
	rep := sampleReport()
	rep.Summary.Partial = true
	out := HandlersTable(rep, false)
	assert.Contains(t, out, "interrupted")
}

func TestLevelsView(t *testing.T) {
	out := LevelsView(sampleReport())
	assert.Equal(t, "Found log levels in django.request: [ERROR, INFO]\n", out)
}

func TestLevelsViewEmpty(t *testing.T) {
	rep := analyzer.Report{Stats: analyzer.NewAggregateStats()}
	out := LevelsView(rep)
	assert.Equal(t, "Found log levels in django.request: []\n", out)
}

func TestHandlersCSV(t *testing.T) {
	out, err := HandlersCSV(sampleReport())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "HANDLER,DEBUG,INFO,WARNING,ERROR,CRITICAL,TOTAL", lines[0])
	assert.Equal(t, "/admin/dashboard/,0,0,0,1,0,1", lines[1])
	assert.Equal(t, "/api/v1/users/,0,2,0,0,0,2", lines[2])
}

func TestReportJSON(t *testing.T) {
	out, err := ReportJSON(sampleReport())
	require.NoError(t, err)

	var doc struct {
		Summary struct {
			TotalRequests int `json:"totalRequests"`
		} `json:"summary"`
		Handlers   map[string]map[string]int `json:"handlers"`
		Methods    map[string]int            `json:"methods"`
		LevelsSeen []string                  `json:"levelsSeen"`
		Failures   []analyzer.FileError      `json:"failures"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, 3, doc.Summary.TotalRequests)
	assert.Equal(t, 2, doc.Handlers["/api/v1/users/"]["INFO"])
	assert.Equal(t, map[string]int{"GET": 2, "POST": 1}, doc.Methods)
	assert.Equal(t, []string{"ERROR", "INFO"}, doc.LevelsSeen)
	require.Len(t, doc.Failures, 1)
	assert.Equal(t, "missing.log", doc.Failures[0].Path)
}

func TestReportYAML(t *testing.T) {
	out, err := ReportYAML(sampleReport())
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "summary")
	assert.Contains(t, doc, "handlers")
	assert.Contains(t, doc, "levelsSeen")
}

func TestReportDispatch(t *testing.T) {
	rep := sampleReport()
	for _, format := range Formats {
		out, err := Report(format, rep, false)
		require.NoError(t, err, "format %s", format)
		assert.NotEmpty(t, out)
	}

	_, err := Report("xml", rep, false)
	assert.Error(t, err)
}
