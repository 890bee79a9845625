package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFullFormat(t *testing.T) {
	e := NewLineExtractor()

	rec, ok := e.Extract("2025-03-28 12:11:57,000 ERROR django.request: POST /admin/dashboard/ 500 210ms")
	require.True(t, ok)

	assert.Equal(t, LevelError, rec.Level)
	assert.Equal(t, "POST", rec.Method)
	assert.Equal(t, "/admin/dashboard/", rec.Path)
	assert.True(t, rec.HasStatus)
	assert.Equal(t, 500, rec.Status)
	assert.True(t, rec.HasDuration)
	assert.Equal(t, 210, rec.DurationMs)
	assert.Equal(t, time.Date(2025, 3, 28, 12, 11, 57, 0, time.UTC), rec.Timestamp)
}

func TestExtractMinimalFormat(t *testing.T) {
	e := NewLineExtractor()

	rec, ok := e.Extract("2025-03-28 12:05:33,000 INFO django.request: GET /api/v1/users/")
	require.True(t, ok)

	assert.Equal(t, LevelInfo, rec.Level)
	assert.Equal(t, "GET", rec.Method)
	assert.Equal(t, "/api/v1/users/", rec.Path)
	assert.False(t, rec.HasStatus)
	assert.False(t, rec.HasDuration)
}

func TestExtractServerErrorFormat(t *testing.T) {
	e := NewLineExtractor()

	tests := []struct {
		name string
		line string
		path string
	}{
		{
			name: "with request id suffix",
			line: "2025-03-28 12:40:47,000 CRITICAL django.request: Internal Server Error: /admin/dashboard/ [12345] OrderDoesNotExist",
			path: "/admin/dashboard/",
		},
		{
			name: "trailing colon",
			line: "2025-03-28 12:40:47,000 ERROR django.request: Internal Server Error: /api/v1/orders/: ValueError",
			path: "/api/v1/orders/",
		},
		{
			name: "bare path",
			line: "2025-03-28 12:40:47,000 ERROR django.request: Internal Server Error: /api/v1/payments/",
			path: "/api/v1/payments/",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, ok := e.Extract(tc.line)
			require.True(t, ok)
			assert.Equal(t, tc.path, rec.Path)
			assert.Empty(t, rec.Method, "server-error lines carry no method")
		})
	}
}

func TestExtractPreservesPathVerbatim(t *testing.T) {
	e := NewLineExtractor()

	rec, ok := e.Extract("2025-03-28 12:05:33,000 INFO django.request: GET /api/v1/users/?page=2#top")
	require.True(t, ok)
	assert.Equal(t, "/api/v1/users/?page=2#top", rec.Path)

	rec, ok = e.Extract("2025-03-28 12:05:34,000 INFO django.request: GET /api/v1/users")
	require.True(t, ok)
	assert.Equal(t, "/api/v1/users", rec.Path, "no trailing-slash normalization")
}

func TestExtractUnknownMethodAccepted(t *testing.T) {
	e := NewLineExtractor()

	rec, ok := e.Extract("2025-03-28 12:05:33,000 INFO django.request: PROPFIND /dav/files/ 207 12ms")
	require.True(t, ok)
	assert.Equal(t, "PROPFIND", rec.Method)
}

func TestExtractRejectsNonMatchingLines(t *testing.T) {
	e := NewLineExtractor()

	lines := []string{
		"",
		"   ",
		"2025-03-28 12:25:45,000 DEBUG django.db.backends: (0.41) SELECT * FROM orders",
		"2025-03-28 12:25:45,000 TRACE django.request: GET /api/v1/users/",
		"Traceback (most recent call last):",
		"  File \"views.py\", line 42, in dispatch",
		"not a log line at all",
		"2025-03-28 12:25:45,000 INFO django.request:",
		"2025-99-99 12:25:45,000 INFO django.request: GET /api/v1/users/",
	}
	for _, line := range lines {
		_, ok := e.Extract(line)
		assert.False(t, ok, "line should not match: %q", line)
	}
}

func TestExtractTrimsSurroundingWhitespace(t *testing.T) {
	e := NewLineExtractor()

	rec, ok := e.Extract("  2025-03-28 12:05:33,000 INFO django.request: GET /api/v1/users/  ")
	require.True(t, ok)
	assert.Equal(t, "/api/v1/users/", rec.Path)
}

func TestParseLevel(t *testing.T) {
	for _, lv := range Levels {
		got, ok := ParseLevel(string(lv))
		assert.True(t, ok)
		assert.Equal(t, lv, got)
	}
	_, ok := ParseLevel("TRACE")
	assert.False(t, ok)
	_, ok = ParseLevel("info")
	assert.False(t, ok, "level matching is case-sensitive")
}
