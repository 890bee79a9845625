package analyzer

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogHandler() slog.Handler {
	return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})
}

func newTestScanner(t *testing.T, opts *Options) *FileScanner {
	t.Helper()
	if opts == nil {
		opts = &Options{EncodingFallback: true, FallbackEncoding: "latin-1"}
	}
	s, err := NewFileScanner(opts, testLogHandler())
	require.NoError(t, err)
	return s
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScanMixedFile(t *testing.T) {
	path := writeFixture(t, "app.log",
		"2025-03-28 12:05:33,000 INFO django.request: GET /api/v1/users/ 200 105ms\n"+
			"2025-03-28 12:11:57,000 ERROR django.request: POST /admin/dashboard/ 500 210ms\n"+
			"2025-03-28 12:25:45,000 DEBUG django.db.backends: (0.41) SELECT * FROM users\n"+
			"2025-03-28 12:40:47,000 CRITICAL django.request: Internal Server Error: /admin/dashboard/ [111] OrderDoesNotExist\n"+
			"garbage line\n")

	stats, err := newTestScanner(t, nil).Scan(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, stats.SourceFile)
	assert.Equal(t, 5, stats.TotalLines)
	assert.Equal(t, 3, stats.Requests())
	assert.Equal(t, 2, stats.UnparsedLines)
	assert.Equal(t, 1, stats.PerHandler["/api/v1/users/"][LevelInfo])
	assert.Equal(t, 1, stats.PerHandler["/admin/dashboard/"][LevelError])
	assert.Equal(t, 1, stats.PerHandler["/admin/dashboard/"][LevelCritical])
}

func TestScanMissingFileReturnsAccessError(t *testing.T) {
	_, err := newTestScanner(t, nil).Scan(context.Background(), filepath.Join(t.TempDir(), "missing.log"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileAccess)
}

func TestScanLatin1Fallback(t *testing.T) {
	// "café" with a latin-1 encoded é (0xE9), invalid as UTF-8.
	line := append([]byte("2025-03-28 12:05:33,000 INFO django.request: GET /api/v1/caf"), 0xE9)
	line = append(line, []byte("/\n")...)
	path := filepath.Join(t.TempDir(), "latin1.log")
	require.NoError(t, os.WriteFile(path, line, 0o644))

	stats, err := newTestScanner(t, nil).Scan(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Requests())
	assert.Equal(t, 1, stats.PerHandler["/api/v1/café/"][LevelInfo])
}

func TestScanFallbackDisabledCountsUnparsed(t *testing.T) {
	line := append([]byte("2025-03-28 12:05:33,000 INFO django.request: GET /api/v1/caf"), 0xE9)
	line = append(line, []byte("/\n")...)
	path := filepath.Join(t.TempDir(), "latin1.log")
	require.NoError(t, os.WriteFile(path, line, 0o644))

	opts := &Options{EncodingFallback: false}
	stats, err := newTestScanner(t, opts).Scan(context.Background(), path)
	require.NoError(t, err)

	// The raw bytes still match the line shape; aggregation keys are
	// byte-for-byte, so the path simply contains the undecoded byte.
	assert.Equal(t, 1, stats.TotalLines)
	assert.Equal(t, 1, stats.Requests())
}

func TestScanEmptyFile(t *testing.T) {
	path := writeFixture(t, "empty.log", "")
	stats, err := newTestScanner(t, nil).Scan(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalLines)
}

func TestScanHonorsCancellation(t *testing.T) {
	path := writeFixture(t, "app.log",
		"2025-03-28 12:05:33,000 INFO django.request: GET /api/v1/users/\n"+
			"2025-03-28 12:05:34,000 INFO django.request: GET /api/v1/users/\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestScanner(t, nil).Scan(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}
