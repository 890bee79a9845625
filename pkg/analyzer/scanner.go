package analyzer

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/valed-dm/loganalyzer/pkg/analyzer/encoding"
)

// maxLineBytes bounds the scanner's token buffer. Request-log lines are
// short; the headroom covers pathological tracebacks glued onto one line.
const maxLineBytes = 4 * 1024 * 1024

// FileScanner reads one log file and folds its lines into a PartialStats.
// A single scanner is shared by all workers; Scan carries no mutable state.
type FileScanner struct {
	opts      *Options
	extractor *LineExtractor
	logger    *slog.Logger
}

// NewFileScanner creates the default scanner. The signature matches
// ScannerFactory so tests can swap in instrumented variants.
func NewFileScanner(opts *Options, loggerHandler slog.Handler) (*FileScanner, error) {
	if opts == nil {
		return nil, fmt.Errorf("%w: options cannot be nil", ErrConfigValidation)
	}
	if loggerHandler == nil {
		return nil, fmt.Errorf("%w: logger handler cannot be nil", ErrConfigValidation)
	}
	return &FileScanner{
		opts:      opts,
		extractor: NewLineExtractor(),
		logger:    slog.New(loggerHandler).With("component", "scanner"),
	}, nil
}

// Scan processes a single file. It returns a PartialStats on success, the
// context's error if cancelled mid-file, or a wrapped ErrFileAccess /
// ErrReadFailed for hard I/O problems. Malformed lines are never errors;
// they are counted as unparsed.
func (s *FileScanner) Scan(ctx context.Context, path string) (*PartialStats, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileAccess, path, err)
	}

	decoded, usedEncoding := encoding.DecodeText(content, s.opts.EncodingFallback, s.opts.FallbackEncoding, s.logger)
	if usedEncoding != "utf-8" {
		s.logger.Debug("applied fallback encoding", "path", path, "encoding", usedEncoding)
	}

	stats := NewPartialStats(path)
	scanner := bufio.NewScanner(bytes.NewReader(decoded))
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if rec, ok := s.extractor.Extract(scanner.Text()); ok {
			stats.RecordMatch(rec)
		} else {
			stats.RecordUnparsed()
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: %s: line exceeds %d bytes", ErrReadFailed, path, maxLineBytes)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrReadFailed, path, err)
	}

	s.logger.Debug("scanned file",
		"path", path,
		"lines", stats.TotalLines,
		"requests", stats.Requests(),
		"unparsed", stats.UnparsedLines,
	)
	return stats, nil
}
