package encoding

import (
	"io"
	"log/slog"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDecodeTextValidUTF8PassesThrough(t *testing.T) {
	content := []byte("2025-03-28 12:05:33,000 INFO django.request: GET /api/v1/users/\n")

	decoded, name := DecodeText(content, true, "latin-1", discardLogger())

	assert.Equal(t, content, decoded)
	assert.Equal(t, "utf-8", name)
}

func TestDecodeTextLatin1Fallback(t *testing.T) {
	content := []byte{'c', 'a', 'f', 0xE9}

	decoded, name := DecodeText(content, true, "latin-1", discardLogger())

	assert.Equal(t, "latin-1", name)
	assert.True(t, utf8.Valid(decoded))
	assert.Equal(t, "café", string(decoded))
}

func TestDecodeTextFallbackDisabled(t *testing.T) {
	content := []byte{'c', 'a', 'f', 0xE9}

	decoded, name := DecodeText(content, false, "latin-1", discardLogger())

	assert.Equal(t, content, decoded)
	assert.Equal(t, "utf-8", name)
}

func TestDecodeTextUnknownEncodingDefaultsToLatin1(t *testing.T) {
	content := []byte{0xE9}

	decoded, name := DecodeText(content, true, "no-such-encoding", discardLogger())

	assert.Equal(t, "latin-1", name)
	assert.Equal(t, "é", string(decoded))
}

func TestDecodeTextNamedEncoding(t *testing.T) {
	// 0xE9 is é in windows-1252 as well.
	content := []byte{0xE9}

	decoded, name := DecodeText(content, true, "windows-1252", discardLogger())

	assert.Equal(t, "windows-1252", name)
	assert.Equal(t, "é", string(decoded))
}

func TestDecodeTextEmptyContent(t *testing.T) {
	decoded, name := DecodeText(nil, true, "latin-1", discardLogger())
	assert.Empty(t, decoded)
	assert.Equal(t, "utf-8", name)
}
