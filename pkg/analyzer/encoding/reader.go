// Package encoding provides the character-set fallback used when log files
// are not valid UTF-8. Legacy Django deployments commonly write latin-1
// bytes into otherwise ASCII logs; the decoder keeps those files readable
// instead of corrupting or rejecting them.
package encoding

import (
	"bytes"
	"io"
	"log/slog"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	textencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// DecodeText returns content as UTF-8 along with the name of the encoding
// that was applied. Valid UTF-8 passes through untouched. Otherwise, when
// fallback is enabled, the content is re-decoded from fallbackName (latin-1
// when the name is empty or unresolvable). Decoding never fails: latin-1
// maps every byte, and any unexpected transform error degrades to returning
// the original bytes.
func DecodeText(content []byte, fallbackEnabled bool, fallbackName string, logger *slog.Logger) ([]byte, string) {
	if utf8.Valid(content) {
		return content, "utf-8"
	}
	if !fallbackEnabled {
		logger.Debug("content is not valid UTF-8 and fallback is disabled, passing through raw bytes")
		return content, "utf-8"
	}

	enc, name := lookupEncoding(fallbackName)
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(content), enc.NewDecoder()))
	if err != nil {
		logger.Warn("fallback decode failed, passing through raw bytes", "encoding", name, "error", err)
		return content, "utf-8"
	}
	logger.Debug("decoded content with fallback encoding", "encoding", name)
	return decoded, name
}

// lookupEncoding resolves a user-supplied encoding name. Unknown names fall
// back to latin-1 rather than failing the file.
func lookupEncoding(name string) (textencoding.Encoding, string) {
	switch name {
	case "", "latin-1", "latin1":
		return charmap.ISO8859_1, "latin-1"
	}
	if enc, canonical := charset.Lookup(name); enc != nil {
		return enc, canonical
	}
	return charmap.ISO8859_1, "latin-1"
}
