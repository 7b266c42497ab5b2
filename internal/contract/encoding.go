package contract

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LookupEncoding resolves an encoding label such as "utf-8" or "windows-1252".
func LookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding '%s': %w", name, err)
	}
	return enc, nil
}

// DecodeText converts svn output to a Go string. Bytes that are invalid in
// enc become U+FFFD, so a stray binary hunk never aborts a run.
func DecodeText(data []byte, enc encoding.Encoding) string {
	if enc == nil {
		enc = unicode.UTF8
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "\uFFFD")
	}
	return string(out)
}

// NewEncodingWriter wraps w so that text is written in enc. Runes that enc
// cannot represent are replaced instead of failing the write.
// The returned writer must be closed to flush buffered output; closing it
// does not close w.
func NewEncodingWriter(w io.Writer, enc encoding.Encoding) io.WriteCloser {
	if enc == nil {
		enc = unicode.UTF8
	}
	return transform.NewWriter(w, encoding.ReplaceUnsupported(enc.NewEncoder()))
}
