// =============================================================================
// Lotto QR Generator - Plain Text Source
// =============================================================================
//
// Plain text uploads are read one line at a time. Files are expected to be
// UTF-8; files written by older Korean Windows tools are often EUC-KR (CP949)
// instead, so anything that is not valid UTF-8 is decoded as EUC-KR before
// extraction. Only ASCII digits matter for extraction, but decoding keeps the
// skipped-line report readable.
//
// =============================================================================

package extract

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// TextParser extracts one game per line of a plain text document.
type TextParser struct {
	// Strategy decides how repeated numbers on a line are handled.
	Strategy Strategy
}

// Kind implements Parser.
func (p *TextParser) Kind() Kind {
	return KindText
}

// Extract implements Parser.
func (p *TextParser) Extract(doc Document) (*Extraction, error) {
	content := DecodeText(doc.Data)

	x := newExtraction()
	extractLines(x, splitLines(content), p.Strategy, 0)
	return x, nil
}

// DecodeText returns data as a UTF-8 string. A UTF-8 byte order mark is
// dropped; input that is not valid UTF-8 is decoded as EUC-KR, and if that
// fails too, invalid bytes are removed.
func DecodeText(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data)
	}

	decoded, err := korean.EUCKR.NewDecoder().Bytes(data)
	if err == nil && utf8.Valid(decoded) {
		return string(decoded)
	}
	return strings.ToValidUTF8(string(data), "")
}

// splitLines splits on \n, \r\n, and bare \r.
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.Split(content, "\n")
}
