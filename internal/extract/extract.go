// =============================================================================
// Lotto QR Generator - Document Extraction
// =============================================================================
//
// This module turns an uploaded document into an ordered list of games.
// Every supported source kind has its own Parser behind a single contract:
//
//   Extract(doc) -> *Extraction{Games, Skipped}
//
// SOURCE KINDS:
//   - spreadsheet : .xlsx workbooks, one game per row (excelize)
//   - delimited   : .csv files, one game per record
//   - text        : plain text, one game per line (UTF-8, EUC-KR fallback)
//   - pdf         : text-extractable PDF pages, one game per visual line
//
// ERROR HANDLING:
//   - A malformed line or row never fails the document; it is recorded in
//     Extraction.Skipped and extraction moves on
//   - A document that cannot be read at all returns a *DocumentError that
//     wraps the underlying cause
//   - A document whose kind is not supported returns ErrUnsupportedFormat
//
// =============================================================================

package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ginjaninja78/lotto-qr-generator/internal/lotto"
	"github.com/ginjaninja78/lotto-qr-generator/internal/validation"
)

// =============================================================================
// SOURCE KINDS
// =============================================================================

// Kind identifies how a document is parsed.
type Kind string

const (
	// KindAuto asks Sniff to decide.
	KindAuto Kind = ""

	// KindSpreadsheet is an Office Open XML workbook.
	KindSpreadsheet Kind = "spreadsheet"

	// KindDelimited is comma separated text read as a table.
	KindDelimited Kind = "delimited"

	// KindText is free text read line by line.
	KindText Kind = "text"

	// KindPDF is a PDF read page by page, line by line.
	KindPDF Kind = "pdf"
)

// ParseKind maps a user-facing name to a Kind. "auto" and "" map to KindAuto.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return KindAuto, nil
	case "spreadsheet", "xlsx", "excel":
		return KindSpreadsheet, nil
	case "delimited", "csv":
		return KindDelimited, nil
	case "text", "txt":
		return KindText, nil
	case "pdf":
		return KindPDF, nil
	default:
		return KindAuto, fmt.Errorf("%w: unknown kind %q", ErrUnsupportedFormat, s)
	}
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrUnsupportedFormat is returned when a document is not one of the
// supported kinds. Processing of that document stops with no partial result.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// DocumentError reports a document that could not be read at all.
type DocumentError struct {
	// Name is the document name as uploaded.
	Name string

	// Kind is the kind the document was parsed as.
	Kind Kind

	// Err is the underlying cause.
	Err error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("read %s document %q: %v", e.Kind, e.Name, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// =============================================================================
// DOCUMENT AND RESULT
// =============================================================================

// Document is an uploaded file, read fully into memory before extraction.
type Document struct {
	// Name is the original file name. It is only a hint for sniffing.
	Name string

	// Data is the complete file content.
	Data []byte

	// Kind is the declared kind. KindAuto means sniff.
	Kind Kind
}

// Extraction is the outcome of parsing one document.
type Extraction struct {
	// Games holds the valid games in source order.
	Games []lotto.Game

	// Skipped records every non-blank line or row that did not yield a game.
	Skipped *validation.Result

	// Units is the number of lines or rows inspected.
	Units int
}

func newExtraction() *Extraction {
	return &Extraction{Skipped: validation.NewResult()}
}

// add records the outcome of one line or row.
func (x *Extraction) add(g lotto.Game, rejected *validation.ValidationError, unit int) {
	x.Units++
	if rejected != nil {
		rejected.Line = unit
		x.Skipped.Add(rejected)
		return
	}
	x.Games = append(x.Games, g)
}

// =============================================================================
// PARSER CONTRACT
// =============================================================================

// Parser extracts games from one kind of document.
type Parser interface {
	Kind() Kind
	Extract(doc Document) (*Extraction, error)
}

// Settings carries the extraction options that come from configuration.
type Settings struct {
	// Strategy applies to line-oriented sources (text and PDF).
	Strategy Strategy

	// Comma is the delimiter for delimited sources. Zero means ','.
	Comma rune

	// CSVStartRow is the 1-indexed first row read from delimited sources.
	// Zero or one means the first row.
	CSVStartRow int
}

// ParserFor returns the parser for kind. Line-oriented parsers apply the
// configured duplicate strategy; tabular parsers follow the row rule.
func ParserFor(kind Kind, settings Settings) (Parser, error) {
	switch kind {
	case KindSpreadsheet:
		return &SpreadsheetParser{}, nil
	case KindDelimited:
		return &DelimitedParser{Comma: settings.Comma, DataStartRow: settings.CSVStartRow}, nil
	case KindText:
		return &TextParser{Strategy: settings.Strategy}, nil
	case KindPDF:
		return &PDFParser{Strategy: settings.Strategy}, nil
	default:
		return nil, fmt.Errorf("%w: no parser for kind %q", ErrUnsupportedFormat, kind)
	}
}

// Extract sniffs doc when its kind is not declared and runs the matching parser.
func Extract(doc Document, settings Settings) (*Extraction, Kind, error) {
	kind := doc.Kind
	if kind == KindAuto {
		var err error
		kind, err = Sniff(doc)
		if err != nil {
			return nil, KindAuto, err
		}
	}

	parser, err := ParserFor(kind, settings)
	if err != nil {
		return nil, kind, err
	}

	x, err := parser.Extract(doc)
	if err != nil {
		return nil, kind, err
	}
	return x, kind, nil
}
