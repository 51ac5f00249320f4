package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// Magic numbers recognised by Sniff.
var (
	magicPDF = []byte("%PDF-")
	magicZip = []byte("PK\x03\x04")
	magicOLE = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// sniffWindow bounds how much of a document is inspected for binary content.
const sniffWindow = 8192

// Sniff decides the kind of a document from its content. The file name is
// consulted only to tell comma separated tables from free text, which share
// the same bytes on disk.
//
// ZIP containers count as workbooks only when they hold xl/workbook.xml;
// other Office documents and plain archives are unsupported. A ZIP whose
// directory cannot be read is still handed to the spreadsheet parser, which
// reports it as a damaged document.
//
// Legacy binary .xls workbooks (OLE2 containers) are reported as
// unsupported: the spreadsheet parser reads Office Open XML only.
func Sniff(doc Document) (Kind, error) {
	data := doc.Data
	ext := strings.ToLower(filepath.Ext(doc.Name))

	switch {
	case len(data) == 0:
		return KindAuto, fmt.Errorf("%w: %q is empty", ErrUnsupportedFormat, doc.Name)
	case bytes.HasPrefix(data, magicPDF):
		return KindPDF, nil
	case bytes.HasPrefix(data, magicZip):
		if !isWorkbook(data) {
			return KindAuto, fmt.Errorf("%w: %q is a ZIP archive but not an .xlsx workbook", ErrUnsupportedFormat, doc.Name)
		}
		return KindSpreadsheet, nil
	case bytes.HasPrefix(data, magicOLE):
		return KindAuto, fmt.Errorf("%w: %q is a legacy binary workbook, save it as .xlsx", ErrUnsupportedFormat, doc.Name)
	}

	if looksBinary(data) {
		return KindAuto, fmt.Errorf("%w: %q is not text, PDF, or a workbook", ErrUnsupportedFormat, doc.Name)
	}

	if ext == ".csv" {
		return KindDelimited, nil
	}
	return KindText, nil
}

// looksBinary reports whether the head of data contains NUL bytes, which
// neither UTF-8 nor EUC-KR text ever does.
func looksBinary(data []byte) bool {
	head := data
	if len(head) > sniffWindow {
		head = head[:sniffWindow]
	}
	return bytes.IndexByte(head, 0) >= 0
}

// workbookPart is the part every Office Open XML workbook carries.
const workbookPart = "xl/workbook.xml"

// isWorkbook reports whether a ZIP container is an .xlsx workbook.
func isWorkbook(data []byte) bool {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return true
	}
	for _, f := range zr.File {
		if strings.EqualFold(f.Name, workbookPart) {
			return true
		}
	}
	return false
}
