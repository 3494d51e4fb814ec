// Package workbook decodes xlsx bytes into raw row-major cell grids.
//
// Decoding is deliberately lossless and dumb: every sheet name is
// reported, unreadable sheets surface as empty grids, and cell values are
// raw (unformatted) text so that downstream normalization sees serial
// date numbers instead of locale-formatted strings.
package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNotWorkbook indicates the supplied bytes are not an xlsx file.
var ErrNotWorkbook = errors.New("file is not a valid xlsx workbook")

// ErrHTMLPage indicates the bytes look like an HTML document, which
// usually means a download URL resolved to an error page instead of the
// spreadsheet itself.
var ErrHTMLPage = errors.New("got an html page instead of an xlsx workbook")

// ErrEmptyFile indicates zero-length input.
var ErrEmptyFile = errors.New("empty file")

// Workbook is a decoded spreadsheet: the full ordered sheet-name list and
// one 2D cell grid per sheet. A sheet that could not be read is present
// in SheetNames but maps to a nil grid.
type Workbook struct {
	SheetNames []string
	Sheets     map[string][][]string
}

// Read decodes xlsx bytes into a Workbook.
//
// The xlsx container is a ZIP archive, so the bytes must start with the
// "PK" magic. Anything else is rejected before excelize sees it, with a
// more specific error when the payload is an HTML page.
func Read(data []byte) (*Workbook, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if len(data) < 4 || data[0] != 0x50 || data[1] != 0x4B {
		if looksLikeHTML(data) {
			return nil, ErrHTMLPage
		}
		return nil, ErrNotWorkbook
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotWorkbook, err)
	}
	defer f.Close()

	names := f.GetSheetList()
	wb := &Workbook{
		SheetNames: names,
		Sheets:     make(map[string][][]string, len(names)),
	}
	for _, name := range names {
		// Raw values keep date cells as serial numbers.
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			wb.Sheets[name] = nil
			continue
		}
		wb.Sheets[name] = rows
	}
	return wb, nil
}

// looksLikeHTML sniffs the first KB of the payload for an HTML document.
func looksLikeHTML(data []byte) bool {
	if len(data) > 1024 {
		data = data[:1024]
	}
	head := strings.ToLower(strings.TrimSpace(string(data)))
	return strings.Contains(head, "<html") || strings.HasPrefix(head, "<!doctype")
}
