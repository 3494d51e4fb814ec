// Package core provides the business logic for constancia validation:
// workbook ingestion, folio search, and the per-sheet diagnostic report.
// This package has no HTTP dependencies and can be used by any frontend.
package core

// Field is a single (header, value) pair within a record.
//
// Records keep their fields as an ordered slice rather than a map so that
// lookups over duplicate case-variant headers resolve to whichever column
// appeared first in the sheet.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Record is one data row of a sheet, keyed by the header row.
// Header names are stored as-is; case-insensitive matching happens at
// read time via Get and GetAny.
type Record []Field

// SheetStatus classifies the outcome of ingesting one sheet.
type SheetStatus string

const (
	SheetProcessed SheetStatus = "processed"
	SheetSkipped   SheetStatus = "skipped"
)

// SheetDiagnostic describes what happened to a single sheet during
// ingestion. It is built once per sheet and never modified afterwards;
// its only consumer is the user-facing debug panel.
type SheetDiagnostic struct {
	SheetName    string      `json:"sheetName"`
	Status       SheetStatus `json:"status"`
	Reason       string      `json:"reason,omitempty"`
	RowCount     int         `json:"rowCount"`
	FoundColumns []string    `json:"foundColumns,omitempty"`

	// RowPreview holds raw rows for skipped sheets; RecordPreview holds
	// mapped records for processed ones. Only one of the two is set.
	RowPreview    [][]string `json:"rowPreview,omitempty"`
	RecordPreview []Record   `json:"recordPreview,omitempty"`
}

// Report is the ingestion debug report returned alongside the dataset.
type Report struct {
	ID             string            `json:"id"`
	SummaryMessage string            `json:"summaryMessage"`
	ProcessedCount int               `json:"processedCount"`
	SkippedCount   int               `json:"skippedCount"`
	Sheets         []SheetDiagnostic `json:"sheets"`
	RawSheetNames  []string          `json:"rawSheetNames"`
}

// Dataset is the flattened record collection produced by one ingestion.
// It is rebuilt from scratch on every load; there is no incremental update.
type Dataset struct {
	records []Record
	aliases []string
}

// Len returns the number of records in the dataset.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Records returns the underlying record slice in sheet order, then row order.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	return d.records
}
