package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/DA-itd/constancias/internal/workbook"
)

// Skip reasons surfaced in the diagnostic panel. These are user-facing
// strings; keep them in sync with the front end's debug copy.
const (
	reasonEmptySheet = "La hoja está vacía o no se pudo leer su contenido."
	reasonNoHeader   = "No se encontró una fila de encabezado con una columna 'folio' reconocible en las primeras %d filas."
	reasonNoDataRows = "Se encontró un encabezado, pero no se encontraron filas de datos con un folio válido debajo de él."
)

// Ingestor scans a workbook's sheets, locates each header row by content
// sniffing, and maps the rows below it into records. Sheets with leading
// banner or metadata rows are tolerated: the header is searched for, not
// assumed at row zero.
type Ingestor struct {
	// Aliases are the recognized folio header names (trimmed,
	// lower-cased comparison). A sheet without one of these within the
	// scan window is skipped.
	Aliases []string

	// HeaderScanRows bounds the header search. Default 10.
	HeaderScanRows int

	// SkipSampleRows is how many raw rows to keep as a preview for
	// skipped sheets. Default 5.
	SkipSampleRows int

	// DataSampleRows is how many mapped records to keep as a preview
	// for processed sheets. Default 3.
	DataSampleRows int
}

// NewIngestor returns an Ingestor with the default alias list and limits.
// Aliases are normalized to trimmed lower case up front.
func NewIngestor(aliases []string) *Ingestor {
	if len(aliases) == 0 {
		aliases = DefaultFolioAliases
	}
	normalized := make([]string, 0, len(aliases))
	for _, a := range aliases {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			normalized = append(normalized, a)
		}
	}
	return &Ingestor{
		Aliases:        normalized,
		HeaderScanRows: 10,
		SkipSampleRows: 5,
		DataSampleRows: 3,
	}
}

// Ingest processes every sheet of the workbook in name order and returns
// the concatenated records plus a diagnostic report. A workbook where no
// sheet yields records still produces a complete report; deciding whether
// that is fatal is the caller's concern.
func (in *Ingestor) Ingest(wb *workbook.Workbook, source string) (*Dataset, *Report) {
	report := &Report{
		ID:            uuid.NewString(),
		RawSheetNames: wb.SheetNames,
		Sheets:        make([]SheetDiagnostic, 0, len(wb.SheetNames)),
	}
	dataset := &Dataset{aliases: in.Aliases}

	for _, name := range wb.SheetNames {
		rows := wb.Sheets[name]
		diag := in.ingestSheet(name, rows, dataset)
		if diag.Status == SheetProcessed {
			report.ProcessedCount++
		} else {
			report.SkippedCount++
		}
		report.Sheets = append(report.Sheets, diag)
	}

	report.SummaryMessage = fmt.Sprintf(
		"Se procesaron datos de %d de %d hoja(s) detectada(s) desde %s.",
		report.ProcessedCount, len(wb.SheetNames), source,
	)
	return dataset, report
}

// ingestSheet classifies one sheet and appends its valid records to the
// dataset. It returns the sheet's diagnostic in every case.
func (in *Ingestor) ingestSheet(name string, rows [][]string, dataset *Dataset) SheetDiagnostic {
	if len(rows) == 0 {
		return SheetDiagnostic{
			SheetName: name,
			Status:    SheetSkipped,
			Reason:    reasonEmptySheet,
		}
	}

	headers, headerIdx := in.findHeaderRow(rows)
	if headerIdx < 0 {
		return SheetDiagnostic{
			SheetName:  name,
			Status:     SheetSkipped,
			Reason:     fmt.Sprintf(reasonNoHeader, in.scanRows()),
			RowCount:   len(rows),
			RowPreview: sampleRows(rows, in.skipSample()),
		}
	}

	records := in.mapRows(headers, rows[headerIdx+1:])
	if len(records) == 0 {
		return SheetDiagnostic{
			SheetName:    name,
			Status:       SheetSkipped,
			Reason:       reasonNoDataRows,
			RowCount:     len(rows),
			FoundColumns: nonBlank(headers),
			RowPreview:   sampleRows(rows, in.skipSample()),
		}
	}

	dataset.records = append(dataset.records, records...)
	preview := records
	if len(preview) > in.dataSample() {
		preview = preview[:in.dataSample()]
	}
	return SheetDiagnostic{
		SheetName:     name,
		Status:        SheetProcessed,
		RowCount:      len(records),
		FoundColumns:  nonBlank(headers),
		RecordPreview: preview,
	}
}

// findHeaderRow scans at most HeaderScanRows rows for a cell whose
// trimmed, lower-cased text exactly equals one of the folio aliases.
// It returns the trimmed header cells and the row index, or -1.
func (in *Ingestor) findHeaderRow(rows [][]string) ([]string, int) {
	limit := in.scanRows()
	if limit > len(rows) {
		limit = len(rows)
	}
	for i := 0; i < limit; i++ {
		for _, cell := range rows[i] {
			if in.isAlias(cell) {
				headers := make([]string, len(rows[i]))
				for j, h := range rows[i] {
					headers[j] = strings.TrimSpace(h)
				}
				return headers, i
			}
		}
	}
	return nil, -1
}

// mapRows zips header cells with data cells positionally. Columns whose
// header cell is blank are dropped, and rows whose folio value is empty
// or absent are filtered out.
func (in *Ingestor) mapRows(headers []string, rows [][]string) []Record {
	var records []Record
	for _, row := range rows {
		var rec Record
		for i, header := range headers {
			if header == "" || i >= len(row) {
				continue
			}
			rec = append(rec, Field{Name: header, Value: row[i]})
		}
		if _, ok := rec.Folio(in.Aliases); ok {
			records = append(records, rec)
		}
	}
	return records
}

func (in *Ingestor) isAlias(cell string) bool {
	got := strings.ToLower(strings.TrimSpace(cell))
	if got == "" {
		return false
	}
	for _, alias := range in.Aliases {
		if got == alias {
			return true
		}
	}
	return false
}

func (in *Ingestor) scanRows() int {
	if in.HeaderScanRows <= 0 {
		return 10
	}
	return in.HeaderScanRows
}

func (in *Ingestor) skipSample() int {
	if in.SkipSampleRows <= 0 {
		return 5
	}
	return in.SkipSampleRows
}

func (in *Ingestor) dataSample() int {
	if in.DataSampleRows <= 0 {
		return 3
	}
	return in.DataSampleRows
}

func sampleRows(rows [][]string, n int) [][]string {
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

func nonBlank(headers []string) []string {
	var out []string
	for _, h := range headers {
		if h != "" {
			out = append(out, h)
		}
	}
	return out
}
