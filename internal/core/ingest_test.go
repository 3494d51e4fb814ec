package core

import (
	"strings"
	"testing"

	"github.com/DA-itd/constancias/internal/workbook"
)

func wbFromSheets(names []string, sheets map[string][][]string) *workbook.Workbook {
	return &workbook.Workbook{SheetNames: names, Sheets: sheets}
}

func TestIngest_HeaderAfterBannerRows(t *testing.T) {
	// Three banner rows precede the real header; the scan must find it.
	rows := [][]string{
		{"INSTITUTO TECNOLÓGICO DE DURANGO"},
		{"Constancias emitidas 2025"},
		{""},
		{"Folio", "Nombre", "Curso"},
		{"F-001", "ANA", "DOCKER"},
		{"F-002", "LUIS", "GO"},
	}
	wb := wbFromSheets([]string{"Hoja1"}, map[string][][]string{"Hoja1": rows})

	in := NewIngestor(nil)
	dataset, report := in.Ingest(wb, "el archivo Excel")

	if report.ProcessedCount != 1 || report.SkippedCount != 0 {
		t.Fatalf("processed=%d skipped=%d, want 1/0", report.ProcessedCount, report.SkippedCount)
	}
	if dataset.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", dataset.Len())
	}

	rec := dataset.Records()[0]
	if name, _ := rec.Get("nombre"); name != "ANA" {
		t.Errorf("first record nombre = %q, want ANA", name)
	}

	diag := report.Sheets[0]
	if diag.Status != SheetProcessed {
		t.Errorf("sheet status = %s, want processed", diag.Status)
	}
	if len(diag.FoundColumns) != 3 {
		t.Errorf("found columns = %v, want 3 entries", diag.FoundColumns)
	}
}

func TestIngest_HeaderBeyondScanWindowIsSkipped(t *testing.T) {
	rows := make([][]string, 0, 12)
	for i := 0; i < 10; i++ {
		rows = append(rows, []string{"relleno"})
	}
	rows = append(rows, []string{"Folio"}, []string{"F-001"})
	wb := wbFromSheets([]string{"Tarde"}, map[string][][]string{"Tarde": rows})

	_, report := NewIngestor(nil).Ingest(wb, "el archivo Excel")

	diag := report.Sheets[0]
	if diag.Status != SheetSkipped {
		t.Fatalf("sheet status = %s, want skipped", diag.Status)
	}
	if !strings.Contains(diag.Reason, "primeras 10 filas") {
		t.Errorf("unexpected reason: %q", diag.Reason)
	}
	if diag.RowCount != 12 {
		t.Errorf("rowCount = %d, want total rows 12", diag.RowCount)
	}
	if len(diag.RowPreview) != 5 {
		t.Errorf("preview rows = %d, want 5", len(diag.RowPreview))
	}
}

func TestIngest_HeaderWithoutValidRows(t *testing.T) {
	rows := [][]string{
		{"Folio", "Nombre"},
		{"", "SIN FOLIO"},
		{"   ", "TAMBIÉN SIN FOLIO"},
	}
	wb := wbFromSheets([]string{"Vacía"}, map[string][][]string{"Vacía": rows})

	dataset, report := NewIngestor(nil).Ingest(wb, "el archivo Excel")

	if dataset.Len() != 0 {
		t.Fatalf("expected no records, got %d", dataset.Len())
	}
	diag := report.Sheets[0]
	if diag.Status != SheetSkipped {
		t.Fatalf("sheet status = %s, want skipped", diag.Status)
	}
	if !strings.Contains(diag.Reason, "no se encontraron filas de datos") {
		t.Errorf("unexpected reason: %q", diag.Reason)
	}
	// The header was found, so its columns are retained for debugging.
	if len(diag.FoundColumns) != 2 {
		t.Errorf("found columns = %v, want [Folio Nombre]", diag.FoundColumns)
	}
}

func TestIngest_BlankHeaderColumnsAreDropped(t *testing.T) {
	rows := [][]string{
		{"Folio", "", "Curso"},
		{"F-001", "ignorado", "GO"},
	}
	wb := wbFromSheets([]string{"Hoja1"}, map[string][][]string{"Hoja1": rows})

	dataset, _ := NewIngestor(nil).Ingest(wb, "el archivo Excel")
	if dataset.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", dataset.Len())
	}
	rec := dataset.Records()[0]
	if len(rec) != 2 {
		t.Errorf("record has %d fields, want 2 (blank header dropped)", len(rec))
	}
	if _, found := rec.Get(""); found {
		t.Error("blank header must not be addressable")
	}
}

func TestIngest_EndToEndTwoSheets(t *testing.T) {
	valid := [][]string{
		{"Folio", "Nombre"},
		{"F-001", "A"},
		{"F-002", "B"},
		{"F-003", "C"},
		{"F-004", "D"},
		{"F-005", "E"},
	}
	wb := wbFromSheets(
		[]string{"Constancias", "Hoja vacía"},
		map[string][][]string{"Constancias": valid, "Hoja vacía": nil},
	)

	dataset, report := NewIngestor(nil).Ingest(wb, "el archivo Excel")

	if report.ProcessedCount != 1 {
		t.Errorf("processedCount = %d, want 1", report.ProcessedCount)
	}
	if report.SkippedCount != 1 {
		t.Errorf("skippedCount = %d, want 1", report.SkippedCount)
	}
	if dataset.Len() != 5 {
		t.Errorf("record count = %d, want 5", dataset.Len())
	}
	if !strings.Contains(report.SummaryMessage, "1 de 2 hoja(s)") {
		t.Errorf("unexpected summary: %q", report.SummaryMessage)
	}
	if len(report.RawSheetNames) != 2 {
		t.Errorf("rawSheetNames = %v, want both sheets", report.RawSheetNames)
	}

	empty := report.Sheets[1]
	if empty.Status != SheetSkipped || !strings.Contains(empty.Reason, "vacía") {
		t.Errorf("empty sheet diagnostic = %+v", empty)
	}
}

func TestIngest_ProcessedPreviewLimitedToThreeRecords(t *testing.T) {
	rows := [][]string{{"Folio"}}
	for i := 0; i < 7; i++ {
		rows = append(rows, []string{"F-" + strings.Repeat("0", i+1)})
	}
	wb := wbFromSheets([]string{"Hoja1"}, map[string][][]string{"Hoja1": rows})

	_, report := NewIngestor(nil).Ingest(wb, "el archivo Excel")
	diag := report.Sheets[0]
	if diag.Status != SheetProcessed {
		t.Fatalf("status = %s, want processed", diag.Status)
	}
	if len(diag.RecordPreview) != 3 {
		t.Errorf("record preview = %d entries, want 3", len(diag.RecordPreview))
	}
	if diag.RowCount != 7 {
		t.Errorf("rowCount = %d, want 7 valid records", diag.RowCount)
	}
}

func TestIngest_CustomAliases(t *testing.T) {
	rows := [][]string{
		{"Mi Folio Especial", "Nombre"},
		{"F-1", "A"},
	}
	wb := wbFromSheets([]string{"Hoja1"}, map[string][][]string{"Hoja1": rows})

	// Default aliases do not recognize this header.
	dataset, _ := NewIngestor(nil).Ingest(wb, "el archivo Excel")
	if dataset.Len() != 0 {
		t.Fatalf("default aliases should not match, got %d records", dataset.Len())
	}

	// An institution-specific alias makes the sheet processable.
	dataset, report := NewIngestor([]string{"Mi Folio Especial"}).Ingest(wb, "el archivo Excel")
	if dataset.Len() != 1 {
		t.Fatalf("custom alias should match, got %d records", dataset.Len())
	}
	if report.ProcessedCount != 1 {
		t.Errorf("processedCount = %d, want 1", report.ProcessedCount)
	}
}
