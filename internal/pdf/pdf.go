// Package pdf renders the validation document for a found constancia
// record: institution header, labeled fields, and a footer stating the
// document is a digital representation.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/DA-itd/constancias/internal/core"
)

const (
	institutionLine1 = "TECNOLÓGICO NACIONAL DE MÉXICO"
	institutionLine2 = "INSTITUTO TECNOLÓGICO DE DURANGO"
	contactLine      = "Contacto para dudas o aclaraciones: coord_actualizaciondocente@itdurango.edu.mx"
	disclaimerLine   = "Este documento es una representación digital para la verificación de la constancia."
)

// field pairs a display label with the header aliases that resolve its
// value from the record.
type field struct {
	label   string
	aliases []string
}

// pdfFields are rendered in order; fields whose aliases all miss are
// skipped rather than printed as empty.
var pdfFields = []field{
	{"Folio:", []string{"Folio", "ID", "Clave", "Constancia"}},
	{"Nombre del Titular:", []string{"Nombre", "Nombre del Titular"}},
	{"Curso/Taller:", []string{"Curso", "Nombre del curso-taller", "Curso/Taller"}},
	{"Fecha:", []string{"Fecha", "Fecha del curso-taller"}},
	{"Departamento:", []string{"Departamento"}},
	{"Duración:", []string{"Duracion", "Duración"}},
}

// Generate renders the validation PDF for a record.
func Generate(rec core.Record, dates *core.DateFormatter) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 11)
	centerText(doc, tr(institutionLine1), 20)
	centerText(doc, tr(institutionLine2), 27)

	doc.SetFontSize(18)
	centerText(doc, tr(title(rec)), 45)

	y := 65.0
	const labelX, valueX, wrapWidth = 20.0, 70.0, 120.0
	doc.SetFontSize(11)
	for _, f := range pdfFields {
		value, ok := rec.GetAny(f.aliases...)
		if !ok {
			continue
		}
		doc.SetFont("Helvetica", "B", 11)
		doc.Text(labelX, y, tr(f.label))
		doc.SetFont("Helvetica", "", 11)
		doc.SetXY(valueX, y-5)
		doc.MultiCell(wrapWidth, 7, tr(displayValue(f.label, value, dates)), "", "L", false)
		y = doc.GetY() + 10
	}

	y += 5
	doc.SetLineWidth(0.2)
	doc.Line(20, y, 190, y)
	y += 10

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(150, 150, 150)
	centerText(doc, tr(disclaimerLine), y)
	y += 5
	now := time.Now()
	centerText(doc, tr(fmt.Sprintf("Generado el: %s, %s",
		dates.FormatTime(now), now.Format("15:04:05"))), y)
	y += 5
	centerText(doc, tr(contactLine), y)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName derives the download name from the record's folio.
func FileName(rec core.Record, aliases []string) string {
	folio, ok := rec.Folio(aliases)
	if !ok {
		folio = "Certificado"
	}
	return "Validacion-" + strings.TrimSpace(folio) + ".pdf"
}

// title picks the document title from the record's "tipo" column.
func title(rec core.Record) string {
	tipo, _ := rec.GetAny("tipo")
	switch strings.ToLower(strings.TrimSpace(tipo)) {
	case "constancia":
		return "Constancia de Validez"
	case "reconocimiento":
		return "Reconocimiento de Validez"
	default:
		return "Documento de Validez"
	}
}

// displayValue applies per-field rendering rules: dates go through the
// normalizer, durations get an "HORAS" suffix when numeric, everything
// else is uppercased.
func displayValue(label, value string, dates *core.DateFormatter) string {
	trimmed := strings.TrimSpace(value)
	switch label {
	case "Fecha:":
		return dates.Format(trimmed)
	case "Duración:":
		upper := strings.ToUpper(trimmed)
		if strings.Contains(upper, "HORAS") {
			return upper
		}
		if _, err := strconv.ParseFloat(trimmed, 64); err == nil && trimmed != "" {
			return trimmed + " HORAS"
		}
		return upper
	default:
		return strings.ToUpper(trimmed)
	}
}

// centerText draws horizontally centered text at the given y (A4 is
// 210mm wide).
func centerText(doc *fpdf.Fpdf, text string, y float64) {
	width := doc.GetStringWidth(text)
	doc.Text((210-width)/2, y, text)
}
