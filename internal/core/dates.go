package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// serialEpoch is the day-zero of spreadsheet serial dates (1899-12-30).
// Serial 25569 lands on 1970-01-01.
const serialEpochOffsetDays = 25569

// spanishMonths holds the month names used for display, January first.
var spanishMonths = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// rangeMarkers are connective words that identify a cell as a date range
// ("del 1 al 5 de mayo", "3 y 4 de junio"). Ranges are never parsed as
// single dates; they pass through formatting untouched.
var rangeMarkers = []string{" al ", " del ", " y "}

// dmyTriplet matches day/month/year split on slash, dot or dash.
var dmyTriplet = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{3,4})$`)

// dateLayouts are the single-date layouts tried before the positional
// D/M/Y fallback. Slash and dash dates are read day-first, never
// month-first, matching how the spreadsheets are authored.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
}

// DateFormatter renders spreadsheet date cells as Spanish display strings.
// The target location is explicit configuration rather than the process
// default so that serial-date arithmetic is independent of the host's
// timezone.
type DateFormatter struct {
	// Location anchors calendar-day computation. Defaults to UTC, which
	// preserves the calendar day encoded in the serial value.
	Location *time.Location
}

// NewDateFormatter returns a formatter anchored to UTC.
func NewDateFormatter() *DateFormatter {
	return &DateFormatter{Location: time.UTC}
}

func (f *DateFormatter) location() *time.Location {
	if f == nil || f.Location == nil {
		return time.UTC
	}
	return f.Location
}

// Format converts an arbitrary cell value into a display string.
//
// Rules, in order: date-range text passes through unchanged; numeric text
// is interpreted as a day-count serial; otherwise layout parsing is
// attempted, then a positional D/M/Y triplet. Format never fails — when
// nothing parses it returns the original value.
func (f *DateFormatter) Format(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "N/A"
	}

	if isDateRange(trimmed) {
		return value
	}

	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f.render(f.fromSerial(n))
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, f.location()); err == nil {
			return f.render(t)
		}
	}

	if m := dmyTriplet.FindStringSubmatch(trimmed); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return f.render(time.Date(year, time.Month(month), day, 0, 0, 0, 0, f.location()))
		}
	}

	return value
}

// FormatTime renders an already-parsed date in the display format.
func (f *DateFormatter) FormatTime(t time.Time) string {
	return f.render(t)
}

// fromSerial converts a spreadsheet serial day count into a calendar date.
// The fractional part (time of day) is dropped so the calendar day is
// preserved regardless of timezone.
func (f *DateFormatter) fromSerial(serial float64) time.Time {
	days := int(serial) - serialEpochOffsetDays
	unix := time.Unix(0, 0).UTC().AddDate(0, 0, days)
	return time.Date(unix.Year(), unix.Month(), unix.Day(), 0, 0, 0, 0, f.location())
}

// render formats a date as "02 de enero de 2006".
func (f *DateFormatter) render(t time.Time) string {
	return fmt.Sprintf("%02d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

// isDateRange reports whether the text contains a range connective.
// The text is padded so markers at the start of the cell also match.
func isDateRange(s string) bool {
	padded := " " + strings.ToLower(s) + " "
	for _, marker := range rangeMarkers {
		if strings.Contains(padded, marker) {
			return true
		}
	}
	return false
}
