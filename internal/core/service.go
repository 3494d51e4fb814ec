package core

import (
	"errors"
	"sync"

	"github.com/DA-itd/constancias/internal/workbook"
)

// ErrNoDatabase is returned when a search runs before any workbook has
// been loaded successfully.
var ErrNoDatabase = errors.New("no database loaded")

// ErrNoValidData is returned when a workbook decodes fine but no sheet
// yields a single valid record.
var ErrNoValidData = errors.New("no valid data rows found in workbook")

// Service owns the current dataset and its ingestion report. The record
// set is replaced wholesale on every successful load; a load that yields
// nothing leaves the previous dataset in place, though its report is kept
// so the user can inspect why the file failed.
type Service struct {
	ingestor *Ingestor
	dates    *DateFormatter

	mu      sync.RWMutex
	dataset *Dataset
	report  *Report
}

// NewService creates a Service around the given ingestor and formatter.
func NewService(ingestor *Ingestor, dates *DateFormatter) *Service {
	if ingestor == nil {
		ingestor = NewIngestor(nil)
	}
	if dates == nil {
		dates = NewDateFormatter()
	}
	return &Service{ingestor: ingestor, dates: dates}
}

// Load decodes and ingests a workbook, replacing the current dataset.
// source is a human-readable description of where the bytes came from
// ("el archivo Excel", "la URL configurada") used in the summary message.
//
// The returned report is non-nil whenever the bytes decoded as a
// workbook, even if every sheet was skipped.
func (s *Service) Load(data []byte, source string) (*Report, error) {
	wb, err := workbook.Read(data)
	if err != nil {
		return nil, err
	}

	dataset, report := s.ingestor.Ingest(wb, source)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = report
	if dataset.Len() == 0 {
		return report, ErrNoValidData
	}
	s.dataset = dataset
	return report, nil
}

// SearchResult is the outcome of a folio lookup. A miss is a defined
// result state, not an error.
type SearchResult struct {
	Found         bool   `json:"found"`
	Folio         string `json:"folio,omitempty"`
	Record        Record `json:"record,omitempty"`
	FormattedDate string `json:"formattedDate,omitempty"`
}

// Search looks up a folio in the current dataset.
func (s *Service) Search(query string) (SearchResult, error) {
	s.mu.RLock()
	dataset := s.dataset
	s.mu.RUnlock()

	if dataset == nil {
		return SearchResult{}, ErrNoDatabase
	}

	rec, ok := dataset.Search(query)
	if !ok {
		return SearchResult{}, nil
	}

	folio, _ := rec.Folio(s.ingestor.Aliases)
	result := SearchResult{Found: true, Folio: folio, Record: rec}
	if date, ok := rec.GetAny("Fecha", "Fecha del curso-taller"); ok {
		result.FormattedDate = s.dates.Format(date)
	}
	return result, nil
}

// Report returns the most recent ingestion report, if any load has run.
func (s *Service) Report() (*Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.report == nil {
		return nil, false
	}
	return s.report, true
}

// Loaded reports whether a dataset is available for searching.
func (s *Service) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset != nil
}

// Dates exposes the service's date formatter for presentation layers
// (PDF export formats the same fields the search result does).
func (s *Service) Dates() *DateFormatter {
	return s.dates
}

// FolioAliases returns the alias list the service ingests and searches
// with.
func (s *Service) FolioAliases() []string {
	return s.ingestor.Aliases
}

// RecordCount returns the size of the current dataset.
func (s *Service) RecordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset.Len()
}
