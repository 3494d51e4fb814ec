package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/DA-itd/constancias/internal/core"
	"github.com/DA-itd/constancias/internal/logging"
	"github.com/DA-itd/constancias/internal/pdf"
	"github.com/DA-itd/constancias/internal/registration"
)

// uploadResponse is returned by the database load endpoints.
type uploadResponse struct {
	Report      *core.Report `json:"report"`
	RecordCount int          `json:"recordCount"`
	Warning     string       `json:"warning,omitempty"`
}

// handleHealth reports process liveness and data availability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":              "ok",
		"databaseLoaded":      s.validator.Loaded(),
		"referenceDataLoaded": s.registrar.Loaded(),
	})
}

// handleUploadDatabase ingests a workbook sent as multipart form data
// under the "file" field, replacing the in-memory record set.
func (s *Server) handleUploadDatabase(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Validator.MaxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.respondError(w, r, fmt.Errorf("file too large: %w", err), http.StatusRequestEntityTooLarge)
			return
		}
		s.respondError(w, r, fmt.Errorf("no file provided: %w", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("read upload: %w", err), http.StatusBadRequest)
		return
	}

	logging.FromContext(r.Context()).Info("database upload",
		"file", header.Filename,
		"bytes", len(data),
	)
	s.loadDatabase(w, r, data, "el archivo Excel")
}

// handleRefreshDatabase re-downloads the workbook from the configured
// URL and ingests it.
func (s *Server) handleRefreshDatabase(w http.ResponseWriter, r *http.Request) {
	data, err := s.remote.DownloadWorkbook(r.Context(), s.cfg.Validator.DatabaseURL)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadGateway)
		return
	}
	s.loadDatabase(w, r, data, "la URL configurada")
}

// loadDatabase runs the shared ingest path for both load endpoints.
// Partial success (some sheets skipped) is a 200 with a warning; a
// workbook yielding nothing is an error, though its report is retained
// for the debug endpoint.
func (s *Server) loadDatabase(w http.ResponseWriter, r *http.Request, data []byte, source string) {
	report, err := s.validator.Load(data, source)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, core.ErrNoValidData) {
			logging.FromContext(r.Context()).Warn("load produced no records",
				"sheets", len(report.RawSheetNames),
			)
		}
		s.respondError(w, r, err, status)
		return
	}

	resp := uploadResponse{Report: report, RecordCount: s.validator.RecordCount()}
	if report.SkippedCount > 0 {
		resp.Warning = fmt.Sprintf(
			"Advertencia: se omitieron %d de %d hoja(s). Revise el reporte de depuración.",
			report.SkippedCount, len(report.RawSheetNames),
		)
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleReport returns the most recent ingestion debug report.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, ok := s.validator.Report()
	if !ok {
		s.respondError(w, r, core.ErrNoDatabase, http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// handleSearch looks a folio up in the loaded dataset. A miss is a
// defined 200 result with found=false, not an error.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("folio")
	if query == "" {
		s.respondError(w, r, errors.New("empty search query"), http.StatusBadRequest)
		return
	}

	result, err := s.validator.Search(query)
	if err != nil {
		s.respondError(w, r, err, http.StatusConflict)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// handleSearchPDF renders the validation document for a found folio.
func (s *Server) handleSearchPDF(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("folio")
	if query == "" {
		s.respondError(w, r, errors.New("empty search query"), http.StatusBadRequest)
		return
	}

	result, err := s.validator.Search(query)
	if err != nil {
		s.respondError(w, r, err, http.StatusConflict)
		return
	}
	if !result.Found {
		s.respondError(w, r, fmt.Errorf("folio not found: %q", query), http.StatusNotFound)
		return
	}

	doc, err := pdf.Generate(result.Record, s.validator.Dates())
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", pdf.FileName(result.Record, s.validator.FolioAliases())))
	w.Write(doc)
}

// handleTeachers serves the teacher reference list.
func (s *Server) handleTeachers(w http.ResponseWriter, r *http.Request) {
	if !s.ensureReferenceData(w, r) {
		return
	}
	respondJSON(w, http.StatusOK, s.registrar.Teachers())
}

// handleDepartments serves the department reference list.
func (s *Server) handleDepartments(w http.ResponseWriter, r *http.Request) {
	if !s.ensureReferenceData(w, r) {
		return
	}
	respondJSON(w, http.StatusOK, s.registrar.Departments())
}

// handleCourses serves the course reference list.
func (s *Server) handleCourses(w http.ResponseWriter, r *http.Request) {
	if !s.ensureReferenceData(w, r) {
		return
	}
	respondJSON(w, http.StatusOK, s.registrar.Courses())
}

// handleRegister validates and confirms a course registration.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var sub registration.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		s.respondError(w, r, fmt.Errorf("decode registration: %w", err), http.StatusBadRequest)
		return
	}

	if !s.ensureReferenceData(w, r) {
		return
	}

	confirmation, err := s.registrar.Register(r.Context(), sub)
	if err != nil {
		s.respondError(w, r, err, http.StatusUnprocessableEntity)
		return
	}
	respondJSON(w, http.StatusCreated, confirmation)
}

// ensureReferenceData lazily loads reference data on first use. It
// writes the error response itself when the load fails.
func (s *Server) ensureReferenceData(w http.ResponseWriter, r *http.Request) bool {
	if s.registrar.Loaded() {
		return true
	}
	if err := s.registrar.LoadReferenceData(r.Context()); err != nil {
		s.respondError(w, r, err, http.StatusBadGateway)
		return false
	}
	return true
}
