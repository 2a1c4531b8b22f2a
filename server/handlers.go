package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pulsefit/analysis"
	"github.com/pulsefit/data"
	"github.com/pulsefit/models"
	"github.com/pulsefit/templates"
)

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	uploads, err := s.uploads.List()
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	templ.Handler(templates.Index(uploads)).ServeHTTP(w, r)
}

func (s *Server) uploadHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrNotMultipart):
			http.Error(w, "No file part", http.StatusBadRequest)
		case errors.As(err, &tooLarge):
			http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
		default:
			http.Error(w, "Failed to parse form data", http.StatusBadRequest)
		}
		return
	}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		// an empty file input arrives as a plain form value
		if _, ok := r.MultipartForm.Value["file"]; ok {
			http.Error(w, "No selected file", http.StatusBadRequest)
			return
		}
		http.Error(w, "No file part", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "Failed to read uploaded file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Filename == "" {
		http.Error(w, "No selected file", http.StatusBadRequest)
		return
	}

	upload, err := s.uploads.Save(header.Filename, file)
	if err != nil {
		var fe *models.FormatError
		if errors.As(err, &fe) {
			http.Error(w, "Unsupported file type, expected csv, json or xlsx", http.StatusBadRequest)
			return
		}
		log.Printf("Failed to store upload %s: %v", header.Filename, err)
		http.Error(w, "Failed to store file", http.StatusInternalServerError)
		return
	}

	log.Printf("Uploaded %s (%s)", upload.Filename, upload.ID)
	http.Redirect(w, r, "/data", http.StatusSeeOther)
}

func (s *Server) dataHandler(w http.ResponseWriter, r *http.Request) {
	report, err := s.latestReport()
	if report == nil {
		s.renderError(w, r, err)
		return
	}
	var noData *models.NoDataError
	if err != nil && !errors.As(err, &noData) {
		s.renderError(w, r, err)
		return
	}
	templ.Handler(templates.Intervals(report)).ServeHTTP(w, r)
}

func (s *Server) latestHandler(w http.ResponseWriter, r *http.Request) {
	report, err := s.latestReport()
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	title := "Heart Rate over Time"
	lineChart, err := renderSeries(report.Latest.Buckets, title)
	if err != nil {
		log.Printf("Failed to render heart rate chart: %v", err)
		s.renderError(w, r, err)
		return
	}
	zoneChart, err := renderZones(report.Latest.Zones)
	if err != nil {
		log.Printf("Failed to render zone chart: %v", err)
		s.renderError(w, r, err)
		return
	}

	component := templates.Latest(report.Upload, report.Latest, lineChart+zoneChart)
	templ.Handler(component).ServeHTTP(w, r)
}

func (s *Server) apiIntervalsHandler(w http.ResponseWriter, r *http.Request) {
	report, err := s.latestReport()
	if report == nil {
		s.writeJSONError(w, err)
		return
	}
	var noData *models.NoDataError
	if err != nil && !errors.As(err, &noData) {
		s.writeJSONError(w, err)
		return
	}

	intervals := report.Intervals
	if intervals == nil {
		intervals = []models.Interval{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"upload":    report.Upload,
		"step":      report.Series.Step.String(),
		"buckets":   report.Series.Len(),
		"intervals": intervals,
	})
}

func (s *Server) apiLatestHandler(w http.ResponseWriter, r *http.Request) {
	report, err := s.latestReport()
	if err != nil {
		s.writeJSONError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"upload": report.Upload,
		"stats":  report.Latest,
	})
}

// latestReport analyzes the most recent upload. A *models.NoDataError comes
// back with a nil report when nothing is uploaded, and with a report when the
// upload has no dense interval.
func (s *Server) latestReport() (*models.Report, error) {
	upload, err := s.uploads.Latest()
	if err != nil {
		return nil, err
	}
	format, err := data.ParseFormat(upload.Format)
	if err != nil {
		return nil, err
	}

	report, err := analysis.AnalyzeFile(upload.Path, format, s.options())
	if report != nil {
		report.Upload = upload
	}
	return report, err
}

func statusFor(err error) int {
	var (
		formatErr *models.FormatError
		noData    *models.NoDataError
		empty     *models.EmptyIntervalError
	)
	switch {
	case errors.As(err, &formatErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &noData):
		return http.StatusOK
	case errors.As(err, &empty):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	var noData *models.NoDataError
	if errors.As(err, &noData) {
		templ.Handler(templates.Message(noData.Reason)).ServeHTTP(w, r)
		return
	}
	log.Printf("Request %s failed: %v", r.URL.Path, err)
	templ.Handler(templates.Error(err.Error()), templ.WithStatus(status)).ServeHTTP(w, r)
}

func (s *Server) writeJSONError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	var noData *models.NoDataError
	if errors.As(err, &noData) {
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}
