package web

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/leadpipe/internal/auth"
	"github.com/JonMunkholm/leadpipe/internal/core"
)

// jobResponse mirrors the job record for API consumers. Nullable fields are
// pointers so absent values serialize as JSON null.
type jobResponse struct {
	ID               string  `json:"id"`
	Status           string  `json:"status"`
	OriginalFilename string  `json:"filename_original"`
	OutputPath       *string `json:"output_csv_path"`
	ReportPath       *string `json:"report_json_path"`
	ErrorMessage     *string `json:"error_message"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

func toJobResponse(job core.Job) jobResponse {
	return jobResponse{
		ID:               job.ID,
		Status:           string(job.Status),
		OriginalFilename: job.OriginalFilename,
		OutputPath:       nullable(job.OutputPath),
		ReportPath:       nullable(job.ReportPath),
		ErrorMessage:     nullable(job.ErrorMessage),
		CreatedAt:        job.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        job.UpdatedAt.Format(time.RFC3339),
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// handleSubmit accepts a multipart upload, creates a queued job, and
// dispatches it. Responds 201 with the job snapshot.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize+1)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "multipart field \"file\" is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, r, fmt.Errorf("%w: upload too large or truncated", core.ErrFileTooLarge))
		return
	}

	job, err := s.service.Submit(r.Context(), auth.UserID(r.Context()), header.Filename, data)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toJobResponse(job))
}

// handleStatus returns the job snapshot for its owner.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	job, err := s.service.Get(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "jobID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toJobResponse(job))
}

// handlePreview returns the first rows of the converted output as JSON.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	data, err := s.service.Preview(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "jobID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// handleReport returns the quality report as JSON.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	data, err := s.service.Report(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "jobID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// handleDownload streams the converted CSV as an attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	filename, data, err := s.service.Download(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "jobID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

// handleRetry re-queues a failed job. Responds 202 with the fresh snapshot.
func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	job, err := s.service.Retry(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "jobID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, toJobResponse(job))
}

// handleList returns the owner's jobs newest first. Supports ?status=,
// ?limit=, ?offset=.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	status := core.Status(r.URL.Query().Get("status"))
	limit := parseIntParam(r, "limit", 0)
	offset := parseIntParam(r, "offset", 0)

	jobs, err := s.service.List(r.Context(), auth.UserID(r.Context()), status, limit, offset)
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp := make([]jobResponse, 0, len(jobs))
	for _, job := range jobs {
		resp = append(resp, toJobResponse(job))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"jobs": resp})
}

// parseIntParam parses a non-negative integer query parameter with a default.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}
	return i
}
