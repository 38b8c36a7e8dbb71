package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/OatyQuinoa/horizon/internal/pipeline"
)

var (
	cikRe       = regexp.MustCompile(`^\d{1,10}$`)
	accessionRe = regexp.MustCompile(`^\d{10}-\d{2}-\d{6}$`)
)

type createBriefingRequest struct {
	CIK       string `json:"cik"`
	Accession string `json:"accession"`
}

func (s *Server) handleCreateBriefing(w http.ResponseWriter, r *http.Request) {
	var req createBriefingRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	req.CIK = strings.TrimSpace(req.CIK)
	req.Accession = strings.TrimSpace(req.Accession)

	if !cikRe.MatchString(req.CIK) {
		jsonError(w, "cik must be 1-10 digits", http.StatusBadRequest)
		return
	}
	if !accessionRe.MatchString(req.Accession) {
		jsonError(w, "accession must look like 0001193125-24-000123", http.StatusBadRequest)
		return
	}

	job := pipeline.NewJob(req.CIK, req.Accession)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/briefings/%s/status", job.ID),
	})
}

func (s *Server) handleBriefingStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

func (s *Server) handleGetBriefing(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	briefing, _, _ := job.Result()
	if briefing == nil {
		snap := job.Snapshot()
		if snap.Status == pipeline.StatusFailed {
			jsonError(w, fmt.Sprintf("job failed: %s", strings.Join(snap.Errors, "; ")), http.StatusConflict)
			return
		}
		jsonError(w, fmt.Sprintf("briefing not ready (status %s)", snap.Status), http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(briefing)
}

func (s *Server) handleDownloadBriefing(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	briefing, page, prospectusURL := job.Result()
	if briefing == nil {
		jsonError(w, "briefing not ready", http.StatusConflict)
		return
	}

	filename := downloadFilename(briefing.Meta.CompanyName, briefing.Meta.AccessionNumber)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if prospectusURL != "" {
		w.Header().Set("X-Prospectus-Url", prospectusURL)
	}
	w.Write([]byte(page))
}

var filenameUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func downloadFilename(company, accession string) string {
	base := strings.TrimSpace(company)
	if base == "" {
		base = "briefing"
	}
	base = filenameUnsafe.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-.")
	if accession != "" {
		base += "-" + strings.ReplaceAll(accession, "-", "")
	}
	return base + ".html"
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
