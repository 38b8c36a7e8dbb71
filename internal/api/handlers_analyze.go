package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/OatyQuinoa/horizon/internal/analysis"
	"github.com/OatyQuinoa/horizon/internal/parser"
	"github.com/OatyQuinoa/horizon/internal/render"
	"github.com/OatyQuinoa/horizon/internal/stats"
)

// handleAnalyzeUpload runs a synchronous briefing over an uploaded
// prospectus file, for documents obtained outside EDGAR.
func (s *Server) handleAnalyzeUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size, with headroom for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	p, err := parser.ForFile(filename, parser.Options{PDFFallbackPdftotext: s.cfg.PDFFallbackPdftotext})
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	parseStart := time.Now()
	text, err := p.Parse(file, filename)
	if err != nil {
		s.log.Error("upload parse failed", "filename", filename, "error", err)
		jsonError(w, "failed to parse document: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.tracker.Record(stats.PhaseParse, time.Since(parseStart))

	meta := analysis.FilingMeta{
		CompanyName: strings.TrimSpace(r.FormValue("company")),
		FormType:    strings.TrimSpace(r.FormValue("form_type")),
	}

	analyzeStart := time.Now()
	briefing := analysis.BuildBriefing(text, meta, s.cfg.Thresholds)
	s.tracker.Record(stats.PhaseAnalyze, time.Since(analyzeStart))

	if r.FormValue("format") == "html" {
		page, err := render.HTML(&briefing)
		if err != nil {
			jsonError(w, "render failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(briefing)
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
