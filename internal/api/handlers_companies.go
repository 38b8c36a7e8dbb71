package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/OatyQuinoa/horizon/internal/edgar"
)

const maxSearchResults = 25

func (s *Server) handleCompanySearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		jsonError(w, "query parameter q is required", http.StatusBadRequest)
		return
	}

	companies, err := s.edgar.SearchCompanies(r.Context(), q, maxSearchResults)
	if err != nil {
		s.log.Error("company search failed", "query", q, "error", err)
		jsonError(w, "company search failed", http.StatusBadGateway)
		return
	}
	if companies == nil {
		companies = []edgar.Company{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"companies": companies})
}

func (s *Server) handleCompanyFilings(w http.ResponseWriter, r *http.Request) {
	cik := chi.URLParam(r, "cik")
	if !cikRe.MatchString(cik) {
		jsonError(w, "cik must be 1-10 digits", http.StatusBadRequest)
		return
	}

	name, filings, err := s.edgar.IPOFilings(r.Context(), cik)
	if err != nil {
		s.log.Error("filings lookup failed", "cik", cik, "error", err)
		jsonError(w, "filings lookup failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"company": name,
		"filings": filings,
	})
}
