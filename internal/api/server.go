package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/OatyQuinoa/horizon/internal/config"
	"github.com/OatyQuinoa/horizon/internal/edgar"
	"github.com/OatyQuinoa/horizon/internal/pipeline"
	"github.com/OatyQuinoa/horizon/internal/stats"
)

// EdgarClient is the EDGAR surface the API handlers need.
type EdgarClient interface {
	SearchCompanies(ctx context.Context, q string, limit int) ([]edgar.Company, error)
	IPOFilings(ctx context.Context, cik string) (string, []edgar.Filing, error)
}

// Server is the HTTP API server for horizon.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	edgar        EdgarClient
	tracker      *stats.Tracker
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, ec EdgarClient, tracker *stats.Tracker, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		edgar:        ec,
		tracker:      tracker,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(CORS(s.cfg.AllowedOrigins))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/companies/search", s.handleCompanySearch)
		r.Get("/companies/{cik}/filings", s.handleCompanyFilings)

		r.Post("/briefings", s.handleCreateBriefing)
		r.Get("/briefings/{jobID}/status", s.handleBriefingStatus)
		r.Get("/briefings/{jobID}", s.handleGetBriefing)
		r.Get("/briefings/{jobID}/download", s.handleDownloadBriefing)

		r.Post("/analyze", s.handleAnalyzeUpload)
		r.Get("/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
