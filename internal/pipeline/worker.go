package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/OatyQuinoa/horizon/internal/analysis"
	"github.com/OatyQuinoa/horizon/internal/edgar"
	"github.com/OatyQuinoa/horizon/internal/parser"
	"github.com/OatyQuinoa/horizon/internal/render"
	"github.com/OatyQuinoa/horizon/internal/stats"
)

// Fetcher is the EDGAR surface the worker needs.
type Fetcher interface {
	IPOFilings(ctx context.Context, cik string) (string, []edgar.Filing, error)
	FetchProspectus(ctx context.Context, cik, accession string) (string, string, error)
}

// Worker runs a single briefing job through fetch, parse, analyze, render.
type Worker struct {
	fetcher    Fetcher
	thresholds analysis.Thresholds
	tracker    *stats.Tracker
	log        *slog.Logger
}

func NewWorker(fetcher Fetcher, th analysis.Thresholds, tracker *stats.Tracker, log *slog.Logger) *Worker {
	return &Worker{
		fetcher:    fetcher,
		thresholds: th,
		tracker:    tracker,
		log:        log,
	}
}

// Process runs the full briefing pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "cik", job.CIK, "accession", job.Accession)

	// Phase 1: Fetch the prospectus document and its filing metadata.
	job.SetStatus(StatusFetching, "fetching")
	fetchStart := time.Now()

	meta := w.resolveMeta(ctx, job, log)

	html, docURL, err := w.fetcher.FetchProspectus(ctx, job.CIK, job.Accession)
	if err != nil {
		log.Error("prospectus fetch failed", "error", err)
		job.AddError(fmt.Sprintf("fetch: %s", err))
		job.SetStatus(StatusFailed, "fetching")
		return
	}
	meta.ProspectusURL = docURL
	w.tracker.Record(stats.PhaseFetch, time.Since(fetchStart))

	// Phase 2: Parse HTML to text.
	job.SetStatus(StatusParsing, "parsing")
	parseStart := time.Now()
	p := &parser.HTMLParser{}
	text, err := p.Parse(strings.NewReader(html), "prospectus.htm")
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	w.tracker.Record(stats.PhaseParse, time.Since(parseStart))

	// Phase 3: Analyze.
	job.SetStatus(StatusAnalyzing, "analyzing")
	analyzeStart := time.Now()
	briefing := analysis.BuildBriefing(text, meta, w.thresholds)
	w.tracker.Record(stats.PhaseAnalyze, time.Since(analyzeStart))

	// Phase 4: Render the downloadable page.
	job.SetStatus(StatusRendering, "rendering")
	renderStart := time.Now()
	page, err := render.HTML(&briefing)
	if err != nil {
		log.Error("render failed", "error", err)
		job.AddError(fmt.Sprintf("render: %s", err))
		job.SetStatus(StatusFailed, "rendering")
		return
	}
	w.tracker.Record(stats.PhaseRender, time.Since(renderStart))

	job.SetResult(&briefing, page, docURL)
	job.SetStatus(StatusCompleted, "done")
	log.Info("briefing complete",
		"sections", len(briefing.Sections),
		"conditional_total", briefing.Metrics.ConditionalTotal)
}

// resolveMeta looks up the filing's company name, form type, and date from
// the submissions feed. A lookup failure degrades to bare identifiers.
func (w *Worker) resolveMeta(ctx context.Context, job *Job, log *slog.Logger) analysis.FilingMeta {
	meta := analysis.FilingMeta{
		CIK:             edgar.PadCIK(job.CIK),
		AccessionNumber: job.Accession,
	}

	name, filings, err := w.fetcher.IPOFilings(ctx, job.CIK)
	if err != nil {
		log.Warn("filing metadata lookup failed, proceeding", "error", err)
		return meta
	}
	meta.CompanyName = name
	for _, f := range filings {
		if f.AccessionNumber == job.Accession {
			meta.FilingDate = f.FilingDate
			meta.FormType = f.FormType
			break
		}
	}
	return meta
}
