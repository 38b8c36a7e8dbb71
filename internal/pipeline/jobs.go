package pipeline

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/OatyQuinoa/horizon/internal/analysis"
)

// JobStatus represents the state of a briefing job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusFetching  JobStatus = "fetching"
	StatusParsing   JobStatus = "parsing"
	StatusAnalyzing JobStatus = "analyzing"
	StatusRendering JobStatus = "rendering"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Job tracks the state of a single prospectus briefing request.
type Job struct {
	mu sync.Mutex

	ID        string `json:"job_id"`
	CIK       string `json:"cik"`
	Accession string `json:"accession"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	errors        []string
	briefing      *analysis.Briefing
	renderedHTML  string
	prospectusURL string
}

// NewJob creates a queued briefing job for a filing.
func NewJob(cik, accession string) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.NewString(),
		CIK:       cik,
		Accession: accession,
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.UpdatedAt = time.Now()
}

// SetResult stores the completed briefing and its rendered page.
func (j *Job) SetResult(b *analysis.Briefing, html, prospectusURL string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.briefing = b
	j.renderedHTML = html
	j.prospectusURL = prospectusURL
	j.UpdatedAt = time.Now()
}

// Result returns the briefing, rendered HTML, and resolved document URL.
// The briefing is nil until the job completes.
func (j *Job) Result() (*analysis.Briefing, string, string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.briefing, j.renderedHTML, j.prospectusURL
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID        string    `json:"job_id"`
	CIK       string    `json:"cik"`
	Accession string    `json:"accession"`
	Status    JobStatus `json:"status"`
	Phase     string    `json:"phase"`
	Errors    []string  `json:"errors"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:        j.ID,
		CIK:       j.CIK,
		Accession: j.Accession,
		Status:    j.Status,
		Phase:     j.Phase,
		Errors:    errs,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}
