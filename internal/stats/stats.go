// Package stats tracks pipeline phase latencies within a rolling window.
package stats

import (
	"sort"
	"sync"
	"time"
)

// Phase names recorded by the briefing pipeline.
const (
	PhaseFetch   = "fetch"
	PhaseParse   = "parse"
	PhaseAnalyze = "analyze"
	PhaseRender  = "render"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
}

// Snapshot is a point-in-time aggregate of latency samples for one phase.
type Snapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// Tracker records per-phase latencies and reports rolling-window aggregates.
type Tracker struct {
	mu     sync.Mutex
	phases map[string][]sample
	maxAge time.Duration
}

func NewTracker(maxAge time.Duration) *Tracker {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Tracker{
		phases: make(map[string][]sample),
		maxAge: maxAge,
	}
}

func (t *Tracker) Record(phase string, d time.Duration) {
	durationMs := d.Milliseconds()
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.phases[phase] = pruneSamples(t.phases[phase], now, t.maxAge)
	t.phases[phase] = append(t.phases[phase], sample{
		timestamp:  now,
		durationMs: durationMs,
	})
}

// SnapshotAll returns an aggregate per recorded phase.
func (t *Tracker) SnapshotAll() map[string]Snapshot {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]Snapshot, len(t.phases))
	for phase, samples := range t.phases {
		samples = pruneSamples(samples, now, t.maxAge)
		t.phases[phase] = samples
		out[phase] = aggregate(samples)
	}
	return out
}

func pruneSamples(samples []sample, now time.Time, maxAge time.Duration) []sample {
	cutoff := now.Add(-maxAge)
	writeIdx := 0
	for _, sm := range samples {
		if !sm.timestamp.Before(cutoff) {
			samples[writeIdx] = sm
			writeIdx++
		}
	}
	return samples[:writeIdx]
}

func aggregate(samples []sample) Snapshot {
	if len(samples) == 0 {
		return Snapshot{}
	}

	values := make([]int64, 0, len(samples))
	var sum int64
	for _, sm := range samples {
		values = append(values, sm.durationMs)
		sum += sm.durationMs
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return Snapshot{
		Count: len(values),
		MinMs: values[0],
		MaxMs: values[len(values)-1],
		AvgMs: float64(sum) / float64(len(values)),
		P50Ms: percentile(values, 50),
		P95Ms: percentile(values, 95),
		P99Ms: percentile(values, 99),
	}
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
