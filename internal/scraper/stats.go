package scraper

import (
	"sort"
	"sync"
	"time"
)

type fetchSample struct {
	at         time.Time
	durationMs int64
	bytes      int64
}

// FetchSnapshot is a point-in-time aggregate of recent fetch samples.
type FetchSnapshot struct {
	Count      int     `json:"count"`
	TotalBytes int64   `json:"total_bytes"`
	MinMs      int64   `json:"min_ms"`
	MaxMs      int64   `json:"max_ms"`
	AvgMs      float64 `json:"avg_ms"`
	P50Ms      float64 `json:"p50_ms"`
	P95Ms      float64 `json:"p95_ms"`
}

// FetchStats tracks fetch latencies and transfer volume within a rolling
// window. Safe for concurrent use.
type FetchStats struct {
	mu      sync.Mutex
	samples []fetchSample
	maxAge  time.Duration
}

func NewFetchStats(maxAge time.Duration) *FetchStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &FetchStats{maxAge: maxAge}
}

func (s *FetchStats) Record(durationMs, bytes int64) {
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, fetchSample{at: now, durationMs: durationMs, bytes: bytes})
}

func (s *FetchStats) Snapshot() FetchSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	if len(s.samples) == 0 {
		return FetchSnapshot{}
	}

	durations := make([]int64, 0, len(s.samples))
	var sumMs, sumBytes int64
	for _, sm := range s.samples {
		durations = append(durations, sm.durationMs)
		sumMs += sm.durationMs
		sumBytes += sm.bytes
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	return FetchSnapshot{
		Count:      len(durations),
		TotalBytes: sumBytes,
		MinMs:      durations[0],
		MaxMs:      durations[len(durations)-1],
		AvgMs:      float64(sumMs) / float64(len(durations)),
		P50Ms:      percentile(durations, 50),
		P95Ms:      percentile(durations, 95),
	}
}

func (s *FetchStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	kept := s.samples[:0]
	for _, sm := range s.samples {
		if !sm.at.Before(cutoff) {
			kept = append(kept, sm)
		}
	}
	s.samples = kept
}

func percentile(sorted []int64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sorted[0])
	}
	if pct >= 100 {
		return float64(sorted[len(sorted)-1])
	}

	index := (float64(len(sorted)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return float64(sorted[lower])
	}
	weight := index - float64(lower)
	return float64(sorted[lower]) + (float64(sorted[upper])-float64(sorted[lower]))*weight
}
