// Package stats keeps rolling-window latency and word-count aggregates for
// clean runs.
package stats

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp time.Time
	duration  time.Duration
	wordsIn   int
	wordsOut  int
}

// Snapshot is a point-in-time aggregate of recent clean runs.
type Snapshot struct {
	Count    int     `json:"count"`
	MinMs    float64 `json:"min_ms"`
	MaxMs    float64 `json:"max_ms"`
	AvgMs    float64 `json:"avg_ms"`
	P50Ms    float64 `json:"p50_ms"`
	P95Ms    float64 `json:"p95_ms"`
	P99Ms    float64 `json:"p99_ms"`
	WordsIn  int64   `json:"words_in"`
	WordsOut int64   `json:"words_out"`
	// RemovedRatio is the share of input words the runs removed, 0 to 1.
	RemovedRatio float64 `json:"removed_ratio"`
	WindowSecs   float64 `json:"window_secs"`
}

// Recorder tracks recent clean runs within a rolling window.
type Recorder struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func NewRecorder(maxAge time.Duration) *Recorder {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Recorder{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

// Record adds one run. Negative values are clamped to zero.
func (s *Recorder) Record(d time.Duration, wordsIn, wordsOut int) {
	d = max(d, 0)
	wordsIn = max(wordsIn, 0)
	wordsOut = max(wordsOut, 0)
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{
		timestamp: now,
		duration:  d,
		wordsIn:   wordsIn,
		wordsOut:  wordsOut,
	})
}

func (s *Recorder) Snapshot() Snapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	snap := Snapshot{WindowSecs: s.maxAge.Seconds()}
	if len(s.samples) == 0 {
		return snap
	}

	values := make([]float64, 0, len(s.samples))
	var sum float64
	for _, sm := range s.samples {
		ms := float64(sm.duration) / float64(time.Millisecond)
		values = append(values, ms)
		sum += ms
		snap.WordsIn += int64(sm.wordsIn)
		snap.WordsOut += int64(sm.wordsOut)
	}
	sort.Float64s(values)

	snap.Count = len(values)
	snap.MinMs = values[0]
	snap.MaxMs = values[len(values)-1]
	snap.AvgMs = sum / float64(len(values))
	snap.P50Ms = percentile(values, 50)
	snap.P95Ms = percentile(values, 95)
	snap.P99Ms = percentile(values, 99)
	if snap.WordsIn > 0 && snap.WordsOut <= snap.WordsIn {
		snap.RemovedRatio = float64(snap.WordsIn-snap.WordsOut) / float64(snap.WordsIn)
	}
	return snap
}

func (s *Recorder) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			s.samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples = s.samples[:writeIdx]
}

func percentile(sortedValues []float64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return sortedValues[0]
	}
	if pct >= 100 {
		return sortedValues[len(sortedValues)-1]
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return sortedValues[lower]
	}
	weight := index - float64(lower)
	lo := sortedValues[lower]
	hi := sortedValues[upper]
	return lo + ((hi - lo) * weight)
}
