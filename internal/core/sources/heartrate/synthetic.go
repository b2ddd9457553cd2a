package heartrate

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// SyntheticMonitor produces a plausible pseudo-random walk around a
// baseline, one reading every Interval
type SyntheticMonitor struct {
	Interval time.Duration
	Baseline int

	mu      sync.Mutex
	current int
	rng     *rand.Rand
}

// NewSynthetic creates a synthetic monitor. baseline <= 0 uses 95 bpm.
func NewSynthetic(baseline int, seed int64) *SyntheticMonitor {
	if baseline <= 0 {
		baseline = 95
	}
	return &SyntheticMonitor{
		Interval: 2 * time.Second,
		Baseline: baseline,
		current:  baseline,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Name identifies the strategy
func (s *SyntheticMonitor) Name() string {
	return "synthetic"
}

// Stream emits one reading per Interval until ctx is done
func (s *SyntheticMonitor) Stream(ctx context.Context, emit func(bpm int)) error {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			emit(s.Next())
		}
	}
}

// Next returns the next reading: a step of up to ±4 bpm pulled back
// toward the baseline, kept within 30 bpm of it
func (s *SyntheticMonitor) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	step := s.rng.Intn(9) - 4
	pull := (s.Baseline - s.current) / 8
	s.current += step + pull

	if s.current < s.Baseline-30 {
		s.current = s.Baseline - 30
	}
	if s.current > s.Baseline+30 {
		s.current = s.Baseline + 30
	}
	return s.current
}
