package location

import (
	"context"
	"sync"
	"time"

	"github.com/neilberkman/trailwatch/internal/core/models"
)

// Replay plays back a recorded list of fixes. The gap between deliveries
// follows the recorded timestamps divided by Rate; a stopped Watch picks
// up from the next undelivered fix.
type Replay struct {
	fixes []models.Fix
	rate  float64

	// MaxGap caps the wait between two fixes so long recorded pauses
	// don't stall playback.
	MaxGap time.Duration

	mu     sync.Mutex
	cursor int
	sleep  func(ctx context.Context, d time.Duration) error
	now    func() time.Time
}

// NewReplay creates a replay source. rate <= 0 means real time.
func NewReplay(fixes []models.Fix, rate float64) *Replay {
	if rate <= 0 {
		rate = 1
	}
	return &Replay{
		fixes:  fixes,
		rate:   rate,
		MaxGap: 10 * time.Second,
		sleep:  sleepContext,
		now:    time.Now,
	}
}

// Len returns the number of fixes in the recording
func (r *Replay) Len() int {
	return len(r.fixes)
}

// Delivered returns how many fixes have been emitted so far
func (r *Replay) Delivered() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cursor
}

// Skip moves the cursor past the first n fixes, as when a recovered
// session already holds them. The cursor never moves backwards.
func (r *Replay) Skip(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n > len(r.fixes) {
		n = len(r.fixes)
	}
	if n > r.cursor {
		r.cursor = n
	}
}

// Watch emits the remaining fixes, restamped to the wall clock so the
// session log reads as if recorded live. Returns nil when the recording
// is exhausted.
func (r *Replay) Watch(ctx context.Context, emit func(Event)) error {
	for {
		r.mu.Lock()
		i := r.cursor
		r.mu.Unlock()
		if i >= len(r.fixes) {
			return nil
		}

		if i > 0 {
			gap := r.fixes[i].Time().Sub(r.fixes[i-1].Time())
			gap = time.Duration(float64(gap) / r.rate)
			if gap > r.MaxGap {
				gap = r.MaxGap
			}
			if gap > 0 {
				if err := r.sleep(ctx, gap); err != nil {
					return err
				}
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		fix := r.fixes[i]
		fix.Timestamp = r.now().UnixMilli()

		r.mu.Lock()
		r.cursor = i + 1
		r.mu.Unlock()

		emit(Event{Fix: fix})
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
