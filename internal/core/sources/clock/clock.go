package clock

import (
	"context"
	"time"
)

// Clock delivers one tick per period until ctx is done
type Clock interface {
	Ticks(ctx context.Context, emit func())
}

// Ticker is a wall clock backed by time.Ticker
type Ticker struct {
	Period time.Duration
}

// NewTicker returns a one-second ticker
func NewTicker() *Ticker {
	return &Ticker{Period: time.Second}
}

// Ticks blocks, calling emit once per period until ctx is done
func (t *Ticker) Ticks(ctx context.Context, emit func()) {
	period := t.Period
	if period <= 0 {
		period = time.Second
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			emit()
		}
	}
}

// Manual is a clock driven by the caller. Each Advance delivers one tick
// to every running Ticks call.
type Manual struct {
	ch chan struct{}
}

// NewManual creates a manual clock
func NewManual() *Manual {
	return &Manual{ch: make(chan struct{})}
}

// Ticks delivers ticks sent through Advance until ctx is done
func (m *Manual) Ticks(ctx context.Context, emit func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.ch:
			emit()
		}
	}
}

// Advance delivers n ticks, blocking until each is taken by a running Ticks
func (m *Manual) Advance(n int) {
	for i := 0; i < n; i++ {
		m.ch <- struct{}{}
	}
}
