package clock

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestTickerTicksUntilCancel(t *testing.T) {
	tk := &Ticker{Period: time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())

	var n atomic.Int32
	done := make(chan struct{})
	go func() {
		tk.Ticks(ctx, func() {
			if n.Add(1) == 3 {
				cancel()
			}
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Ticks did not return after cancel")
	}
	if n.Load() < 3 {
		t.Errorf("ticks = %d, want >= 3", n.Load())
	}
}

func TestNewTickerPeriod(t *testing.T) {
	if got := NewTicker().Period; got != time.Second {
		t.Errorf("Period = %v, want 1s", got)
	}
}

func TestManual(t *testing.T) {
	m := NewManual()
	ctx, cancel := context.WithCancel(context.Background())

	var n atomic.Int32
	done := make(chan struct{})
	go func() {
		m.Ticks(ctx, func() { n.Add(1) })
		close(done)
	}()

	m.Advance(4)
	cancel()
	<-done

	if n.Load() != 4 {
		t.Errorf("ticks = %d, want 4", n.Load())
	}
}
