package heartrate

import (
	"context"
	"log"
	"sync"
)

// Monitor streams heart-rate readings in beats per minute until ctx is done
type Monitor interface {
	Stream(ctx context.Context, emit func(bpm int)) error
	Name() string
}

// Connect picks the heart-rate strategy for a session: a device monitor
// when devicePath is readable, the synthetic generator otherwise. Absence
// and permission failures fall back silently apart from one log line, and
// a device that fails later hands over to the synthetic generator too.
func Connect(devicePath string, baseline int, seed int64) Monitor {
	synthetic := NewSynthetic(baseline, seed)
	if devicePath != "" {
		dev, err := OpenDevice(devicePath)
		if err == nil {
			return NewFallback(dev, synthetic)
		}
		log.Printf("heart rate device unavailable, using synthetic readings: %v", err)
	}
	return synthetic
}

// FallbackMonitor streams from a primary monitor until it fails or runs
// dry while still wanted, then streams from the fallback for the rest of
// its life
type FallbackMonitor struct {
	primary  Monitor
	fallback Monitor

	mu     sync.Mutex
	failed bool
}

// NewFallback wraps primary so that its failure switches to fallback
func NewFallback(primary, fallback Monitor) *FallbackMonitor {
	return &FallbackMonitor{primary: primary, fallback: fallback}
}

// Name reports the monitor currently supplying readings
func (f *FallbackMonitor) Name() string {
	if f.usingFallback() {
		return f.fallback.Name()
	}
	return f.primary.Name()
}

// Stream emits readings until ctx is done. Cancellation never counts as a
// primary failure.
func (f *FallbackMonitor) Stream(ctx context.Context, emit func(bpm int)) error {
	if !f.usingFallback() {
		err := f.primary.Stream(ctx, emit)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			log.Printf("heart rate device %s failed, using synthetic readings: %v", f.primary.Name(), err)
		} else {
			log.Printf("heart rate device %s closed, using synthetic readings", f.primary.Name())
		}

		f.mu.Lock()
		f.failed = true
		f.mu.Unlock()
	}
	return f.fallback.Stream(ctx, emit)
}

func (f *FallbackMonitor) usingFallback() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failed
}
