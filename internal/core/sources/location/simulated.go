package location

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/neilberkman/trailwatch/internal/core/geo"
	"github.com/neilberkman/trailwatch/internal/core/models"
)

// Simulated walks a synthetic hiker uphill from a start position.
// It stands in for a GPS receiver when no recording is replayed.
type Simulated struct {
	Interval  time.Duration
	SpeedMps  float64
	ClimbRate float64 // meters gained per meter walked, on average
	ErrorRate float64 // probability that a fix fails

	mu      sync.Mutex
	lat     float64
	lon     float64
	alt     float64
	heading float64
	rng     *rand.Rand
	now     func() time.Time
}

// NewSimulated creates a simulated source starting at the given position
func NewSimulated(lat, lon, alt float64, seed int64) *Simulated {
	return &Simulated{
		Interval:  2 * time.Second,
		SpeedMps:  1.3,
		ClimbRate: 0.08,
		ErrorRate: 0.02,
		lat:       lat,
		lon:       lon,
		alt:       alt,
		heading:   math.Pi / 4,
		rng:       rand.New(rand.NewSource(seed)),
		now:       time.Now,
	}
}

// Watch emits one event per Interval until ctx is done
func (s *Simulated) Watch(ctx context.Context, emit func(Event)) error {
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

// Next advances the walk by one interval and returns the resulting event
func (s *Simulated) Next() Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rng.Float64() < s.ErrorRate {
		return Event{Err: ErrNoFix}
	}

	speed := s.SpeedMps * (0.8 + 0.4*s.rng.Float64())
	step := speed * s.Interval.Seconds()
	s.heading += (s.rng.Float64() - 0.5) * 0.6
	s.lat, s.lon = geo.Offset(s.lat, s.lon, step*math.Cos(s.heading), step*math.Sin(s.heading))
	s.alt += step * s.ClimbRate * (s.rng.Float64()*2 - 0.4)

	accuracy := 4 + s.rng.ExpFloat64()*10
	fix := models.NewFix(s.lat, s.lon, s.now(), accuracy).
		WithAltitude(math.Round(s.alt*10) / 10).
		WithSpeed(speed)
	return Event{Fix: fix}
}
