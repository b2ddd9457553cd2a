package tracker

import (
	"math"
	"time"

	"github.com/neilberkman/trailwatch/internal/core/geo"
	"github.com/neilberkman/trailwatch/internal/core/models"
)

const (
	// DefaultMET is the metabolic equivalent used for hiking
	DefaultMET = 6.0
	// DefaultWeightKg is the assumed subject weight
	DefaultWeightKg = 70.0

	mpsToKmh = 3.6
)

// Snapshot is a copy of the tracker's observable state
type Snapshot struct {
	State      State
	Metrics    models.Metrics
	PointCount int
	HeartRate  int
	StartedAt  time.Time
}

// Tracker owns one hiking session: its state machine, point log and metrics.
// It is not safe for concurrent use; session.Controller serializes access.
type Tracker struct {
	state     State
	points    []models.Point
	metrics   models.Metrics
	heartRate int
	startedAt time.Time

	met      float64
	weightKg float64
	now      func() time.Time
}

// Option configures a Tracker
type Option func(*Tracker)

// WithCalorieModel overrides the MET value and subject weight
func WithCalorieModel(met, weightKg float64) Option {
	return func(t *Tracker) {
		if met > 0 {
			t.met = met
		}
		if weightKg > 0 {
			t.weightKg = weightKg
		}
	}
}

// WithClock sets the clock used to stamp the session start
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// New creates an idle tracker
func New(opts ...Option) *Tracker {
	t := &Tracker{
		met:      DefaultMET,
		weightKg: DefaultWeightKg,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.clear()
	return t
}

func (t *Tracker) clear() {
	t.state = Idle
	t.points = nil
	t.metrics = models.Metrics{Signal: models.SignalNone}
	t.heartRate = 0
	t.startedAt = time.Time{}
}

// State returns the current lifecycle state
func (t *Tracker) State() State {
	return t.state
}

// Start begins recording. Only valid from Idle.
func (t *Tracker) Start() bool {
	if t.state != Idle {
		return false
	}
	t.clear()
	t.state = Active
	t.startedAt = t.now()
	return true
}

// Pause suspends time and sample acceptance. Only valid from Active.
func (t *Tracker) Pause() bool {
	if t.state != Active {
		return false
	}
	t.state = Paused
	return true
}

// Resume continues a paused session
func (t *Tracker) Resume() bool {
	if t.state != Paused {
		return false
	}
	t.state = Active
	return true
}

// Stop finishes recording and freezes metrics for display and export
func (t *Tracker) Stop() bool {
	if t.state != Active && t.state != Paused {
		return false
	}
	t.state = Summary
	return true
}

// Reset discards all session data. Only valid from Summary.
func (t *Tracker) Reset() bool {
	if t.state != Summary {
		return false
	}
	t.clear()
	return true
}

// IngestFix applies one location sample. Samples that arrive outside
// Active are discarded and IngestFix reports false.
func (t *Tracker) IngestFix(fix models.Fix) bool {
	if t.state != Active {
		return false
	}
	t.applyPoint(fix.Point)
	t.metrics.Signal = models.ClassifySignal(fix.Accuracy)
	t.recomputeAverage()
	return true
}

// applyPoint runs the ordered per-point updates: distance, elevation gain,
// max altitude, append, current speed.
func (t *Tracker) applyPoint(p models.Point) {
	if n := len(t.points); n > 0 {
		prev := t.points[n-1]
		t.metrics.DistanceKm += geo.HaversineKm(prev.Latitude, prev.Longitude, p.Latitude, p.Longitude)

		if prev.HasAltitude && p.HasAltitude && p.Altitude > prev.Altitude {
			t.metrics.ElevationGainM += p.Altitude - prev.Altitude
		}
	}

	if p.HasAltitude && (!t.metrics.HasMaxAltitude || p.Altitude > t.metrics.MaxAltitudeM) {
		t.metrics.MaxAltitudeM = p.Altitude
		t.metrics.HasMaxAltitude = true
	}

	t.points = append(t.points, p)

	if p.HasSpeed {
		t.metrics.SpeedKmh = p.Speed * mpsToKmh
	}
}

// IngestFixError records a failed fix acquisition. The session keeps
// recording with its last known position.
func (t *Tracker) IngestFixError(err error) bool {
	if t.state != Active {
		return false
	}
	t.metrics.Signal = models.SignalNone
	return true
}

// Tick advances elapsed active time by one second
func (t *Tracker) Tick() bool {
	if t.state != Active {
		return false
	}
	t.metrics.ElapsedSeconds++
	t.metrics.Calories = t.caloriesFor(t.metrics.ElapsedSeconds)
	t.recomputeAverage()
	return true
}

// SetHeartRate records the latest heart-rate reading
func (t *Tracker) SetHeartRate(bpm int) bool {
	if t.state != Active || bpm <= 0 {
		return false
	}
	t.heartRate = bpm
	return true
}

func (t *Tracker) caloriesFor(elapsedSeconds int) int {
	return int(math.Round(t.met * t.weightKg * float64(elapsedSeconds) / 3600))
}

func (t *Tracker) recomputeAverage() {
	if t.metrics.ElapsedSeconds == 0 {
		t.metrics.AvgSpeedKmh = 0
		return
	}
	hours := float64(t.metrics.ElapsedSeconds) / 3600
	t.metrics.AvgSpeedKmh = t.metrics.DistanceKm / hours
}

// Restore rebuilds a session from a journaled point log and elapsed time.
// A finished session comes back in Summary; anything else comes back
// Paused so the user decides when to continue.
func (t *Tracker) Restore(state State, points []models.Point, elapsedSeconds int, startedAt time.Time) {
	t.clear()
	for _, p := range points {
		t.applyPoint(p)
	}
	if elapsedSeconds > 0 {
		t.metrics.ElapsedSeconds = elapsedSeconds
		t.metrics.Calories = t.caloriesFor(elapsedSeconds)
	}
	t.recomputeAverage()
	t.startedAt = startedAt
	t.state = Paused
	if state == Summary {
		t.state = Summary
	}
}

// Snapshot returns a copy of the current state and metrics
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		State:      t.state,
		Metrics:    t.metrics,
		PointCount: len(t.points),
		HeartRate:  t.heartRate,
		StartedAt:  t.startedAt,
	}
}

// Points returns a copy of the recorded point log
func (t *Tracker) Points() []models.Point {
	out := make([]models.Point, len(t.points))
	copy(out, t.points)
	return out
}
