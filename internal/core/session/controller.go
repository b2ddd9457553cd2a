package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/neilberkman/trailwatch/internal/core/models"
	"github.com/neilberkman/trailwatch/internal/core/sources/battery"
	"github.com/neilberkman/trailwatch/internal/core/sources/clock"
	"github.com/neilberkman/trailwatch/internal/core/sources/heartrate"
	"github.com/neilberkman/trailwatch/internal/core/sources/location"
	"github.com/neilberkman/trailwatch/internal/core/tracker"
)

// progressEvery is how many ticks pass between journal progress writes
const progressEvery = 10

// Recorder persists the live session as it changes. journal.Journal
// implements it.
type Recorder interface {
	Begin(state string, startedAt time.Time) error
	SaveProgress(state string, elapsedSeconds, heartRate int) error
	AppendPoint(seq int, p models.Point) error
	Clear() error
}

// Sources are the capability handles a session reads from
type Sources struct {
	Location  location.Source
	Clock     clock.Clock
	HeartRate heartrate.Monitor
	Battery   battery.Source
}

// Snapshot is the tracker snapshot plus device readings for display
type Snapshot struct {
	tracker.Snapshot
	Battery         int
	HeartRateSource string
}

// Controller serializes every transition and every sample delivered to
// one tracker. Sources are subscribed while the session is active; each
// subscription gets its own epoch, and samples from an older epoch or
// arriving outside Active are dropped.
type Controller struct {
	mu       sync.Mutex
	tracker  *tracker.Tracker
	sources  Sources
	recorder Recorder

	epoch   uint64
	cancel  context.CancelFunc
	ticks   int
	battery int

	base     context.Context
	stopBase context.CancelFunc
	wg       sync.WaitGroup
	changes  chan struct{}
}

// Option configures a Controller
type Option func(*Controller)

// WithRecorder journals the session through r
func WithRecorder(r Recorder) Option {
	return func(c *Controller) {
		c.recorder = r
	}
}

// NewController wires t to its sources. Missing heart-rate or battery
// sources fall back to synthetic readings and a full battery.
func NewController(t *tracker.Tracker, sources Sources, opts ...Option) *Controller {
	if sources.Clock == nil {
		sources.Clock = clock.NewTicker()
	}
	if sources.HeartRate == nil {
		sources.HeartRate = heartrate.NewSynthetic(0, time.Now().UnixNano())
	}
	if sources.Battery == nil {
		sources.Battery = battery.Fixed(100)
	}

	base, stop := context.WithCancel(context.Background())
	c := &Controller{
		tracker:  t,
		sources:  sources,
		battery:  sources.Battery.Level(),
		base:     base,
		stopBase: stop,
		changes:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		sources.Battery.Watch(base, c.handleBattery)
	}()

	return c
}

// Changes signals that the snapshot may have changed. Signals coalesce.
func (c *Controller) Changes() <-chan struct{} {
	return c.changes
}

// Close cancels every subscription and waits for source goroutines to exit
func (c *Controller) Close() {
	c.mu.Lock()
	c.unsubscribe()
	c.mu.Unlock()

	c.stopBase()
	c.wg.Wait()
}

// Start begins a new session from Idle
func (c *Controller) Start() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.tracker.Start() {
		return false
	}
	c.ticks = 0
	snap := c.tracker.Snapshot()
	c.record(func(r Recorder) error { return r.Begin(snap.State.String(), snap.StartedAt) })
	c.subscribe()
	c.notify()
	return true
}

// Pause suspends the active session
func (c *Controller) Pause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.tracker.Pause() {
		return false
	}
	c.unsubscribe()
	c.saveProgress()
	c.notify()
	return true
}

// Resume continues a paused session under a fresh subscription
func (c *Controller) Resume() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.tracker.Resume() {
		return false
	}
	c.subscribe()
	c.saveProgress()
	c.notify()
	return true
}

// Stop finishes the session and freezes its metrics
func (c *Controller) Stop() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.tracker.Stop() {
		return false
	}
	c.unsubscribe()
	c.saveProgress()
	c.notify()
	return true
}

// Reset discards the finished session and its journal
func (c *Controller) Reset() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.tracker.Reset() {
		return false
	}
	c.record(func(r Recorder) error { return r.Clear() })
	c.notify()
	return true
}

// Toggle performs the primary action for the current state: start when
// idle, pause when active, resume when paused.
func (c *Controller) Toggle() bool {
	switch c.State() {
	case tracker.Idle:
		return c.Start()
	case tracker.Active:
		return c.Pause()
	case tracker.Paused:
		return c.Resume()
	}
	return false
}

// Restore loads a journaled session, Paused or Summary depending on the
// journaled state. Only valid while Idle.
func (c *Controller) Restore(state tracker.State, points []models.Point, elapsedSeconds int, startedAt time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tracker.State() != tracker.Idle {
		return false
	}
	c.tracker.Restore(state, points, elapsedSeconds, startedAt)
	c.ticks = elapsedSeconds
	c.notify()
	return true
}

// State returns the current lifecycle state
func (c *Controller) State() tracker.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracker.State()
}

// Snapshot returns a copy of the session for display
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Snapshot:        c.tracker.Snapshot(),
		Battery:         c.battery,
		HeartRateSource: c.sources.HeartRate.Name(),
	}
}

// Points returns a copy of the recorded point log
func (c *Controller) Points() []models.Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracker.Points()
}

// subscribe starts the location, clock and heart-rate sources under a new
// epoch. Caller holds mu.
func (c *Controller) subscribe() {
	c.unsubscribe()

	c.epoch++
	epoch := c.epoch
	ctx, cancel := context.WithCancel(c.base)
	c.cancel = cancel

	if c.sources.Location != nil {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			err := c.sources.Location.Watch(ctx, func(ev location.Event) {
				c.handleLocation(epoch, ev)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("location source stopped: %v", err)
			}
		}()
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.sources.Clock.Ticks(ctx, func() { c.handleTick(epoch) })
	}()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		err := c.sources.HeartRate.Stream(ctx, func(bpm int) { c.handleHeartRate(epoch, bpm) })
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("heart rate source stopped: %v", err)
		}
	}()
}

// unsubscribe cancels the current subscription. Caller holds mu.
func (c *Controller) unsubscribe() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// live reports whether an event from epoch may be applied. Caller holds mu.
func (c *Controller) live(epoch uint64) bool {
	return epoch == c.epoch && c.tracker.State() == tracker.Active
}

func (c *Controller) handleLocation(epoch uint64, ev location.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.live(epoch) {
		return
	}

	if ev.Err == nil {
		if err := ev.Fix.Validate(); err != nil {
			ev.Err = err
		}
	}
	if ev.Err != nil {
		c.tracker.IngestFixError(ev.Err)
		c.notify()
		return
	}

	if c.tracker.IngestFix(ev.Fix) {
		seq := c.tracker.Snapshot().PointCount - 1
		c.record(func(r Recorder) error { return r.AppendPoint(seq, ev.Fix.Point) })
	}
	c.notify()
}

func (c *Controller) handleTick(epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.live(epoch) {
		return
	}
	if c.tracker.Tick() {
		c.ticks++
		if c.ticks%progressEvery == 0 {
			c.saveProgress()
		}
	}
	c.notify()
}

func (c *Controller) handleHeartRate(epoch uint64, bpm int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.live(epoch) {
		return
	}
	if c.tracker.SetHeartRate(bpm) {
		c.notify()
	}
}

func (c *Controller) handleBattery(level int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.battery = level
	c.notify()
}

// saveProgress writes the session row. Caller holds mu.
func (c *Controller) saveProgress() {
	snap := c.tracker.Snapshot()
	c.record(func(r Recorder) error {
		return r.SaveProgress(snap.State.String(), snap.Metrics.ElapsedSeconds, snap.HeartRate)
	})
}

// record runs one journal write. Journal failures never affect the session.
func (c *Controller) record(write func(Recorder) error) {
	if c.recorder == nil {
		return
	}
	if err := write(c.recorder); err != nil {
		log.Printf("journal write failed: %v", err)
	}
}

// notify queues a change signal without blocking
func (c *Controller) notify() {
	select {
	case c.changes <- struct{}{}:
	default:
	}
}
