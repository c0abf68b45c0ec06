package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ktnyt/labmon/internal/operator"
	"github.com/ktnyt/labmon/internal/poll"
	"github.com/ktnyt/labmon/internal/state"
)

const (
	defaultPollInterval = time.Second
	pollTimeout         = 3 * time.Second
)

// Watcher owns the repeating polls for the arm and every mounted station.
// Each device endpoint is polled by its own poll.Interval; polls are not
// ordered relative to one another.
type Watcher struct {
	ctx   context.Context
	api   operator.API
	store *state.Store
	log   zerolog.Logger

	mu        sync.Mutex
	period    time.Duration
	intervals map[string]*poll.Interval
	stopped   bool
}

// NewWatcher returns a Watcher that polls api every period and writes results
// into store. Nothing is polled until MountArm or MountStations is called.
func NewWatcher(ctx context.Context, api operator.API, store *state.Store, period time.Duration, logger zerolog.Logger) *Watcher {
	if period < 0 {
		period = defaultPollInterval
	}
	return &Watcher{
		ctx:       ctx,
		api:       api,
		store:     store,
		log:       logger,
		period:    period,
		intervals: make(map[string]*poll.Interval),
	}
}

// MountArm starts the arm state and status polls.
func (w *Watcher) MountArm() {
	w.mount(operator.ArmName+"/state", w.pollArmState)
	w.mount(operator.ArmName+"/status", w.pollArmStatus)
}

// MountStations starts state and status polls for each station name.
// Names that are already mounted are skipped.
func (w *Watcher) MountStations(names []string) {
	for _, name := range names {
		name := name
		w.mount(name+"/state", func() { w.pollStationState(name) })
		w.mount(name+"/status", func() { w.pollStationStatus(name) })
	}
}

// Period returns the current poll period. Zero means polling is paused.
func (w *Watcher) Period() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.period
}

// SetPeriod re-establishes every poll with period d. Zero pauses polling.
func (w *Watcher) SetPeriod(d time.Duration) {
	if d < 0 {
		d = 0
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped || d == w.period {
		return
	}
	w.period = d
	for _, iv := range w.intervals {
		iv.SetPeriod(d)
	}
	w.log.Info().Dur("period", d).Msg("poll period changed")
}

// Stop cancels every poll. No store update happens after Stop returns.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	w.stopped = true
	for _, iv := range w.intervals {
		iv.Stop()
	}
}

// Mounted returns the number of running polls.
func (w *Watcher) Mounted() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.intervals)
}

func (w *Watcher) mount(key string, fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if _, ok := w.intervals[key]; ok {
		return
	}
	w.intervals[key] = poll.NewInterval(fn, w.period)
	w.log.Debug().Str("poll", key).Dur("period", w.period).Msg("poll mounted")
}

func (w *Watcher) pollArmState() {
	ctx, cancel := context.WithTimeout(w.ctx, pollTimeout)
	defer cancel()
	spot, err := w.api.ArmState(ctx)
	if err != nil {
		w.skip(operator.ArmName, "state", err)
		return
	}
	w.store.SetArmSpot(spot)
}

func (w *Watcher) pollArmStatus() {
	ctx, cancel := context.WithTimeout(w.ctx, pollTimeout)
	defer cancel()
	status, err := w.api.Status(ctx, operator.ArmName)
	if err != nil {
		w.skip(operator.ArmName, "status", err)
		return
	}
	w.store.SetArmStatus(status)
}

func (w *Watcher) pollStationState(name string) {
	ctx, cancel := context.WithTimeout(w.ctx, pollTimeout)
	defer cancel()
	spots, err := w.api.StationState(ctx, name)
	if err != nil {
		w.skip(name, "state", err)
		return
	}
	w.store.SetStationSpots(name, spots)
}

func (w *Watcher) pollStationStatus(name string) {
	ctx, cancel := context.WithTimeout(w.ctx, pollTimeout)
	defer cancel()
	status, err := w.api.Status(ctx, name)
	if err != nil {
		w.skip(name, "status", err)
		return
	}
	w.store.SetStationStatus(name, status)
}

// skip drops a failed poll; the previously displayed value stays in place.
func (w *Watcher) skip(device, endpoint string, err error) {
	if w.ctx.Err() != nil {
		return
	}
	w.log.Debug().Err(err).Str("device", device).Str("endpoint", endpoint).Msg("poll skipped")
}
