// Package poll provides a repeating timer whose callback can be swapped
// without resetting the schedule.
package poll

import (
	"sync"
	"time"
)

// Interval invokes a callback on a fixed period.
//
// The callback lives in a single slot read on every tick, so SetCallback takes
// effect on the next tick without touching the timer. Changing the period tears
// the timer down and establishes a new one. A non-positive period means no timer.
//
// Invocations never overlap. Stop blocks until an in-flight invocation returns,
// so it must not be called from the callback itself.
type Interval struct {
	mu sync.Mutex
	fn func()

	// ctl serialises SetPeriod and Stop.
	ctl     sync.Mutex
	period  time.Duration
	stop    chan struct{}
	done    chan struct{}
	stopped bool
}

// NewInterval starts invoking fn every period. A non-positive period creates
// an idle Interval that can be started later with SetPeriod.
func NewInterval(fn func(), period time.Duration) *Interval {
	iv := &Interval{fn: fn, period: period}
	if period > 0 {
		iv.start(period)
	}
	return iv
}

// SetCallback replaces the callback used by subsequent ticks.
func (iv *Interval) SetCallback(fn func()) {
	iv.mu.Lock()
	iv.fn = fn
	iv.mu.Unlock()
}

// Period returns the current period.
func (iv *Interval) Period() time.Duration {
	iv.ctl.Lock()
	defer iv.ctl.Unlock()
	return iv.period
}

// SetPeriod re-establishes the timer with a new period. It is a no-op when the
// period is unchanged or the Interval has been stopped.
func (iv *Interval) SetPeriod(period time.Duration) {
	iv.ctl.Lock()
	defer iv.ctl.Unlock()

	if iv.stopped || period == iv.period {
		return
	}
	iv.halt()
	iv.period = period
	if period > 0 {
		iv.start(period)
	}
}

// Stop cancels the timer. No invocation starts once Stop returns.
func (iv *Interval) Stop() {
	iv.ctl.Lock()
	defer iv.ctl.Unlock()

	if iv.stopped {
		return
	}
	iv.stopped = true
	iv.halt()
}

// Running reports whether a timer is currently established.
func (iv *Interval) Running() bool {
	iv.ctl.Lock()
	defer iv.ctl.Unlock()
	return iv.stop != nil
}

// start must be called with ctl held.
func (iv *Interval) start(period time.Duration) {
	stop := make(chan struct{})
	done := make(chan struct{})
	iv.stop, iv.done = stop, done
	go iv.run(period, stop, done)
}

// halt must be called with ctl held.
func (iv *Interval) halt() {
	if iv.stop == nil {
		return
	}
	close(iv.stop)
	<-iv.done
	iv.stop, iv.done = nil, nil
}

func (iv *Interval) run(period time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		// A tick and a stop can be ready together; stop wins.
		select {
		case <-stop:
			return
		default:
		}
		if fn := iv.callback(); fn != nil {
			fn()
		}
	}
}

func (iv *Interval) callback() func() {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	return iv.fn
}
