package app

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ktnyt/labmon/internal/operator"
	"github.com/ktnyt/labmon/internal/simulator"
	"github.com/ktnyt/labmon/internal/state"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

type stubAPI struct {
	mu       sync.Mutex
	armSpot  bool
	status   map[string]string
	spots    map[string][]bool
	fail     atomic.Bool
	requests atomic.Int32
}

func (s *stubAPI) Devices(context.Context) ([]string, error) { return nil, nil }

func (s *stubAPI) StationState(_ context.Context, name string) ([]bool, error) {
	s.requests.Add(1)
	if s.fail.Load() {
		return nil, errors.New("connection refused")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spots[name], nil
}

func (s *stubAPI) ArmState(context.Context) (bool, error) {
	s.requests.Add(1)
	if s.fail.Load() {
		return false, errors.New("connection refused")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armSpot, nil
}

func (s *stubAPI) Status(_ context.Context, name string) (string, error) {
	s.requests.Add(1)
	if s.fail.Load() {
		return "", errors.New("connection refused")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status[name], nil
}

func (s *stubAPI) Dispatch(context.Context, operator.Operation) error { return nil }

func newStubAPI() *stubAPI {
	return &stubAPI{
		armSpot: true,
		status:  map[string]string{"arm": "idle", "station0": "idle"},
		spots:   map[string][]bool{"station0": {true, false}},
	}
}

func TestWatcher_PollsIntoStore(t *testing.T) {
	api := newStubAPI()
	store := &state.Store{}
	store.SetStations([]string{"station0"})

	w := NewWatcher(context.Background(), api, store, 5*time.Millisecond, zerolog.Nop())
	t.Cleanup(w.Stop)
	w.MountArm()
	w.MountStations([]string{"station0", "station0"})

	if got := w.Mounted(); got != 4 {
		t.Fatalf("Mounted() = %d, want 4", got)
	}

	waitFor(t, time.Second, func() bool {
		snap := store.Snapshot()
		return snap.Arm.Status == "idle" && snap.Arm.Spot &&
			len(snap.Stations[0].Spots) == 2 && snap.Stations[0].Status == "idle"
	})
}

func TestWatcher_FailedPollKeepsPreviousValue(t *testing.T) {
	api := newStubAPI()
	store := &state.Store{}
	w := NewWatcher(context.Background(), api, store, 5*time.Millisecond, zerolog.Nop())
	t.Cleanup(w.Stop)
	w.MountArm()

	waitFor(t, time.Second, func() bool { return store.Snapshot().Arm.Status == "idle" })

	api.fail.Store(true)
	before := api.requests.Load()
	waitFor(t, time.Second, func() bool { return api.requests.Load() > before+4 })

	if arm := store.Snapshot().Arm; arm.Status != "idle" || !arm.Spot {
		t.Fatalf("arm = %+v after failed polls, want previous idle/true", arm)
	}
}

func TestWatcher_SetPeriodPausesAndStopHalts(t *testing.T) {
	api := newStubAPI()
	w := NewWatcher(context.Background(), api, &state.Store{}, 5*time.Millisecond, zerolog.Nop())
	w.MountArm()
	waitFor(t, time.Second, func() bool { return api.requests.Load() >= 2 })

	w.SetPeriod(0)
	if w.Period() != 0 {
		t.Fatalf("Period() = %v, want 0", w.Period())
	}
	paused := api.requests.Load()
	time.Sleep(30 * time.Millisecond)
	if got := api.requests.Load(); got != paused {
		t.Fatalf("%d polls while paused, want 0", got-paused)
	}

	w.SetPeriod(5 * time.Millisecond)
	waitFor(t, time.Second, func() bool { return api.requests.Load() > paused })

	w.Stop()
	stopped := api.requests.Load()
	time.Sleep(30 * time.Millisecond)
	if got := api.requests.Load(); got != stopped {
		t.Fatalf("%d polls after Stop, want 0", got-stopped)
	}

	// Mounting after Stop is a no-op.
	w.MountStations([]string{"station0"})
	if got := w.Mounted(); got != 2 {
		t.Fatalf("Mounted() after Stop = %d, want 2", got)
	}
}

// TestWatcher_AgainstSimulator drives a take through the HTTP stack and
// waits for the pollers to observe the result.
func TestWatcher_AgainstSimulator(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := simulator.DefaultConfig()
	cfg.Delay = 10 * time.Millisecond
	sim := simulator.New(cfg, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = sim.Run(ctx) }()

	srv := httptest.NewServer(simulator.NewRouter(sim, simulator.DefaultRouterConfig()))
	t.Cleanup(srv.Close)

	client, err := operator.NewClient(operator.Config{BaseAddress: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	devices, err := client.Devices(ctx)
	if err != nil {
		t.Fatalf("Devices: %v", err)
	}
	names := operator.FilterStations(devices)

	store := &state.Store{}
	store.SetStations(names)
	w := NewWatcher(ctx, client, store, 10*time.Millisecond, zerolog.Nop())
	t.Cleanup(w.Stop)
	w.MountArm()
	w.MountStations(names)

	waitFor(t, 2*time.Second, func() bool {
		snap := store.Snapshot()
		return snap.Arm.Status == operator.StatusIdle &&
			len(snap.Stations) == 3 && len(snap.Stations[0].Spots) == 2 && snap.Stations[0].Spots[0]
	})

	if err := client.Dispatch(ctx, operator.Take(0, 0)); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	waitFor(t, 2*time.Second, func() bool {
		snap := store.Snapshot()
		return snap.Arm.Status == operator.StatusIdle && snap.Arm.Spot && !snap.Stations[0].Spots[0]
	})
}
