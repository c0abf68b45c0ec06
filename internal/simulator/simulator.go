// Package simulator is an in-process operator service with one arm and a
// configurable set of stations. It serves the same HTTP contract the
// dashboard polls, so labmon can be run and tested without hardware.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ktnyt/labmon/internal/operator"
)

// ErrBusy is returned by Submit while an operation is pending or running.
var ErrBusy = errors.New("arm is busy")

// Config describes the simulated bench.
type Config struct {
	// Spots holds the spot count of each station; station i gets Spots[i].
	Spots []int
	// Occupied lists the spots that start with a sample.
	Occupied []operator.SpotRef
	// Delay is how long the arm takes to carry out an operation.
	Delay time.Duration
}

// DefaultConfig mirrors the reference bench: three stations with two, one
// and one spots, and a sample waiting at station0 spot 0.
func DefaultConfig() Config {
	return Config{
		Spots:    []int{2, 1, 1},
		Occupied: []operator.SpotRef{{Station: 0, Spot: 0}},
		Delay:    5 * time.Second,
	}
}

// Simulator holds the bench state. All methods are safe for concurrent use.
type Simulator struct {
	log   zerolog.Logger
	delay time.Duration
	queue chan operator.Operation

	mu        sync.Mutex
	armSpot   bool
	armStatus string
	stations  [][]bool
}

// New builds a simulator from cfg. Occupied entries outside the configured
// stations are ignored.
func New(cfg Config, logger zerolog.Logger) *Simulator {
	stations := make([][]bool, len(cfg.Spots))
	for i, n := range cfg.Spots {
		stations[i] = make([]bool, max(n, 0))
	}
	for _, ref := range cfg.Occupied {
		if inRange(stations, ref) {
			stations[ref.Station][ref.Spot] = true
		}
	}
	return &Simulator{
		log:       logger,
		delay:     cfg.Delay,
		queue:     make(chan operator.Operation, 1),
		armStatus: operator.StatusIdle,
		stations:  stations,
	}
}

// Devices lists the arm followed by every station.
func (s *Simulator) Devices() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.stations)+1)
	names = append(names, operator.ArmName)
	for i := range s.stations {
		names = append(names, operator.StationName(operator.StationID(i)))
	}
	return names
}

// ArmState reports whether the arm holds a sample.
func (s *Simulator) ArmState() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armSpot
}

// ArmStatus returns the arm status label.
func (s *Simulator) ArmStatus() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armStatus
}

// StationState returns a copy of the spots of station id.
func (s *Simulator) StationState(id operator.StationID) ([]bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if int(id) < 0 || int(id) >= len(s.stations) {
		return nil, false
	}
	return append([]bool(nil), s.stations[id]...), true
}

// Submit queues op for the worker and marks the arm busy. Only one
// operation may be outstanding at a time.
func (s *Simulator) Submit(op operator.Operation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.armStatus == operator.StatusBusy {
		return ErrBusy
	}
	select {
	case s.queue <- op:
	default:
		return ErrBusy
	}
	s.armStatus = operator.StatusBusy
	s.log.Info().Stringer("op", op).Msg("operation accepted")
	return nil
}

// Run executes queued operations until ctx is cancelled.
func (s *Simulator) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case op := <-s.queue:
			if s.delay > 0 {
				timer := time.NewTimer(s.delay)
				select {
				case <-ctx.Done():
					timer.Stop()
					return ctx.Err()
				case <-timer.C:
				}
			}
			s.apply(op)
		}
	}
}

// apply carries out op. A rule violation leaves the bench untouched and
// reports the reason through the arm status.
func (s *Simulator) apply(op operator.Operation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := s.execute(op)
	s.armStatus = status
	if status == operator.StatusIdle {
		s.log.Info().Stringer("op", op).Msg("operation complete")
	} else {
		s.log.Warn().Stringer("op", op).Str("status", status).Msg("operation rejected")
	}
}

func (s *Simulator) execute(op operator.Operation) string {
	switch op.Name {
	case operator.OpTake:
		if s.armSpot {
			return "arm already has a sample"
		}
		if op.Arg == nil {
			return fmt.Sprintf("bad argument for operation %q", op.Name)
		}
		ref := *op.Arg
		if !inRange(s.stations, ref) {
			return fmt.Sprintf("error: no spot %d at station %d", ref.Spot, ref.Station)
		}
		if !s.stations[ref.Station][ref.Spot] {
			return fmt.Sprintf("no sample to take at station %d, spot %d", ref.Station, ref.Spot)
		}
		s.stations[ref.Station][ref.Spot] = false
		s.armSpot = true
		return operator.StatusIdle

	case operator.OpPut:
		if !s.armSpot {
			return "arm does not have a sample"
		}
		if op.Arg == nil {
			return fmt.Sprintf("bad argument for operation %q", op.Name)
		}
		ref := *op.Arg
		if !inRange(s.stations, ref) {
			return fmt.Sprintf("error: no spot %d at station %d", ref.Spot, ref.Station)
		}
		if s.stations[ref.Station][ref.Spot] {
			return fmt.Sprintf("sample is present at station %d, spot %d", ref.Station, ref.Spot)
		}
		s.stations[ref.Station][ref.Spot] = true
		s.armSpot = false
		return operator.StatusIdle

	case operator.OpReboot:
		return operator.StatusIdle

	default:
		return fmt.Sprintf("error: unknown operation %q", op.Name)
	}
}

func inRange(stations [][]bool, ref operator.SpotRef) bool {
	return ref.Station >= 0 && ref.Station < len(stations) &&
		ref.Spot >= 0 && ref.Spot < len(stations[ref.Station])
}
