package state

import (
	"sync"
	"time"

	"github.com/ktnyt/labmon/internal/operator"
)

// Arm is the shared actuator snapshot handed to every station view.
type Arm struct {
	Status string
	Spot   bool
}

// Idle reports whether the arm can accept a take or put.
func (a Arm) Idle() bool {
	return a.Status == operator.StatusIdle
}

// Busy reports whether the arm is executing an operation.
func (a Arm) Busy() bool {
	return a.Status == operator.StatusBusy
}

// Station holds the last polled values for one station.
type Station struct {
	Name   string
	Index  operator.StationID
	Valid  bool // false when Name carries no parseable index
	Spots  []bool
	Status string
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Arm            Arm
	Stations       []Station
	StationsLoaded bool
	LastUpdated    time.Time
}

// Store coordinates concurrent updates from the pollers.
type Store struct {
	mu       sync.RWMutex
	arm      Arm
	stations []Station
	index    map[string]int
	loaded   bool
	updated  time.Time
}

// SetStations installs the station list for the session. Only the first call
// takes effect; it reports whether the list was installed.
func (s *Store) SetStations(names []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return false
	}
	s.loaded = true
	s.stations = make([]Station, 0, len(names))
	s.index = make(map[string]int, len(names))
	for _, name := range names {
		if _, dup := s.index[name]; dup {
			continue
		}
		st := Station{Name: name}
		if id, err := operator.ParseStation(name); err == nil {
			st.Index = id
			st.Valid = true
		}
		s.index[name] = len(s.stations)
		s.stations = append(s.stations, st)
	}
	s.updated = time.Now()
	return true
}

// SetArmSpot replaces the arm occupancy.
func (s *Store) SetArmSpot(spot bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arm.Spot = spot
	s.updated = time.Now()
}

// SetArmStatus replaces the arm status label.
func (s *Store) SetArmStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arm.Status = status
	s.updated = time.Now()
}

// SetStationSpots replaces a station's spot occupancy wholesale. Updates for
// names outside the station list are dropped and reported as false.
func (s *Store) SetStationSpots(name string, spots []bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[name]
	if !ok {
		return false
	}
	s.stations[i].Spots = cloneSpots(spots)
	s.updated = time.Now()
	return true
}

// SetStationStatus replaces a station's status label.
func (s *Store) SetStationStatus(name, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[name]
	if !ok {
		return false
	}
	s.stations[i].Status = status
	s.updated = time.Now()
	return true
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Arm:            s.arm,
		StationsLoaded: s.loaded,
		LastUpdated:    s.updated,
	}
	if len(s.stations) > 0 {
		snap.Stations = make([]Station, len(s.stations))
		for i, st := range s.stations {
			st.Spots = cloneSpots(st.Spots)
			snap.Stations[i] = st
		}
	}
	return snap
}

func cloneSpots(spots []bool) []bool {
	if spots == nil {
		return nil
	}
	dup := make([]bool, len(spots))
	copy(dup, spots)
	return dup
}
