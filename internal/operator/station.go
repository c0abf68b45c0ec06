package operator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotStation is returned by ParseStation for names that do not address a station.
var ErrNotStation = errors.New("not a station")

// StationID is the numeric index carried in a station's device name.
type StationID int

// StationName returns the device name for a station index.
func StationName(id StationID) string {
	return StationPrefix + strconv.Itoa(int(id))
}

// IsStation reports whether name carries the station prefix.
func IsStation(name string) bool {
	return strings.HasPrefix(name, StationPrefix)
}

// ParseStation extracts the index from a "station<N>" device name.
func ParseStation(name string) (StationID, error) {
	rest, ok := strings.CutPrefix(name, StationPrefix)
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrNotStation)
	}
	if rest == "" {
		return 0, fmt.Errorf("%q: missing index: %w", name, ErrNotStation)
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%q: index %q is not numeric: %w", name, rest, ErrNotStation)
		}
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("%q: %v: %w", name, err, ErrNotStation)
	}
	return StationID(n), nil
}

// FilterStations keeps the names that carry the station prefix, in order.
func FilterStations(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if IsStation(name) {
			out = append(out, name)
		}
	}
	return out
}
