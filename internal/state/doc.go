// Package state holds the latest polled values for the arm and stations.
//
// The pollers write one field at a time (arm spot, arm status, a station's
// spots, a station's status) and the UI reads a deep-copied Snapshot on its
// own refresh tick:
//
//	Writers (poll.Interval):        Reader (UI):
//	┌──────────────────────┐       ┌──────────────────┐
//	│ SetArmSpot()         │       │                  │
//	│ SetArmStatus()       │──────>│ store.Snapshot() │
//	│ SetStationSpots()    │(mutex)│       ↓          │
//	│ SetStationStatus()   │       │ render cards     │
//	└──────────────────────┘       └──────────────────┘
//
// The station list is installed once per session with SetStations. Values for
// names outside that list are dropped. A station whose name carries no
// parseable index is kept for display but marked invalid so no command can be
// addressed to it.
package state
