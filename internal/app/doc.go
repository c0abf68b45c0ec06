// Package app wires configuration, the operator client, the shared store,
// the pollers and the UI into the labmon dashboard.
//
// # Overview
//
// Run is the composition root. It loads configuration, opens the log file,
// builds an operator client and a state.Store, mounts the arm pollers and
// hands everything to the UI. Station pollers are mounted later, once the UI
// has fetched the device list.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()         viper: file, LABMON_* env, OPERATOR_ADDR
//	       ├─────> logging.File()        zerolog JSON to the log file
//	       ├─────> operator.NewClient()  HTTP client
//	       ├─────> state.Store{}         shared snapshot container
//	       ├─────> NewWatcher()          one poll.Interval per device endpoint
//	       └─────> ui.Run()              Bubble Tea program (blocks)
//
//	Per device endpoint:
//	┌─────────────────────────────────────────┐
//	│ poll.Interval                           │
//	│  ├─> GET /driver/<name>/state|status    │
//	│  └─> store.Set...()                     │
//	│      └─> UI reads store.Snapshot()      │
//	└─────────────────────────────────────────┘
//
// # Polling Behavior
//
// Every endpoint polls independently at the same period. A failed or
// undecodable poll is logged at debug level and leaves the previous value in
// place; there is no retry beyond the next tick and no error state. Changing
// the period through the UI reschedules every interval, and a zero period
// pauses them all.
//
// # Error Handling
//
// Only startup failures are returned from Run: a malformed config file, an
// unwritable log file or an unusable operator address. Once the UI is up the
// operator may come and go without ending the session.
package app
