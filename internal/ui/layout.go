package ui

import "time"

// Card sizing.
const (
	// spotLabelWidth keeps the Take/Put buttons aligned across spots.
	spotLabelWidth = 14

	// footerHeight is the number of rows the key hint footer occupies.
	footerHeight = 1
)

// Log pane limits.
const (
	// LogPaneLines is the number of log lines read for the log pane.
	LogPaneLines = 200

	// LogPaneHeight is the number of rows the log pane occupies when shown.
	LogPaneHeight = 10
)

// Timing constants.
const (
	// DefaultUIInterval is how often the view pulls a fresh snapshot.
	DefaultUIInterval = 250 * time.Millisecond

	// MinPollPeriod and MaxPollPeriod bound the +/- period adjustments.
	MinPollPeriod = 250 * time.Millisecond
	MaxPollPeriod = 10 * time.Second
)
