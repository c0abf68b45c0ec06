// Package ui renders the labmon dashboard with Bubble Tea.
//
// The model never talks to the pollers directly. A refresh tick pulls a
// [state.Snapshot] from the store and every card is drawn from that copy:
// one arm card followed by one card per station in the order the operator
// listed them. Button gating is computed from the same snapshot, so a take
// is only offered while the spot holds a sample and the arm is idle, and a
// put only while the arm holds a sample and is idle.
//
// Commands are fire-and-forget. A dispatch that fails is logged at debug
// level and dropped; the next poll shows whatever the operator did.
//
// Keys:
//
//	j/k       move between spots
//	t/p       take from / put into the selected spot
//	r         reboot the arm
//	space     pause or resume polling
//	+/-       poll faster or slower
//	v         toggle grid/stack layout
//	l         toggle the log pane
//	T         cycle theme
//	h/?       help
//	e/ctrl+c  quit
package ui
