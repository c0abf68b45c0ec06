package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ktnyt/labmon/internal/operator"
	"github.com/ktnyt/labmon/internal/state"
)

// TakeEnabled reports whether a take can be issued for a spot.
func TakeEnabled(spot bool, arm state.Arm) bool {
	return spot && arm.Idle()
}

// PutEnabled reports whether a put can be issued for any spot.
func PutEnabled(arm state.Arm) bool {
	return arm.Spot && arm.Idle()
}

// stationView renders one station against the arm snapshot it was handed.
type stationView struct {
	station state.Station
	arm     state.Arm
}

func (v stationView) spot(i int) (bool, bool) {
	if i < 0 || i >= len(v.station.Spots) {
		return false, false
	}
	return v.station.Spots[i], true
}

// take returns the take operation for spot i when its button is enabled.
func (v stationView) take(i int) (operator.Operation, bool) {
	occupied, ok := v.spot(i)
	if !ok || !v.station.Valid || !TakeEnabled(occupied, v.arm) {
		return operator.Operation{}, false
	}
	return operator.Take(v.station.Index, i), true
}

// put returns the put operation for spot i when its button is enabled.
func (v stationView) put(i int) (operator.Operation, bool) {
	if _, ok := v.spot(i); !ok || !v.station.Valid || !PutEnabled(v.arm) {
		return operator.Operation{}, false
	}
	return operator.Put(v.station.Index, i), true
}

// render draws the station card. cursor is the selected spot, or -1.
func (v stationView) render(s Styles, cursor int) string {
	var b strings.Builder

	title := s.Title.Render(v.station.Name)
	if !v.station.Valid {
		title += " " + s.Danger.Render("invalid name")
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("Status: "))
	b.WriteString(s.StatusStyle(v.station.Status).Render(v.station.Status))

	for i, occupied := range v.station.Spots {
		b.WriteString("\n")
		marker := "  "
		if i == cursor {
			marker = s.Cursor.Render("› ")
		}
		label := padRight(fmt.Sprintf("Spot %d: %t", i, occupied), spotLabelWidth)
		_, takeOK := v.take(i)
		_, putOK := v.put(i)
		b.WriteString(marker)
		b.WriteString(s.Text.Render(label))
		b.WriteString(" ")
		b.WriteString(button(s, "Take", takeOK))
		b.WriteString(" ")
		b.WriteString(button(s, "Put", putOK))
	}

	card := s.Card
	if cursor >= 0 {
		card = s.CardFocus
	}
	return card.Render(b.String())
}

// button renders a labelled button; disabled buttons are drawn faint.
func button(s Styles, label string, enabled bool) string {
	if enabled {
		return s.ButtonOn.Render(label)
	}
	return s.ButtonOff.Render(label)
}

// layoutCards packs cards left to right, wrapping when width is exceeded.
// A non-positive width stacks every card.
func layoutCards(cards []string, width int) string {
	if len(cards) == 0 {
		return ""
	}
	if width <= 0 {
		return lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	var rows []string
	var row []string
	used := 0
	for _, card := range cards {
		w := lipgloss.Width(card)
		if len(row) > 0 && used+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, used = nil, 0
		}
		row = append(row, card)
		used += w
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
