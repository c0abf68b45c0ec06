package ui

import (
	"fmt"
	"strings"

	"github.com/ktnyt/labmon/internal/operator"
	"github.com/ktnyt/labmon/internal/state"
)

// RebootEnabled reports whether the reboot button is enabled.
func RebootEnabled(arm state.Arm) bool {
	return !arm.Busy()
}

type armView struct {
	arm state.Arm
}

func (v armView) reboot() (operator.Operation, bool) {
	if !RebootEnabled(v.arm) {
		return operator.Operation{}, false
	}
	return operator.Reboot(), true
}

func (v armView) render(s Styles) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(operator.ArmName))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("Status: "))
	b.WriteString(s.StatusStyle(v.arm.Status).Render(v.arm.Status))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("Spot: "))
	b.WriteString(s.Text.Render(fmt.Sprintf("%t", v.arm.Spot)))
	b.WriteString("\n")
	_, ok := v.reboot()
	b.WriteString(button(s, "Reboot", ok))
	return s.Card.Render(b.String())
}
