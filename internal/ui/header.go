package ui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the one-line status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := newBgStyle(m.theme.Surface)

	parts := []string{bg.Render("labmon", styles.Logo)}

	if m.operatorAddr != "" {
		parts = append(parts, bg.Render(truncate(m.operatorAddr, 40), styles.Muted))
	}

	switch {
	case m.period <= 0:
		parts = append(parts, bg.Render("● PAUSED", styles.Warning))
	default:
		parts = append(parts,
			bg.Render("● poll", styles.Success)+bg.Spaces(1)+
				bg.Render(m.period.String(), styles.Text))
	}

	if !m.snapshot.StationsLoaded {
		parts = append(parts, bg.Render("Loading stations...", styles.Warning))
	} else {
		parts = append(parts,
			bg.Render("Stations:", styles.Muted)+bg.Spaces(1)+
				bg.Render(strconv.Itoa(len(m.snapshot.Stations)), styles.Text))
	}

	updated := "never"
	if !m.snapshot.LastUpdated.IsZero() {
		updated = m.snapshot.LastUpdated.Format(time.TimeOnly)
	}
	parts = append(parts, bg.Render("Updated "+updated, styles.Faint))

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(bg.Join(parts, "  "))
}

// renderFooter renders the short key hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	var parts []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, styles.Accent.Render(h.Key)+" "+styles.Muted.Render(h.Desc))
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(parts, "  "))
}
