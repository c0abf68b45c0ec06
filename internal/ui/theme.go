package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ktnyt/labmon/internal/operator"
)

// Theme defines the palette for the dashboard.
type Theme struct {
	Name string

	Background string
	Surface    string
	Border     string
	Focus      string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Faint   lipgloss.Style
	Accent  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style

	Header lipgloss.Style
	Logo   lipgloss.Style
	Title  lipgloss.Style

	Card      lipgloss.Style
	CardFocus lipgloss.Style

	ButtonOn  lipgloss.Style
	ButtonOff lipgloss.Style
	Cursor    lipgloss.Style

	theme Theme
}

// Styles builds the lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Border)).
		Padding(0, 1)

	return Styles{
		Text:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		Faint:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Logo: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),
		Title: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Bold(true),

		Card:      card,
		CardFocus: card.BorderForeground(lipgloss.Color(t.Focus)),

		ButtonOn: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Background)).
			Background(lipgloss.Color(t.Accent)).
			Padding(0, 1),
		ButtonOff: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)).
			Padding(0, 1),
		Cursor: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Focus)).Bold(true),

		theme: t,
	}
}

// StatusStyle colours a device status label: idle is healthy, busy is
// working, empty is unknown, anything else is reported by the device as a
// problem.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	switch strings.TrimSpace(status) {
	case operator.StatusIdle:
		return s.Success
	case operator.StatusBusy:
		return s.Warning
	case "":
		return s.Faint
	default:
		return s.Danger
	}
}

var themes = map[string]Theme{
	"Dracula": draculaTheme(),
	"Slate":   slateTheme(),
}

var themeOrder = []string{"Dracula", "Slate"}

// GetTheme returns a theme by name, falling back to Dracula.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return draculaTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func draculaTheme() Theme {
	// Dracula palette
	return Theme{
		Name:       "Dracula",
		Background: "#282A36",
		Surface:    "#343746",
		Border:     "#44475A",
		Focus:      "#BD93F9",
		Text:       "#F8F8F2",
		Muted:      "#6272A4",
		Faint:      "#44475A",
		Accent:     "#8BE9FD",
		Success:    "#50FA7B",
		Warning:    "#FFB86C",
		Danger:     "#FF5555",
	}
}

func slateTheme() Theme {
	// Tailwind slate/sky
	return Theme{
		Name:       "Slate",
		Background: "#0f172a",
		Surface:    "#1e293b",
		Border:     "#334155",
		Focus:      "#38bdf8",
		Text:       "#f1f5f9",
		Muted:      "#94a3b8",
		Faint:      "#64748b",
		Accent:     "#38bdf8",
		Success:    "#22c55e",
		Warning:    "#f59e0b",
		Danger:     "#ef4444",
	}
}
