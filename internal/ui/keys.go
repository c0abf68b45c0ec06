package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the dashboard.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Layout     key.Binding
	Logs       key.Binding

	// Navigation
	Up   key.Binding
	Down key.Binding

	// Commands
	Take   key.Binding
	Put    key.Binding
	Reboot key.Binding

	// Polling
	Pause  key.Binding
	Faster key.Binding
	Slower key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Layout: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Toggle grid/stack layout"),
		),
		Logs: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Toggle log pane"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Previous spot"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Next spot"),
		),

		Take: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Take from selected spot"),
		),
		Put: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Put into selected spot"),
		),
		Reboot: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reboot arm"),
		),

		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Pause/resume polling"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Poll faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "Poll slower"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Take, k.Put, k.Reboot, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Take, k.Put, k.Reboot},
		{k.Pause, k.Faster, k.Slower},
		{k.Layout, k.Logs, k.CycleTheme, k.Help, k.Quit},
	}
}
