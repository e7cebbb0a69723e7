package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding

	// View switching
	ViewDashboard key.Binding
	ViewPlayers   key.Binding
	ViewPlugins   key.Binding
	ViewRaw       key.Binding
	ViewLogs      key.Binding

	// Actions
	Fetch         key.Binding
	TogglePolling key.Binding
	Slower        key.Binding
	Faster        key.Binding

	// Logs
	ToggleFollow key.Binding
	ClearLogs    key.Binding

	// Scrolling, handled by the viewport
	Scroll key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev view"),
		),

		ViewDashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "dashboard"),
		),
		ViewPlayers: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "players"),
		),
		ViewPlugins: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "plugins"),
		),
		ViewRaw: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "raw"),
		),
		ViewLogs: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "logs"),
		),

		Fetch: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "fetch now"),
		),
		TogglePolling: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "toggle polling"),
		),
		Slower: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "longer interval"),
		),
		Faster: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "shorter interval"),
		),

		ToggleFollow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "follow"),
		),
		ClearLogs: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear logs"),
		),

		Scroll: key.NewBinding(
			key.WithKeys("j", "k", "up", "down", "pgup", "pgdown"),
			key.WithHelp("j/k", "scroll"),
		),
	}
}

// ShortHelp returns key bindings for the command bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fetch, k.TogglePolling, k.Faster, k.Slower, k.Tab, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ViewDashboard, k.ViewPlayers, k.ViewPlugins, k.ViewRaw, k.ViewLogs, k.Tab, k.ShiftTab},
		{k.Fetch, k.TogglePolling, k.Slower, k.Faster},
		{k.Scroll, k.ToggleFollow, k.ClearLogs},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
