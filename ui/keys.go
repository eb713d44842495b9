package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the presenter's key bindings.
type keyMap struct {
	StartPause key.Binding
	Advance    key.Binding
	Retreat    key.Binding
	Reset      key.Binding
	Copy       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		StartPause: key.NewBinding(
			key.WithKeys("s", "p"),
			key.WithHelp("s", "start/pause"),
		),
		Advance: key.NewBinding(
			key.WithKeys(" ", "enter", "right", "l", "n"),
			key.WithHelp("space", "next segment"),
		),
		Retreat: key.NewBinding(
			key.WithKeys("backspace", "left", "h", "b"),
			key.WithHelp("backspace", "previous segment"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy schedule"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.StartPause, k.Advance, k.Retreat, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.StartPause, k.Advance, k.Retreat, k.Reset},
		{k.Copy, k.Help, k.Quit},
	}
}
