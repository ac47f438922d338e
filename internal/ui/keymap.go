package ui

import (
	key "github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the bindings of the interface itself. Hotkeys of the active
// environment take precedence over every binding except Quit.
type KeyMap struct {
	Quit   key.Binding
	Focus  key.Binding
	Blur   key.Binding
	Submit key.Binding
	Help   key.Binding
}

// DefaultKeyMap returns the default interface bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus prompt"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave prompt"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "clear prompt"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "toggle help"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Blur, k.Submit},
		{k.Help, k.Quit},
	}
}
