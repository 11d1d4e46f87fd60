package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keyboard bindings for the TUI.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Query  key.Binding
	Listen key.Binding
	Status key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		Query: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "query"),
		),
		Listen: key.NewBinding(
			key.WithKeys("l", " "),
			key.WithHelp("l", "listen/cancel"),
		),
		Status: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "host status"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) helpLine() string {
	var parts []string
	for _, b := range []key.Binding{k.Query, k.Listen, k.Status, k.Up, k.Quit} {
		h := b.Help()
		parts = append(parts, h.Key+":"+h.Desc)
	}
	return "  " + strings.Join(parts, "  ")
}
