package tui

import (
	"math"

	"github.com/charmbracelet/bubbles/key"
)

// RotateStep is the barrel rotation per arrow key press, in radians.
const RotateStep = math.Pi / 36

// KeyMap defines keybindings for the game screen.
type KeyMap struct {
	AimUp       key.Binding
	AimDown     key.Binding
	Fire        key.Binding
	Acknowledge key.Binding
	Screenshot  key.Binding
	Quit        key.Binding
}

// ShortHelp returns keybindings to show in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AimUp, k.AimDown, k.Fire, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.AimUp, k.AimDown, k.Fire},
		{k.Acknowledge, k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns the default game keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		AimUp: key.NewBinding(
			key.WithKeys("up", "left", "w"),
			key.WithHelp("↑/←", "aim up"),
		),
		AimDown: key.NewBinding(
			key.WithKeys("down", "right", "s"),
			key.WithHelp("↓/→", "aim down"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" ", "f"),
			key.WithHelp("space", "fire"),
		),
		Acknowledge: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continue"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
