package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"cmenu/internal/ui/input/types"
)

// KeyMap binds bubbletea key names to the picker's logical events
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Erase   key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap mirrors the raw decoder's fixed key set
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Erase: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "erase"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Cancel}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Confirm, k.Erase, k.Cancel}}
}

// FromKeyMsg translates a bubbletea key message into a logical event, using the
// same rules as Decode: only a single visible ASCII character is typed text.
func (k KeyMap) FromKeyMsg(msg tea.KeyMsg) types.Event {
	switch {
	case key.Matches(msg, k.Cancel):
		return types.Key(types.EventCancel)
	case key.Matches(msg, k.Confirm):
		return types.Key(types.EventConfirm)
	case key.Matches(msg, k.Erase):
		return types.Key(types.EventErase)
	case key.Matches(msg, k.Up):
		return types.Key(types.EventUp)
	case key.Matches(msg, k.Down):
		return types.Key(types.EventDown)
	}

	switch msg.Type {
	case tea.KeySpace:
		return types.Char(' ')
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && !msg.Alt && !msg.Paste {
			if r := msg.Runes[0]; r >= 0x20 && r <= 0x7e {
				return types.Char(byte(r))
			}
		}
	}
	return types.Key(types.EventNone)
}
