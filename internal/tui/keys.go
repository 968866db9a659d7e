package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Digit      key.Binding
	Decimal    key.Binding
	Operator   key.Binding
	Equals     key.Binding
	Clear      key.Binding
	ClearEntry key.Binding
	Backspace  key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Digit: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "digit"),
		),
		Decimal: key.NewBinding(
			key.WithKeys(".", ","),
			key.WithHelp(".", "decimal"),
		),
		Operator: key.NewBinding(
			key.WithKeys("+", "-", "*", "/", "x"),
			key.WithHelp("+ - * /", "operator"),
		),
		Equals: key.NewBinding(
			key.WithKeys("=", "enter"),
			key.WithHelp("enter", "evaluate"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc", "c"),
			key.WithHelp("esc", "clear"),
		),
		ClearEntry: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("del", "clear entry"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "backspace"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Equals, k.Clear, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Digit, k.Decimal, k.Operator, k.Equals},
		{k.Clear, k.ClearEntry, k.Backspace},
		{k.Help, k.Quit},
	}
}

// keypadKey translates a terminal key into the calculator key it stands
// for. ok is false for keys the keypad does not have.
func (k keyMap) keypadKey(msg tea.KeyMsg) (string, bool) {
	switch {
	case key.Matches(msg, k.Digit), key.Matches(msg, k.Decimal), key.Matches(msg, k.Operator):
		return msg.String(), true
	case key.Matches(msg, k.Equals):
		return "=", true
	case key.Matches(msg, k.Clear):
		return "clear", true
	case key.Matches(msg, k.ClearEntry):
		return "CE", true
	case key.Matches(msg, k.Backspace):
		return "backspace", true
	}
	return "", false
}
