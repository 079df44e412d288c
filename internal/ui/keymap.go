package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the form-level bindings. Everything else goes to the
// focused field.
type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Reset  key.Binding
	Help   key.Binding
	Events key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save entry")),
		Reset:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "clear form")),
		Help:   key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Events: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "event log")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.Help, k.Events, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Submit, k.Reset},
		{k.Help, k.Events, k.Quit},
	}
}
