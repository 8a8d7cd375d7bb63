package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings handled by the model itself. Every other key
// goes to the command prompt.
type keyMap struct {
	Submit key.Binding
	Clear  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Help, k.Clear, k.Quit}
}
