package tui

import "github.com/charmbracelet/bubbles/key"

// globalKeys are handled by the parent regardless of focus.
type globalKeys struct {
	SwitchFocus key.Binding
	Quit        key.Binding
}

// formKeys are active while the form has focus.
type formKeys struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
}

// listKeys are active while the list has focus.
type listKeys struct {
	Up      key.Binding
	Down    key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Confirm key.Binding
}

// ShortHelp returns the form bindings plus the global ones.
func (k formKeys) ShortHelp() []key.Binding {
	g := GlobalKeyMap()
	return []key.Binding{k.Next, k.Prev, k.Submit, g.SwitchFocus, g.Quit}
}

// FullHelp returns the form bindings grouped for expanded help.
func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// ShortHelp returns the list bindings plus the global ones.
func (k listKeys) ShortHelp() []key.Binding {
	g := GlobalKeyMap()
	return []key.Binding{k.Up, k.Down, k.Delete, k.Refresh, g.SwitchFocus, g.Quit}
}

// FullHelp returns the list bindings grouped for expanded help.
func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func GlobalKeyMap() globalKeys {
	return globalKeys{
		SwitchFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func FormKeyMap() formKeys {
	return formKeys{
		Next: key.NewBinding(
			key.WithKeys("down", "enter"),
			key.WithHelp("↓/enter", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("up", "shift+tab"),
			key.WithHelp("↑", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "add contact"),
		),
	}
}

func ListKeyMap() listKeys {
	return listKeys{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
	}
}
