package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the directory TUI.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	// Focus cycles table, first name, last name, city.
	FocusNext key.Binding
	FocusPrev key.Binding

	Edit   key.Binding // Load the selected row into the form.
	Remove key.Binding // Delete the selected row.
	Export key.Binding // Write the list to a spreadsheet file.

	Submit key.Binding
	Cancel key.Binding // Leave edit mode.

	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next field"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "previous field"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "edit"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "cancel edit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusNext, k.Edit, k.Remove, k.Submit, k.Cancel, k.Export, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.FocusNext, k.FocusPrev},
		{k.Edit, k.Remove, k.Export},
		{k.Submit, k.Cancel, k.Quit},
	}
}
