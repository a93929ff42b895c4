package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	Up        key.Binding // k - move up
	Down      key.Binding // j - move down
	Top       key.Binding // g - jump to top
	Bottom    key.Binding // G - jump to bottom
	Add       key.Binding // a - add profile
	Edit      key.Binding // Enter/e - edit profile
	Delete    key.Binding // d - delete profile
	Apply     key.Binding // ctrl+a - apply (and save, in the form)
	Save      key.Binding // ctrl+s - save draft
	ToggleKey key.Binding // v - show/hide API key
	Help      key.Binding // ? - help
	Quit      key.Binding // q - quit
	Cancel    key.Binding // Esc - cancel

	// Form navigation
	NextField     key.Binding
	PrevField     key.Binding
	FormToggleKey key.Binding // ctrl+r, since v is typed into fields
	ConfirmYes    key.Binding
	ConfirmNo     key.Binding
}

// DefaultKeyMap returns the default key bindings
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
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Apply: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "apply"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		ToggleKey: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "show key"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down", "enter"),
			key.WithHelp("tab/↓", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "previous field"),
		),
		FormToggleKey: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "show key"),
		),
		ConfirmYes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		ConfirmNo: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Apply, k.Delete, k.ToggleKey, k.Help, k.Quit}
}

// FormHelp returns the bindings shown below the edit form
func (k KeyMap) FormHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Save, k.Apply, k.FormToggleKey, k.Cancel}
}

// FullHelp returns the bindings listed in the help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Add, k.Edit, k.Delete, k.Apply},
		{k.ToggleKey, k.Help, k.Quit, k.Cancel},
		{k.NextField, k.PrevField, k.Save, k.FormToggleKey},
	}
}
