package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding
	Tabs  [5]key.Binding

	// Actions
	Quit        key.Binding
	Help        key.Binding
	Add         key.Binding
	Filter      key.Binding
	Sort        key.Binding
	Profile     key.Binding
	MultiSelect key.Binding
	Mark        key.Binding
	Delete      key.Binding

	// Tutorial
	TutorialNext key.Binding
	TutorialSkip key.Binding

	// Settings page
	ReplayTutorial key.Binding
	ResetScanner   key.Binding

	// Confirmations
	Confirm key.Binding
	Deny    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Tabs: [5]key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dashboard")),
			key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "shopping")),
			key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "stats")),
			key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "settings")),
			key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "faq")),
		},

		// Actions
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Add: key.NewBinding(
			key.WithKeys("a", "+"),
			key.WithHelp("a", "add"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Profile: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "profile"),
		),
		MultiSelect: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "select"),
		),
		Mark: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "mark"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete"),
		),

		// Tutorial
		TutorialNext: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next"),
		),
		TutorialSkip: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "skip tutorial"),
		),

		// Settings page
		ReplayTutorial: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "replay tutorial"),
		),
		ResetScanner: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "reset scanner tips"),
		),

		// Confirmations
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "exit"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "stay"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Add, k.Filter, k.Sort, k.MultiSelect, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back},
		k.Tabs[:],
		{k.Add, k.Filter, k.Sort, k.Profile},
		{k.MultiSelect, k.Mark, k.Delete},
		{k.TutorialNext, k.TutorialSkip, k.Help, k.Quit},
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
