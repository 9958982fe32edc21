package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Enter  key.Binding
	Back   key.Binding
	Home   key.Binding
	Prev   key.Binding
	Next   key.Binding
	Escape key.Binding

	// Actions
	Quit            key.Binding
	Help            key.Binding
	Filter          key.Binding
	Find            key.Binding
	LoadMore        key.Binding
	Open            key.Binding
	ToggleInspector key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Enter: key.NewBinding(
			key.WithKeys("enter", "l", "right"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("h", "left", "backspace"),
			key.WithHelp("h/←", "parent directory"),
		),
		Home: key.NewBinding(
			key.WithKeys("~"),
			key.WithHelp("~", "home"),
		),
		Prev: key.NewBinding(
			key.WithKeys("h", "left", "p"),
			key.WithHelp("h/←", "previous image"),
		),
		Next: key.NewBinding(
			key.WithKeys("l", "right", "n", " "),
			key.WithHelp("l/→", "next image"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),

		// Actions
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Find: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "find image"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "load more"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in viewer"),
		),
		ToggleInspector: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "toggle inspector"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
