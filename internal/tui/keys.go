package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	Up                  key.Binding
	Down                key.Binding
	Left                key.Binding
	Right               key.Binding
	NextPage            key.Binding
	PrevPage            key.Binding
	FirstPage           key.Binding
	LastPage            key.Binding
	Search              key.Binding
	ClearSearch         key.Binding
	ToggleWithImages    key.Binding
	ToggleWithoutImages key.Binding
	Open                key.Binding
	Close               key.Binding
	OpenImage           key.Binding
	YankURL             key.Binding
	Reload              key.Binding
	Help                key.Binding
	Quit                key.Binding
	ForceQuit           key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "move right"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "]", "pgdown"),
			key.WithHelp("n/]", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "[", "pgup"),
			key.WithHelp("p/[", "previous page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last page"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "clear search"),
		),
		ToggleWithImages: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "only with images"),
		),
		ToggleWithoutImages: key.NewBinding(
			key.WithKeys("I"),
			key.WithHelp("I", "only without images"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		OpenImage: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open image"),
		),
		YankURL: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "yank URL"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}
