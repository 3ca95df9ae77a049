package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Enter key.Binding
	Home  key.Binding
	End   key.Binding
	Tab   key.Binding

	// Actions
	Quit         key.Binding
	Help         key.Binding
	Escape       key.Binding
	Search       key.Binding
	QuickJump    key.Binding
	ToggleView   key.Binding
	Favorite     key.Binding
	Hide         key.Binding
	OpenFolder   key.Binding
	Rescan       key.Binding
	Refresh      key.Binding
	AddGame      key.Binding
	Remove       key.Binding
	Settings     key.Binding
	CheckUpdates key.Binding

	// Confirmations
	Confirm key.Binding
	Deny    key.Binding
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
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "launch/select"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/clear"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		QuickJump: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "quick jump"),
		),
		ToggleView: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "grid/list view"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("*"),
			key.WithHelp("*", "toggle favorite"),
		),
		Hide: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "toggle hidden"),
		),
		OpenFolder: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open install folder"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan library"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload from backend"),
		),
		AddGame: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add game"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove manual game"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
		CheckUpdates: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "check for updates"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
