// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the reader view.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Left     key.Binding
	Right    key.Binding

	// Slider
	SliderUp   key.Binding
	SliderDown key.Binding

	// Search
	Search     key.Binding
	Next       key.Binding
	Prev       key.Binding
	IgnoreCase key.Binding

	// File
	Open   key.Binding
	Reload key.Binding

	// General
	Logs   key.Binding
	Help   key.Binding
	Escape key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f", " "),
			key.WithHelp("pgdn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g/home", "go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G/end", "go to bottom"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "scroll left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "scroll right"),
		),

		SliderUp: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "slider up"),
		),
		SliderDown: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "slider down"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Next: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next match"),
		),
		Prev: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "previous match"),
		),
		IgnoreCase: key.NewBinding(
			key.WithKeys("alt+c"),
			key.WithHelp("alt+c", "toggle ignore case"),
		),

		Open: key.NewBinding(
			key.WithKeys("ctrl+o", "o"),
			key.WithHelp("ctrl+o", "open file"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload"),
		),

		Logs: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "toggle logs"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Search, k.Next, k.Prev, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom, k.Left, k.Right}, // Navigation
		{k.SliderUp, k.SliderDown},                                             // Slider
		{k.Search, k.Next, k.Prev, k.IgnoreCase},                               // Search
		{k.Open, k.Reload},                                                     // File
		{k.Logs, k.Help, k.Escape, k.Quit},                                     // General
	}
}

// SearchKeyMap defines the keybindings while the search bar has focus.
type SearchKeyMap struct {
	Submit     key.Binding
	Prev       key.Binding
	IgnoreCase key.Binding
	Blur       key.Binding
}

// DefaultSearchKeyMap returns the keybindings for the search bar.
func DefaultSearchKeyMap() SearchKeyMap {
	return SearchKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "find next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "ctrl+p"),
			key.WithHelp("ctrl+p", "find previous"),
		),
		IgnoreCase: key.NewBinding(
			key.WithKeys("alt+c"),
			key.WithHelp("alt+c", "ignore case"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to text"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k SearchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Prev, k.IgnoreCase, k.Blur}
}

// FullHelp returns keybindings for the full help view.
func (k SearchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
