package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	NextView    key.Binding
	PrevView    key.Binding
	Up          key.Binding
	Down        key.Binding
	Run         key.Binding
	Refresh     key.Binding
	Diagnostics key.Binding
	Ping        key.Binding
	SetURL      key.Binding
	Locate      key.Binding
	Search      key.Binding
	Category    key.Binding
	Dismiss     key.Binding
	Logout      key.Binding
	Quit        key.Binding

	// Signed-out screen.
	Login    key.Binding
	Register key.Binding
	Forgot   key.Binding
	Reset    key.Binding
}

// DefaultKeyMap pairs vim-style movement with arrows. Number keys 1-9 run
// the matching action directly and are handled outside the map.
var DefaultKeyMap = KeyMap{
	NextView:    key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next view")),
	PrevView:    key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("S-tab", "prev view")),
	Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Run:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
	Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Diagnostics: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "diagnostics")),
	Ping:        key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "ping")),
	SetURL:      key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "api url")),
	Locate:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "gps")),
	Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Category:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
	Dismiss:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
	Logout:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "logout")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

	Login:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "login")),
	Register: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "register")),
	Forgot:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "forgot password")),
	Reset:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset password")),
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextView, k.Down, k.Run, k.Refresh, k.Diagnostics, k.Logout, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextView, k.PrevView, k.Up, k.Down, k.Run},
		{k.Refresh, k.Search, k.Category, k.Locate, k.Dismiss},
		{k.Diagnostics, k.Ping, k.SetURL, k.Logout, k.Quit},
	}
}

type authKeys KeyMap

func (k authKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Login, k.Register, k.Forgot, k.Reset, k.Diagnostics, k.Quit}
}

func (k authKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
