package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	// Navigation
	Maintenance key.Binding
	Clients     key.Binding
	Inventory   key.Binding
	Labors      key.Binding
	History     key.Binding
	Settings    key.Binding

	// Actions
	Select key.Binding
	New    key.Binding
	Delete key.Binding

	// Movement
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Back:        key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Maintenance: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "new maintenance")),
	Clients:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clients")),
	Inventory:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inventory")),
	Labors:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "labors")),
	History:     key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
	Settings:    key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
	Select:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	New:         key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:        key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
	Right:       key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
}
