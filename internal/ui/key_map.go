package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	enter  key.Binding
	back   key.Binding
	create key.Binding
	rename key.Binding
	title  key.Binding
	desc   key.Binding
	move   key.Binding
	toggle key.Binding
	search key.Binding
	filter key.Binding
	remove key.Binding
	export key.Binding
	yes    key.Binding
	no     key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		create: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		rename: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		title:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "retitle")),
		desc:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "describe")),
		move:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "recategorize")),
		toggle: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle done")),
		search: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "search")),
		filter: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter status")),
		remove: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		export: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		yes:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.create, k.rename, k.remove, k.toggle},
		{k.search, k.filter, k.export, k.quit},
	}
}
