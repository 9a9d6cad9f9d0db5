package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings for the TUI.
type keyMap struct {
	tab      key.Binding
	page     key.Binding
	toggle   key.Binding
	stop     key.Binding
	cancel   key.Binding
	clear    key.Binding
	download key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "active/finished"),
		),
		page: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "transfers/search"),
		),
		toggle: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "play/pause"),
		),
		stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop playback"),
		),
		cancel: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cancel transfer"),
		),
		clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear finished"),
		),
		download: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "download"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.tab, k.page},
		{k.toggle, k.stop},
		{k.cancel, k.clear, k.download, k.quit},
	}
}
