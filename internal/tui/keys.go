package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	enter     key.Binding
	copy      key.Binding
	quit      key.Binding
	interrupt key.Binding
}

var keys = keyMap{
	enter:     key.NewBinding(key.WithKeys("enter")),
	copy:      key.NewBinding(key.WithKeys("c")),
	quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	interrupt: key.NewBinding(key.WithKeys("ctrl+c")),
}
