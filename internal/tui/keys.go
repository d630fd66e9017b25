package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Edit   key.Binding
	Reset  key.Binding
	Quit   key.Binding

	Submit     key.Binding
	Cancel     key.Binding
	NextField  key.Binding
	WeightDown key.Binding
	WeightUp   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Reset:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		NextField:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "text/impact")),
		WeightDown: key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←", "less")),
		WeightUp:   key.NewBinding(key.WithKeys("right", "l", "+"), key.WithHelp("→", "more")),
	}
}

// browse-mode bindings shown in the list help
func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Reset}
}
