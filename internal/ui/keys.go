package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit         key.Binding
	Up           key.Binding
	Down         key.Binding
	NextCategory key.Binding
	PrevCategory key.Binding
	ToggleBody   key.Binding
	ScrollBody   key.Binding
	Reload       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("j", "down"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next category"),
		),
		PrevCategory: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab", "prev category"),
		),
		ToggleBody: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "show body"),
		),
		ScrollBody: key.NewBinding(
			key.WithKeys("pgup", "pgdown"),
			key.WithHelp("pgup/pgdown", "scroll body"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
	}
}

func (k keyMap) help() string {
	bindings := []key.Binding{k.Down, k.Up, k.NextCategory, k.PrevCategory, k.ToggleBody, k.ScrollBody, k.Reload, k.Quit}
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += "  "
		}
		out += b.Help().Key + " " + b.Help().Desc
	}
	return out
}
