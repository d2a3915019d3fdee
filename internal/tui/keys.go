package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle      key.Binding
	Reset       key.Binding
	Lap         key.Binding
	MinutesUp   key.Binding
	MinutesDown key.Binding
	SecondsUp   key.Binding
	SecondsDown key.Binding
	Apply       key.Binding
	Switch      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Lap:         key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "lap")),
		MinutesUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "minutes")),
		MinutesDown: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "minutes down")),
		SecondsUp:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]/[", "seconds")),
		SecondsDown: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "seconds down")),
		Apply:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "set timer")),
		Switch:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (keys keyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Toggle, keys.Reset, keys.Switch, keys.Help, keys.Quit}
}

// FullHelp implements help.KeyMap.
func (keys keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Toggle, keys.Reset, keys.Lap},
		{keys.MinutesUp, keys.SecondsUp, keys.Apply},
		{keys.Switch, keys.Help, keys.Quit},
	}
}
