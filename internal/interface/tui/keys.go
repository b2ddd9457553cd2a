package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/neilberkman/trailwatch/internal/core/tracker"
)

type keymap struct {
	Toggle,
	Stop,
	Export,
	Copy,
	Reset,
	Help,
	Quit key.Binding
}

// FullHelp implements help.KeyMap.
func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Stop},
		{k.Export, k.Copy, k.Reset},
		{k.Help, k.Quit},
	}
}

// ShortHelp implements help.KeyMap.
func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Stop, k.Export, k.Copy, k.Reset, k.Help, k.Quit}
}

func defaultKeymap() keymap {
	return keymap{
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export gpx"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy card"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// forState enables the bindings that do something in state
func (k keymap) forState(state tracker.State) keymap {
	k.Toggle.SetEnabled(state != tracker.Summary)
	switch state {
	case tracker.Idle:
		k.Toggle.SetHelp("space", "start")
	case tracker.Active:
		k.Toggle.SetHelp("space", "pause")
	case tracker.Paused:
		k.Toggle.SetHelp("space", "resume")
	}

	k.Stop.SetEnabled(state == tracker.Active || state == tracker.Paused)
	k.Export.SetEnabled(state == tracker.Summary)
	k.Copy.SetEnabled(state == tracker.Summary)
	k.Reset.SetEnabled(state == tracker.Summary)
	return k
}
