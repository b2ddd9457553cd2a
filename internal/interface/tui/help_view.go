package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "?":
		m.mode = faceView
		m.refresh()
		return m, nil
	}

	return m, nil
}

func (m Model) viewHelp() string {
	help := `
Trailwatch - Help
═════════════════

WATCH FACE
──────────
  space        Start, pause or resume the hike
  s            Stop and show the summary
  ?            Show this help
  q            Quit (an unfinished hike can be
               restored with --recover)

SUMMARY
───────
  e            Export the track as hike-<date>.gpx
  c            Copy the summary card to clipboard
  r            Reset and discard the session
  q            Quit

GPS SIGNAL
──────────
  ●●●          Good (accuracy under 20 m)
  ●●○          Fair (under 50 m)
  ●○○          Poor
  ○○○          No fix

Press esc or ? to return
`

	return helpStyle.Render(help)
}
