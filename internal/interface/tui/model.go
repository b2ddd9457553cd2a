package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/neilberkman/trailwatch/internal/core/config"
	"github.com/neilberkman/trailwatch/internal/core/models"
	"github.com/neilberkman/trailwatch/internal/core/session"
	"github.com/neilberkman/trailwatch/internal/core/tracker"
)

type viewMode int

const (
	faceView viewMode = iota
	summaryView
	helpView
)

type Model struct {
	ctrl *session.Controller
	cfg  *config.Config
	mode viewMode

	snap   session.Snapshot
	points []models.Point
	now    time.Time

	keys    keymap
	help    help.Model
	battery progress.Model

	width  int
	height int

	// Last action result shown under the face
	status    string
	statusErr bool

	// Directory GPX exports are written to
	exportDir string
}

// New creates the watch face for ctrl
func New(ctrl *session.Controller, cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.Defaults()
	}
	m := Model{
		ctrl:      ctrl,
		cfg:       cfg,
		keys:      defaultKeymap(),
		help:      help.New(),
		battery:   progress.New(progress.WithSolidFill("42"), progress.WithoutPercentage(), progress.WithWidth(10)),
		now:       time.Now(),
		exportDir: ".",
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForChange(m.ctrl.Changes()), tickClock())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

		if m.mode == helpView {
			return m.updateHelp(msg)
		}
		if key.Matches(msg, m.keys.Help) {
			m.mode = helpView
			return m, nil
		}

		if m.mode == summaryView {
			return m.updateSummary(msg)
		}
		return m.updateFace(msg)

	case changedMsg:
		m.refresh()
		return m, waitForChange(m.ctrl.Changes())

	case clockMsg:
		m.now = time.Time(msg)
		return m, tickClock()

	case exportedMsg:
		if msg.err != nil {
			m.setStatus("Export failed: "+msg.err.Error(), true)
		} else {
			m.setStatus(exportStatus(msg.path, msg.size), false)
		}
		return m, nil

	case ConfigReloadedMsg:
		// The calorie model stays with the running tracker
		if msg.Config != nil {
			m.cfg = msg.Config
			m.setStatus("Config reloaded", false)
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			// Fallback: nowhere to copy to, so point at export instead
			m.setStatus("NoClipboard: press e to export the track instead", true)
		} else {
			m.setStatus("Summary copied to clipboard", false)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	switch m.mode {
	case summaryView:
		return m.viewSummary()
	case helpView:
		return m.viewHelp()
	}
	return m.viewFace()
}

// refresh copies the controller state into the model and follows the
// session into and out of the summary screen
func (m *Model) refresh() {
	m.snap = m.ctrl.Snapshot()
	m.points = m.ctrl.Points()
	m.keys = m.keys.forState(m.snap.State)

	switch {
	case m.snap.State == tracker.Summary && m.mode == faceView:
		m.mode = summaryView
	case m.snap.State != tracker.Summary && m.mode == summaryView:
		m.mode = faceView
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// State returns the session state currently shown
func (m Model) State() tracker.State {
	return m.snap.State
}
