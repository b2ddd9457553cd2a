package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
	"github.com/neilberkman/trailwatch/internal/core/models"
	"github.com/neilberkman/trailwatch/internal/core/session"
	"github.com/neilberkman/trailwatch/internal/core/tracker"
)

const (
	minMapWidth  = 20
	minMapHeight = 6
)

func (m Model) updateFace(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Toggle):
		m.ctrl.Toggle()
		m.status = ""
	case key.Matches(msg, m.keys.Stop):
		m.ctrl.Stop()
		m.status = ""
	default:
		return m, nil
	}

	m.refresh()
	return m, nil
}

func (m Model) viewFace() string {
	sections := []string{
		m.viewHeader(),
		m.viewTiles(),
		m.viewMap(),
	}
	if m.status != "" {
		sections = append(sections, m.viewStatus())
	}
	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewHeader() string {
	parts := []string{
		titleStyle.Render("trailwatch"),
		stateBadge(m.snap.State),
		clockStyle.Render(m.now.Format("15:04:05")),
		"GPS " + signalBars(m.snap.Metrics.Signal),
		fmt.Sprintf("%s %d%%", m.battery.ViewAs(float64(m.snap.Battery)/100), m.snap.Battery),
	}
	header := strings.Join(parts, "  ")
	if m.width > 0 {
		header = ansi.Truncate(header, m.width, "…")
	}
	return header
}

func (m Model) viewTiles() string {
	mt := m.snap.Metrics

	hr := "--"
	if m.snap.HeartRate > 0 {
		hr = fmt.Sprintf("%d", m.snap.HeartRate)
	}
	maxAlt := "--"
	if mt.HasMaxAltitude {
		maxAlt = fmt.Sprintf("%.0f", mt.MaxAltitudeM)
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		tile("DISTANCE", fmt.Sprintf("%.2f", mt.DistanceKm), "km"),
		tile("TIME", session.FormatDuration(mt.ElapsedSeconds), ""),
		tile("ELEVATION", fmt.Sprintf("+%.0f", mt.ElevationGainM), "m"),
		tile("HEART RATE", hr, "bpm"),
	)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		tile("SPEED", fmt.Sprintf("%.1f", mt.SpeedKmh), "km/h"),
		tile("AVG SPEED", fmt.Sprintf("%.1f", mt.AvgSpeedKmh), "km/h"),
		tile("CALORIES", fmt.Sprintf("%d", mt.Calories), "kcal"),
		tile("MAX ALT", maxAlt, "m"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func (m Model) viewMap() string {
	// Fill what the header, tiles and help leave free
	width := m.width - 2
	height := m.height - 12
	if m.status != "" {
		height--
	}
	width = max(width, minMapWidth)
	height = max(height, minMapHeight)

	return mapStyle.Render(renderTrack(m.points, width, height))
}

func (m Model) viewStatus() string {
	status := m.status
	if m.width > 0 {
		status = wordwrap.String(status, m.width)
	}
	if m.statusErr {
		return statusErrorStyle.Render(status)
	}
	return statusStyle.Render(status)
}

func tile(label, value, unit string) string {
	body := tileLabelStyle.Render(label) + "\n" + tileValueStyle.Render(value)
	if unit != "" {
		body += " " + tileUnitStyle.Render(unit)
	}
	return tileStyle.Render(body)
}

func stateBadge(state tracker.State) string {
	label := strings.ToUpper(state.String())
	switch state {
	case tracker.Active:
		return activeBadge.Render(label)
	case tracker.Paused:
		return pausedBadge.Render(label)
	case tracker.Summary:
		return summaryBadge.Render(label)
	}
	return idleBadge.Render(label)
}

func signalBars(q models.SignalQuality) string {
	switch q {
	case models.SignalGood:
		return signalGoodStyle.Render("●●●")
	case models.SignalFair:
		return signalFairStyle.Render("●●○")
	case models.SignalPoor:
		return signalPoorStyle.Render("●○○")
	}
	return signalNoneStyle.Render("○○○")
}
