package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/neilberkman/trailwatch/internal/core/session"
)

func (m Model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Export):
		date := m.snap.StartedAt
		if date.IsZero() {
			date = time.Now()
		}
		return m, exportGPX(m.points, m.cfg.Creator, m.exportDir, date.Local())

	case key.Matches(msg, m.keys.Copy):
		return m, copyCard(m.card())

	case key.Matches(msg, m.keys.Reset):
		if m.ctrl.Reset() {
			m.status = ""
		}
		m.refresh()
		return m, nil
	}

	return m, nil
}

func (m Model) viewSummary() string {
	sections := []string{
		titleStyle.Render("trailwatch") + "  " + stateBadge(m.snap.State),
		cardStyle.Render(m.card()),
	}
	if m.status != "" {
		sections = append(sections, m.viewStatus())
	}
	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) card() string {
	return session.RenderCard(m.cfg.SummaryTemplate, m.snap.Snapshot)
}

func exportStatus(path string, size int) string {
	return fmt.Sprintf("Exported %s to %s", humanize.Bytes(uint64(size)), path)
}
