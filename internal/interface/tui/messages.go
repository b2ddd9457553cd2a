package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/neilberkman/trailwatch/internal/core/config"
	"github.com/neilberkman/trailwatch/internal/core/gpx"
	"github.com/neilberkman/trailwatch/internal/core/models"
)

// ConfigReloadedMsg delivers a config re-read after an edit on disk
type ConfigReloadedMsg struct {
	Config *config.Config
}

// changedMsg reports that the session snapshot may have changed
type changedMsg struct{}

// clockMsg refreshes the watch face clock
type clockMsg time.Time

type exportedMsg struct {
	path string
	size int
	err  error
}

type copiedMsg struct {
	card string
	err  error
}

// waitForChange blocks until the controller signals a change
func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-changes
		return changedMsg{}
	}
}

func tickClock() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

// exportGPX writes points to hike-<date>.gpx in dir
func exportGPX(points []models.Point, creator, dir string, date time.Time) tea.Cmd {
	return func() tea.Msg {
		data, err := gpx.ExportWithCreator(points, creator)
		if err != nil {
			return exportedMsg{err: fmt.Errorf("failed to build GPX: %w", err)}
		}

		path := filepath.Join(dir, gpx.FileName(date))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return exportedMsg{err: fmt.Errorf("failed to write file: %w", err)}
		}
		return exportedMsg{path: path, size: len(data)}
	}
}

// copyCard puts the summary card on the system clipboard
func copyCard(card string) tea.Cmd {
	return func() tea.Msg {
		// Use cross-platform clipboard library
		err := clipboard.WriteAll(card)
		return copiedMsg{card: card, err: err}
	}
}
