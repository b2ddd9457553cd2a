package tui

import "github.com/charmbracelet/lipgloss"

// Global styles used across views
var (
	// Header styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	// State badges
	idleBadge = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("246"))

	activeBadge = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("42"))

	pausedBadge = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214"))

	summaryBadge = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("111"))

	// Tile styles
	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(14)

	tileLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246")) // Lighter gray that works better in dark terminals

	tileValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	tileUnitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246"))

	// Track plot styles
	mapStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	trackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("111"))

	positionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	startStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	// Signal colors
	signalGoodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	signalFairStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	signalPoorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	signalNoneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	// Summary card
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("111")).
			Padding(1, 2)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("120")) // Light green

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196"))

	// Help view styles
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)
