package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Palette
	colorSage       = lipgloss.Color("#84A98C")
	colorTerracotta = lipgloss.Color("#E76F51")
	colorInk        = lipgloss.Color("#1F2937")
	colorMutedTone  = lipgloss.Color("#6B7280")
	colorDangerTone = lipgloss.Color("#EF4444")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSage).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorMutedTone).
			Italic(true)

	tabStyle = lipgloss.NewStyle().
			Foreground(colorMutedTone).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSage).
			Padding(0, 2).
			Underline(true)

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorSage)

	favouriteMarkStyle = lipgloss.NewStyle().
				Foreground(colorTerracotta)

	botanicalStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(colorMutedTone)

	chipStyle = lipgloss.NewStyle().
			Foreground(colorTerracotta)

	adminBadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorTerracotta)

	dangerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorDangerTone)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorMutedTone)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSage).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMutedTone)

	lockedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorInk)
)
