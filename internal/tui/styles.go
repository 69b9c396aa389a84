package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor   = lipgloss.Color("#5FAFAF") // Teal accent
	secondaryColor = lipgloss.Color("#666666") // Gray for secondary text
	errorColor     = lipgloss.Color("#AF5F5F") // Muted terracotta for errors

	// titleStyle for the header line
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// promptStyle for echoed user input
	promptStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	// statusBarStyle for the current/interrupted summary line
	statusBarStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// errorStyle for error lines in the transcript
	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// helpStyle for the key hints at the bottom
	helpStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)
)
