package prompt

import "github.com/charmbracelet/lipgloss"

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for validation messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	// AcceptedStyle for months already entered.
	AcceptedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)
