package prompt

import (
	"github.com/charmbracelet/lipgloss"
)

// Exported styles used by every prompt and message
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00D4AA"))

	HintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	CommandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00D4AA")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)
