// Package chat provides the line-based console transport for the
// assistant, with styled output using lipgloss.
package chat

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#4ECDC4")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// MessageStyle formats assistant messages.
	MessageStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// ButtonStyle formats keyboard buttons.
	ButtonStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	// ErrorStyle formats transport errors.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// PromptStyle formats the input prompt.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)
)
