package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the pre-configured lipgloss styles for the chat view.
type Styles struct {
	// Title style for the header.
	Title lipgloss.Style

	// Question style for the user's questions in the transcript.
	Question lipgloss.Style

	// Answer style for synthesized answers.
	Answer lipgloss.Style

	// Source style for page references under an answer.
	Source lipgloss.Style

	// Muted style for status text.
	Muted lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// InputField style for the question input box.
	InputField lipgloss.Style
}

// DefaultStyles returns the default chat styling.
func DefaultStyles() *Styles {
	var (
		primary = lipgloss.Color("#7C3AED")
		cyan    = lipgloss.Color("#06B6D4")
		fg      = lipgloss.Color("#CDD6F4")
		muted   = lipgloss.Color("#6C7086")
		errCol  = lipgloss.Color("#F38BA8")
		border  = lipgloss.Color("#45475A")
	)

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),

		Question: lipgloss.NewStyle().
			Bold(true).
			Foreground(cyan),

		Answer: lipgloss.NewStyle().
			Foreground(fg),

		Source: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),

		Muted: lipgloss.NewStyle().
			Foreground(muted),

		Error: lipgloss.NewStyle().
			Foreground(errCol),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
	}
}
