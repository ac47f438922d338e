// Package styles holds the colors and lipgloss styles shared by the terminal
// UI and the CLI output.
package styles

import (
	lipgloss "github.com/charmbracelet/lipgloss"
)

// Tokyo Night palette
const (
	Red     = "#f7768e"
	Green   = "#9ece6a"
	Blue    = "#7aa2f7"
	Cyan    = "#7dcfff"
	Magenta = "#bb9af7"
	White   = "#a9b1d6"
	Gray    = "#565f89"
	Amber   = "#e0af68"
)

// Status icons
const (
	CheckMark = "✓"
	CrossMark = "✗"
	Bullet    = "●"
	Circle    = "○"
)

// Styles are the lipgloss styles of the envkeys views
type Styles struct {
	Header      lipgloss.Style
	Active      lipgloss.Style
	Inactive    lipgloss.Style
	Tag         lipgloss.Style
	Buffer      lipgloss.Style
	Toast       lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
	Dim         lipgloss.Style
	Border      lipgloss.Style
	Placeholder lipgloss.Style
}

// New creates the default envkeys styles
func New() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(Blue)).
			Bold(true).
			Padding(0, 1),
		Active: lipgloss.NewStyle().
			Foreground(lipgloss.Color(Green)).
			Bold(true),
		Inactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(White)),
		Tag: lipgloss.NewStyle().
			Foreground(lipgloss.Color(Magenta)),
		Buffer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(Amber)).
			Bold(true),
		Toast: lipgloss.NewStyle().
			Foreground(lipgloss.Color(Cyan)).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(Red)).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(Green)).
			Bold(true),
		Dim: lipgloss.NewStyle().
			Foreground(lipgloss.Color(Gray)),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(Gray)).
			Padding(0, 1),
		Placeholder: lipgloss.NewStyle().
			Foreground(lipgloss.Color(Gray)).
			Italic(true),
	}
}

// StyledCheckMark returns the success icon in color
func StyledCheckMark() string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(Green)).Bold(true).Render(CheckMark)
}

// StyledCrossMark returns the failure icon in color
func StyledCrossMark() string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(Red)).Bold(true).Render(CrossMark)
}

// StyledWarning returns text in the warning color
func StyledWarning(text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(Amber)).Render(text)
}
