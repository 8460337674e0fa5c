package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Prompt      lipgloss.Style
	Button      lipgloss.Style
	Status      lipgloss.Style
	Dim         lipgloss.Style
	Error       lipgloss.Style
	ResultTitle lipgloss.Style
	Poster      lipgloss.Style
	Overview    lipgloss.Style
	Date        lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Button: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		ResultTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")),
		Poster:      lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true),
		Overview:    lipgloss.NewStyle(),
		Date:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:        lipgloss.NewStyle().Faint(true),
	}
}
