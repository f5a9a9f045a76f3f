// Package styles defines the visual styling for terminal output.
//
// Colors are adaptive and switch with the terminal background.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Color definitions
var (
	PrimaryColor = lipgloss.AdaptiveColor{
		Light: "#007ACC", // Blue
		Dark:  "#3D9EFF",
	}

	SecondaryColor = lipgloss.AdaptiveColor{
		Light: "#6C757D", // Gray
		Dark:  "#A0A8B0",
	}

	SuccessColor = lipgloss.AdaptiveColor{
		Light: "#28A745", // Green
		Dark:  "#4CDD76",
	}

	ErrorColor = lipgloss.AdaptiveColor{
		Light: "#DC3545", // Red
		Dark:  "#FF6B7D",
	}

	MutedColor = lipgloss.AdaptiveColor{
		Light: "#868E96",
		Dark:  "#6C757D",
	}
)

// Styles groups the styles bound to one lipgloss renderer.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Name    lipgloss.Style
	Path    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Tag     lipgloss.Style
}

// New creates the styles for r.
func New(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:   r.NewStyle().Foreground(PrimaryColor).Bold(true),
		Label:   r.NewStyle().Foreground(SecondaryColor).Bold(true),
		Name:    r.NewStyle().Foreground(PrimaryColor),
		Path:    r.NewStyle().Foreground(SecondaryColor).Italic(true),
		Muted:   r.NewStyle().Foreground(MutedColor),
		Success: r.NewStyle().Foreground(SuccessColor).Bold(true),
		Error:   r.NewStyle().Foreground(ErrorColor).Bold(true),
		Tag:     r.NewStyle().Foreground(SuccessColor),
	}
}
