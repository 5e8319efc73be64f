package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the picker
type Styles struct {
	Prompt   lipgloss.Style
	Filter   lipgloss.Style
	Selected lipgloss.Style
	Status   lipgloss.Style
}

// NewStyles creates the picker styles on the given renderer. With color off
// every style is plain, so frames carry no escape sequences beyond screen control.
func NewStyles(r *lipgloss.Renderer, color bool) *Styles {
	plain := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	if !color {
		return &Styles{
			Prompt:   plain,
			Filter:   plain,
			Selected: plain,
			Status:   plain,
		}
	}

	return &Styles{
		Prompt:   plain.Foreground(lipgloss.Color("99")).Bold(true),
		Filter:   plain.Foreground(lipgloss.Color("214")), // yellow
		Selected: plain.Foreground(lipgloss.Color("226")).Bold(true),
		Status:   plain.Foreground(lipgloss.Color("241")),
	}
}
