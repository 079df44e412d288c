package widgets

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the style definitions shared by all widgets
type Styles struct {
	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	Group        lipgloss.Style
	FocusedGroup lipgloss.Style
	Error        lipgloss.Style
	Placeholder  lipgloss.Style
	Value        lipgloss.Style
	Disabled     lipgloss.Style
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
	Resolved     lipgloss.Style
	Hint         lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Label:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		FocusedLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Group: lipgloss.NewStyle().
			PaddingLeft(1).
			MarginBottom(1).
			Border(lipgloss.HiddenBorder(), false, false, false, true),
		FocusedGroup: lipgloss.NewStyle().
			PaddingLeft(1).
			MarginBottom(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("99")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Placeholder:  lipgloss.NewStyle().Faint(true),
		Value:        lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Disabled:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		ListItem:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")).PaddingLeft(2),
		ListSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Background(lipgloss.Color("238")).PaddingLeft(2),
		Resolved:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Hint:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
