package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	Label          lipgloss.Style
	LabelFocused   lipgloss.Style
	SearchIcon     lipgloss.Style
	Spinner        lipgloss.Style
	Row            lipgloss.Style
	RowHighlighted lipgloss.Style
	Checked        lipgloss.Style
	Secondary      lipgloss.Style
	Empty          lipgloss.Style
	Caption        lipgloss.Style
	Status         lipgloss.Style
	Help           lipgloss.Style
	Main           lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Label:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		LabelFocused:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
		SearchIcon:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Spinner:        lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Row:            lipgloss.NewStyle(),
		RowHighlighted: lipgloss.NewStyle().Background(lipgloss.Color("153")).Foreground(lipgloss.Color("16")),
		Checked:        lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
		Secondary:      lipgloss.NewStyle().Faint(true),
		Empty:          lipgloss.NewStyle().Faint(true).PaddingLeft(2),
		Caption:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Status:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:           lipgloss.NewStyle().Faint(true),
		Main:           lipgloss.NewStyle().Padding(0, 2),
	}
}
