package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"countrypick/internal/domain"
)

// Row is one dropdown entry as the renderer sees it
type Row struct {
	Record      domain.CountryRecord
	Selected    bool
	Highlighted bool
}

// Checkbox renders the selection marker
func (s *Styles) Checkbox(selected bool) string {
	if selected {
		return s.Checked.Render("[x]")
	}
	return "[ ]"
}

// AsyncRow renders flag and currency name with the code and country as
// secondary text. The result is a single line at most width cells wide.
func (s *Styles) AsyncRow(r Row, width int) string {
	primary := r.Record.CurrencyName
	if r.Record.Flag != "" {
		primary = r.Record.Flag + " " + primary
	}
	secondary := r.Record.CurrencyCode + " · " + r.Record.Name
	return s.row(r, s.Checkbox(r.Selected)+" "+primary+"  "+s.Secondary.Render(secondary), width)
}

// SyncRow renders the currency name followed by the country
func (s *Styles) SyncRow(r Row, width int) string {
	return s.row(r, s.Checkbox(r.Selected)+" "+r.Record.CurrencyName+"  "+s.Secondary.Render(r.Record.Name), width)
}

func (s *Styles) row(r Row, line string, width int) string {
	style := s.Row
	if r.Highlighted {
		style = s.RowHighlighted
	}
	if width > 0 {
		line = Truncate(line, width)
		style = style.Width(width).MaxHeight(1)
	}
	return style.Render(line)
}

// Dropdown stacks rendered rows, or shows emptyText when there are none
func (s *Styles) Dropdown(rows []string, emptyText string) string {
	if len(rows) == 0 {
		return s.Empty.Render(emptyText)
	}
	return strings.Join(rows, "\n")
}

// Truncate cuts a rendered line to width cells
func Truncate(line string, width int) string {
	if width <= 0 || lipgloss.Width(line) <= width {
		return line
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}
