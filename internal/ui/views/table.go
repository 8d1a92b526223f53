package views

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"countrypick/internal/domain"
)

// TableHeaders are the column titles of CountryTable
type TableHeaders struct {
	Flag, Name, Code, Currency string
}

// CountryTable renders records as a bordered table in the given order
func (s *Styles) CountryTable(records []domain.CountryRecord, h TableHeaders) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Flag, r.Name, r.CurrencyCode, r.CurrencyName})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Secondary).
		Headers(h.Flag, h.Name, h.Code, h.Currency).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Checked.Padding(0, 1)
			}
			return s.Row.Padding(0, 1)
		}).
		String()
}
