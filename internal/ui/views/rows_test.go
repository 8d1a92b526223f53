package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"countrypick/internal/domain"
)

var japan = domain.CountryRecord{Name: "Japan", CurrencyCode: "JPY", CurrencyName: "Japanese yen", Flag: "🇯🇵"}

func TestAsyncRowShowsFlagCurrencyAndCode(t *testing.T) {
	s := NewStyles()
	line := s.AsyncRow(Row{Record: japan, Selected: true}, 0)

	assert.Contains(t, line, "[x]")
	assert.Contains(t, line, "🇯🇵 Japanese yen")
	assert.Contains(t, line, "JPY")
	assert.Contains(t, line, "Japan")
}

func TestSyncRowOmitsFlag(t *testing.T) {
	s := NewStyles()
	line := s.SyncRow(Row{Record: japan}, 0)

	assert.Contains(t, line, "[ ] Japanese yen")
	assert.NotContains(t, line, "🇯🇵")
}

func TestRowsStayOnOneLine(t *testing.T) {
	s := NewStyles()
	long := japan
	long.CurrencyName = strings.Repeat("yen ", 40)

	line := s.SyncRow(Row{Record: long, Highlighted: true}, 30)
	assert.Equal(t, 1, lipgloss.Height(line))
	assert.LessOrEqual(t, lipgloss.Width(line), 30)
}

func TestDropdownEmpty(t *testing.T) {
	s := NewStyles()
	assert.Contains(t, s.Dropdown(nil, "No results found"), "No results found")
	assert.Equal(t, "a\nb", s.Dropdown([]string{"a", "b"}, "unused"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, 4, lipgloss.Width(Truncate("longer line", 4)))
}
