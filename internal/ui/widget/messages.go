package widget

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"countrypick/internal/domain"
)

// LoadedMsg carries the result of a card's initial fetch
type LoadedMsg struct {
	CardID  string
	Records []domain.CountryRecord
	Skipped int   // raw records dropped while mapping
	SkipErr error // why they were dropped
	Err     error // fetch failure; Records is empty when set
}

// debounceMsg fires when a debounce window of the async card elapses.
// Only the message carrying the card's latest sequence is acted upon.
type debounceMsg struct {
	cardID string
	seq    int
}

func debounce(cardID string, seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return debounceMsg{cardID: cardID, seq: seq}
	})
}
