package widget

import (
	tea "github.com/charmbracelet/bubbletea"

	"countrypick/internal/search"
)

// asyncQueryChanged starts a new debounce window. Every keystroke
// supersedes the previous window; a blank query closes right away.
func (c *Card) asyncQueryChanged(text string) tea.Cmd {
	c.seq++
	if c.state.SetQuery(text, search.ModeAsync) {
		return nil
	}
	c.state.DropdownOpen = false
	c.state.Loading = true
	return tea.Batch(c.startSpinner(), debounce(c.opts.ID, c.seq, c.opts.Debounce))
}

func (c *Card) handleDebounce(msg debounceMsg) {
	if msg.seq != c.seq {
		return
	}
	if search.Blank(c.state.Query, search.ModeAsync) {
		return
	}
	c.state.Recompute(search.ModeAsync)
}
