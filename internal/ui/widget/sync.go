package widget

import "countrypick/internal/search"

// syncOpen opens the dropdown whatever the input holds. With a blank query
// and nothing to show, the whole list is offered again.
func (c *Card) syncOpen() {
	if search.Blank(c.state.Query, search.ModeSync) && len(c.state.Filtered) == 0 {
		c.state.ShowAll()
	}
	c.state.DropdownOpen = true
}

// syncQueryChanged filters on every keystroke. Typing into the focused
// input counts as interacting with it, so results stay visible.
func (c *Card) syncQueryChanged(text string) {
	if c.state.SetQuery(text, search.ModeSync) {
		return
	}
	c.state.Recompute(search.ModeSync)
	c.state.DropdownOpen = true
}
