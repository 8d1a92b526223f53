package widget

import (
	"strings"

	"countrypick/internal/search"
	"countrypick/internal/ui/views"
)

// View renders label, input line, dropdown when open and caption
func (c *Card) View() string {
	st := c.opts.Styles

	label := st.Label.Render(c.opts.Label)
	if c.focused {
		label = st.LabelFocused.Render(c.opts.Label)
	}

	input := st.SearchIcon.Render("⌕") + " " + c.input.View()
	if c.fetching || (c.state.Loading && !c.state.DropdownOpen) {
		input += " " + c.spinner.View()
	}

	lines := []string{
		views.Truncate(label, c.width),
		views.Truncate(input, c.width),
	}
	if c.state.DropdownOpen {
		lines = append(lines, c.dropdownView())
	}
	lines = append(lines, views.Truncate(st.Caption.Render(c.opts.Caption), c.width))

	return strings.Join(lines, "\n")
}

func (c *Card) dropdownView() string {
	st := c.opts.Styles
	end := min(c.offset+c.opts.VisibleRows, len(c.state.Filtered))

	rows := make([]string, 0, end-c.offset)
	for i := c.offset; i < end; i++ {
		r := c.state.Filtered[i]
		row := views.Row{
			Record:      r,
			Selected:    c.state.IsSelected(r),
			Highlighted: i == c.state.Highlighted,
		}
		if c.opts.Mode == search.ModeAsync {
			rows = append(rows, st.AsyncRow(row, c.width))
		} else {
			rows = append(rows, st.SyncRow(row, c.width))
		}
	}
	return st.Dropdown(rows, c.opts.EmptyText)
}
