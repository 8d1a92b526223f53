// Package widget implements the two country search cards as Bubble Tea
// components on top of the search engine.
package widget

import (
	"context"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"countrypick/internal/api"
	"countrypick/internal/domain"
	"countrypick/internal/eventbus"
	"countrypick/internal/search"
	"countrypick/internal/ui/listeners"
	"countrypick/internal/ui/views"
)

// Defaults
const (
	DefaultDebounce    = 500 * time.Millisecond
	DefaultVisibleRows = 6
)

// Card layout, in lines relative to the card's first line
const (
	labelLine    = 0
	inputLine    = 1
	firstRowLine = 2
	captionLines = 1
)

// Visibility of a card's dropdown
type Visibility int

const (
	Closed Visibility = iota
	Loading
	Open
)

func (v Visibility) String() string {
	switch v {
	case Loading:
		return "loading"
	case Open:
		return "open"
	default:
		return "closed"
	}
}

// Loader fetches the raw country list
type Loader interface {
	FetchCountries(ctx context.Context) ([]api.RawCountry, error)
}

// Options configures a card
type Options struct {
	ID          string
	Mode        search.Mode
	Loader      Loader
	Context     context.Context
	Language    language.Tag // collation of the canonical list
	Debounce    time.Duration
	VisibleRows int

	Label       string
	Caption     string
	Placeholder string
	EmptyText   string

	Styles *views.Styles
	Keys   KeyMap
	Bus    eventbus.EventBus

	// OnSelectionChange receives the whole selection after every toggle
	OnSelectionChange func(cardID string, selected []domain.CountryRecord)
}

// Card is one search box with its dropdown
type Card struct {
	opts    Options
	state   *search.State
	input   textinput.Model
	spinner spinner.Model

	spinning bool
	fetching bool
	focused  bool
	seq      int // latest debounce sequence
	offset   int // first visible dropdown row

	width  int
	left   int // screen column of the card's first cell
	top    int // screen line of the card's first line
	height int

	scope   *listeners.Scope
	wasOpen bool
}

// New creates a card. Call Mount before routing events to it.
func New(opts Options) *Card {
	if opts.Debounce == 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.VisibleRows < 1 {
		opts.VisibleRows = DefaultVisibleRows
	}
	if opts.Styles == nil {
		opts.Styles = views.NewStyles()
	}
	if len(opts.Keys.Toggle.Keys()) == 0 {
		opts.Keys = DefaultKeyMap()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Language == language.Und {
		opts.Language = language.English
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = opts.Placeholder

	return &Card{
		opts:  opts,
		state: search.Empty(),
		input: ti,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(opts.Styles.Spinner),
		),
	}
}

// ID returns the card identifier
func (c *Card) ID() string { return c.opts.ID }

// State exposes the search state for rendering and tests
func (c *Card) State() *search.State { return c.state }

// Query returns the text in the input
func (c *Card) Query() string { return c.input.Value() }

// Focused reports whether the card has keyboard focus
func (c *Card) Focused() bool { return c.focused }

// Fetching reports whether the initial load is still running
func (c *Card) Fetching() bool { return c.fetching }

// Selected returns the selection in the order it was made
func (c *Card) Selected() []domain.CountryRecord { return c.state.Selected() }

// Visibility returns the dropdown state
func (c *Card) Visibility() Visibility {
	switch {
	case c.state.DropdownOpen:
		return Open
	case c.state.Loading:
		return Loading
	default:
		return Closed
	}
}

// Init starts the initial fetch
func (c *Card) Init() tea.Cmd {
	c.fetching = true
	return tea.Batch(c.fetch(), c.startSpinner())
}

// Mount subscribes the card to page-wide dismissal events
func (c *Card) Mount(reg *listeners.Registry) {
	if c.scope != nil && c.scope.Active() {
		return
	}
	c.scope = reg.NewScope()
	c.scope.On(listeners.MouseDown, func(e listeners.Event) {
		if !c.Contains(e.X, e.Y) {
			c.Dismiss()
		}
	})
	c.scope.On(listeners.KeyEscape, func(listeners.Event) {
		c.Dismiss()
	})
}

// Unmount releases every page-wide subscription and drops a pending
// debounce
func (c *Card) Unmount() {
	if c.scope != nil {
		c.scope.Release()
	}
	c.seq++
}

// SetWidth sets the width available to the card
func (c *Card) SetWidth(width int) {
	c.width = width
	// icon, space and a spinner cell
	c.input.Width = max(width-6, 1)
}

// SetBounds records where the card was laid out on screen
func (c *Card) SetBounds(left, top, height int) {
	c.left = left
	c.top = top
	c.height = height
}

// Contains reports whether a screen cell lies on the input line or the
// dropdown. Label and caption count as outside the card.
func (c *Card) Contains(x, y int) bool {
	if x < c.left || (c.width > 0 && x >= c.left+c.width) {
		return false
	}
	return y >= c.top+inputLine && y < c.top+c.height-captionLines
}

// Relative converts screen coordinates to card coordinates
func (c *Card) Relative(x, y int) (int, int) {
	return x - c.left, y - c.top
}

// Focus gives the card keyboard focus. The sync card opens its dropdown.
func (c *Card) Focus() tea.Cmd {
	c.focused = true
	cmd := c.input.Focus()
	if c.opts.Mode == search.ModeSync {
		c.syncOpen()
	}
	c.observe()
	return cmd
}

// Blur removes keyboard focus. The async card closes, the sync card stays
// as it is until an outside click or Escape.
func (c *Card) Blur() {
	c.focused = false
	c.input.Blur()
	if c.opts.Mode == search.ModeAsync {
		c.Dismiss()
	}
	c.observe()
}

// Dismiss closes the dropdown without touching query or selection. A
// pending debounced search is dropped so it cannot reopen it.
func (c *Card) Dismiss() {
	c.seq++
	c.state.DropdownOpen = false
	c.state.Loading = false
	c.observe()
}

// Click handles a left click at card-relative coordinates
func (c *Card) Click(x, y int) tea.Cmd {
	defer c.observe()

	switch {
	case y == inputLine:
		if c.opts.Mode == search.ModeSync {
			c.syncOpen()
		}
	case y >= firstRowLine && c.state.DropdownOpen:
		row := y - firstRowLine
		if row >= c.opts.VisibleRows {
			return nil
		}
		if c.state.SetHighlight(c.offset + row) {
			c.commit()
		}
	}
	return nil
}

// Update handles messages addressed to the card
func (c *Card) Update(msg tea.Msg) tea.Cmd {
	defer c.observe()

	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.CardID != c.opts.ID {
			return nil
		}
		return c.handleLoaded(msg)

	case debounceMsg:
		if msg.cardID != c.opts.ID {
			return nil
		}
		c.handleDebounce(msg)
		return nil

	case spinner.TickMsg:
		if msg.ID != c.spinner.ID() {
			return nil
		}
		if !c.busy() {
			c.spinning = false
			return nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if !c.focused {
			return nil
		}
		return c.handleKey(msg)

	default:
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return cmd
	}
}

func (c *Card) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, c.opts.Keys.Down):
		c.state.MoveHighlight(search.Next)
		return nil
	case key.Matches(msg, c.opts.Keys.Up):
		c.state.MoveHighlight(search.Previous)
		return nil
	case key.Matches(msg, c.opts.Keys.Toggle):
		if c.state.DropdownOpen {
			c.commit()
		}
		return nil
	}

	before := c.input.Value()
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	if c.input.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, c.queryChanged(c.input.Value()))
}

func (c *Card) queryChanged(text string) tea.Cmd {
	c.offset = 0
	if c.opts.Mode == search.ModeSync {
		c.syncQueryChanged(text)
		return nil
	}
	return c.asyncQueryChanged(text)
}

func (c *Card) handleLoaded(msg LoadedMsg) tea.Cmd {
	c.fetching = false

	if msg.Err != nil {
		log.Printf("Error fetching data for %s card: %v", c.opts.ID, msg.Err)
		c.publish(eventbus.CountriesLoadFailedEvent{Card: c.opts.ID, Err: msg.Err})
		return nil
	}
	if msg.SkipErr != nil {
		log.Printf("%s card: skipped %d records: %v", c.opts.ID, msg.Skipped, msg.SkipErr)
	}

	prev := c.state
	c.state = search.Initialize(msg.Records, search.NewCollator(c.opts.Language))
	c.state.DropdownOpen = prev.DropdownOpen
	c.state.Loading = prev.Loading

	// Text typed while the list was loading applies to the new list
	if q := c.input.Value(); !search.Blank(q, c.opts.Mode) {
		c.state.SetQuery(q, c.opts.Mode)
		if c.opts.Mode == search.ModeSync || prev.DropdownOpen {
			c.state.Recompute(c.opts.Mode)
		}
	}

	log.Printf("%s card: loaded %d countries", c.opts.ID, len(c.state.Canonical))
	c.publish(eventbus.CountriesLoadedEvent{Card: c.opts.ID, Count: len(c.state.Canonical), Skipped: msg.Skipped})
	return nil
}

func (c *Card) fetch() tea.Cmd {
	loader, ctx, id := c.opts.Loader, c.opts.Context, c.opts.ID
	return func() tea.Msg {
		if loader == nil {
			return LoadedMsg{CardID: id, Err: &api.FetchError{Kind: api.KindTransport, Cause: api.ErrNoEndpoint}}
		}
		raw, err := loader.FetchCountries(ctx)
		if err != nil {
			return LoadedMsg{CardID: id, Err: err}
		}
		records, skipErr := api.ToRecords(raw)
		return LoadedMsg{
			CardID:  id,
			Records: records,
			Skipped: len(raw) - len(records),
			SkipErr: skipErr,
		}
	}
}

func (c *Card) commit() {
	if c.state.CommitHighlighted() {
		c.notifySelection()
	}
}

func (c *Card) notifySelection() {
	selected := c.state.Selected()
	c.publish(eventbus.SelectionChangedEvent{Card: c.opts.ID, Selected: selected})
	if c.opts.OnSelectionChange != nil {
		c.opts.OnSelectionChange(c.opts.ID, selected)
	}
}

func (c *Card) publish(event eventbus.DomainEvent) {
	if c.opts.Bus != nil {
		c.opts.Bus.Publish(event)
	}
}

func (c *Card) busy() bool {
	return c.fetching || c.state.Loading
}

func (c *Card) startSpinner() tea.Cmd {
	if c.spinning {
		return nil
	}
	c.spinning = true
	return c.spinner.Tick
}

// observe keeps the dropdown window around the highlight and reports
// open/close transitions
func (c *Card) observe() {
	n := c.opts.VisibleRows
	h := c.state.Highlighted
	if h < c.offset {
		c.offset = h
	} else if h >= c.offset+n {
		c.offset = h - n + 1
	}
	c.offset = min(c.offset, max(len(c.state.Filtered)-n, 0))

	if open := c.state.DropdownOpen; open != c.wasOpen {
		c.wasOpen = open
		c.publish(eventbus.DropdownToggledEvent{Card: c.opts.ID, Open: open})
	}
}
