// Package ui contains the page holding both country search cards.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"countrypick/internal/config"
	"countrypick/internal/domain"
	"countrypick/internal/eventbus"
	"countrypick/internal/i18n"
	"countrypick/internal/search"
	"countrypick/internal/ui/listeners"
	"countrypick/internal/ui/views"
	"countrypick/internal/ui/widget"
)

// Card IDs
const (
	AsyncCard = "async"
	SyncCard  = "sync"
)

// horizontal padding of the main style
const padX = 2

// Selection is the final selection of one card
type Selection struct {
	Card    string
	Label   string
	Records []domain.CountryRecord
}

// Model is the page: both cards, focus and the page-wide listeners
type Model struct {
	registry *listeners.Registry
	styles   *views.Styles
	keys     widget.KeyMap
	help     help.Model

	cards    []*widget.Card
	focus    int
	failed   map[string]bool
	selected map[string][]domain.CountryRecord // reported by each card

	width    int
	height   int
	quitting bool
}

// NewModel creates the page. Both cards fetch through loader.
func NewModel(ctx context.Context, bus eventbus.EventBus, cfg *config.Config, loader widget.Loader) *Model {
	styles := views.NewStyles()
	keys := widget.DefaultKeyMap()

	m := &Model{
		registry: listeners.New(),
		styles:   styles,
		keys:     keys,
		help:     help.New(),
		failed:   make(map[string]bool),
		selected: make(map[string][]domain.CountryRecord),
	}

	common := widget.Options{
		Loader:      loader,
		Context:     ctx,
		Language:    cfg.LanguageTag(),
		Debounce:    cfg.Search.Debounce.Duration,
		VisibleRows: cfg.Search.VisibleRows,
		Placeholder: i18n.T("input.placeholder"),
		EmptyText:   i18n.T("dropdown.empty"),
		Styles:      styles,
		Keys:        keys,
		Bus:         bus,

		OnSelectionChange: m.selectionChanged,
	}

	async := common
	async.ID = AsyncCard
	async.Mode = search.ModeAsync
	async.Label = i18n.T("async.label")
	async.Caption = i18n.T("async.caption")

	sync := common
	sync.ID = SyncCard
	sync.Mode = search.ModeSync
	sync.Label = i18n.T("sync.label")
	sync.Caption = i18n.T("sync.caption")

	m.cards = []*widget.Card{widget.New(async), widget.New(sync)}
	return m
}

// Card returns the card with the given ID, or nil
func (m *Model) Card(id string) *widget.Card {
	for _, c := range m.cards {
		if c.ID() == id {
			return c
		}
	}
	return nil
}

// Selections returns the selection of every card
func (m *Model) Selections() []Selection {
	out := make([]Selection, 0, len(m.cards))
	for _, c := range m.cards {
		out = append(out, Selection{
			Card:    c.ID(),
			Label:   i18n.T(c.ID() + ".label"),
			Records: m.selected[c.ID()],
		})
	}
	return out
}

func (m *Model) selectionChanged(cardID string, selected []domain.CountryRecord) {
	m.selected[cardID] = selected
}

// Init mounts the cards, focuses the first one and starts the fetches
func (m *Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.cards)+1)
	for _, c := range m.cards {
		c.Mount(m.registry)
		cmds = append(cmds, c.Init())
	}
	cmds = append(cmds, m.cards[m.focus].Focus())
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width - 2*padX
		for _, c := range m.cards {
			c.SetWidth(msg.Width - 2*padX)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quit()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Close):
			m.registry.Dispatch(listeners.Event{Kind: listeners.KeyEscape})
			return m, nil
		case key.Matches(msg, m.keys.Switch):
			return m, m.setFocus(m.focus + 1)
		case key.Matches(msg, m.keys.Back):
			return m, m.setFocus(m.focus - 1)
		}
		return m, m.cards[m.focus].Update(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case EventMsg:
		if e, ok := msg.Event.(eventbus.CountriesLoadFailedEvent); ok {
			m.failed[e.Card] = true
		}
		return m, nil

	default:
		cmds := make([]tea.Cmd, 0, len(m.cards))
		for _, c := range m.cards {
			cmds = append(cmds, c.Update(msg))
		}
		return m, tea.Batch(cmds...)
	}
}

// handleMouse runs the page-wide mousedown handlers first, then lets the
// card under the pointer take focus and handle the click
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || tea.MouseEvent(msg).IsWheel() {
		return nil
	}
	m.registry.Dispatch(listeners.Event{Kind: listeners.MouseDown, X: msg.X, Y: msg.Y})

	if msg.Button != tea.MouseButtonLeft {
		return nil
	}
	for i, c := range m.cards {
		if !c.Contains(msg.X, msg.Y) {
			continue
		}
		focusCmd := m.setFocus(i)
		x, y := c.Relative(msg.X, msg.Y)
		return tea.Batch(focusCmd, c.Click(x, y))
	}
	return nil
}

func (m *Model) setFocus(i int) tea.Cmd {
	n := len(m.cards)
	i = ((i % n) + n) % n
	if i == m.focus && m.cards[i].Focused() {
		return nil
	}
	m.cards[m.focus].Blur()
	m.focus = i
	return m.cards[i].Focus()
}

func (m *Model) quit() {
	m.quitting = true
	for _, c := range m.cards {
		c.Unmount()
	}
}

// View renders the page and records where each card landed for mouse
// hit testing
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	title := m.styles.Title.Render(i18n.T("app.title"))
	blocks := []string{title}
	y := lipgloss.Height(title)

	for _, c := range m.cards {
		v := c.View()
		h := lipgloss.Height(v)
		c.SetBounds(padX, y, h)
		blocks = append(blocks, v, "")
		y += h + 1
	}

	blocks = append(blocks, m.statusView(), m.help.View(m.keys))
	return m.styles.Main.Render(strings.Join(blocks, "\n"))
}

func (m *Model) statusView() string {
	parts := make([]string, 0, len(m.cards))
	for _, c := range m.cards {
		label := i18n.T(c.ID() + ".label")
		switch {
		case m.failed[c.ID()]:
			parts = append(parts, fmt.Sprintf("%s: %s", label, i18n.T("status.failed")))
		case c.Fetching():
			parts = append(parts, fmt.Sprintf("%s: %s", label, i18n.T("status.loading")))
		default:
			parts = append(parts, fmt.Sprintf("%s: %d %s", label, len(m.selected[c.ID()]), i18n.T("status.selected")))
		}
	}
	return m.styles.Status.Render(strings.Join(parts, " · "))
}
