// Package tui is the interactive terminal catalog browser.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/me/prodview/internal/catalog"
	"github.com/me/prodview/internal/controller"
	"github.com/me/prodview/internal/search"
	"github.com/me/prodview/internal/view"
	"github.com/me/prodview/pkg/model"
)

// chromeHeight is the number of lines taken by the header, footer and help.
const chromeHeight = 6

// Options configures the browser.
type Options struct {
	Mode     model.PaginationMode
	PerPage  int
	Debounce time.Duration
}

// settleMsg fires when the search quiet period for tag has elapsed.
type settleMsg struct{ tag uint64 }

// Model is the bubbletea model. All controller state changes happen on the
// bubbletea update loop; fetches run as commands and report back as
// controller events.
type Model struct {
	ctx     context.Context
	catalog catalog.Catalog
	logger  *slog.Logger
	opts    Options

	state    controller.State
	sentinel controller.Sentinel
	query    search.Input

	input    textinput.Model
	viewport viewport.Model
	help     help.Model
	keys     KeyMap
	styles   view.Styles

	width  int
	height int
}

// New creates the browser model. ctx bounds every fetch it issues.
func New(ctx context.Context, cat catalog.Catalog, opts Options, logger *slog.Logger) *Model {
	if opts.Debounce <= 0 {
		opts.Debounce = search.DefaultDelay
	}

	ti := textinput.New()
	ti.Placeholder = "Search products..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 100
	ti.Width = 40

	m := &Model{
		ctx:      ctx,
		catalog:  cat,
		logger:   logger.With("component", "browser"),
		opts:     opts,
		state:    controller.New(controller.Config{Mode: opts.Mode, PerPage: opts.PerPage}),
		input:    ti,
		viewport: viewport.New(80, 20),
		help:     help.New(),
		keys:     DefaultKeyMap(),
		styles:   view.DefaultStyles(),
		width:    80,
		height:   20 + chromeHeight,
	}
	m.syncKeys()
	return m
}

// State returns the current controller state.
func (m *Model) State() controller.State {
	return m.state
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.dispatch(controller.Mount{})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, m.checkSentinel()

	case tea.KeyMsg:
		if m.input.Focused() {
			return m, m.updateSearch(msg)
		}
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, tea.Batch(cmd, m.checkSentinel())

	case settleMsg:
		q, ok := m.query.Settle(msg.tag)
		if !ok {
			return m, nil
		}
		m.logger.Debug("search settled", "query", q)
		return m, m.dispatch(controller.SearchSettled{Query: q})

	case controller.Event:
		return m, m.dispatch(msg)
	}

	// Cursor blink and other widget messages.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return tea.Quit
	case key.Matches(msg, m.keys.Blur):
		m.input.Blur()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	tag, changed := m.query.Set(m.input.Value())
	if !changed {
		return cmd
	}
	return tea.Batch(cmd, tea.Tick(m.opts.Debounce, func(time.Time) tea.Msg {
		return settleMsg{tag: tag}
	}))
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Search):
		return m.input.Focus()
	case key.Matches(msg, m.keys.Next):
		return m.dispatch(controller.NextPage{})
	case key.Matches(msg, m.keys.Prev):
		return m.dispatch(controller.PrevPage{})
	case key.Matches(msg, m.keys.Sort):
		return m.dispatch(controller.SortChanged{Key: m.state.Sort.Next()})
	case key.Matches(msg, m.keys.SortBack):
		return m.dispatch(controller.SortChanged{Key: m.state.Sort.Prev()})
	case key.Matches(msg, m.keys.Retry):
		return m.dispatch(controller.Retry{})
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.width, m.height)
		return nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return tea.Batch(cmd, m.checkSentinel())
}

// dispatch runs ev through the reducer and turns the resulting effects into
// commands.
func (m *Model) dispatch(ev controller.Event) tea.Cmd {
	prev := m.state
	next, effects := controller.Reduce(prev, ev)
	m.state = next
	m.sentinel.Sync(next)
	m.syncKeys()

	if prev.Phase != next.Phase {
		if err := prev.Phase.ValidateTransition(next.Phase); err != nil {
			m.logger.Error("controller state", "event", fmt.Sprintf("%T", ev), "error", err)
		}
	}
	if prev.Phase != next.Phase || prev.Generation != next.Generation {
		m.logger.Debug("state",
			"event", fmt.Sprintf("%T", ev),
			"phase", next.Phase,
			"page", next.Page(),
			"query", next.Query,
			"gen", next.Generation,
		)
	}

	m.refresh(replacedList(prev, next, ev))

	cmds := make([]tea.Cmd, 0, len(effects)+1)
	for _, eff := range effects {
		cmds = append(cmds, m.run(eff))
	}
	cmds = append(cmds, m.checkSentinel())
	return tea.Batch(cmds...)
}

// replacedList reports whether the list was replaced rather than extended,
// in which case the viewport scrolls back to the top.
func replacedList(prev, next controller.State, ev controller.Event) bool {
	if _, ok := ev.(controller.SortChanged); ok {
		return true
	}
	settled := prev.Phase == model.PhaseLoading && next.Phase == model.PhaseReady
	if !settled {
		return false
	}
	return next.Mode == model.ModePaged || next.Searching() || next.Page() == 1
}

func (m *Model) run(eff controller.Effect) tea.Cmd {
	ctx, cat, logger := m.ctx, m.catalog, m.logger
	switch e := eff.(type) {
	case controller.FetchPage:
		return func() tea.Msg {
			res, err := cat.ListProducts(ctx, e.Limit, e.Offset)
			if err != nil {
				logger.Warn("list products failed", "gen", e.Gen, "kind", catalog.ErrorKind(err), "error", err)
				return controller.FetchFailed{Gen: e.Gen, Err: err}
			}
			return controller.PageLoaded{Gen: e.Gen, Result: res}
		}
	case controller.FetchSearch:
		return func() tea.Msg {
			res, err := cat.SearchProducts(ctx, e.Query)
			if err != nil {
				logger.Warn("search products failed", "gen", e.Gen, "kind", catalog.ErrorKind(err), "error", err)
				return controller.FetchFailed{Gen: e.Gen, Err: err}
			}
			return controller.SearchLoaded{Gen: e.Gen, Result: res}
		}
	}
	return nil
}

// checkSentinel fires the scroll sentinel when the end of the list is in
// view. A list shorter than the viewport counts as in view.
func (m *Model) checkSentinel() tea.Cmd {
	if m.state.Mode != model.ModeInfinite || !m.viewport.AtBottom() {
		return nil
	}
	if !m.sentinel.Visible() {
		return nil
	}
	return m.dispatch(controller.SentinelVisible{})
}

func (m *Model) refresh(top bool) {
	m.viewport.SetContent(view.Body(m.state, m.styles, m.viewport.Width))
	if top {
		m.viewport.GotoTop()
	}
}

func (m *Model) chrome() int {
	if m.help.ShowAll {
		return chromeHeight + 3
	}
	return chromeHeight
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.viewport.Width = width
	m.viewport.Height = max(height-m.chrome(), 1)
	m.help.Width = width
	m.refresh(false)
}

func (m *Model) syncKeys() {
	s := m.state
	infiniteMore := s.Mode == model.ModeInfinite && !s.Searching() && s.HasMore
	m.keys.Prev.SetEnabled(s.CanPrev())
	m.keys.Next.SetEnabled(s.CanNext() || infiniteMore || (s.Mode == model.ModeInfinite && s.Phase == model.PhaseErrored))
	m.keys.Retry.SetEnabled(s.Phase == model.PhaseErrored)
}

// View implements tea.Model.
func (m *Model) View() string {
	title := m.styles.Header.Render("Product List")
	sortLabel := m.styles.Muted.Render("Sort by: " + m.state.Sort.Label())
	header := lipgloss.JoinHorizontal(lipgloss.Top, title, "   ", m.input.View(), "   ", sortLabel)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.viewport.View(),
		m.footer(),
		m.help.View(m.keys),
	)
}

func (m *Model) footer() string {
	s := m.state
	switch {
	case s.Phase != model.PhaseReady:
		return ""
	case s.Mode == model.ModePaged:
		return view.Pager(s, m.styles)
	case s.Searching():
		return m.styles.Muted.Render(fmt.Sprintf("%d results for %q", s.Total, s.Query))
	default:
		return m.styles.Muted.Render(fmt.Sprintf("%d of %d products loaded", len(s.Products()), s.Total))
	}
}
