// Package typeahead implements the incremental search widget.
//
// The widget owns a text input and a dropdown of grouped results. Keystrokes
// are coalesced through a debounce window; only the newest query inside the
// window is ever sent. Responses are tagged with a sequence number so a slow
// reply to an old query can never overwrite the view for a newer one.
//
// The widget is a plain Bubble Tea component: construct it with New, feed it
// messages, render View. Nothing in here touches globals, so several
// independent widgets can coexist and tests drive one without a terminal.
package typeahead

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hollowaydev/spyglass/internal/logging"
	"github.com/hollowaydev/spyglass/internal/search"
)

// Searcher runs a query and returns grouped results.
type Searcher func(ctx context.Context, query string) (search.Response, error)

// Opener navigates to a URL (normally the system browser).
type Opener func(url string) error

// Config wires a widget instance. SearchFn and OpenFn are injected so tests
// can observe dispatches and navigations without a network or a browser.
type Config struct {
	SearchFn   Searcher
	OpenFn     Opener
	ResultsURL string // full-results page; query is appended as ?q=

	MinQueryLen int           // queries shorter than this never leave the widget
	Debounce    time.Duration // keystroke coalescing window
	GroupLimit  int           // max rows per result group
}

// SubmittedMsg is emitted when the user submits a query for full results.
// The parent model records it in history.
type SubmittedMsg struct {
	Query string
}

// debounceMsg fires when the coalescing window for a keystroke elapses.
// Stale sequence numbers identify windows superseded by later keystrokes.
type debounceMsg struct {
	seq   int
	query string
}

// resultsMsg carries one search reply back into the update loop.
type resultsMsg struct {
	seq   int
	query string
	resp  search.Response
	err   error
}

// Model is the typeahead widget state.
type Model struct {
	cfg   Config
	input textinput.Model

	// debounceSeq owns the pending timer: bumping it orphans any armed
	// debounceMsg. querySeq owns the in-flight request the same way.
	// Both are only ever touched inside Update, on the event loop.
	debounceSeq int
	querySeq    int
	cancel      context.CancelFunc

	visible   bool
	lines     []line
	rowCount  int
	cursor    int // index into navigable rows, -1 = none
	navigated bool

	width int
	// top-left of the widget on screen, for mouse hit testing
	posX, posY int
}

// New creates a widget instance from explicit configuration.
func New(cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Search catalog, purchases, sales..."
	ti.Prompt = "⌕ "
	ti.CharLimit = 128
	ti.Focus()

	return Model{
		cfg:    cfg,
		input:  ti,
		cursor: -1,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and returns the updated widget and any commands.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case debounceMsg:
		if msg.seq != m.debounceSeq {
			// A later keystroke re-armed the window; this timer lost.
			return m, nil
		}
		return m.dispatch(msg.query)

	case resultsMsg:
		if msg.seq != m.querySeq {
			// Reply to a superseded request. The newest query owns the view.
			return m, nil
		}
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		if msg.err != nil {
			// Fail silent: a broken search must not leave stale results up,
			// and must not bother the user either.
			logging.Debug("search failed", "query", msg.query, "error", msg.err)
			m.hide()
			return m, nil
		}
		m.setResults(msg.resp)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.hide()
		return m, nil

	case "enter":
		return m.handleEnter()

	case "down", "ctrl+n":
		if m.visible && m.rowCount > 0 {
			m.navigated = true
			m.cursor++
			if m.cursor >= m.rowCount {
				m.cursor = 0
			}
			return m, nil
		}

	case "up", "ctrl+p":
		if m.visible && m.rowCount > 0 {
			m.navigated = true
			m.cursor--
			if m.cursor < 0 {
				m.cursor = m.rowCount - 1
			}
			return m, nil
		}
	}

	// Everything else edits the input. Only a change to the text counts as
	// an input event; cursor movement inside the field does not re-query.
	oldValue := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == oldValue {
		return m, cmd
	}

	next, changeCmd := m.onInputChanged()
	return next, tea.Batch(cmd, changeCmd)
}

// onInputChanged applies the minimum-length policy and arms the debounce
// window. Any previously armed window is invalidated first, so a short query
// always cancels a pending longer-query fetch.
func (m Model) onInputChanged() (Model, tea.Cmd) {
	m.debounceSeq++

	query := strings.TrimSpace(m.input.Value())
	if len([]rune(query)) < m.cfg.MinQueryLen {
		// Too short: drop any scheduled or in-flight work and go dark.
		m.querySeq++
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		m.hide()
		return m, nil
	}

	seq := m.debounceSeq
	return m, tea.Tick(m.cfg.Debounce, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq, query: query}
	})
}

// dispatch issues the search for a query whose debounce window elapsed.
// The previous in-flight request, if any, is cancelled: only the response
// matching the most recently issued query may update the view.
func (m Model) dispatch(query string) (Model, tea.Cmd) {
	if m.cfg.SearchFn == nil {
		return m, nil
	}

	m.querySeq++
	seq := m.querySeq

	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	fn := m.cfg.SearchFn
	return m, func() tea.Msg {
		resp, err := fn(ctx, query)
		return resultsMsg{seq: seq, query: query, resp: resp, err: err}
	}
}

// handleEnter submits the query. With an arrow-key selection active it opens
// the selected row instead. Enter never changes dropdown visibility.
func (m Model) handleEnter() (Model, tea.Cmd) {
	if m.visible && m.navigated && m.cursor >= 0 {
		if r, ok := m.rowAt(m.cursor); ok {
			m.open(escapeField(r.item.URL))
			m.hide()
			return m, nil
		}
	}

	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		return m, nil
	}

	m.open(m.cfg.ResultsURL + "?q=" + url.QueryEscape(query))
	return m, func() tea.Msg { return SubmittedMsg{Query: query} }
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if !m.visible {
		return m, nil
	}

	// Dropdown lines start one below the input line.
	lineIdx := msg.Y - m.posY - 1
	inside := msg.X >= m.posX && msg.X < m.posX+m.width &&
		msg.Y >= m.posY && lineIdx < len(m.lines)

	if !inside {
		// Click landed outside the widget: dismiss.
		m.hide()
		return m, nil
	}
	if lineIdx < 0 {
		// The input line itself.
		return m, nil
	}

	if ln := m.lines[lineIdx]; ln.kind == lineRow {
		m.open(escapeField(ln.item.URL))
		m.hide()
	}
	return m, nil
}

func (m *Model) open(target string) {
	if m.cfg.OpenFn == nil {
		return
	}
	if err := m.cfg.OpenFn(target); err != nil {
		logging.Warn("failed to open browser", "url", target, "error", err)
	}
}

// setResults replaces the dropdown contents and shows it. An all-empty
// response still shows the dropdown, with a placeholder instead of sections.
func (m *Model) setResults(resp search.Response) {
	m.lines = buildLines(resp, m.cfg.GroupLimit)
	m.rowCount = 0
	for _, ln := range m.lines {
		if ln.kind == lineRow {
			m.rowCount++
		}
	}
	m.cursor = -1
	m.navigated = false
	m.visible = true
}

func (m *Model) hide() {
	m.visible = false
	m.lines = nil
	m.rowCount = 0
	m.cursor = -1
	m.navigated = false
}

// Hide clears the dropdown unconditionally.
func (m *Model) Hide() {
	m.hide()
}

// rowAt returns the idx-th navigable row.
func (m Model) rowAt(idx int) (line, bool) {
	n := 0
	for _, ln := range m.lines {
		if ln.kind != lineRow {
			continue
		}
		if n == idx {
			return ln, true
		}
		n++
	}
	return line{}, false
}

// Visible reports whether the dropdown is showing.
func (m Model) Visible() bool { return m.visible }

// Value returns the raw input text.
func (m Model) Value() string { return m.input.Value() }

// SetValue replaces the input text without triggering a query.
func (m *Model) SetValue(v string) {
	m.input.SetValue(v)
	m.input.CursorEnd()
}

// SetWidth sets the widget width.
func (m *Model) SetWidth(w int) {
	m.width = w
	m.input.Width = w - 4
}

// SetPosition records the widget's top-left screen cell for mouse handling.
func (m *Model) SetPosition(x, y int) {
	m.posX = x
	m.posY = y
}

// Height returns the number of terminal lines the widget currently occupies.
func (m Model) Height() int {
	return 1 + len(m.lines)
}
