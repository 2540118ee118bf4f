// Package ui contains the root Bubble Tea model for the spyglass terminal
// application: the search widget, the recent/pinned panels shown while the
// input is idle, and the status bar.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hollowaydev/spyglass/internal/config"
	"github.com/hollowaydev/spyglass/internal/history"
	"github.com/hollowaydev/spyglass/internal/logging"
	"github.com/hollowaydev/spyglass/internal/ui/typeahead"
)

const statusLinger = 3 * time.Second

type keyMap struct {
	Quit    key.Binding
	Pin     key.Binding
	Refresh key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Pin: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "pin/unpin query"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "refresh history"),
	),
}

// Model is the root application model.
type Model struct {
	width  int
	height int

	enabled bool
	search  typeahead.Model

	hist        *history.Store // nil when history is unavailable
	recent      []history.RecentQuery
	pinned      []history.PinnedSearch
	recentLimit int
	showRecent  bool

	status   string
	statusID int
}

// New builds the root model. A nil searcher puts the app in disabled mode:
// the input stays inert and a hint explains what is missing. A nil history
// store just drops the recent and pinned panels.
func New(cfg *config.Config, searcher typeahead.Searcher, opener typeahead.Opener, hist *history.Store) Model {
	ta := typeahead.New(typeahead.Config{
		SearchFn:    searcher,
		OpenFn:      opener,
		ResultsURL:  cfg.Server.ResultsURL,
		MinQueryLen: cfg.Search.MinQueryLen,
		Debounce:    cfg.Debounce(),
		GroupLimit:  cfg.Search.GroupLimit,
	})
	ta.SetPosition(0, 2)

	return Model{
		enabled:     searcher != nil,
		search:      ta,
		hist:        hist,
		recentLimit: cfg.UI.RecentLimit,
		showRecent:  cfg.UI.ShowRecent,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.search.Init(), m.loadRecent(), m.loadPinned())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Pin):
			return m.pinCurrent()

		case key.Matches(msg, keys.Refresh):
			return m, tea.Batch(m.loadRecent(), m.loadPinned())
		}
		if !m.enabled {
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if !m.enabled {
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd

	case typeahead.SubmittedMsg:
		return m.onSubmitted(msg)

	case recentLoadedMsg:
		if msg.Err != nil {
			logging.Warn("failed to load recent queries", "error", msg.Err)
			return m, nil
		}
		m.recent = msg.Entries
		return m, nil

	case pinnedLoadedMsg:
		if msg.Err != nil {
			logging.Warn("failed to load pinned searches", "error", msg.Err)
			return m, nil
		}
		m.pinned = msg.Entries
		return m, nil

	case queryPinnedMsg:
		if msg.Err != nil {
			logging.Warn("failed to pin query", "query", msg.Query, "error", msg.Err)
			return m, nil
		}
		next, cmd := m.setStatus(fmt.Sprintf("pinned %q", msg.Query))
		return next, tea.Batch(cmd, next.loadPinned())

	case queryUnpinnedMsg:
		if msg.Err != nil {
			logging.Warn("failed to unpin query", "query", msg.Query, "error", msg.Err)
			return m, nil
		}
		next, cmd := m.setStatus(fmt.Sprintf("unpinned %q", msg.Query))
		return next, tea.Batch(cmd, next.loadPinned())

	case statusExpiredMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) onSubmitted(msg typeahead.SubmittedMsg) (Model, tea.Cmd) {
	next, statusCmd := m.setStatus(fmt.Sprintf("opened results for %q", msg.Query))
	if m.hist == nil {
		return next, statusCmd
	}
	hist := m.hist
	record := func() tea.Msg {
		if err := hist.RecordQuery(msg.Query); err != nil {
			logging.Warn("failed to record query", "error", err)
		}
		entries, err := hist.Recent(next.recentLimit)
		return recentLoadedMsg{Entries: entries, Err: err}
	}
	return next, tea.Batch(statusCmd, record)
}

// pinCurrent toggles the pinned state of the query in the input: pinning it
// when new, removing the pin when it is already saved.
func (m Model) pinCurrent() (Model, tea.Cmd) {
	query := strings.TrimSpace(m.search.Value())
	if query == "" || m.hist == nil {
		return m, nil
	}
	hist := m.hist
	for _, p := range m.pinned {
		if p.Query == query {
			id := p.ID
			return m, func() tea.Msg {
				return queryUnpinnedMsg{Query: query, Err: hist.DeletePinned(id)}
			}
		}
	}
	return m, func() tea.Msg {
		return queryPinnedMsg{Query: query, Err: hist.SavePinned(query, query)}
	}
}

func (m Model) loadRecent() tea.Cmd {
	if m.hist == nil {
		return nil
	}
	hist, limit := m.hist, m.recentLimit
	return func() tea.Msg {
		entries, err := hist.Recent(limit)
		return recentLoadedMsg{Entries: entries, Err: err}
	}
}

func (m Model) loadPinned() tea.Cmd {
	if m.hist == nil {
		return nil
	}
	hist := m.hist
	return func() tea.Msg {
		entries, err := hist.Pinned()
		return pinnedLoadedMsg{Entries: entries, Err: err}
	}
}

func (m Model) setStatus(s string) (Model, tea.Cmd) {
	m.status = s
	m.statusID++
	id := m.statusID
	return m, tea.Tick(statusLinger, func(time.Time) tea.Msg {
		return statusExpiredMsg{id: id}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(Header.Render("spyglass"))
	b.WriteString(HeaderNote.Render("inventory search"))
	b.WriteString("\n\n")

	b.WriteString(m.search.View())
	if !m.enabled {
		b.WriteString("\n")
		b.WriteString(DisabledHint.Render(
			"search is not configured: set SPYGLASS_SEARCH_URL and SPYGLASS_RESULTS_URL"))
	}

	// History panels only while the user is not mid-search.
	if m.search.Value() == "" && !m.search.Visible() {
		b.WriteString(m.viewPanels())
	}

	content := b.String()
	if m.height > 0 {
		used := lipgloss.Height(content)
		for i := used; i < m.height-1; i++ {
			content += "\n"
		}
		content += "\n" + m.viewStatusBar()
	}
	return content
}

func (m Model) viewPanels() string {
	var b strings.Builder
	if m.showRecent && len(m.recent) > 0 {
		b.WriteString("\n")
		b.WriteString(PanelHeader.Render("Recent"))
		for _, rq := range m.recent {
			note := ""
			if rq.Count > 1 {
				note = PanelItemNote.Render(fmt.Sprintf(" ×%d", rq.Count))
			}
			b.WriteString("\n")
			b.WriteString(PanelItem.Render(rq.Query) + note)
		}
	}
	if len(m.pinned) > 0 {
		b.WriteString("\n")
		b.WriteString(PanelHeader.Render("Pinned"))
		for _, p := range m.pinned {
			b.WriteString("\n")
			b.WriteString(PanelItem.Render(p.Name))
		}
	}
	return b.String()
}

func (m Model) viewStatusBar() string {
	if m.status != "" {
		return StatusBar.Width(m.width).Render(m.status)
	}
	hints := []string{
		StatusBarKey.Render("enter") + StatusBarText.Render(" full results"),
		StatusBarKey.Render("esc") + StatusBarText.Render(" dismiss"),
		StatusBarKey.Render("ctrl+s") + StatusBarText.Render(" pin/unpin"),
		StatusBarKey.Render("ctrl+c") + StatusBarText.Render(" quit"),
	}
	return StatusBar.Width(m.width).Render(strings.Join(hints, "  "))
}
