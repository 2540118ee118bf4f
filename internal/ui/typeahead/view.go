package typeahead

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/hollowaydev/spyglass/internal/search"
)

var (
	groupHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Padding(0, 2)

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("62")).
				Padding(0, 2)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	placeholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)
)

type lineKind int

const (
	lineHeader lineKind = iota
	lineRow
	linePlaceholder
	lineFooter
)

// line is one rendered dropdown line. The slice index doubles as the line's
// vertical offset, which is what mouse hit testing relies on.
type line struct {
	kind  lineKind
	group string
	item  search.Item
}

// buildLines flattens a response into dropdown lines: a header per non-empty
// group in fixed order, at most limit rows each, then either a footer hint or
// a placeholder when every group came back empty.
func buildLines(resp search.Response, limit int) []line {
	var lines []line
	for _, group := range search.GroupOrder {
		items := resp.Group(group)
		if len(items) == 0 {
			continue
		}
		if limit > 0 && len(items) > limit {
			items = items[:limit]
		}
		lines = append(lines, line{kind: lineHeader, group: group})
		for _, it := range items {
			lines = append(lines, line{kind: lineRow, group: group, item: it})
		}
	}
	if len(lines) == 0 {
		return []line{{kind: linePlaceholder}}
	}
	return append(lines, line{kind: lineFooter})
}

// View renders the input line plus, when visible, the dropdown below it.
// Rendering is pure over (input, lines, cursor, width): calling it twice
// yields the same output.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	if !m.visible {
		return b.String()
	}

	rowIdx := 0
	for _, ln := range m.lines {
		b.WriteString("\n")
		var rendered string
		switch ln.kind {
		case lineHeader:
			rendered = groupHeaderStyle.Render(escapeField(search.GroupLabel(ln.group)))
		case lineRow:
			style := rowStyle
			if rowIdx == m.cursor {
				style = selectedRowStyle
			}
			rendered = style.Render(m.renderRow(ln.item))
			rowIdx++
		case linePlaceholder:
			rendered = placeholderStyle.Render("No matches")
		case lineFooter:
			rendered = footerStyle.Render("enter: full results")
		}
		// Every dropdown line stays within the widget, headers and footer
		// included, so a narrow terminal never wraps a line and breaks the
		// mouse hit-testing offsets.
		b.WriteString(truncate(rendered, m.width))
	}
	return b.String()
}

func (m Model) renderRow(it search.Item) string {
	title := escapeField(it.Title)
	if it.Subtitle == "" {
		return truncate(title, m.rowWidth())
	}
	text := title + subtitleStyle.Render(" — "+escapeField(it.Subtitle))
	return truncate(text, m.rowWidth())
}

func (m Model) rowWidth() int {
	if m.width <= 0 {
		return 76
	}
	return m.width - 4
}

// truncate cuts s to max visible cells. Rows carry styled subtitles, so the
// cut has to be escape-aware: slicing runes would land mid-sequence and leak
// a dangling style onto the lines below.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	return ansi.Truncate(s, max, "…")
}
