// Package panel renders the selected day's agenda beside the calendar.
package panel

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"

	"tableflip.dev/lumina/pkg/glyph"
	"tableflip.dev/lumina/pkg/task"
	"tableflip.dev/lumina/pkg/theme"
)

// Model holds the agenda of one day and a cursor over it.
type Model struct {
	title   string
	tasks   []task.Task
	cursor  int
	width   int
	focused bool
	palette theme.Palette
}

// New returns an empty panel.
func New(p theme.Palette) Model {
	return Model{palette: p, width: 36}
}

// SetPalette swaps the styles after a theme change.
func (m *Model) SetPalette(p theme.Palette) {
	m.palette = p
}

// SetWidth sets the printable width inside the frame.
func (m *Model) SetWidth(w int) {
	if w < 12 {
		w = 12
	}
	m.width = w
}

// SetFocused marks whether key presses move the cursor.
func (m *Model) SetFocused(f bool) {
	m.focused = f
}

// Focused reports whether the panel has the cursor.
func (m Model) Focused() bool {
	return m.focused
}

// SetContent replaces the agenda, keeping the cursor on the same task id
// when it is still listed.
func (m *Model) SetContent(title string, tasks []task.Task) {
	prev := ""
	if t, ok := m.Current(); ok {
		prev = t.ID
	}
	m.title = title
	m.tasks = tasks
	m.cursor = 0
	for i, t := range tasks {
		if t.ID == prev {
			m.cursor = i
			break
		}
	}
}

// Move shifts the cursor by n, clamped to the list.
func (m *Model) Move(n int) {
	m.cursor += n
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Current returns the task under the cursor.
func (m Model) Current() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return task.Task{}, false
	}
	return m.tasks[m.cursor], true
}

// View returns the framed agenda.
func (m Model) View() string {
	p := m.palette
	content := []string{p.Title.Render(m.title)}
	if len(m.tasks) == 0 {
		content = append(content, p.Muted.Render("Nothing scheduled"))
	}
	for i, t := range m.tasks {
		indicator := "  "
		if m.focused && i == m.cursor {
			indicator = "→ "
		}
		sig := glyph.SignifierFor(t.Priority).String()
		line := fmt.Sprintf("%s%s %s %s", indicator, p.Priority(t.Priority).Render(sig), glyph.BulletFor(t), t.Title)
		line = truncate.StringWithTail(line, uint(m.width), "…")
		style := p.Day
		if t.Completed {
			style = p.Done
		}
		content = append(content, style.Render(line))
		detail := "    " + t.TimeRange()
		if t.Category != "" {
			detail += " #" + t.Category
		}
		content = append(content, p.Muted.Render(truncate.String(detail, uint(m.width))))
	}
	frame := p.Border.Padding(0, 1).Width(m.width + 2)
	return frame.Render(strings.Join(content, "\n"))
}
