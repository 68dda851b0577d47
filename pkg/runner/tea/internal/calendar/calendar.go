// Package calendar renders month and week pages for the terminal calendar.
package calendar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/lumina/pkg/glyph"
	"tableflip.dev/lumina/pkg/theme"
	"tableflip.dev/lumina/pkg/view"
)

// Weekdays heads the seven columns, Sunday first.
var Weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Options controls calendar layout.
type Options struct {
	Palette theme.Palette
	// CellWidth is the printable width of one day column.
	CellWidth int
	// TaskLines is how many task titles a day shows before "+N more".
	TaskLines int
}

// DefaultOptions fits a month on an 80 column terminal.
func DefaultOptions(p theme.Palette) Options {
	return Options{Palette: p, CellWidth: 10, TaskLines: 2}
}

// Render lays cells out seven to a row under a weekday header. Null cells
// render blank.
func Render(cells []view.Cell, opts Options) string {
	if opts.CellWidth < 3 {
		opts.CellWidth = 3
	}
	if opts.TaskLines < 0 {
		opts.TaskLines = 0
	}

	header := make([]string, len(Weekdays))
	for i, wd := range Weekdays {
		header[i] = box(opts, 1).Inherit(opts.Palette.Header).Render(truncate.String(wd, uint(opts.CellWidth)))
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	for start := 0; start < len(cells); start += 7 {
		end := start + 7
		if end > len(cells) {
			end = len(cells)
		}
		row := make([]string, 0, 7)
		for _, c := range cells[start:end] {
			row = append(row, renderCell(c, opts))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func box(opts Options, height int) lipgloss.Style {
	return lipgloss.NewStyle().Width(opts.CellWidth + 1).Height(height).PaddingRight(1)
}

func renderCell(c view.Cell, opts Options) string {
	height := opts.TaskLines + 1
	if c.Empty() {
		return box(opts, height).Render("")
	}
	p := opts.Palette

	number := p.Day
	if len(c.Tasks) > 0 {
		number = p.Load(c.Load.Level).Bold(true)
	}
	if c.Today {
		number = number.Inherit(p.Today)
	}
	if c.Selected {
		number = number.Inherit(p.Selected)
	}
	lines := []string{number.Render(fmt.Sprintf("%2d", c.Day))}

	shown := c.Tasks
	more := 0
	if len(shown) > opts.TaskLines {
		keep := opts.TaskLines
		if keep > 0 {
			keep--
		}
		more = len(shown) - keep
		shown = shown[:keep]
	}
	for _, t := range shown {
		title := truncate.StringWithTail(glyph.BulletFor(t).String()+" "+t.Title, uint(opts.CellWidth), "…")
		style := p.Priority(t.Priority)
		if t.Completed {
			style = p.Done
		}
		lines = append(lines, style.Render(title))
	}
	if more > 0 && opts.TaskLines > 0 {
		lines = append(lines, p.Muted.Render(fmt.Sprintf("+%d more", more)))
	}
	return box(opts, height).Render(strings.Join(lines, "\n"))
}
