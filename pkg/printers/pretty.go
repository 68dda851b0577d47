package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/lumina/pkg/glyph"
	"tableflip.dev/lumina/pkg/task"
)

type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
}

var (
	spacing = strings.Repeat(" ", len("xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " task")
	default:
		_, _ = c.Fprintln(pp.out(), " tasks")
	}
}

// Agenda prints tasks one per line in the order given.
func (pp *PrettyPrint) Agenda(tasks ...task.Task) {
	if len(tasks) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(pp.out(), spacing)
		}
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	for _, t := range tasks {
		if pp.ShowID {
			_, _ = y.Fprint(pp.out(), t.ID)
			pad := len(spacing) - len(t.ID)
			if pad < 1 {
				pad = 1
			}
			_, _ = y.Fprint(pp.out(), strings.Repeat(" ", pad))
		}
		pp.Task(t)
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Task prints a single task line.
func (pp *PrettyPrint) Task(t task.Task) {
	p := color.New()
	if t.Completed {
		p = color.New(color.Faint, color.CrossedOut)
	}
	f := color.New(color.Faint)

	_, _ = fmt.Fprintf(pp.out(), "%s %s ", glyph.SignifierFor(t.Priority), glyph.BulletFor(t))
	_, _ = f.Fprintf(pp.out(), "%-13s ", t.TimeRange())
	_, _ = p.Fprint(pp.out(), t.Title)
	if t.MultiDay() {
		_, _ = f.Fprintf(pp.out(), " (%s → %s)", t.Date, t.EndDate)
	}
	if t.Category != "" {
		_, _ = f.Fprintf(pp.out(), " #%s", t.Category)
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}
