package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/lumina/pkg/task"
	"tableflip.dev/lumina/pkg/view"
)

const width = len("Su Mo Tu We Th Fr Sa")

var loadColors = map[task.Level]*color.Color{
	task.LevelNone:     color.New(color.Faint, color.FgWhite),
	task.LevelLight:    color.New(color.Bold, color.FgHiBlue),
	task.LevelModerate: color.New(color.Bold, color.FgHiGreen),
	task.LevelBusy:     color.New(color.Bold, color.FgHiYellow),
	task.LevelHeavy:    color.New(color.Bold, color.FgHiRed),
}

// Month prints a compact month page. Days are colored by how busy they are,
// today is underlined.
func (pp *PrettyPrint) Month(title string, cells []view.Cell) {
	tf := color.New(color.FgWhite, color.Italic)

	mid := (width - len(title)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), title)
	_, _ = color.New(color.Faint).Fprintln(pp.out(), "Su Mo Tu We Th Fr Sa")

	for i, c := range cells {
		if c.Empty() {
			_, _ = fmt.Fprint(pp.out(), "   ")
		} else {
			printer := loadColors[c.Load.Level]
			if c.Today {
				printer = color.New(color.Underline, color.Bold)
			}
			_, _ = printer.Fprintf(pp.out(), "%2d", c.Day)
			_, _ = fmt.Fprint(pp.out(), " ")
		}
		if i%7 == 6 {
			_, _ = fmt.Fprint(pp.out(), "\n")
		}
	}
	_, _ = fmt.Fprint(pp.out(), "\n\n")
}

// Long prints one line per visible day followed by that day's tasks.
func (pp *PrettyPrint) Long(title string, cells []view.Cell) {
	pp.Title(title)

	p := color.New()
	s := color.New(color.Underline)
	b := color.New(color.Bold)
	f := color.New(color.Faint)

	for _, c := range cells {
		if c.Empty() {
			continue
		}
		printer := p
		if c.Date.Time().Weekday() == 0 {
			printer = s
		}
		if c.Today {
			printer = b
		}
		_, _ = printer.Fprintf(pp.out(), "%2d %s", c.Day, c.Date.Time().Weekday().String()[0:2])
		if c.Load.Level != task.LevelNone {
			_, _ = loadColors[c.Load.Level].Fprintf(pp.out(), "  %s", c.Load.Level)
		}
		_, _ = fmt.Fprintln(pp.out(), "")
		for _, t := range task.Agenda(c.Tasks) {
			_, _ = f.Fprint(pp.out(), "      ")
			pp.Task(t)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Legend prints what the busyness colors mean.
func (pp *PrettyPrint) Legend() {
	f := color.New(color.Faint)
	_, _ = f.Fprint(pp.out(), "load:")
	for _, l := range task.Levels()[1:] {
		_, _ = fmt.Fprint(pp.out(), " ")
		_, _ = loadColors[l].Fprint(pp.out(), l.String())
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}
