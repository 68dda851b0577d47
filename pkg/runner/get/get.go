// Package get provides the runner logic for listing a day's tasks.
package get

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/lumina/pkg/day"
	"tableflip.dev/lumina/pkg/printers"
	"tableflip.dev/lumina/pkg/store"
	"tableflip.dev/lumina/pkg/task"
)

// Get prints the agenda of one day.
type Get struct {
	ShowID bool
	On     day.Date
	Format string
	Tasks  *store.Tasks
	Out    io.Writer
}

// Agenda is the structured form of a day's tasks.
type Agenda struct {
	Date  day.Date    `json:"date"`
	Load  task.Load   `json:"load"`
	Tasks []task.Task `json:"tasks"`
}

const layoutUS = "Monday, January 2, 2006"

func (n *Get) Do(ctx context.Context) error {
	if n.Tasks == nil {
		return errors.New("can not get, no store")
	}
	on := n.On
	if on == "" {
		on = day.Today()
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	tasks := task.Agenda(n.Tasks.On(on))
	switch strings.ToLower(n.Format) {
	case "json":
		return printers.JSON(out, Agenda{Date: on, Load: task.Busyness(tasks), Tasks: tasks})
	case "yaml":
		return printers.YAML(out, Agenda{Date: on, Load: task.Busyness(tasks), Tasks: tasks})
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out}
	pp.NewLine()
	pp.TitleWithCount(on.Time().Format(layoutUS), len(tasks))
	pp.Agenda(tasks...)
	return nil
}
