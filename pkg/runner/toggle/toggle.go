// Package toggle provides the runner logic for completing and reopening
// tasks.
package toggle

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/lumina/pkg/printers"
	"tableflip.dev/lumina/pkg/store"
	"tableflip.dev/lumina/pkg/task"
)

// Toggle flips the completion of a task.
type Toggle struct {
	ID    string
	Tasks *store.Tasks
	Out   io.Writer
}

// Do toggles the task and prints its day. An id that matches no task
// changes nothing and only prints a faint note.
func (n *Toggle) Do(ctx context.Context) error {
	if n.Tasks == nil {
		return errors.New("can not toggle, no store")
	}
	found, err := n.Tasks.Toggle(n.ID)
	if err != nil {
		return err
	}
	if !found {
		out := n.Out
		if out == nil {
			out = color.Output
		}
		_, _ = color.New(color.Faint).Fprintf(out, "no task %s\n", n.ID)
		return nil
	}

	t, _ := n.Tasks.Get(n.ID)
	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	pp.NewLine()
	pp.Title(t.Date.Time().Format("Monday, January 2, 2006"))
	pp.Agenda(task.Agenda(n.Tasks.On(t.Date))...)
	return nil
}
