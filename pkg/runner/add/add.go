// Package add provides the runner logic for creating tasks.
package add

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"tableflip.dev/lumina/pkg/day"
	"tableflip.dev/lumina/pkg/draft"
	"tableflip.dev/lumina/pkg/printers"
	"tableflip.dev/lumina/pkg/store"
	"tableflip.dev/lumina/pkg/task"
)

// Add creates a task from form fields.
type Add struct {
	Form  *task.Form
	Tasks *store.Tasks
	Out   io.Writer
}

// Do validates the form, stores the task and prints the day it landed on.
func (n *Add) Do(ctx context.Context) error {
	if n.Tasks == nil {
		return errors.New("can not add, no store")
	}
	if n.Form == nil {
		return errors.New("can not add, no task")
	}
	t, err := n.Form.Build(uuid.NewString())
	if err != nil {
		return err
	}
	if err := n.Tasks.Create(t); err != nil {
		return err
	}
	printDay(n.Out, n.Tasks, t)
	return nil
}

// Text creates a task by parsing free text.
type Text struct {
	Text      string
	Reference day.Date
	Adapter   *draft.Adapter
	Tasks     *store.Tasks
	Out       io.Writer
}

// Do parses and stores the task and prints the day it landed on.
func (n *Text) Do(ctx context.Context) error {
	if n.Adapter == nil || n.Tasks == nil {
		return errors.New("can not add, no store")
	}
	ref := n.Reference
	if ref == "" {
		ref = day.Today()
	}
	t, err := n.Adapter.CreateFromText(ctx, n.Text, ref)
	if err != nil {
		return err
	}
	printDay(n.Out, n.Tasks, t)
	return nil
}

func printDay(out io.Writer, tasks *store.Tasks, added task.Task) {
	pp := printers.PrettyPrint{ShowID: true, Out: out}
	pp.NewLine()
	pp.TitleWithCount(added.Date.Time().Format("Monday, January 2, 2006"), len(tasks.On(added.Date)))
	pp.Agenda(task.Agenda(tasks.On(added.Date))...)
}
