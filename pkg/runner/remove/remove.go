// Package remove provides the runner logic for deleting tasks.
package remove

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/lumina/pkg/store"
)

// Remove deletes a task.
type Remove struct {
	ID    string
	Tasks *store.Tasks
	Out   io.Writer
}

// Do deletes the task. An id that matches no task changes nothing and only
// prints a faint note.
func (n *Remove) Do(ctx context.Context) error {
	if n.Tasks == nil {
		return errors.New("can not delete, no store")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	t, ok := n.Tasks.Get(n.ID)
	if !ok {
		_, _ = color.New(color.Faint).Fprintf(out, "no task %s\n", n.ID)
		return nil
	}
	if _, err := n.Tasks.Delete(n.ID); err != nil {
		return err
	}
	_, _ = color.New(color.Faint).Fprintf(out, "deleted %s\n", t)
	return nil
}
