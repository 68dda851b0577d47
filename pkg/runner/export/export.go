// Package export provides the runner logic for moving tasks through
// iCalendar files.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/lumina/pkg/ics"
	"tableflip.dev/lumina/pkg/logging"
	"tableflip.dev/lumina/pkg/store"
)

// Export writes every task as an iCalendar file, to stdout when File is "".
type Export struct {
	File  string
	Tasks *store.Tasks
	Out   io.Writer
}

func (n *Export) Do(ctx context.Context) error {
	if n.Tasks == nil {
		return errors.New("can not export, no store")
	}
	out := n.Out
	if out == nil {
		out = os.Stdout
	}
	if n.File != "" {
		f, err := os.Create(n.File)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return ics.Export(out, n.Tasks.All(), time.Now())
}

// Import adds the events of an iCalendar file as tasks. Events whose id is
// already present are left alone.
type Import struct {
	File  string
	Tasks *store.Tasks
	Log   *logging.Logger
	Out   io.Writer
}

func (n *Import) Do(ctx context.Context) error {
	if n.Tasks == nil {
		return errors.New("can not import, no store")
	}
	log := n.Log
	if log == nil {
		log = logging.Nop()
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	f, err := os.Open(n.File)
	if err != nil {
		return err
	}
	defer f.Close()

	tasks, skipped, err := ics.Import(f)
	if err != nil {
		return err
	}
	for _, s := range skipped {
		log.WithError(s.Err).Warnw("skipping event", "uid", s.UID)
	}

	added := 0
	for _, t := range tasks {
		if _, exists := n.Tasks.Get(t.ID); exists {
			continue
		}
		if err := n.Tasks.Create(t); err != nil {
			return err
		}
		added++
	}
	_, _ = fmt.Fprintf(out, "imported %d of %d events\n", added, len(tasks)+len(skipped))
	return nil
}
