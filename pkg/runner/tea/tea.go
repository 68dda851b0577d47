// Package teaui is the interactive terminal calendar.
package teaui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/lumina/pkg/draft"
	"tableflip.dev/lumina/pkg/gate"
	"tableflip.dev/lumina/pkg/logging"
	"tableflip.dev/lumina/pkg/store"
)

// Watcher reports changes other processes make to the store.
type Watcher interface {
	Watch(ctx context.Context) (<-chan store.Event, error)
}

// UI runs the terminal calendar until the user quits.
type UI struct {
	Tasks   *store.Tasks
	Adapter *draft.Adapter
	Gate    *gate.Gate
	Watcher Watcher
	Log     *logging.Logger
	Clock   func() time.Time
}

func (u *UI) Do(ctx context.Context) error {
	if u.Tasks == nil {
		return errors.New("can not start ui, no store")
	}
	log := u.Log
	if log == nil {
		log = logging.Nop()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := Options{
		Tasks:   u.Tasks,
		Adapter: u.Adapter,
		Gate:    u.Gate,
		Log:     log,
		Clock:   u.Clock,
	}
	if u.Watcher != nil {
		events, err := u.Watcher.Watch(ctx)
		if err != nil {
			log.WithError(err).Warn("store watch unavailable; press r to reload")
		} else {
			opts.Events = events
		}
	}

	p := tea.NewProgram(New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
