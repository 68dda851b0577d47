package draft

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"tableflip.dev/lumina/pkg/day"
	"tableflip.dev/lumina/pkg/logging"
	"tableflip.dev/lumina/pkg/task"
)

// Creator stores a new task.
type Creator interface {
	Create(t task.Task) error
}

// Adapter sends free text to a Parser and stores the resulting task. It
// admits one parse at a time.
type Adapter struct {
	parser Parser
	store  Creator
	log    *logging.Logger
	newID  func() string
	busy   atomic.Bool
}

// NewAdapter wires a parser to a store. A nil parser yields an adapter that
// answers ErrUnconfigured.
func NewAdapter(p Parser, store Creator, log *logging.Logger) *Adapter {
	if log == nil {
		log = logging.Nop()
	}
	return &Adapter{
		parser: p,
		store:  store,
		log:    log.WithComponent("draft"),
		newID:  uuid.NewString,
	}
}

// Configured reports whether a parser is attached.
func (a *Adapter) Configured() bool {
	return a.parser != nil
}

// CreateFromText parses text relative to ref and stores the task it
// describes. On any failure nothing is stored and the error matches one of
// the package's sentinel errors, or is the store's write error.
func (a *Adapter) CreateFromText(ctx context.Context, text string, ref day.Date) (task.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return task.Task{}, ErrEmptyInput
	}
	if a.parser == nil {
		a.log.Warnw("natural language parsing is not configured, set gemini.api_key")
		return task.Task{}, ErrUnconfigured
	}
	if !a.busy.CompareAndSwap(false, true) {
		return task.Task{}, ErrBusy
	}
	defer a.busy.Store(false)

	log := a.log.WithFields("reference", ref)
	d, err := a.parser.Parse(ctx, text, ref)
	if err != nil {
		err = classify(err)
		log.WithError(err).Warnw("parsing task text failed")
		return task.Task{}, err
	}
	if d == nil {
		log.Warnw("parser returned no draft")
		return task.Task{}, fmt.Errorf("%w: no draft", ErrMalformed)
	}

	t, err := d.Task(a.newID())
	if err != nil {
		log.WithError(err).Warnw("parser returned an unusable draft")
		return task.Task{}, err
	}
	if err := a.store.Create(t); err != nil {
		log.WithError(err).Errorw("storing parsed task failed", "id", t.ID)
		return task.Task{}, err
	}
	log.Infow("created task from text", "id", t.ID, "date", t.Date)
	return t, nil
}

// classify keeps a parser's sentinel errors and treats anything else as a
// failure to reach it.
func classify(err error) error {
	for _, sentinel := range []error{ErrUnconfigured, ErrUnreachable, ErrMalformed, ErrIncomplete, ErrEmptyInput} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}
