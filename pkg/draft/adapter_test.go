package draft

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tableflip.dev/lumina/pkg/day"
	"tableflip.dev/lumina/pkg/task"
)

type parserFunc func(ctx context.Context, text string, ref day.Date) (*Draft, error)

func (f parserFunc) Parse(ctx context.Context, text string, ref day.Date) (*Draft, error) {
	return f(ctx, text, ref)
}

type memoryCreator struct {
	mu    sync.Mutex
	tasks []task.Task
	err   error
}

func (m *memoryCreator) Create(t task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.tasks = append(m.tasks, t)
	return nil
}

func (m *memoryCreator) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func TestCreateFromText(t *testing.T) {
	store := &memoryCreator{}
	var gotRef day.Date
	var gotText string
	p := parserFunc(func(_ context.Context, text string, ref day.Date) (*Draft, error) {
		gotText, gotRef = text, ref
		return &Draft{Title: "Gym", Date: "2024-01-16", StartTime: "7:00", Priority: task.PriorityHigh}, nil
	})
	a := NewAdapter(p, store, nil)
	a.newID = func() string { return "fixed" }

	got, err := a.CreateFromText(context.Background(), "  gym tomorrow 7am, important ", "2024-01-15")
	if err != nil {
		t.Fatalf("CreateFromText: %v", err)
	}
	want := task.Task{ID: "fixed", Title: "Gym", Date: "2024-01-16", StartTime: "07:00", Priority: task.PriorityHigh}
	if got != want {
		t.Fatalf("task = %+v, want %+v", got, want)
	}
	if gotText != "gym tomorrow 7am, important" || gotRef != "2024-01-15" {
		t.Fatalf("parser saw %q %q", gotText, gotRef)
	}
	if store.count() != 1 || store.tasks[0] != want {
		t.Fatalf("stored %+v", store.tasks)
	}
}

func TestCreateFromTextUsesUUID(t *testing.T) {
	store := &memoryCreator{}
	p := parserFunc(func(context.Context, string, day.Date) (*Draft, error) {
		return &Draft{Title: "a", Date: "2024-01-16"}, nil
	})
	a := NewAdapter(p, store, nil)
	first, _ := a.CreateFromText(context.Background(), "a", "2024-01-15")
	second, _ := a.CreateFromText(context.Background(), "a", "2024-01-15")
	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("ids %q %q", first.ID, second.ID)
	}
	if first.Completed {
		t.Fatal("new task completed")
	}
}

func TestCreateFromTextFailuresDoNotMutate(t *testing.T) {
	tests := []struct {
		name   string
		parser Parser
		text   string
		want   error
	}{{
		name: "unconfigured",
		text: "lunch",
		want: ErrUnconfigured,
	}, {
		name:   "empty input",
		parser: parserFunc(func(context.Context, string, day.Date) (*Draft, error) { panic("called") }),
		text:   " \t ",
		want:   ErrEmptyInput,
	}, {
		name: "transport",
		parser: parserFunc(func(context.Context, string, day.Date) (*Draft, error) {
			return nil, errors.New("connection refused")
		}),
		text: "lunch",
		want: ErrUnreachable,
	}, {
		name: "cancelled",
		parser: parserFunc(func(ctx context.Context, _ string, _ day.Date) (*Draft, error) {
			return nil, context.Canceled
		}),
		text: "lunch",
		want: ErrUnreachable,
	}, {
		name: "malformed",
		parser: parserFunc(func(context.Context, string, day.Date) (*Draft, error) {
			return Decode([]byte("not json"))
		}),
		text: "lunch",
		want: ErrMalformed,
	}, {
		name: "nil draft",
		parser: parserFunc(func(context.Context, string, day.Date) (*Draft, error) {
			return nil, nil
		}),
		text: "lunch",
		want: ErrMalformed,
	}, {
		name: "incomplete",
		parser: parserFunc(func(context.Context, string, day.Date) (*Draft, error) {
			return &Draft{Title: "lunch"}, nil
		}),
		text: "lunch",
		want: ErrIncomplete,
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memoryCreator{}
			a := NewAdapter(tt.parser, store, nil)
			_, err := a.CreateFromText(context.Background(), tt.text, "2024-01-15")
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if store.count() != 0 {
				t.Fatalf("store mutated: %+v", store.tasks)
			}
		})
	}
}

func TestCreateFromTextStoreFailure(t *testing.T) {
	boom := errors.New("disk full")
	store := &memoryCreator{err: boom}
	p := parserFunc(func(context.Context, string, day.Date) (*Draft, error) {
		return &Draft{Title: "a", Date: "2024-01-16"}, nil
	})
	if _, err := NewAdapter(p, store, nil).CreateFromText(context.Background(), "a", "2024-01-15"); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestCreateFromTextBusy(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	p := parserFunc(func(context.Context, string, day.Date) (*Draft, error) {
		close(started)
		<-release
		return &Draft{Title: "a", Date: "2024-01-16"}, nil
	})
	store := &memoryCreator{}
	a := NewAdapter(p, store, nil)

	done := make(chan error, 1)
	go func() {
		_, err := a.CreateFromText(context.Background(), "first", "2024-01-15")
		done <- err
	}()
	<-started

	if _, err := a.CreateFromText(context.Background(), "second", "2024-01-15"); !errors.Is(err, ErrBusy) {
		t.Fatalf("err = %v, want ErrBusy", err)
	}

	close(release)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("first parse: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("first parse never finished")
	}
	if store.count() != 1 {
		t.Fatalf("stored %d tasks, want 1", store.count())
	}
	if !a.Configured() {
		t.Fatal("adapter with parser reports unconfigured")
	}
}
