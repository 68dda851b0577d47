package mcp

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"tableflip.dev/lumina/pkg/day"
	"tableflip.dev/lumina/pkg/draft"
	"tableflip.dev/lumina/pkg/grid"
	"tableflip.dev/lumina/pkg/logging"
	"tableflip.dev/lumina/pkg/store"
	"tableflip.dev/lumina/pkg/task"
)

type parserFunc func(ctx context.Context, text string, ref day.Date) (*draft.Draft, error)

func (f parserFunc) Parse(ctx context.Context, text string, ref day.Date) (*draft.Draft, error) {
	return f(ctx, text, ref)
}

func newService(t *testing.T) *Service {
	t.Helper()
	tasks := store.Open(store.NewMemory(), logging.Nop())
	svc := NewService(tasks, nil)
	svc.Clock = func() time.Time { return time.Date(2024, time.March, 13, 9, 0, 0, 0, time.Local) }
	return svc
}

func TestServiceCreateTaskDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.CreateTask(ctx, CreateTaskOptions{Title: "Water plants"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if created.Date != "2024-03-13" {
		t.Fatalf("expected today's date, got %s", created.Date)
	}
	if created.Priority != task.PriorityMedium {
		t.Fatalf("expected medium priority, got %s", created.Priority)
	}
	if got := svc.Tasks.All(); len(got) != 1 {
		t.Fatalf("expected 1 stored task, got %d", len(got))
	}
}

func TestServiceCreateTaskInvalid(t *testing.T) {
	ctx := context.Background()
	tests := map[string]CreateTaskOptions{
		"no title":     {Date: "2024-03-13"},
		"bad date":     {Title: "x", Date: "2024-13-01"},
		"bad time":     {Title: "x", StartTime: "25:00"},
		"bad priority": {Title: "x", Priority: "urgent"},
	}
	for name, opts := range tests {
		t.Run(name, func(t *testing.T) {
			svc := newService(t)
			if _, err := svc.CreateTask(ctx, opts); err == nil {
				t.Fatalf("expected error")
			}
			if got := svc.Tasks.All(); len(got) != 0 {
				t.Fatalf("expected no stored task, got %d", len(got))
			}
		})
	}
}

func TestServiceToggleAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.CreateTask(ctx, CreateTaskOptions{Title: "Finish report"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	toggled, err := svc.ToggleTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}
	if !toggled.Found || toggled.Task == nil || !toggled.Task.Completed {
		t.Fatalf("expected task to be completed, got %+v", toggled)
	}

	deleted, err := svc.DeleteTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if !deleted.Found || deleted.Task == nil || deleted.Task.ID != created.ID {
		t.Fatalf("expected deleted task %s, got %+v", created.ID, deleted)
	}
	if got := svc.Tasks.All(); len(got) != 0 {
		t.Fatalf("expected empty store, got %d", len(got))
	}
}

func TestServiceUnknownID(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	if _, err := svc.CreateTask(ctx, CreateTaskOptions{Title: "Keep"}); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	before := svc.Tasks.All()

	toggled, err := svc.ToggleTask(ctx, " missing ")
	if err != nil {
		t.Fatalf("toggle: unexpected error %v", err)
	}
	if toggled.Found || toggled.Task != nil || toggled.ID != "missing" {
		t.Fatalf("toggle: unexpected result %+v", toggled)
	}
	deleted, err := svc.DeleteTask(ctx, "missing")
	if err != nil {
		t.Fatalf("delete: unexpected error %v", err)
	}
	if deleted.Found || deleted.Task != nil {
		t.Fatalf("delete: unexpected result %+v", deleted)
	}
	if got := svc.Tasks.All(); !reflect.DeepEqual(got, before) {
		t.Fatalf("store changed: %+v", got)
	}
}

func TestServiceTasksOn(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	for _, opts := range []CreateTaskOptions{
		{Title: "Standup", Date: "2024-03-13", StartTime: "09:30"},
		{Title: "Trip", Date: "2024-03-12", EndDate: "2024-03-14"},
		{Title: "Other day", Date: "2024-03-20"},
	} {
		if _, err := svc.CreateTask(ctx, opts); err != nil {
			t.Fatalf("CreateTask(%s) failed: %v", opts.Title, err)
		}
	}

	agenda, err := svc.TasksOn(ctx, "")
	if err != nil {
		t.Fatalf("TasksOn failed: %v", err)
	}
	if agenda.Date != "2024-03-13" {
		t.Fatalf("expected today, got %s", agenda.Date)
	}
	if len(agenda.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(agenda.Tasks))
	}
	if agenda.Tasks[0].Title != "Standup" {
		t.Fatalf("expected timed task first, got %s", agenda.Tasks[0].Title)
	}
	if agenda.Title != "Wednesday, March 13, 2024" {
		t.Fatalf("unexpected title %q", agenda.Title)
	}

	if _, err := svc.TasksOn(ctx, "March 13"); err == nil {
		t.Fatalf("expected invalid date error")
	}
}

func TestServiceGrid(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	if _, err := svc.CreateTask(ctx, CreateTaskOptions{Title: "Leap", Date: "2024-02-29"}); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	month, err := svc.Grid(ctx, grid.Month, "2024-02-10")
	if err != nil {
		t.Fatalf("Grid(month) failed: %v", err)
	}
	if month.Title != "February 2024" {
		t.Fatalf("unexpected month title %q", month.Title)
	}
	// February 2024 starts on a Thursday: 4 padding cells then 29 days.
	if len(month.Cells) != 33 {
		t.Fatalf("expected 33 cells, got %d", len(month.Cells))
	}
	last := month.Cells[len(month.Cells)-1]
	if last.Date != "2024-02-29" || len(last.Tasks) != 1 {
		t.Fatalf("unexpected last cell %+v", last)
	}

	week, err := svc.Grid(ctx, grid.Week, "2024-02-29")
	if err != nil {
		t.Fatalf("Grid(week) failed: %v", err)
	}
	if week.Title != "Week of Feb 25" {
		t.Fatalf("unexpected week title %q", week.Title)
	}
	if len(week.Cells) != 7 {
		t.Fatalf("expected 7 cells, got %d", len(week.Cells))
	}
}

func TestServiceListTasks(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	a, _ := svc.CreateTask(ctx, CreateTaskOptions{Title: "a"})
	if _, err := svc.CreateTask(ctx, CreateTaskOptions{Title: "b"}); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if _, err := svc.ToggleTask(ctx, a.ID); err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}

	all, err := svc.ListTasks(ctx, false)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(all) != 2 || all[0].Title != "a" {
		t.Fatalf("unexpected tasks %+v", all)
	}
	open, err := svc.ListTasks(ctx, true)
	if err != nil {
		t.Fatalf("ListTasks(open) failed: %v", err)
	}
	if len(open) != 1 || open[0].Title != "b" {
		t.Fatalf("unexpected open tasks %+v", open)
	}
}

func TestServiceCreateFromText(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	if _, err := svc.CreateFromText(ctx, "lunch tomorrow", ""); !errors.Is(err, draft.ErrUnconfigured) {
		t.Fatalf("expected ErrUnconfigured, got %v", err)
	}

	var gotRef day.Date
	svc.Adapter = draft.NewAdapter(parserFunc(func(ctx context.Context, text string, ref day.Date) (*draft.Draft, error) {
		gotRef = ref
		return &draft.Draft{Title: "Lunch", Date: ref.AddDays(1), StartTime: "12:00"}, nil
	}), svc.Tasks, logging.Nop())

	created, err := svc.CreateFromText(ctx, "lunch tomorrow at noon", "")
	if err != nil {
		t.Fatalf("CreateFromText failed: %v", err)
	}
	if gotRef != "2024-03-13" {
		t.Fatalf("expected reference today, got %s", gotRef)
	}
	if created.Date != "2024-03-14" || created.StartTime != "12:00" {
		t.Fatalf("unexpected task %+v", created)
	}
	if got := svc.Tasks.All(); len(got) != 1 {
		t.Fatalf("expected 1 stored task, got %d", len(got))
	}
}

func TestTemplateArg(t *testing.T) {
	tests := map[string]struct {
		args map[string]any
		want string
	}{
		"string": {args: map[string]any{"date": "2024-03-13"}, want: "2024-03-13"},
		"list":   {args: map[string]any{"date": []string{"2024-03-13"}}, want: "2024-03-13"},
		"empty":  {args: map[string]any{"date": []string{}}, want: ""},
		"absent": {args: map[string]any{}, want: ""},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := templateArg(tc.args, "date"); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
