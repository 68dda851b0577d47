package add

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/lumina/pkg/day"
	"tableflip.dev/lumina/pkg/draft"
	"tableflip.dev/lumina/pkg/store"
	"tableflip.dev/lumina/pkg/task"
)

func init() {
	color.NoColor = true
}

func TestAdd(t *testing.T) {
	tasks := store.Open(store.NewMemory(), nil)
	f := task.NewForm("2024-01-15")
	f.Title = "Gym"
	f.StartTime = "7:00"

	var buf bytes.Buffer
	a := Add{Form: f, Tasks: tasks, Out: &buf}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}

	all := tasks.All()
	if len(all) != 1 || all[0].Title != "Gym" || all[0].StartTime != "07:00" || all[0].ID == "" {
		t.Fatalf("stored %+v", all)
	}
	if !strings.Contains(buf.String(), "Monday, January 15, 2024 - 1 task") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestAddRejectsInvalidForm(t *testing.T) {
	tasks := store.Open(store.NewMemory(), nil)
	a := Add{Form: task.NewForm("2024-01-15"), Tasks: tasks, Out: &bytes.Buffer{}}
	if err := a.Do(context.Background()); !errors.Is(err, task.ErrEmptyTitle) {
		t.Fatalf("err = %v, want ErrEmptyTitle", err)
	}
	if len(tasks.All()) != 0 {
		t.Fatal("invalid form stored a task")
	}
}

type stubParser struct{ d *draft.Draft }

func (s stubParser) Parse(context.Context, string, day.Date) (*draft.Draft, error) {
	return s.d, nil
}

func TestText(t *testing.T) {
	tasks := store.Open(store.NewMemory(), nil)
	ad := draft.NewAdapter(stubParser{d: &draft.Draft{Title: "Dentist", Date: "2024-01-16"}}, tasks, nil)

	var buf bytes.Buffer
	n := Text{Text: "dentist tomorrow", Reference: "2024-01-15", Adapter: ad, Tasks: tasks, Out: &buf}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got := tasks.On("2024-01-16"); len(got) != 1 || got[0].Title != "Dentist" {
		t.Fatalf("stored %+v", got)
	}
	if !strings.Contains(buf.String(), "Dentist") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestTextUnconfigured(t *testing.T) {
	tasks := store.Open(store.NewMemory(), nil)
	n := Text{Text: "dentist", Adapter: draft.NewAdapter(nil, tasks, nil), Tasks: tasks}
	if err := n.Do(context.Background()); !errors.Is(err, draft.ErrUnconfigured) {
		t.Fatalf("err = %v, want ErrUnconfigured", err)
	}
}
