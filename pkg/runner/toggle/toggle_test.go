package toggle

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/lumina/pkg/store"
	"tableflip.dev/lumina/pkg/task"
)

func TestToggle(t *testing.T) {
	color.NoColor = true
	tasks := store.Open(store.NewMemory(), nil)
	_ = tasks.Create(task.Task{ID: "a", Title: "Gym", Date: "2024-01-15"})

	var buf bytes.Buffer
	n := Toggle{ID: "a", Tasks: tasks, Out: &buf}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got, _ := tasks.Get("a"); !got.Completed {
		t.Fatal("task not completed")
	}
	if !strings.Contains(buf.String(), "✘") {
		t.Fatalf("output = %q", buf.String())
	}

	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got, _ := tasks.Get("a"); got.Completed {
		t.Fatal("second toggle did not reopen")
	}
}

func TestToggleUnknown(t *testing.T) {
	color.NoColor = true
	kv := store.NewMemory()
	tasks := store.Open(kv, nil)
	_ = tasks.Create(task.Task{ID: "a", Title: "Gym", Date: "2024-01-15"})
	before, _, _ := kv.Get(store.TasksKey)

	var buf bytes.Buffer
	n := Toggle{ID: "nope", Tasks: tasks, Out: &buf}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if after, _, _ := kv.Get(store.TasksKey); after != before {
		t.Fatalf("store changed:\n%s\n%s", before, after)
	}
	if got := buf.String(); got != "no task nope\n" {
		t.Fatalf("output = %q", got)
	}
}
