package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/lumina/pkg/day"
	"tableflip.dev/lumina/pkg/task"
	"tableflip.dev/lumina/pkg/view"
)

func init() {
	color.NoColor = true
}

type tasks []task.Task

func (ts tasks) On(d day.Date) []task.Task { return task.On(ts, d) }

func TestAgenda(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{ShowID: true, Out: &buf}
	pp.Agenda(
		task.Task{ID: "a1", Title: "Gym", Date: "2024-01-15", StartTime: "07:00", EndTime: "08:00", Priority: task.PriorityHigh},
		task.Task{ID: "b2", Title: "Trip", Date: "2024-01-14", EndDate: "2024-01-16", Category: "travel", Completed: true},
	)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.HasPrefix(lines[0], "a1 ") || !strings.Contains(lines[0], "✷ ● 07:00 - 08:00") || !strings.HasSuffix(lines[0], "Gym") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "◇ All Day") || !strings.Contains(lines[1], "Trip (2024-01-14 → 2024-01-16) #travel") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestAgendaEmpty(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Agenda()
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("empty agenda = %q", buf.String())
	}
}

func TestTitleWithCount(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.TitleWithCount("Monday", 1)
	pp.TitleWithCount("Tuesday", 2)
	if got := buf.String(); got != "Monday - 1 task\nTuesday - 2 tasks\n" {
		t.Fatalf("titles = %q", got)
	}
}

func TestMonth(t *testing.T) {
	c := view.New(func() time.Time { return day.MustParse("2024-02-14").Time() })
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Month(c.Title(), c.Cells(tasks{}))

	lines := strings.Split(buf.String(), "\n")
	if !strings.Contains(lines[0], "February 2024") {
		t.Fatalf("title line = %q", lines[0])
	}
	if lines[1] != "Su Mo Tu We Th Fr Sa" {
		t.Fatalf("header = %q", lines[1])
	}
	// February 2024 starts on a Thursday.
	if lines[2] != "             1  2  3 " {
		t.Fatalf("first week = %q", lines[2])
	}
	if !strings.HasPrefix(lines[6], "25 26 27 28 29") {
		t.Fatalf("last week = %q", lines[6])
	}
}

func TestLong(t *testing.T) {
	c := view.New(func() time.Time { return day.MustParse("2024-02-14").Time() })
	c.ToggleMode()
	var buf bytes.Buffer
	ts := tasks{{ID: "1", Title: "Dentist", Date: "2024-02-13", StartTime: "09:00"}}
	(&PrettyPrint{Out: &buf}).Long(c.Title(), c.Cells(ts))
	out := buf.String()
	for _, want := range []string{"Week of Feb 11", "11 Su", "13 Tu  light", "09:00", "Dentist", "17 Sa"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
}

func TestStructured(t *testing.T) {
	v := []task.Task{{ID: "1", Title: "Dentist", Date: "2024-02-13", StartTime: "09:00"}}

	var j bytes.Buffer
	if err := JSON(&j, v); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(j.String(), `"startTime": "09:00"`) {
		t.Fatalf("json = %s", j.String())
	}

	var y bytes.Buffer
	if err := YAML(&y, v); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(y.String(), "startTime: \"09:00\"") && !strings.Contains(y.String(), "startTime: '09:00'") && !strings.Contains(y.String(), "startTime: 09:00") {
		t.Fatalf("yaml = %s", y.String())
	}
	if !strings.Contains(y.String(), "title: Dentist") {
		t.Fatalf("yaml = %s", y.String())
	}
}
