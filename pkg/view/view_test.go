package view

import (
	"testing"
	"time"

	"tableflip.dev/lumina/pkg/day"
	"tableflip.dev/lumina/pkg/grid"
	"tableflip.dev/lumina/pkg/task"
)

type fakeTasks []task.Task

func (f fakeTasks) On(d day.Date) []task.Task { return task.On(f, d) }

func fixedClock(s string) func() time.Time {
	t := day.MustParse(s).Time().Add(9 * time.Hour)
	return func() time.Time { return t }
}

func TestNewStartsToday(t *testing.T) {
	c := New(fixedClock("2024-02-14"))
	if c.Selected != "2024-02-14" || c.Mode != grid.Month {
		t.Fatalf("state = %+v", c)
	}
	if got := c.Title(); got != "February 2024" {
		t.Fatalf("Title = %q", got)
	}
}

func TestNavigateLeavesSelection(t *testing.T) {
	c := New(fixedClock("2024-01-31"))
	c.Navigate(1)
	if got := day.Of(c.Reference); got != "2024-02-01" {
		t.Fatalf("reference = %s, want 2024-02-01", got)
	}
	if c.Selected != "2024-01-31" {
		t.Fatalf("selection moved to %s", c.Selected)
	}
	c.Navigate(-1)
	if got := c.Title(); got != "January 2024" {
		t.Fatalf("Title = %q", got)
	}
}

func TestNavigateWeek(t *testing.T) {
	c := New(fixedClock("2024-02-14"))
	c.SetMode(grid.Week)
	if got := c.Title(); got != "Week of Feb 11" {
		t.Fatalf("Title = %q", got)
	}
	c.Navigate(3)
	c.Navigate(-3)
	if got := day.Of(c.Reference); got != "2024-02-14" {
		t.Fatalf("navigate round trip landed on %s", got)
	}
}

func TestSelectAndSelectToday(t *testing.T) {
	c := New(fixedClock("2024-02-14"))
	c.Navigate(2)
	ref := c.Reference

	c.Select("2024-04-10")
	if c.Selected != "2024-04-10" || !c.Reference.Equal(ref) {
		t.Fatalf("Select changed reference or missed: %+v", c)
	}

	c.SelectToday()
	if c.Selected != "2024-02-14" || day.Of(c.Reference) != "2024-02-14" {
		t.Fatalf("SelectToday = %+v", c)
	}
}

func TestSetModeOnlyChangesMode(t *testing.T) {
	c := New(fixedClock("2024-02-14"))
	ref, sel := c.Reference, c.Selected
	c.SetMode(grid.Week)
	if c.Mode != grid.Week || !c.Reference.Equal(ref) || c.Selected != sel {
		t.Fatalf("state = %+v", c)
	}
	c.ToggleMode()
	if c.Mode != grid.Month {
		t.Fatalf("ToggleMode = %s", c.Mode)
	}
}

func TestFocus(t *testing.T) {
	c := New(fixedClock("2024-02-14"))
	c.Focus(task.Task{ID: "x", Title: "Trip", Date: "2024-06-03", EndDate: "2024-06-05"})
	if c.Selected != "2024-06-03" || c.Title() != "June 2024" {
		t.Fatalf("Focus = %+v %q", c, c.Title())
	}
	c.Focus(task.Task{Date: "garbage"})
	if c.Selected != "2024-06-03" {
		t.Fatal("invalid date moved the view")
	}
}

func TestMoveSelectionTurnsPage(t *testing.T) {
	c := New(fixedClock("2024-02-28"))
	c.MoveSelection(1)
	if c.Selected != "2024-02-29" || c.Title() != "February 2024" {
		t.Fatalf("in-page move = %s %q", c.Selected, c.Title())
	}
	c.MoveSelection(1)
	if c.Selected != "2024-03-01" || c.Title() != "March 2024" {
		t.Fatalf("page turn = %s %q", c.Selected, c.Title())
	}

	c.SetMode(grid.Week)
	c.MoveSelection(-7)
	if c.Selected != "2024-02-23" || c.Title() != "Week of Feb 18" {
		t.Fatalf("week move = %s %q", c.Selected, c.Title())
	}
}

func TestCellsMonth(t *testing.T) {
	tasks := fakeTasks{
		{ID: "1", Title: "Gym", Date: "2024-02-14", Priority: task.PriorityHigh},
		{ID: "2", Title: "Trip", Date: "2024-02-28", EndDate: "2024-03-02"},
	}
	c := New(fixedClock("2024-02-14"))
	cells := c.Cells(tasks)
	if len(cells) != 33 {
		t.Fatalf("len = %d, want 33", len(cells))
	}
	for i := 0; i < 4; i++ {
		if !cells[i].Empty() || cells[i].Tasks != nil {
			t.Fatalf("cell %d should be leading padding: %+v", i, cells[i])
		}
	}

	feb14 := cells[4+13]
	if feb14.Date != "2024-02-14" || feb14.Day != 14 || !feb14.Today || !feb14.Selected {
		t.Fatalf("feb 14 = %+v", feb14)
	}
	if len(feb14.Tasks) != 1 || feb14.Load.Score != 3 {
		t.Fatalf("feb 14 tasks = %+v", feb14)
	}
	feb29 := cells[len(cells)-1]
	if feb29.Date != "2024-02-29" || len(feb29.Tasks) != 1 || feb29.Tasks[0].ID != "2" {
		t.Fatalf("feb 29 = %+v", feb29)
	}
	if cells[5].Today || cells[5].Selected {
		t.Fatalf("feb 2 flagged: %+v", cells[5])
	}
}

func TestCellsWeek(t *testing.T) {
	tasks := fakeTasks{{ID: "2", Title: "Trip", Date: "2024-02-28", EndDate: "2024-03-02"}}
	c := New(fixedClock("2024-02-29"))
	c.SetMode(grid.Week)
	cells := c.Cells(tasks)
	if len(cells) != 7 {
		t.Fatalf("len = %d", len(cells))
	}
	want := []day.Date{"2024-02-25", "2024-02-26", "2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}
	for i, cell := range cells {
		if cell.Date != want[i] {
			t.Fatalf("cell %d = %s, want %s", i, cell.Date, want[i])
		}
		active := i >= 3
		if (len(cell.Tasks) == 1) != active {
			t.Fatalf("cell %s tasks = %d", cell.Date, len(cell.Tasks))
		}
	}
	if cells[5].Day != 1 {
		t.Fatalf("day number = %d, want 1", cells[5].Day)
	}
}

func TestAgenda(t *testing.T) {
	tasks := fakeTasks{
		{ID: "1", Title: "zebra", Date: "2024-02-14"},
		{ID: "2", Title: "standup", Date: "2024-02-14", StartTime: "09:30"},
		{ID: "3", Title: "apple", Date: "2024-02-14"},
		{ID: "4", Title: "gym", Date: "2024-02-14", StartTime: "07:00"},
		{ID: "5", Title: "other day", Date: "2024-02-15"},
	}
	c := New(fixedClock("2024-02-14"))
	got := c.Agenda(tasks)
	var ids []string
	for _, tk := range got {
		ids = append(ids, tk.ID)
	}
	want := []string{"4", "2", "3", "1"}
	if len(ids) != len(want) {
		t.Fatalf("agenda = %v", ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("agenda = %v, want %v", ids, want)
		}
	}
	if got := c.AgendaTitle(); got != "Wednesday, February 14" {
		t.Fatalf("AgendaTitle = %q", got)
	}
}
