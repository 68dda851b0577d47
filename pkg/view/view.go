// Package view holds the calendar's navigation state and composes the grid
// with the tasks that fall on each visible day.
package view

import (
	"time"

	"tableflip.dev/lumina/pkg/day"
	"tableflip.dev/lumina/pkg/grid"
	"tableflip.dev/lumina/pkg/task"
)

// Querier answers which tasks are active on a date.
type Querier interface {
	On(d day.Date) []task.Task
}

// Cell is one slot of the visible page. Leading month cells have an empty
// Date and no tasks.
type Cell struct {
	Date     day.Date    `json:"date,omitempty"`
	Day      int         `json:"day,omitempty"`
	Tasks    []task.Task `json:"tasks,omitempty"`
	Today    bool        `json:"today,omitempty"`
	Selected bool        `json:"selected,omitempty"`
	Load     task.Load   `json:"load"`
}

// Empty reports whether the cell is leading padding.
func (c Cell) Empty() bool { return c.Date == "" }

// Controller is the calendar's view state: the page being shown, the
// selected day and the page shape.
type Controller struct {
	Reference time.Time
	Selected  day.Date
	Mode      grid.Mode
	Clock     func() time.Time
}

// New starts on today's month with today selected. A nil clock uses
// time.Now.
func New(clock func() time.Time) *Controller {
	if clock == nil {
		clock = time.Now
	}
	now := clock()
	return &Controller{
		Reference: now,
		Selected:  day.Of(now),
		Mode:      grid.Month,
		Clock:     clock,
	}
}

// Today is the current date according to the controller's clock.
func (c *Controller) Today() day.Date {
	return day.Of(c.now())
}

func (c *Controller) now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock()
}

// Navigate pages dir months or weeks away, depending on Mode. The selection
// does not move.
func (c *Controller) Navigate(dir int) {
	c.Reference = grid.Navigate(c.Reference, dir, c.Mode)
}

// SelectToday shows and selects today.
func (c *Controller) SelectToday() {
	now := c.now()
	c.Reference = now
	c.Selected = day.Of(now)
}

// Select selects d without changing the visible page.
func (c *Controller) Select(d day.Date) {
	c.Selected = d
}

// SetMode changes the page shape only.
func (c *Controller) SetMode(m grid.Mode) {
	c.Mode = m
}

// ToggleMode flips between month and week.
func (c *Controller) ToggleMode() {
	if c.Mode == grid.Week {
		c.Mode = grid.Month
		return
	}
	c.Mode = grid.Week
}

// Focus jumps the page and the selection to the start date of t, as done
// after a task is added.
func (c *Controller) Focus(t task.Task) {
	ref := t.Date.Time()
	if ref.IsZero() {
		return
	}
	c.Reference = ref
	c.Selected = t.Date
}

// MoveSelection moves the selected day by n days and turns the page when the
// selection leaves it.
func (c *Controller) MoveSelection(n int) {
	if !c.Selected.Valid() {
		c.Selected = day.Of(c.Reference)
	}
	c.Selected = c.Selected.AddDays(n)
	if !c.visible(c.Selected) {
		c.Reference = c.Selected.Time()
	}
}

// Dates lists the dates on the visible page, leading padding excluded.
func (c *Controller) Dates() []day.Date {
	if c.Mode == grid.Week {
		return grid.WeekCells(c.Reference)
	}
	all := grid.MonthDates(c.Reference)
	out := make([]day.Date, 0, len(all))
	for _, d := range all {
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}

func (c *Controller) visible(d day.Date) bool {
	for _, v := range c.Dates() {
		if v == d {
			return true
		}
	}
	return false
}

// Cells builds the visible page with the tasks active on each day.
func (c *Controller) Cells(q Querier) []Cell {
	var dates []day.Date
	if c.Mode == grid.Week {
		dates = grid.WeekCells(c.Reference)
	} else {
		dates = grid.MonthDates(c.Reference)
	}

	today := c.Today()
	cells := make([]Cell, len(dates))
	for i, d := range dates {
		if d == "" {
			continue
		}
		tasks := q.On(d)
		cells[i] = Cell{
			Date:     d,
			Day:      d.Time().Day(),
			Tasks:    tasks,
			Today:    d == today,
			Selected: d == c.Selected,
			Load:     task.Busyness(tasks),
		}
	}
	return cells
}

// Agenda lists the selected day's tasks in timeline order.
func (c *Controller) Agenda(q Querier) []task.Task {
	return task.Agenda(q.On(c.Selected))
}

// Title names the visible page: "January 2006" for a month, "Week of Jan 2"
// for a week starting that Sunday.
func (c *Controller) Title() string {
	if c.Mode == grid.Week {
		return "Week of " + grid.StartOfWeek(c.Reference).Format("Jan 2")
	}
	return c.Reference.Format("January 2006")
}

// AgendaTitle names the selected day, e.g. "Monday, January 15".
func (c *Controller) AgendaTitle() string {
	t := c.Selected.Time()
	if t.IsZero() {
		return ""
	}
	return t.Format("Monday, January 2")
}
