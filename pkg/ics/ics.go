// Package ics moves tasks in and out of iCalendar files.
package ics

import (
	"fmt"
	"io"
	"strconv"
	"time"

	ical "github.com/arran4/golang-ical"

	"tableflip.dev/lumina/pkg/task"
)

// ProductID identifies lumina in exported calendars.
const ProductID = "-//tableflip.dev//lumina//EN"

// propOpenEnd marks a timed event whose task has a start time but no end
// time. Such events get a one hour DTEND on the task's last day.
const propOpenEnd = ical.ComponentProperty("X-LUMINA-OPEN-END")

var priorities = map[task.Priority]int{
	task.PriorityHigh:   1,
	task.PriorityMedium: 5,
	task.PriorityLow:    9,
}

// Export writes tasks as a VCALENDAR of VEVENTs. Untimed tasks are all-day
// events spanning their date range. Timed tasks run from startTime on their
// first day to endTime on their last day; a task with only a start time
// ends an hour after startTime on its last day.
func Export(w io.Writer, tasks []task.Task, now time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)

	for _, t := range tasks {
		start := t.Date.Time()
		if start.IsZero() {
			continue
		}
		ev := cal.AddEvent(t.ID)
		ev.SetDtStampTime(now)
		ev.SetSummary(t.Title)
		if t.Description != "" {
			ev.SetDescription(t.Description)
		}

		if t.Timed() {
			begin := t.StartTime.On(t.Date)
			end := t.StartTime.On(t.Last()).Add(time.Hour)
			if t.EndTime != "" {
				end = t.EndTime.On(t.Last())
			} else {
				ev.SetProperty(propOpenEnd, "TRUE")
			}
			if !end.After(begin) {
				end = begin
			}
			ev.SetStartAt(begin)
			ev.SetEndAt(end)
		} else {
			ev.SetAllDayStartAt(start)
			// DTEND of an all-day event is exclusive.
			last := t.Last()
			if last.Before(t.Date) {
				last = t.Date
			}
			ev.SetAllDayEndAt(last.AddDays(1).Time())
		}

		if t.Category != "" {
			ev.SetProperty(ical.ComponentPropertyCategories, t.Category)
		}
		if p, ok := priorities[t.Priority]; ok {
			ev.SetProperty(ical.ComponentPropertyPriority, strconv.Itoa(p))
		}
		if t.Completed {
			ev.SetStatus(ical.ObjectStatusCompleted)
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("ics: write: %w", err)
	}
	return nil
}
