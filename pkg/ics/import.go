package ics

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"tableflip.dev/lumina/pkg/day"
	"tableflip.dev/lumina/pkg/task"
)

// ErrNoUID is reported for events that cannot be given a stable id.
var ErrNoUID = errors.New("ics: event has no UID")

// Skipped describes an event Import could not turn into a task.
type Skipped struct {
	UID string
	Err error
}

// Import reads the VEVENTs of r as tasks. Recurrence rules are not expanded;
// a recurring event imports as its first occurrence.
func Import(r io.Reader) ([]task.Task, []Skipped, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, nil, fmt.Errorf("ics: parse: %w", err)
	}

	var tasks []task.Task
	var skipped []Skipped
	for _, ve := range cal.Events() {
		t, err := fromEvent(ve)
		if err != nil {
			skipped = append(skipped, Skipped{UID: text(ve.GetProperty(ical.ComponentPropertyUniqueId)), Err: err})
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, skipped, nil
}

func fromEvent(ve *ical.VEvent) (task.Task, error) {
	var t task.Task

	t.ID = strings.TrimSpace(text(ve.GetProperty(ical.ComponentPropertyUniqueId)))
	if t.ID == "" {
		return t, ErrNoUID
	}

	t.Title = strings.TrimSpace(text(ve.GetProperty(ical.ComponentPropertySummary)))
	if t.Title == "" {
		t.Title = "(untitled)"
	}
	t.Description = text(ve.GetProperty(ical.ComponentPropertyDescription))
	if p := ve.GetProperty(ical.ComponentPropertyCategories); p != nil {
		first, _, _ := strings.Cut(p.Value, ",")
		t.Category = strings.TrimSpace(unescape.Replace(first))
	}
	if p := ve.GetProperty(ical.ComponentPropertyPriority); p != nil {
		t.Priority = priorityOf(p.Value)
	}
	if p := ve.GetProperty(ical.ComponentPropertyStatus); p != nil {
		t.Completed = strings.EqualFold(strings.TrimSpace(p.Value), string(ical.ObjectStatusCompleted))
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return t, errors.New("ics: event has no DTSTART")
	}

	if allDay(dtStart) {
		start, err := parseDate(dtStart.Value)
		if err != nil {
			return t, err
		}
		t.Date = start
		if dtEnd := ve.GetProperty(ical.ComponentPropertyDtEnd); dtEnd != nil {
			if end, err := parseDate(dtEnd.Value); err == nil {
				// DTEND is exclusive.
				last := end.AddDays(-1)
				if last.After(start) {
					t.EndDate = last
				}
			}
		}
		return t, nil
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return t, fmt.Errorf("ics: DTSTART: %w", err)
	}
	start = start.Local()
	t.Date = day.Of(start)
	t.StartTime = day.Clock(start.Format(day.LayoutClock))
	if end, err := ve.GetEndAt(); err == nil && end.After(start) {
		end = end.Local()
		if openEnd(ve) {
			// DTEND is the start time plus an hour on the last day.
			end = end.Add(-time.Hour)
		} else {
			t.EndTime = day.Clock(end.Format(day.LayoutClock))
		}
		if d := day.Of(end); d.After(t.Date) {
			t.EndDate = d
		}
	}
	return t, nil
}

func openEnd(ve *ical.VEvent) bool {
	p := ve.GetProperty(propOpenEnd)
	return p != nil && strings.EqualFold(strings.TrimSpace(p.Value), "TRUE")
}

var unescape = strings.NewReplacer(`\\`, `\`, `\,`, ",", `\;`, ";", `\n`, "\n", `\N`, "\n")

// text returns the unescaped value of p, "" when p is absent.
func text(p *ical.IANAProperty) string {
	if p == nil {
		return ""
	}
	return unescape.Replace(p.Value)
}

// allDay treats VALUE=DATE or a value without a time part as a date.
func allDay(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func parseDate(v string) (day.Date, error) {
	t, err := time.ParseInLocation("20060102", strings.TrimSpace(v), time.Local)
	if err != nil {
		return "", fmt.Errorf("ics: date %q: %w", v, err)
	}
	return day.Of(t), nil
}

// priorityOf maps iCalendar's 1-9 scale: 1-4 high, 5 medium, 6-9 low.
func priorityOf(v string) task.Priority {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	switch {
	case err != nil || n <= 0:
		return task.PriorityNone
	case n < 5:
		return task.PriorityHigh
	case n == 5:
		return task.PriorityMedium
	default:
		return task.PriorityLow
	}
}
