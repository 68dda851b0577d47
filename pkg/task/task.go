// Package task defines the calendar task record and the queries that place
// tasks on calendar days.
package task

import (
	"fmt"
	"strings"

	"tableflip.dev/lumina/pkg/day"
)

// Priority is the optional importance of a task. The zero value means no
// priority was set.
type Priority string

const (
	// PriorityNone is the unset priority.
	PriorityNone Priority = ""
	// PriorityLow marks low importance.
	PriorityLow Priority = "low"
	// PriorityMedium marks medium importance.
	PriorityMedium Priority = "medium"
	// PriorityHigh marks high importance.
	PriorityHigh Priority = "high"
)

// Priorities returns the settable priorities in ascending order.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// ParsePriority reads low, medium or high. "" and "none" give PriorityNone.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if p == "" || p == "none" {
		return PriorityNone, nil
	}
	for _, candidate := range Priorities() {
		if candidate == p {
			return candidate, nil
		}
	}
	return PriorityNone, fmt.Errorf("task: unknown priority %q", raw)
}

// Weight is the load a task of this priority adds to its day.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

// String implements fmt.Stringer.
func (p Priority) String() string { return string(p) }

// Task is a dated, optionally multi-day, calendar task.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        day.Date  `json:"date"`
	EndDate     day.Date  `json:"endDate,omitempty"`
	StartTime   day.Clock `json:"startTime,omitempty"`
	EndTime     day.Clock `json:"endTime,omitempty"`
	Priority    Priority  `json:"priority,omitempty"`
	Completed   bool      `json:"completed"`
	Category    string    `json:"category,omitempty"`
}

// MultiDay reports whether the task spans more than its start date.
func (t Task) MultiDay() bool {
	return t.EndDate != "" && t.EndDate != t.Date
}

// Last returns the final date the task is active on.
func (t Task) Last() day.Date {
	if t.EndDate == "" {
		return t.Date
	}
	return t.EndDate
}

// Timed reports whether the task has a start time.
func (t Task) Timed() bool {
	return t.StartTime != ""
}

// TimeRange renders "09:00 - 10:00", "09:00" or "All Day".
func (t Task) TimeRange() string {
	switch {
	case !t.Timed():
		return "All Day"
	case t.EndTime != "":
		return fmt.Sprintf("%s - %s", t.StartTime, t.EndTime)
	default:
		return string(t.StartTime)
	}
}

// String implements fmt.Stringer.
func (t Task) String() string {
	if t.MultiDay() {
		return fmt.Sprintf("%s (%s - %s)", t.Title, t.Date, t.EndDate)
	}
	return fmt.Sprintf("%s (%s)", t.Title, t.Date)
}
