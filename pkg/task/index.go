package task

import (
	"sort"
	"strings"

	"tableflip.dev/lumina/pkg/day"
)

// IsActiveOn reports whether t covers date d. Single-day tasks match their
// start date exactly; ranges match inclusively. Comparison is on the date
// strings, which is chronological because day.Date is fixed width.
func IsActiveOn(t Task, d day.Date) bool {
	if t.EndDate == "" || t.EndDate == t.Date {
		return d == t.Date
	}
	return d >= t.Date && d <= t.EndDate
}

// On returns the tasks active on d in collection order.
func On(tasks []Task, d day.Date) []Task {
	out := make([]Task, 0)
	for _, t := range tasks {
		if IsActiveOn(t, d) {
			out = append(out, t)
		}
	}
	return out
}

// Agenda returns a copy of tasks in daily timeline order: timed tasks first
// by start time, then untimed tasks by title.
func Agenda(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.Timed() && b.Timed():
			return a.StartTime < b.StartTime
		case a.Timed():
			return true
		case b.Timed():
			return false
		default:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	})
	return out
}

// Level buckets how loaded a day is.
type Level int

const (
	// LevelNone is a day without tasks.
	LevelNone Level = iota
	// LevelLight is a score of 1 or 2.
	LevelLight
	// LevelModerate is a score of 3 to 5.
	LevelModerate
	// LevelBusy is a score of 6 to 8.
	LevelBusy
	// LevelHeavy is a score above 8.
	LevelHeavy
)

var levelNames = map[Level]string{
	LevelNone:     "none",
	LevelLight:    "light",
	LevelModerate: "moderate",
	LevelBusy:     "busy",
	LevelHeavy:    "heavy",
}

// String implements fmt.Stringer.
func (l Level) String() string { return levelNames[l] }

// MarshalText renders the level by name in JSON and YAML output.
func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// Levels lists every level from none to heavy.
func Levels() []Level {
	return []Level{LevelNone, LevelLight, LevelModerate, LevelBusy, LevelHeavy}
}

// Load is the priority weighted busyness of a set of tasks.
type Load struct {
	Score int   `json:"score"`
	Level Level `json:"level"`
}

// Busyness sums priority weights (high 3, medium 2, otherwise 1).
func Busyness(tasks []Task) Load {
	if len(tasks) == 0 {
		return Load{}
	}
	score := 0
	for _, t := range tasks {
		score += t.Priority.Weight()
	}
	l := Load{Score: score}
	switch {
	case score > 8:
		l.Level = LevelHeavy
	case score > 5:
		l.Level = LevelBusy
	case score > 2:
		l.Level = LevelModerate
	default:
		l.Level = LevelLight
	}
	return l
}
