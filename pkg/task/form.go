package task

import (
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/lumina/pkg/day"
)

var (
	// ErrEmptyTitle refuses a task without a title.
	ErrEmptyTitle = errors.New("task: title is required")
	// ErrInvalidDate refuses a task with a malformed start or end date.
	ErrInvalidDate = errors.New("task: invalid date")
	// ErrInvalidTime refuses a task with a malformed start or end time.
	ErrInvalidTime = errors.New("task: invalid time")
)

// Form collects the fields of a manually created task. Values are raw user
// input; Build validates and normalizes them.
type Form struct {
	Title       string
	Date        string
	EndDate     string
	StartTime   string
	EndTime     string
	Priority    string
	Category    string
	Description string
}

// NewForm returns a form starting and ending on d with medium priority.
func NewForm(d day.Date) *Form {
	return &Form{
		Date:     string(d),
		EndDate:  string(d),
		Priority: string(PriorityMedium),
	}
}

// SetDate moves the start date and pulls the end date along when the new
// start would pass it.
func (f *Form) SetDate(d string) {
	f.Date = d
	if f.EndDate == "" || f.EndDate < d {
		f.EndDate = d
	}
}

// Build validates the form and returns the task it describes.
func (f *Form) Build(id string) (Task, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}
	start, err := day.Parse(f.Date)
	if err != nil {
		return Task{}, fmt.Errorf("%w: start %v", ErrInvalidDate, err)
	}
	t := Task{
		ID:          id,
		Title:       title,
		Date:        start,
		Category:    strings.TrimSpace(f.Category),
		Description: strings.TrimSpace(f.Description),
	}
	if strings.TrimSpace(f.EndDate) != "" {
		end, err := day.Parse(f.EndDate)
		if err != nil {
			return Task{}, fmt.Errorf("%w: end %v", ErrInvalidDate, err)
		}
		if end.Before(start) {
			end = start
		}
		if end != start {
			t.EndDate = end
		}
	}
	if t.StartTime, err = optionalClock(f.StartTime); err != nil {
		return Task{}, err
	}
	if t.EndTime, err = optionalClock(f.EndTime); err != nil {
		return Task{}, err
	}
	if t.Priority, err = ParsePriority(f.Priority); err != nil {
		return Task{}, err
	}
	return t, nil
}

func optionalClock(raw string) (day.Clock, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	c, err := day.NormalizeClock(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	return c, nil
}
