// Package draft turns free text into tasks through an external parser.
//
// A parser's output is loosely typed; it only reaches the task store after it
// has been decoded and validated into a Draft.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"tableflip.dev/lumina/pkg/day"
	"tableflip.dev/lumina/pkg/task"
)

var (
	// ErrUnconfigured means no parser is available, typically a missing API key.
	ErrUnconfigured = errors.New("draft: natural language parsing is not configured")
	// ErrUnreachable means the parser could not be called.
	ErrUnreachable = errors.New("draft: parser unreachable")
	// ErrMalformed means the parser answered with something that is not a draft.
	ErrMalformed = errors.New("draft: malformed parser output")
	// ErrIncomplete means the parser output lacks a title or a date.
	ErrIncomplete = errors.New("draft: parser output is missing title or date")
	// ErrEmptyInput is returned for blank text before any parser is called.
	ErrEmptyInput = errors.New("draft: nothing to parse")
	// ErrBusy is returned while another parse is in flight.
	ErrBusy = errors.New("draft: a parse is already in progress")
)

// Parser turns free text into a Draft. ref is the date relative phrases
// such as "tomorrow" resolve against.
type Parser interface {
	Parse(ctx context.Context, text string, ref day.Date) (*Draft, error)
}

// Draft is a validated, not yet identified task.
type Draft struct {
	Title       string        `json:"title" validate:"required"`
	Date        day.Date      `json:"date" validate:"required,calendar_date"`
	EndDate     day.Date      `json:"endDate,omitempty" validate:"omitempty,calendar_date"`
	StartTime   day.Clock     `json:"startTime,omitempty" validate:"omitempty,wall_clock"`
	EndTime     day.Clock     `json:"endTime,omitempty" validate:"omitempty,wall_clock"`
	Priority    task.Priority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Description string        `json:"description,omitempty"`
	Category    string        `json:"category,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("calendar_date", func(fl validator.FieldLevel) bool {
		_, err := day.Parse(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("wall_clock", func(fl validator.FieldLevel) bool {
		_, err := day.NormalizeClock(fl.Field().String())
		return err == nil
	})
	return v
}

// Decode reads a parser's JSON answer into a Draft.
func Decode(b []byte) (*Draft, error) {
	body := strings.TrimSpace(string(b))
	body = strings.TrimPrefix(body, "```json")
	body = strings.TrimPrefix(body, "```")
	body = strings.TrimSuffix(body, "```")
	body = strings.TrimSpace(body)
	if body == "" || body == "null" {
		return nil, fmt.Errorf("%w: empty answer", ErrMalformed)
	}

	var d Draft
	if err := json.Unmarshal([]byte(body), &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate tidies the draft in place and checks it. A missing title or date
// is ErrIncomplete; anything else unusable is ErrMalformed.
func (d *Draft) Validate() error {
	d.Title = strings.TrimSpace(d.Title)
	d.Date = day.Date(strings.TrimSpace(string(d.Date)))
	d.EndDate = day.Date(strings.TrimSpace(string(d.EndDate)))
	d.Priority = task.Priority(strings.ToLower(strings.TrimSpace(string(d.Priority))))

	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	for _, f := range fields {
		if f.Tag() == "required" {
			return fmt.Errorf("%w: %s", ErrIncomplete, f.Field())
		}
	}
	return fmt.Errorf("%w: %v", ErrMalformed, fields)
}

// Task completes the draft into an open task with the given id. Times are
// padded to HH:mm, an end date before the start is raised to it and an end
// date equal to the start is dropped.
func (d Draft) Task(id string) (task.Task, error) {
	if err := d.Validate(); err != nil {
		return task.Task{}, err
	}
	start, _ := day.NormalizeClock(string(d.StartTime))
	end, _ := day.NormalizeClock(string(d.EndTime))

	t := task.Task{
		ID:          id,
		Title:       d.Title,
		Description: strings.TrimSpace(d.Description),
		Date:        d.Date,
		EndDate:     d.EndDate,
		StartTime:   start,
		EndTime:     end,
		Priority:    d.Priority,
		Completed:   false,
		Category:    strings.TrimSpace(d.Category),
	}
	if t.EndDate != "" && t.EndDate.Before(t.Date) {
		t.EndDate = t.Date
	}
	if t.EndDate == t.Date {
		t.EndDate = ""
	}
	return t, nil
}
