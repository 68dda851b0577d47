// Package mcp provides the Model Context Protocol server integration for lumina.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/lumina/pkg/day"
	"tableflip.dev/lumina/pkg/draft"
	"tableflip.dev/lumina/pkg/grid"
	"tableflip.dev/lumina/pkg/store"
	"tableflip.dev/lumina/pkg/task"
	"tableflip.dev/lumina/pkg/view"
)

// Service coordinates store-backed operations that are shared by the MCP server.
type Service struct {
	Tasks   *store.Tasks
	Adapter *draft.Adapter
	Clock   func() time.Time
}

// Change is the outcome of a toggle or delete. Found is false when the id
// matched no task, in which case nothing changed.
type Change struct {
	ID    string     `json:"id"`
	Found bool       `json:"found"`
	Task  *task.Task `json:"task,omitempty"`
}

// CreateTaskOptions captures the parameters used to create a new task. Values
// are raw and validated the same way as the add command.
type CreateTaskOptions struct {
	Title       string
	Date        string
	EndDate     string
	StartTime   string
	EndTime     string
	Priority    string
	Category    string
	Description string
}

// DayAgenda is a transport-friendly projection of one day.
type DayAgenda struct {
	Date  day.Date    `json:"date"`
	Title string      `json:"title"`
	Load  task.Load   `json:"load"`
	Tasks []task.Task `json:"tasks"`
}

// Page is a transport-friendly projection of a calendar grid.
type Page struct {
	Title string      `json:"title"`
	Mode  grid.Mode   `json:"mode"`
	Cells []view.Cell `json:"cells"`
}

// NewService builds a service over the task store. adapter may be nil, in
// which case natural language creation reports that it is unconfigured.
func NewService(tasks *store.Tasks, adapter *draft.Adapter) *Service {
	return &Service{Tasks: tasks, Adapter: adapter}
}

func (s *Service) ready() error {
	if s.Tasks == nil {
		return errors.New("task store is not configured")
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *Service) today() day.Date {
	return day.Of(s.now())
}

// date parses raw, defaulting to today when it is blank.
func (s *Service) date(raw string) (day.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.today(), nil
	}
	d, err := day.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", raw, err)
	}
	return d, nil
}

// CreateTask validates opts and appends the task it describes.
func (s *Service) CreateTask(ctx context.Context, opts CreateTaskOptions) (task.Task, error) {
	if err := s.ready(); err != nil {
		return task.Task{}, err
	}
	start, err := s.date(opts.Date)
	if err != nil {
		return task.Task{}, err
	}
	form := task.NewForm(start)
	form.Title = opts.Title
	if opts.EndDate != "" {
		form.EndDate = opts.EndDate
	}
	form.StartTime = opts.StartTime
	form.EndTime = opts.EndTime
	if opts.Priority != "" {
		form.Priority = opts.Priority
	}
	form.Category = opts.Category
	form.Description = opts.Description

	t, err := form.Build(uuid.NewString())
	if err != nil {
		return task.Task{}, err
	}
	if err := s.Tasks.Create(t); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

// CreateFromText turns a free text description into a task through the
// natural language adapter. Relative phrases resolve against ref, or today
// when ref is blank.
func (s *Service) CreateFromText(ctx context.Context, text, ref string) (task.Task, error) {
	if err := s.ready(); err != nil {
		return task.Task{}, err
	}
	if s.Adapter == nil {
		return task.Task{}, draft.ErrUnconfigured
	}
	d, err := s.date(ref)
	if err != nil {
		return task.Task{}, err
	}
	return s.Adapter.CreateFromText(ctx, text, d)
}

// ToggleTask flips the completion flag of a task and returns the result.
func (s *Service) ToggleTask(ctx context.Context, id string) (Change, error) {
	id = strings.TrimSpace(id)
	c := Change{ID: id}
	if err := s.ready(); err != nil {
		return c, err
	}
	ok, err := s.Tasks.Toggle(id)
	if err != nil || !ok {
		return c, err
	}
	t, _ := s.Tasks.Get(id)
	c.Found, c.Task = true, &t
	return c, nil
}

// DeleteTask removes a task and returns what was removed.
func (s *Service) DeleteTask(ctx context.Context, id string) (Change, error) {
	id = strings.TrimSpace(id)
	c := Change{ID: id}
	if err := s.ready(); err != nil {
		return c, err
	}
	t, found := s.Tasks.Get(id)
	if !found {
		return c, nil
	}
	ok, err := s.Tasks.Delete(id)
	if err != nil || !ok {
		return c, err
	}
	c.Found, c.Task = true, &t
	return c, nil
}

// TasksOn returns the agenda of the given day.
func (s *Service) TasksOn(ctx context.Context, raw string) (DayAgenda, error) {
	if err := s.ready(); err != nil {
		return DayAgenda{}, err
	}
	d, err := s.date(raw)
	if err != nil {
		return DayAgenda{}, err
	}
	tasks := task.Agenda(s.Tasks.On(d))
	return DayAgenda{
		Date:  d,
		Title: d.Time().Format("Monday, January 2, 2006"),
		Load:  task.Busyness(tasks),
		Tasks: tasks,
	}, nil
}

// Grid returns the month or week page containing the given day.
func (s *Service) Grid(ctx context.Context, mode grid.Mode, raw string) (Page, error) {
	if err := s.ready(); err != nil {
		return Page{}, err
	}
	d, err := s.date(raw)
	if err != nil {
		return Page{}, err
	}
	v := view.New(s.Clock)
	v.SetMode(mode)
	v.Reference = d.Time()
	v.Select(d)
	return Page{Title: v.Title(), Mode: v.Mode, Cells: v.Cells(s.Tasks)}, nil
}

// ListTasks returns every task, optionally only the open ones.
func (s *Service) ListTasks(ctx context.Context, openOnly bool) ([]task.Task, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	all := s.Tasks.All()
	if !openOnly {
		return all, nil
	}
	open := make([]task.Task, 0, len(all))
	for _, t := range all {
		if !t.Completed {
			open = append(open, t)
		}
	}
	return open, nil
}
