package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"tableflip.dev/lumina/pkg/day"
	"tableflip.dev/lumina/pkg/logging"
	"tableflip.dev/lumina/pkg/task"
	"tableflip.dev/lumina/pkg/theme"
)

const (
	// TasksKey holds the JSON array of every task.
	TasksKey = "tasks"
	// ThemeKey holds the theme preference.
	ThemeKey = "theme"
)

// Tasks owns the task collection and writes it through to a KV after every
// mutation. Reads return copies.
type Tasks struct {
	mu    sync.Mutex
	kv    KV
	log   *logging.Logger
	tasks []task.Task
}

// Open restores the collection held in kv.
func Open(kv KV, log *logging.Logger) *Tasks {
	if log == nil {
		log = logging.Nop()
	}
	s := &Tasks{
		kv:    kv,
		log:   log.WithComponent("store"),
		tasks: []task.Task{},
	}
	s.Restore()
	return s
}

// Restore replaces the in-memory collection with the stored one. An absent,
// empty or unreadable value restores an empty collection.
func (s *Tasks) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = s.load()
}

// Reload is Restore, named for callers reacting to a change notification.
func (s *Tasks) Reload() {
	s.Restore()
}

func (s *Tasks) load() []task.Task {
	raw, ok, err := s.kv.Get(TasksKey)
	if err != nil {
		s.log.WithError(err).Warnw("reading tasks, starting empty")
		return []task.Task{}
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []task.Task{}
	}
	var tasks []task.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		s.log.WithError(err).Warnw("stored tasks are corrupt, starting empty", "bytes", len(raw))
		return []task.Task{}
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks
}

// persist writes next through and only then makes it current, so a failed
// write leaves memory matching the stored value.
func (s *Tasks) persist(next []task.Task) error {
	b, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("store: encode tasks: %w", err)
	}
	if err := s.kv.Set(TasksKey, string(b)); err != nil {
		s.log.WithError(err).Errorw("persisting tasks", "count", len(next))
		return err
	}
	s.tasks = next
	return nil
}

// Create appends t. Ids are not checked for uniqueness.
func (s *Tasks) Create(t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]task.Task, len(s.tasks), len(s.tasks)+1)
	copy(next, s.tasks)
	next = append(next, t)
	if err := s.persist(next); err != nil {
		return err
	}
	s.log.Debugw("created task", "id", t.ID, "date", t.Date)
	return nil
}

// Toggle flips the completion flag of the task with id. An unknown id
// reports false and writes nothing.
func (s *Tasks) Toggle(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	next := s.snapshot()
	next[i].Completed = !next[i].Completed
	if err := s.persist(next); err != nil {
		return true, err
	}
	return true, nil
}

// Delete removes the task with id. An unknown id reports false and writes
// nothing.
func (s *Tasks) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	next := make([]task.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:i]...)
	next = append(next, s.tasks[i+1:]...)
	if err := s.persist(next); err != nil {
		return true, err
	}
	return true, nil
}

// All returns every task in insertion order.
func (s *Tasks) All() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// On returns the tasks active on d in insertion order.
func (s *Tasks) On(d day.Date) []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return task.On(s.tasks, d)
}

// Get finds a task by id.
func (s *Tasks) Get(id string) (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(id); i >= 0 {
		return s.tasks[i], true
	}
	return task.Task{}, false
}

// Theme reads the stored preference, System when absent or unknown.
func (s *Tasks) Theme() theme.Mode {
	raw, ok, err := s.kv.Get(ThemeKey)
	if err != nil || !ok {
		return theme.System
	}
	m, err := theme.ParseMode(raw)
	if err != nil {
		return theme.System
	}
	return m
}

// SetTheme stores the preference.
func (s *Tasks) SetTheme(m theme.Mode) error {
	return s.kv.Set(ThemeKey, m.String())
}

func (s *Tasks) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Tasks) snapshot() []task.Task {
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}
