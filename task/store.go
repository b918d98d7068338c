package task

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/xid"

	"github.com/plannerhq/taskplanner/internal/storage"
)

// TasksFile is the name of the JSON file containing the task list.
const TasksFile = "tasks.json"

// Store is a Repository backed by a single JSON file. Every operation
// reads the whole collection, mutates it in memory, and rewrites the
// file atomically. A mutex serializes access within the process.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore returns a Store persisting to TasksFile under dir.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, TasksFile)}
}

// List returns all tasks in stored order. A missing, empty, or
// unparseable file yields an empty list; List never fails.
func (s *Store) List() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// load reads the task file, treating any read or parse error as an
// empty collection.
func (s *Store) load() []Task {
	var tasks []Task
	if err := storage.ReadJSON(s.path, &tasks); err != nil {
		return nil
	}
	return tasks
}

// Add appends a new task with the given name and persists the
// collection. The name must be non-empty and must not match an existing
// task name case-insensitively.
func (s *Store) Add(name string) (Task, error) {
	if strings.TrimSpace(name) == "" {
		return Task{}, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.load()
	for _, existing := range tasks {
		if strings.EqualFold(existing.Name, name) {
			return Task{}, ErrDuplicateTask
		}
	}

	created := Task{
		ID:   xid.New().String(),
		Name: name,
	}
	tasks = append(tasks, created)

	if err := storage.WriteJSON(s.path, tasks); err != nil {
		return Task{}, fmt.Errorf("write tasks: %w", err)
	}
	return created, nil
}

// SetCompleted updates the completion flag of the task with the given
// id and persists the collection.
func (s *Store) SetCompleted(id string, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.load()
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		tasks[i].Completed = completed
		if err := storage.WriteJSON(s.path, tasks); err != nil {
			return fmt.Errorf("write tasks: %w", err)
		}
		return nil
	}
	return ErrTaskNotFound
}

// Delete removes the task with the given id, preserving the relative
// order of the remaining tasks.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.load()
	updated := make([]Task, 0, len(tasks))
	for _, existing := range tasks {
		if existing.ID != id {
			updated = append(updated, existing)
		}
	}
	if len(updated) == len(tasks) {
		return ErrTaskNotFound
	}

	if err := storage.WriteJSON(s.path, updated); err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	return nil
}
