package task

import "errors"

var (
	// ErrEmptyName is returned when a task name is empty or whitespace.
	ErrEmptyName = errors.New("task name cannot be empty")

	// ErrDuplicateTask is returned when a task with the same name
	// (compared case-insensitively) already exists.
	ErrDuplicateTask = errors.New("a task with that name already exists")

	// ErrTaskNotFound is returned when no task has the given id.
	ErrTaskNotFound = errors.New("task not found")
)
