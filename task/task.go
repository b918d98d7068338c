// Package task implements the task list: a flat JSON collection of tasks
// with add, toggle-completion, and delete operations.
//
// Task names are unique case-insensitively. Tasks keep their insertion
// order in storage and deleting a task preserves the relative order of
// the rest.
package task

// Task represents a single to-do item.
type Task struct {
	// ID is an opaque unique identifier, generated at creation and never
	// reused.
	ID string `json:"id"`

	// Name is the user-entered task text.
	Name string `json:"name"`

	// Completed reports whether the task is done.
	Completed bool `json:"completed"`
}

// Repository provides access to the task collection.
type Repository interface {
	// List returns all tasks in stored order. Absent or unreadable
	// storage is treated as an empty list.
	List() []Task

	// Add appends a new task with the given name and returns it.
	Add(name string) (Task, error)

	// SetCompleted updates the completion flag of the task with the
	// given id.
	SetCompleted(id string, completed bool) error

	// Delete removes the task with the given id.
	Delete(id string) error
}

// CountByStatus returns the number of pending and completed tasks.
func CountByStatus(tasks []Task) (pending, completed int) {
	for _, t := range tasks {
		if t.Completed {
			completed++
		} else {
			pending++
		}
	}
	return pending, completed
}

// FilterPending returns the tasks that are not completed, in order.
func FilterPending(tasks []Task) []Task {
	var pending []Task
	for _, t := range tasks {
		if !t.Completed {
			pending = append(pending, t)
		}
	}
	return pending
}
