package task

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	return NewStore(dir), dir
}

func TestAddAndList(t *testing.T) {
	store, _ := newTestStore(t)

	created, err := store.Add("Buy milk")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created.ID == "" {
		t.Error("expected non-empty id")
	}
	if created.Completed {
		t.Error("new task should not be completed")
	}

	tasks := store.List()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Name != "Buy milk" {
		t.Errorf("expected name %q, got %q", "Buy milk", tasks[0].Name)
	}
	if tasks[0].Completed {
		t.Error("listed task should not be completed")
	}
}

func TestAddDuplicateCaseInsensitive(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Add("Buy milk"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := store.Add("BUY MILK"); !errors.Is(err, ErrDuplicateTask) {
		t.Errorf("expected ErrDuplicateTask, got %v", err)
	}

	// Storage must be unchanged after the rejected add.
	if tasks := store.List(); len(tasks) != 1 {
		t.Errorf("expected 1 task, got %d", len(tasks))
	}
}

func TestAddEmptyName(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Add("   "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}

func TestAddGeneratesUniqueIDs(t *testing.T) {
	store, _ := newTestStore(t)

	first, err := store.Add("one")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	second, err := store.Add("two")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if first.ID == second.ID {
		t.Errorf("ids should differ, both %q", first.ID)
	}
}

func TestSetCompleted(t *testing.T) {
	store, _ := newTestStore(t)

	created, err := store.Add("Buy milk")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := store.SetCompleted(created.ID, true); err != nil {
		t.Fatalf("set completed: %v", err)
	}
	if tasks := store.List(); !tasks[0].Completed {
		t.Error("task should be completed")
	}

	if err := store.SetCompleted(created.ID, false); err != nil {
		t.Fatalf("set uncompleted: %v", err)
	}
	if tasks := store.List(); tasks[0].Completed {
		t.Error("task should not be completed")
	}
}

func TestSetCompletedUnknownID(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Add("Buy milk"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.SetCompleted("nope", true); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}

	// Storage must be unchanged.
	if tasks := store.List(); len(tasks) != 1 || tasks[0].Completed {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
}

func TestDeleteOnlyTask(t *testing.T) {
	store, _ := newTestStore(t)

	created, err := store.Add("Buy milk")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Delete(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if tasks := store.List(); len(tasks) != 0 {
		t.Errorf("expected empty list, got %v", tasks)
	}
}

func TestDeletePreservesOrder(t *testing.T) {
	store, _ := newTestStore(t)

	var ids []string
	for _, name := range []string{"one", "two", "three"} {
		created, err := store.Add(name)
		if err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
		ids = append(ids, created.ID)
	}

	if err := store.Delete(ids[1]); err != nil {
		t.Fatalf("delete: %v", err)
	}

	tasks := store.List()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Name != "one" || tasks[1].Name != "three" {
		t.Errorf("unexpected order: %q, %q", tasks[0].Name, tasks[1].Name)
	}
}

func TestDeleteUnknownID(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.Delete("nope"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestListUnreadableFile(t *testing.T) {
	store, dir := newTestStore(t)

	if err := os.WriteFile(filepath.Join(dir, TasksFile), []byte("not json"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if tasks := store.List(); len(tasks) != 0 {
		t.Errorf("expected empty list, got %v", tasks)
	}
}

func TestListMissingFile(t *testing.T) {
	store, _ := newTestStore(t)

	if tasks := store.List(); len(tasks) != 0 {
		t.Errorf("expected empty list, got %v", tasks)
	}
}

func TestCountByStatus(t *testing.T) {
	tasks := []Task{
		{ID: "a", Name: "one"},
		{ID: "b", Name: "two", Completed: true},
		{ID: "c", Name: "three"},
	}
	pending, completed := CountByStatus(tasks)
	if pending != 2 || completed != 1 {
		t.Errorf("expected 2 pending / 1 completed, got %d / %d", pending, completed)
	}
}

func TestFilterPending(t *testing.T) {
	tasks := []Task{
		{ID: "a", Name: "one", Completed: true},
		{ID: "b", Name: "two"},
	}
	pending := FilterPending(tasks)
	if len(pending) != 1 || pending[0].Name != "two" {
		t.Errorf("unexpected pending tasks: %v", pending)
	}
}
