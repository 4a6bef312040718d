// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"taskman/internal/service"
)

// FakeStore is an in-memory implementation of service.Store for testing.
// Tasks are kept in insertion order, which Query preserves.
type FakeStore struct {
	mu    sync.RWMutex
	tasks []service.Task

	// Error injection for testing
	QueryErr     error
	InsertErr    error
	DeleteErr    error
	SetFieldsErr error

	// Calls records the operations performed, e.g. "set t1 category,description".
	Calls []string
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

// AddTask adds a task with a fixed ID.
func (f *FakeStore) AddTask(id, category, description string, open bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{
		ID:          id,
		Category:    category,
		Description: description,
		Status:      open,
	})
}

// Task returns the stored task with the given ID.
func (f *FakeStore) Task(id string) (service.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Len returns the number of stored tasks.
func (f *FakeStore) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.tasks)
}

// Query implements service.Store.
func (f *FakeStore) Query(ctx context.Context, filter service.Filter) ([]service.Task, error) {
	if f.QueryErr != nil {
		return nil, f.QueryErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	var result []service.Task
	for _, t := range f.tasks {
		if filter.Matches(t) {
			result = append(result, t)
		}
	}
	return result, nil
}

// Insert implements service.Store.
func (f *FakeStore) Insert(ctx context.Context, category, description string) (string, error) {
	if f.InsertErr != nil {
		return "", f.InsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	id := uuid.NewString()
	f.tasks = append(f.tasks, service.Task{
		ID:          id,
		Category:    category,
		Description: description,
		Status:      true,
	})
	f.Calls = append(f.Calls, "insert "+id)
	return id, nil
}

// Delete implements service.Store.
func (f *FakeStore) Delete(ctx context.Context, id string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, "delete "+id)
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

// SetFields implements service.Store.
func (f *FakeStore) SetFields(ctx context.Context, id string, fields service.Fields) error {
	if f.SetFieldsErr != nil {
		return f.SetFieldsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	f.Calls = append(f.Calls, fmt.Sprintf("set %s %v", id, keys))

	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		updated := f.tasks[i]
		for _, k := range keys {
			if err := applyField(&updated, k, fields[k]); err != nil {
				return err
			}
		}
		f.tasks[i] = updated
		return nil
	}
	return fmt.Errorf("task %s: %w", id, service.ErrNotFound)
}

func applyField(t *service.Task, name string, value any) error {
	switch name {
	case service.FieldCategory, service.FieldDescription:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %s: want string, got %T", name, value)
		}
		if name == service.FieldCategory {
			t.Category = s
		} else {
			t.Description = s
		}
	case service.FieldStatus:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("field %s: want bool, got %T", name, value)
		}
		t.Status = b
	default:
		return fmt.Errorf("unknown field: %s", name)
	}
	return nil
}
