// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
	"fmt"
)

// Errors reported by Store implementations. Backends wrap them with %w so
// callers can match with errors.Is.
var (
	ErrNotFound    = errors.New("not found")
	ErrPermission  = errors.New("permission denied")
	ErrTimeout     = errors.New("request timed out")
	ErrUnavailable = errors.New("store unavailable")
	ErrCredentials = errors.New("invalid credentials")
)

// Store defines the interface for task document operations.
// All Firestore calls go through this interface.
// Commands never import the Firestore SDK directly.
type Store interface {
	// Query returns every task matching all constraints in filter.
	// Results are in store order (no client-side sorting).
	Query(ctx context.Context, filter Filter) ([]Task, error)

	// Insert creates a new open task and returns its store-assigned ID.
	Insert(ctx context.Context, category, description string) (string, error)

	// Delete removes a task. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// SetFields overwrites the named fields of one task.
	// Returns an error wrapping ErrNotFound if the task does not exist.
	SetFields(ctx context.Context, id string, fields Fields) error
}

// GetTasks runs filter against store and returns the matching tasks in
// store order. The result is never nil when err is nil.
func GetTasks(ctx context.Context, store Store, filter Filter) ([]Task, error) {
	tasks, err := store.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}
