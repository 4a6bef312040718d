package commands

import "taskman/internal/service"

// Session is the shell state carried from one cycle to the next.
type Session struct {
	// Filter selects the tasks shown on redisplay.
	Filter service.Filter

	// Tasks is the most recently displayed list. Task positions typed by
	// the user index into it and are only valid until the next redisplay.
	Tasks []service.Task

	// Redisplay requests a requery and table before the next prompt.
	Redisplay bool
}

// NewSession returns the initial state: open tasks in every category.
func NewSession() *Session {
	return &Session{
		Filter:    service.StatusFilter(true),
		Redisplay: true,
	}
}
