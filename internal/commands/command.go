// Package commands provides the one-letter commands of the task shell.
package commands

import (
	"context"
	"io"

	"taskman/internal/service"
)

// Command defines the interface for shell commands.
type Command interface {
	// Name returns the command code typed as the first token, e.g. "c".
	Name() string

	// Arity returns the exact number of comma-separated tokens the command
	// takes, including the code itself. Any other count is invalid.
	Arity() int

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// Run executes the command.
	// sess is the shell state; commands read the displayed list from it and
	// may change its filter.
	// args contains the tokens after the command code; len(args) == Arity()-1.
	Run(ctx context.Context, sess *Session, svc service.Store, args []string, out io.Writer) Result
}
