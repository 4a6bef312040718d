package commands

import (
	"context"
	"io"

	"taskman/internal/service"
)

func init() {
	Register(&InsertCmd{})
}

// InsertCmd creates a new open task.
type InsertCmd struct{}

func (c *InsertCmd) Name() string     { return "i" }
func (c *InsertCmd) Arity() int       { return 3 }
func (c *InsertCmd) Synopsis() string { return "insert" }
func (c *InsertCmd) Usage() string    { return "i,<category>,<description>" }

func (c *InsertCmd) Run(ctx context.Context, sess *Session, svc service.Store, args []string, out io.Writer) Result {
	if _, err := svc.Insert(ctx, args[0], args[1]); err != nil {
		return storeFailure("insert", err)
	}
	return success()
}
