package commands

import (
	"context"
	"io"

	"taskman/internal/service"
)

func init() {
	Register(&CloseCmd{})
	Register(&OpenCmd{})
}

// CloseCmd marks a displayed task closed.
type CloseCmd struct{}

func (c *CloseCmd) Name() string     { return "c" }
func (c *CloseCmd) Arity() int       { return 2 }
func (c *CloseCmd) Synopsis() string { return "close" }
func (c *CloseCmd) Usage() string    { return "c,<id>" }

func (c *CloseCmd) Run(ctx context.Context, sess *Session, svc service.Store, args []string, out io.Writer) Result {
	return runSetStatus(ctx, sess, svc, args[0], false)
}

// OpenCmd re-opens a displayed task.
type OpenCmd struct{}

func (c *OpenCmd) Name() string     { return "o" }
func (c *OpenCmd) Arity() int       { return 2 }
func (c *OpenCmd) Synopsis() string { return "re-open" }
func (c *OpenCmd) Usage() string    { return "o,<id>" }

func (c *OpenCmd) Run(ctx context.Context, sess *Session, svc service.Store, args []string, out io.Writer) Result {
	return runSetStatus(ctx, sess, svc, args[0], true)
}

// runSetStatus is the shared implementation for close and open.
// Setting a status the task already has is not an error.
func runSetStatus(ctx context.Context, sess *Session, svc service.Store, ref string, open bool) Result {
	task, err := sess.ResolveTaskRef(ref)
	if err != nil {
		return refFailure(err)
	}

	if err := svc.SetFields(ctx, task.ID, service.Fields{service.FieldStatus: open}); err != nil {
		return storeFailure("set status", err)
	}
	return success()
}
