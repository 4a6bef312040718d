package commands

import (
	"context"
	"io"

	"taskman/internal/service"
)

func init() {
	Register(&DeleteCmd{})
}

// DeleteCmd removes a displayed task from the store.
type DeleteCmd struct{}

func (c *DeleteCmd) Name() string     { return "d" }
func (c *DeleteCmd) Arity() int       { return 2 }
func (c *DeleteCmd) Synopsis() string { return "delete" }
func (c *DeleteCmd) Usage() string    { return "d,<id>" }

func (c *DeleteCmd) Run(ctx context.Context, sess *Session, svc service.Store, args []string, out io.Writer) Result {
	task, err := sess.ResolveTaskRef(args[0])
	if err != nil {
		return refFailure(err)
	}

	if err := svc.Delete(ctx, task.ID); err != nil {
		return storeFailure("delete", err)
	}
	return success()
}
