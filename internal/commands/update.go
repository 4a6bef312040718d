package commands

import (
	"context"
	"io"

	"taskman/internal/service"
)

func init() {
	Register(&UpdateCmd{})
}

// UpdateCmd replaces the category and description of a displayed task.
// Both fields go to the store in one write rather than one write per field,
// so a failure never leaves the task half updated. Status is left alone.
type UpdateCmd struct{}

func (c *UpdateCmd) Name() string     { return "u" }
func (c *UpdateCmd) Arity() int       { return 4 }
func (c *UpdateCmd) Synopsis() string { return "update" }
func (c *UpdateCmd) Usage() string    { return "u,<id>,<category>,<description>" }

func (c *UpdateCmd) Run(ctx context.Context, sess *Session, svc service.Store, args []string, out io.Writer) Result {
	task, err := sess.ResolveTaskRef(args[0])
	if err != nil {
		return refFailure(err)
	}

	fields := service.Fields{
		service.FieldCategory:    args[1],
		service.FieldDescription: args[2],
	}
	if err := svc.SetFields(ctx, task.ID, fields); err != nil {
		return storeFailure("update", err)
	}
	return success()
}
