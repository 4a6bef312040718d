package commands

import (
	"context"
	"io"

	"taskman/internal/service"
)

func init() {
	Register(&ExitCmd{})
}

// ExitCmd ends the shell.
type ExitCmd struct{}

func (c *ExitCmd) Name() string     { return "x" }
func (c *ExitCmd) Arity() int       { return 1 }
func (c *ExitCmd) Synopsis() string { return "exit" }
func (c *ExitCmd) Usage() string    { return "x" }

func (c *ExitCmd) Run(ctx context.Context, sess *Session, svc service.Store, args []string, out io.Writer) Result {
	return Result{Outcome: Exit}
}
