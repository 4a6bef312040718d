package commands

import (
	"context"
	"fmt"
	"io"

	"taskman/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
// The table is not redrawn after help so the text stays on screen.
type HelpCmd struct{}

func (c *HelpCmd) Name() string     { return "h" }
func (c *HelpCmd) Arity() int       { return 1 }
func (c *HelpCmd) Synopsis() string { return "help" }
func (c *HelpCmd) Usage() string    { return "h" }

func (c *HelpCmd) Run(ctx context.Context, sess *Session, svc service.Store, args []string, out io.Writer) Result {
	fmt.Fprint(out, helpText)
	return Result{Outcome: Hold}
}

const helpText = `q,<o|c|a>,<category|*> - query (o=open, c=closed, a=all)
c,<id> - close
o,<id> - re-open
i,<category>,<description> - insert
d,<id> - delete
u,<id>,<category>,<description> - update
h - help
x - exit
`
