package commands

import (
	"context"
	"io"

	"taskman/internal/service"
)

// AllCategories is the category token that removes the category filter.
const AllCategories = "*"

func init() {
	Register(&QueryCmd{})
}

// QueryCmd changes the session filter. The next redisplay runs the query.
type QueryCmd struct{}

func (c *QueryCmd) Name() string     { return "q" }
func (c *QueryCmd) Arity() int       { return 3 }
func (c *QueryCmd) Synopsis() string { return "query (o=open, c=closed, a=all)" }
func (c *QueryCmd) Usage() string    { return "q,<o|c|a>,<category|*>" }

func (c *QueryCmd) Run(ctx context.Context, sess *Session, svc service.Store, args []string, out io.Writer) Result {
	var filter service.Filter

	switch args[0] {
	case "o":
		filter = service.StatusFilter(true)
	case "c":
		filter = service.StatusFilter(false)
	default:
		// "a" and anything else: no status constraint
	}

	if args[1] != AllCategories {
		category := args[1]
		filter.Category = &category
	}

	sess.Filter = filter
	return success()
}
