// Package cli runs the interactive task shell.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"taskman/internal/commands"
	"taskman/internal/output"
	"taskman/internal/service"
)

const (
	// Prompt is printed before every input line.
	Prompt = "> "

	// InvalidMessage is the only error text the user sees for a command.
	InvalidMessage = "Invalid command."
)

// Shell is the read-eval-print loop over a task store.
type Shell struct {
	registry *commands.Registry
	svc      service.Store
	log      *log.Logger
}

// NewShell creates a shell dispatching to the commands in registry.
// A nil logger discards all log output.
func NewShell(registry *commands.Registry, svc service.Store, logger *log.Logger) *Shell {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Shell{
		registry: registry,
		svc:      svc,
		log:      logger,
	}
}

// Run reads commands from in until the exit command or end of input.
// Lines may be any length. Command failures are reported on out and never
// stop the loop; only a read error or a cancelled context is returned.
func (s *Shell) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	sess := commands.NewSession()
	reader := bufio.NewReader(in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(out)
		if sess.Redisplay {
			s.refresh(ctx, sess, out)
		} else {
			sess.Redisplay = true
		}

		fmt.Fprint(out, Prompt)
		line, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) && line == "" {
			fmt.Fprintln(out)
			s.log.Debug("end of input")
			return nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading input: %w", err)
		}

		res := s.Execute(ctx, sess, line, out)
		if res.Failed() {
			s.report(out, res)
		}

		switch res.Outcome {
		case commands.Exit:
			return nil
		case commands.Hold:
			sess.Redisplay = false
		}
	}
}

// refresh re-runs the session query and prints the table.
// On failure the displayed list is cleared so no stale position can be used.
func (s *Shell) refresh(ctx context.Context, sess *commands.Session, out io.Writer) {
	tasks, err := service.GetTasks(ctx, s.svc, sess.Filter)
	if err != nil {
		sess.Tasks = nil
		s.report(out, commands.Fail(commands.KindStore, &commands.StoreError{Op: "query", Err: err}))
		return
	}

	sess.Tasks = tasks
	output.DisplayTasks(out, tasks)
	fmt.Fprintln(out)
}

// Execute parses one input line and runs the matching command.
func (s *Shell) Execute(ctx context.Context, sess *commands.Session, line string, out io.Writer) (res commands.Result) {
	params, err := SplitCommand(line)
	if err != nil {
		return commands.Fail(commands.KindSyntax, err)
	}

	cmd, ok := s.registry.Find(params[0])
	if !ok || len(params) != cmd.Arity() {
		return commands.Fail(commands.KindSyntax, fmt.Errorf("%w: %q", commands.ErrInvalidCommand, line))
	}

	defer func() {
		if r := recover(); r != nil {
			res = commands.Fail(commands.KindInternal, fmt.Errorf("command %s panicked: %v", cmd.Name(), r))
		}
	}()

	s.log.Debug("dispatch", "command", cmd.Name(), "args", params[1:])
	return cmd.Run(ctx, sess, s.svc, params[1:], out)
}

// report prints the user-facing message and logs the failure detail.
func (s *Shell) report(out io.Writer, res commands.Result) {
	fmt.Fprintln(out, InvalidMessage)
	s.log.Debug("command failed", "kind", res.Kind, "err", res.Err)
}
