package commands

import (
	"errors"
	"fmt"
)

// Outcome tells the shell what to do after a command.
type Outcome int

const (
	// Continue redisplays the table before the next prompt.
	Continue Outcome = iota
	// Hold skips the next redisplay.
	Hold
	// Exit terminates the shell.
	Exit
)

// ErrorKind classifies a failed command.
type ErrorKind int

const (
	KindNone     ErrorKind = iota
	KindSyntax             // unknown code, wrong token count, bad quoting
	KindBadRef             // non-numeric or out-of-range task position
	KindStore              // the store rejected or failed the operation
	KindInternal           // unexpected failure inside a command
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSyntax:
		return "syntax"
	case KindBadRef:
		return "bad-ref"
	case KindStore:
		return "store"
	case KindInternal:
		return "internal"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	// ErrInvalidCommand reports an unknown code or a wrong token count.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrInvalidTaskRef reports a task position that is not a number.
	ErrInvalidTaskRef = errors.New("invalid task reference")

	// ErrTaskRefOutOfRange reports a position outside the displayed list.
	ErrTaskRefOutOfRange = errors.New("task number out of range")
)

// StoreError records which store operation failed.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *StoreError) Unwrap() error { return e.Err }

// Result is returned by every command.
type Result struct {
	Outcome Outcome
	Kind    ErrorKind
	Err     error
}

// Failed reports whether the command failed.
func (r Result) Failed() bool { return r.Err != nil }

func success() Result { return Result{Outcome: Continue} }

// Fail builds a failed result of the given kind.
func Fail(kind ErrorKind, err error) Result {
	return Result{Outcome: Continue, Kind: kind, Err: err}
}

func storeFailure(op string, err error) Result {
	return Fail(KindStore, &StoreError{Op: op, Err: err})
}

// refFailure classifies a task reference error.
func refFailure(err error) Result {
	return Fail(KindBadRef, err)
}
