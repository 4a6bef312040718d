// Package exitcode defines exit codes for the CLI.
package exitcode

// The command loop itself never changes the exit code; only startup can fail.
const (
	// Success indicates a normal exit via the x command or end of input.
	Success = 0

	// UserError indicates bad command-line flags or arguments.
	UserError = 1

	// ConfigError indicates a configuration or credentials problem.
	ConfigError = 2

	// BackendError indicates the store session could not be opened.
	BackendError = 3

	// Interrupted indicates termination by SIGINT or SIGTERM.
	Interrupted = 130
)
