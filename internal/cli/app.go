package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"taskman/internal/commands"
	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/service"
)

// Version is the application version. Set at build time.
var Version = "0.1.0"

// StoreFactory opens a store session from config.
// Used to inject the backend at startup.
type StoreFactory func(ctx context.Context, cfg *config.Config, logger *log.Logger) (service.Store, error)

// App parses process flags, opens the store and runs the shell.
type App struct {
	registry *commands.Registry
	factory  StoreFactory
}

// NewApp creates a new app with the given registry and store factory.
func NewApp(registry *commands.Registry, factory StoreFactory) *App {
	return &App{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments, then runs the shell on in/out until it exits.
// Returns the exit code.
func (a *App) Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	var (
		configDir   string
		projectID   string
		credentials string
		debug       bool
		version     bool
	)
	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&projectID, "project", "", "")
	fs.StringVar(&credentials, "credentials", "", "")
	fs.BoolVar(&debug, "debug", false, "")
	fs.BoolVar(&version, "version", false, "")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(out, usageText)
			return exitcode.Success
		}
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	if version {
		fmt.Fprintf(out, "%s %s\n", config.AppName, Version)
		return exitcode.Success
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", fs.Arg(0))
		return exitcode.UserError
	}

	cfg, err := config.Load(configDir, config.Overrides{
		ProjectID:   projectID,
		Credentials: credentials,
		Debug:       debug,
	})
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.ConfigError
	}

	logger := NewLogger(errOut, cfg.Debug)
	logger.Debug("configuration loaded", "dir", cfg.Dir, "project", cfg.ProjectID, "emulator", cfg.UsesEmulator())

	svc, err := a.factory(ctx, cfg, logger)
	if err != nil {
		if errors.Is(err, service.ErrCredentials) || errors.Is(err, service.ErrPermission) {
			fmt.Fprintf(errOut, "error: auth error: %s\n", err)
			return exitcode.ConfigError
		}
		fmt.Fprintf(errOut, "error: backend error: %s\n", err)
		return exitcode.BackendError
	}
	if closer, ok := svc.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				logger.Debug("closing store", "err", err)
			}
		}()
	}

	shell := NewShell(a.registry, svc, logger)
	if err := shell.Run(ctx, in, out); err != nil {
		if errors.Is(err, context.Canceled) {
			return exitcode.Interrupted
		}
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}

// flagError rewrites flag package errors into the CLI's wording.
func flagError(err error) string {
	errStr := err.Error()

	if strings.HasPrefix(errStr, "flag needs an argument:") {
		return "flag needs an argument: " + strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
	}
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		return "unknown flag: " + strings.TrimSpace(strings.TrimPrefix(errStr, "flag provided but not defined:"))
	}
	return errStr
}

const usageText = `Usage:
  taskman [flags]

Flags:
  --config <dir>        Override config directory
  --project <id>        Google Cloud project ID
  --credentials <file>  Service account key file
  --debug               Print debug logs to stderr
  --version             Print version

Type h at the prompt for the command list.
`
