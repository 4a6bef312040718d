// Package main is the entry point for the taskman CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"taskman/internal/backend/firestoredb"
	"taskman/internal/cli"
	"taskman/internal/commands"
	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/service"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The shell blocks on stdin, so a signal cancels any store call in
	// flight and then exits directly.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
		os.Exit(exitcode.Interrupted)
	}()

	factory := func(ctx context.Context, cfg *config.Config, logger *log.Logger) (service.Store, error) {
		client, err := firestoredb.New(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	app := cli.NewApp(commands.DefaultRegistry, factory)

	code := app.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(code)
}
