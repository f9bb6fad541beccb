// Package main is the entry point for the todoview CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"todoview/internal/backend/todoapi"
	"todoview/internal/cli"
	"todoview/internal/commands"
	"todoview/internal/config"
	"todoview/internal/service"
)

func main() {
	// Cancel on interrupt so serve shuts down and API calls abort
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return todoapi.New(ctx, cfg)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
