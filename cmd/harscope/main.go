package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/usestring/harscope/internal/cli"
)

// Build-time variable set via ldflags
var version = "dev"

func main() {
	// Set up context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.Version = version
	cli.Execute(ctx)
}
