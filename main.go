package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/stupside/fingerprint/cmd"
)

func main() {
	if slices.Contains(os.Args, "--debug") {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cmd.Root()

	err := root.Run(ctx, os.Args)
	if err == nil {
		return
	}
	if cause := context.Cause(ctx); cause != nil {
		slog.InfoContext(ctx, "shutting down", "cause", cause)
		return
	}

	// Exit codes are applied here, after the root After hook closed the store.
	var exit cli.ExitCoder
	if errors.As(err, &exit) {
		if msg := exit.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		stop()
		os.Exit(exit.ExitCode())
	}

	slog.Error("application error", "error", err)
	stop()
	os.Exit(1)
}
