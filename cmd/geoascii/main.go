package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"geoascii/internal/cli"
	errs "geoascii/internal/errors"
)

// Set via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0 -X main.commit=$(git rev-parse HEAD) -X main.date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version, commit, date)
	err := cli.Execute(ctx)
	if code := cli.ExitCode(err); code != 0 {
		if code != 130 {
			fmt.Fprintln(os.Stderr, "geoascii:", errs.UserMessage(err))
		}
		os.Exit(code)
	}
}
