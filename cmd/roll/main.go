// Package main provides a CLI for rolling dice notation.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	rollcmd "github.com/louisbranch/dicelang/internal/cmd/roll"
	platformcmd "github.com/louisbranch/dicelang/internal/platform/cmd"
	"github.com/louisbranch/dicelang/internal/platform/config"
)

func main() {
	cfg, err := rollcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceRoll, func(ctx context.Context) error {
		return rollcmd.Run(ctx, cfg, os.Stdout, os.Stderr)
	})
	if err != nil {
		stop()
		fmt.Fprintln(os.Stderr, rollcmd.ErrorMessage(err, cfg.Locale))
		os.Exit(rollcmd.ExitCode(err))
	}
}
