package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/goliatone/go-mdserve"
)

var (
	moduleBuilder = mdserve.New
	configBuilder = mdserve.DefaultConfig
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:            "mdserve",
		Usage:           "serve Markdown files from ./static as HTML on 127.0.0.1:3000",
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		Action: func(c *cli.Context) error {
			if err := run(c.Context, configBuilder(), stdout); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return nil
		},
	}
}

func run(ctx context.Context, cfg mdserve.Config, stdout io.Writer) error {
	module, err := moduleBuilder(cfg, mdserve.WithStdout(stdout))
	if err != nil {
		return fmt.Errorf("initialise server: %w", err)
	}
	return module.Run(ctx)
}
