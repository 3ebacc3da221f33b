package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dtnitsch/product-extractor/internal/batch"
	"github.com/dtnitsch/product-extractor/internal/common"
	"github.com/dtnitsch/product-extractor/internal/evaluate"
	"github.com/dtnitsch/product-extractor/internal/extract"
	"github.com/dtnitsch/product-extractor/pkg/help"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(common.ExitFailed)
	}
}

func newApp() *cli.App {
	commands := []*cli.Command{
		{
			Name:  "quickstart",
			Usage: "Print a command cheat sheet",
			Action: func(c *cli.Context) error {
				fmt.Fprint(c.App.Writer, help.QuickstartYAML)
				return nil
			},
		},
	}
	commands = append(commands, extract.Commands()...)
	commands = append(commands, evaluate.Commands()...)
	commands = append(commands, batch.Commands()...)

	return &cli.App{
		Name:     "product-extractor",
		Usage:    "Client for the product extraction service",
		Flags:    common.GlobalFlags(),
		Commands: commands,
	}
}
