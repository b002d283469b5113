package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/opencode-inline/internal/logging"
	"github.com/jorge-barreto/opencode-inline/internal/wrapper"
)

func main() {
	code := 0
	app := &cli.Command{
		Name:            "opencode-inline",
		Usage:           "Frame stdin for an AI tool and print the first code block of its answer",
		ArgsUsage:       "<instruction> [tool args...]",
		SkipFlagParsing: true,
		HideHelp:        true,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log, err := logging.New(logging.Options{}.FromEnv(os.Getenv))
			if err != nil {
				return err
			}
			defer log.Sync()

			code = wrapper.Run(ctx, wrapper.Invocation{
				Args:   cmd.Args().Slice(),
				Stdin:  os.Stdin,
				Stdout: os.Stdout,
				Stderr: os.Stderr,
				Getenv: os.Getenv,
				Logger: log,
			})
			return nil
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	err := app.Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "opencode-inline: %v\n", err)
		os.Exit(wrapper.ExitFailure)
	}
	os.Exit(code)
}
