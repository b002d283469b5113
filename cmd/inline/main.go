package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/jorge-barreto/opencode-inline/internal/check"
	"github.com/jorge-barreto/opencode-inline/internal/command"
	"github.com/jorge-barreto/opencode-inline/internal/config"
	"github.com/jorge-barreto/opencode-inline/internal/docs"
	"github.com/jorge-barreto/opencode-inline/internal/filter"
	"github.com/jorge-barreto/opencode-inline/internal/history"
	"github.com/jorge-barreto/opencode-inline/internal/scaffold"
	"github.com/jorge-barreto/opencode-inline/internal/ux"
)

func main() {
	app := &cli.Command{
		Name:        "inline",
		Usage:       "Rewrite a text selection with an AI command line tool",
		Description: "Run 'inline docs' for documentation on configuration, presets, and the wrapper protocol.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Config file (default: nearest .opencode-inline.yaml)"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Debug-level logging"},
			&cli.StringFlag{Name: "log-file", Usage: "Write JSON logs to `FILE`"},
		},
		Commands: []*cli.Command{
			buildCmd(),
			runCmd(),
			presetsCmd(),
			checkCmd(),
			initCmd(),
			docsCmd(),
			historyCmd(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	err := app.Run(ctx, os.Args)
	stop()
	if err != nil {
		ux.Error("%v", err)
		var fe *filter.FilterError
		if errors.As(err, &fe) && fe.Code > 0 {
			os.Exit(fe.Code)
		}
		os.Exit(1)
	}
}

func buildCmd() *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "Print the range-filter command line for an instruction",
		ArgsUsage: "[instruction]",
		Flags:     requestFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			opts, err := s.requestOptions(cmd, "", true)
			if err != nil {
				return err
			}
			cl, err := s.build(opts)
			if errors.Is(err, command.ErrNoCommand) {
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Println(cl)
			return nil
		},
	}
}

func runCmd() *cli.Command {
	flags := append(requestFlags(),
		&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Rewrite `PATH` in place"},
		&cli.StringFlag{Name: "selection", Aliases: []string{"s"}, Usage: "Marked selection `A,B` used when --range is absent (default: whole file)"},
		&cli.BoolFlag{Name: "stdin", Usage: "Filter stdin to stdout"},
	)
	return &cli.Command{
		Name:      "run",
		Usage:     "Apply an instruction to a file range or to stdin",
		ArgsUsage: "[instruction]",
		Flags:     flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			file, stdin := cmd.String("file"), cmd.Bool("stdin")
			if (file == "") == !stdin {
				return fmt.Errorf("exactly one of --file or --stdin is required")
			}
			if stdin && cmd.String("range") != "" {
				return fmt.Errorf("--range needs --file")
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			opts, err := s.requestOptions(cmd, command.FiletypeFromPath(file), !stdin)
			if err != nil {
				return err
			}
			cl, err := s.build(opts)
			if errors.Is(err, command.ErrNoCommand) {
				return nil
			}
			if err != nil {
				return err
			}

			inv := &filter.Invoker{Stderr: os.Stderr, Logger: s.log}
			tracker := s.history()
			if tracker != nil {
				defer tracker.Close()
			}
			timed := history.Start(tracker)

			var res *filter.Result
			target := "-"
			if stdin {
				res, err = inv.ApplyStream(ctx, os.Stdin, os.Stdout, cl)
			} else {
				target = file
				var sel *command.LineRange
				if v := cmd.String("selection"); v != "" {
					if sel, err = command.ParseRange(v); err != nil {
						return err
					}
				}
				res, err = inv.ApplyFile(ctx, file, cl, sel)
			}

			if res != nil {
				rec := history.Record{
					Target:      target,
					Range:       res.Range.String(),
					Filetype:    opts.Filetype,
					Instruction: opts.Instruction,
					Preset:      opts.Preset,
					ExitCode:    res.ExitCode,
					LinesIn:     res.LinesIn,
					LinesOut:    res.LinesOut,
				}
				if herr := timed.Done(rec); herr != nil {
					s.log.Warn("recording history", zap.Error(herr))
				}
			}
			if err != nil {
				return err
			}
			if !stdin {
				ux.Success("%s lines %s: %d → %d lines (%s)",
					file, res.Range, res.LinesIn, res.LinesOut, ux.Duration(res.Duration))
			}
			return nil
		},
	}
}

func presetsCmd() *cli.Command {
	return &cli.Command{
		Name:  "presets",
		Usage: "List configured presets",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			presets := s.presets.Presets()
			if len(presets) == 0 {
				ux.Info("No presets configured. Run 'inline docs presets'.")
				return nil
			}
			var rows [][]string
			for _, p := range presets {
				desc := p.Description
				if desc == "" {
					desc = ux.Truncate(p.Instruction, 60)
				}
				rows = append(rows, []string{p.Trigger, desc, strings.Join(p.ExtraArgs, " ")})
			}
			fmt.Print(ux.FormatTable([]string{"TRIGGER", "DESCRIPTION", "EXTRA ARGS"}, rows))
			return nil
		},
	}
}

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Verify the wrapper and AI tool are installed",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			report := check.Run(check.Options{
				Config:      s.cfg,
				InstallRoot: command.InstallRoot(),
				Getenv:      os.Getenv,
			})
			report.Render(os.Stdout)
			if !report.OK() {
				return fmt.Errorf("failed checks: %s", strings.Join(report.Failed(), ", "))
			}
			return nil
		},
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write an example .opencode-inline config in the current directory",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Value: scaffold.FormatYAML, Usage: "yaml or toml"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			_, err = scaffold.Init(dir, cmd.String("format"))
			return err
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-12s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'inline docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			out, err := docs.Render(t, ux.IsTerminal(os.Stdout), terminalWidth())
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}

func historyCmd() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recent invocations",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "Number of records"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			if !s.cfg.History.Enabled {
				ux.Info("History is disabled. Set history.enabled: true in your config.")
				return nil
			}
			tracker, err := history.Open(s.cfg.History.DBPath)
			if err != nil {
				return err
			}
			defer tracker.Close()

			records, err := tracker.Recent(int(cmd.Int("limit")))
			if err != nil {
				return err
			}
			var rows [][]string
			for _, r := range records {
				what := r.Instruction
				if r.Preset != "" {
					what = "@" + r.Preset
				}
				rows = append(rows, []string{
					r.Timestamp, r.Target, r.Range, fmt.Sprint(r.ExitCode),
					fmt.Sprintf("%d→%d", r.LinesIn, r.LinesOut), ux.Truncate(what, 40),
				})
			}
			fmt.Print(ux.FormatTable([]string{"TIME", "TARGET", "RANGE", "EXIT", "LINES", "INSTRUCTION"}, rows))

			if sum, err := tracker.Summary(); err == nil {
				fmt.Printf("\n%d runs, %d failed\n", sum.Total, sum.Failed)
			}
			return nil
		},
	}
}

func (s *session) build(opts command.Options) (command.CommandLine, error) {
	req, err := command.NewRequest(s.cfg, opts)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(req.Instruction) == "" {
		return "", command.ErrNoCommand
	}
	script, err := s.script()
	if err != nil {
		return "", err
	}
	cl, err := command.Build(req, script)
	if err != nil {
		return "", err
	}
	s.log.Debug("command built", zap.String("command_line", cl.String()))
	return cl, nil
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func promptHistoryFile() string {
	return filepath.Join(config.DataDir(), "prompt_history")
}

// terminalWidth returns the stdout width capped at 120 columns, or 80 when
// stdout is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return min(w, 120)
}
