package main

import (
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/jorge-barreto/opencode-inline/internal/command"
	"github.com/jorge-barreto/opencode-inline/internal/config"
	"github.com/jorge-barreto/opencode-inline/internal/history"
	"github.com/jorge-barreto/opencode-inline/internal/logging"
	"github.com/jorge-barreto/opencode-inline/internal/preset"
	"github.com/jorge-barreto/opencode-inline/internal/prompt"
	"github.com/jorge-barreto/opencode-inline/internal/ux"
)

// session is the per-process state shared by subcommands: the loaded
// configuration, its preset generation and the logger.
type session struct {
	cfg     *config.Config
	presets *preset.Registry
	log     *zap.Logger
}

func openSession(cmd *cli.Command) (*session, error) {
	log, err := logging.New(logging.Options{
		Path:    cmd.String("log-file"),
		Verbose: cmd.Bool("verbose"),
	}.FromEnv(os.Getenv))
	if err != nil {
		return nil, err
	}

	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(cmd.String("config"), dir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	reg := preset.NewRegistry()
	gen := reg.Install(cfg.Presets)
	log.Debug("config loaded",
		zap.String("path", cfg.Path),
		zap.Int("presets", len(reg.Presets())),
		zap.Uint64("generation", gen))

	return &session{cfg: cfg, presets: reg, log: log}, nil
}

func (s *session) close() {
	_ = s.log.Sync()
}

// history opens the invocation log when enabled. Failures only warn: a
// broken history database must not block editing.
func (s *session) history() *history.Tracker {
	if !s.cfg.History.Enabled {
		return nil
	}
	t, err := history.Open(s.cfg.History.DBPath)
	if err != nil {
		ux.Warn("history disabled: %v", err)
		s.log.Warn("opening history", zap.Error(err))
		return nil
	}
	return t
}

// requestFlags are shared by build and run.
func requestFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "range", Aliases: []string{"r"}, Usage: "Target lines `A,B` (1-based, inclusive)"},
		&cli.StringFlag{Name: "preset", Aliases: []string{"p"}, Usage: "Use the instruction of preset `TRIGGER`"},
		&cli.StringFlag{Name: "filetype", Aliases: []string{"t"}, Usage: "Language hint for the selection"},
		&cli.BoolFlag{Name: "strip", Usage: "Replace the selection with the first fenced block only"},
		&cli.BoolFlag{Name: "no-strip", Usage: "Replace the selection with the whole response"},
		&cli.StringSliceFlag{Name: "arg", Usage: "Extra argument for the AI tool (repeatable)"},
	}
}

// requestOptions collects the shared flags and the instruction. With no
// instruction or preset and a terminal on stdin, the user is prompted.
func (s *session) requestOptions(cmd *cli.Command, filetype string, interactive bool) (command.Options, error) {
	opts := command.Options{
		Instruction: joinArgs(cmd.Args().Slice()),
		Preset:      cmd.String("preset"),
		Filetype:    filetype,
		ExtraArgs:   cmd.StringSlice("arg"),
		Presets:     s.presets,
	}
	if ft := cmd.String("filetype"); ft != "" {
		opts.Filetype = ft
	}

	if cmd.Bool("strip") && cmd.Bool("no-strip") {
		return opts, fmt.Errorf("--strip and --no-strip are mutually exclusive")
	}
	if cmd.Bool("strip") || cmd.Bool("no-strip") {
		strip := cmd.Bool("strip")
		opts.Strip = &strip
	}

	if r := cmd.String("range"); r != "" {
		rng, err := command.ParseRange(r)
		if err != nil {
			return opts, err
		}
		opts.Range = rng
	}

	if opts.Instruction == "" && opts.Preset == "" && interactive && ux.IsTerminal(os.Stdin) {
		var triggers []string
		for _, p := range s.presets.Presets() {
			triggers = append(triggers, p.Trigger)
		}
		p := &prompt.Prompter{
			HistoryFile: promptHistoryFile(),
			Triggers:    triggers,
		}
		ins, err := p.Instruction()
		if err != nil {
			return opts, err
		}
		if pr, ok := s.presets.Lookup(ins); ok {
			opts.Preset = pr.Trigger
		} else {
			opts.Instruction = ins
		}
	}
	return opts, nil
}

// script resolves the wrapper executable for the loaded config.
func (s *session) script() (string, error) {
	script, err := command.ResolveScript(command.ResolveOptions{
		Override:    s.cfg.ScriptPath,
		InstallRoot: command.InstallRoot(),
	})
	if err != nil {
		return "", err
	}
	s.log.Debug("wrapper resolved", zap.String("path", script))
	return script, nil
}
