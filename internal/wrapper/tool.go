package wrapper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jorge-barreto/opencode-inline/internal/proc"
)

// DefaultToolCommand runs a single non-interactive opencode turn.
var DefaultToolCommand = []string{"opencode", "run"}

// Prompt delivery modes for Tool.PromptMode.
const (
	PromptAsArg   = "arg"
	PromptAsStdin = "stdin"
)

// ErrToolNotFound is returned when the AI tool binary cannot be started.
var ErrToolNotFound = errors.New("AI tool not found")

// ToolResult holds the outcome of one AI tool run.
type ToolResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Tool runs the underlying AI command line tool.
type Tool struct {
	Command    []string  // program and leading args; DefaultToolCommand when empty
	PromptMode string    // PromptAsArg (default) or PromptAsStdin
	Env        []string  // nil inherits
	Stderr     io.Writer // receives the tool's stderr as it is produced
	Logger     *zap.Logger
}

// Run invokes the tool once with the forwarded args followed by the
// request. Stdout and stderr are drained concurrently so neither pipe can
// stall the tool. A non-zero exit is reported through ToolResult, not as
// an error.
func (t *Tool) Run(ctx context.Context, request string, args []string) (*ToolResult, error) {
	command := t.Command
	if len(command) == 0 {
		command = DefaultToolCommand
	}
	argv := make([]string, 0, len(command)-1+len(args)+1)
	argv = append(argv, command[1:]...)
	argv = append(argv, args...)

	log := t.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log.Debug("starting tool", zap.String("program", command[0]), zap.Strings("args", argv))

	if t.PromptMode == PromptAsStdin {
		cmd := exec.CommandContext(ctx, command[0], argv...)
		cmd.Stdin = strings.NewReader(request)
		return t.run(cmd, log)
	}
	return t.run(exec.CommandContext(ctx, command[0], append(argv, request)...), log)
}

func (t *Tool) run(cmd *exec.Cmd, log *zap.Logger) (*ToolResult, error) {
	name := cmd.Args[0]
	cmd.Env = t.Env

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
		}
		return nil, fmt.Errorf("starting %s: %w", name, err)
	}

	var stdout, stderr bytes.Buffer
	var g errgroup.Group
	g.Go(func() error {
		_, err := stdout.ReadFrom(stdoutPipe)
		return err
	})
	g.Go(func() error {
		var w io.Writer = &stderr
		if t.Stderr != nil {
			w = io.MultiWriter(t.Stderr, &stderr)
		}
		_, err := io.Copy(w, stderrPipe)
		return err
	})
	drainErr := g.Wait()

	code, err := proc.ExitCode(cmd.Wait())
	if err != nil {
		return nil, fmt.Errorf("waiting for %s: %w", name, err)
	}
	if drainErr != nil {
		return nil, fmt.Errorf("reading %s output: %w", name, drainErr)
	}
	log.Debug("tool exited", zap.Int("exit_code", code), zap.Int("stdout_bytes", stdout.Len()))

	return &ToolResult{ExitCode: code, Stdout: stdout.String(), Stderr: stderr.String()}, nil
}

// ToolCommand parses a whitespace separated command prefix, falling back
// to DefaultToolCommand when s is blank.
func ToolCommand(s string) []string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields
	}
	return DefaultToolCommand
}

// BuildEnv returns the parent environment without CLAUDECODE variables, so
// an AI tool started from inside another agent session does not refuse to
// run nested.
func BuildEnv(environ []string) []string {
	out := make([]string, 0, len(environ))
	for _, e := range environ {
		key, _, _ := strings.Cut(e, "=")
		if strings.HasPrefix(key, "CLAUDECODE") {
			continue
		}
		out = append(out, e)
	}
	return out
}
