package filter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jorge-barreto/opencode-inline/internal/command"
	"github.com/jorge-barreto/opencode-inline/internal/proc"
)

// FilterError reports a filter command that exited non-zero. The buffer
// is left untouched when it is returned.
type FilterError struct {
	Code   int
	Stderr string
}

func (e *FilterError) Error() string {
	msg := fmt.Sprintf("filter command exited with code %d", e.Code)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + lastLine(s)
	}
	return msg
}

// Result describes one filter run.
type Result struct {
	Range    command.LineRange
	ExitCode int
	LinesIn  int
	LinesOut int
	Duration time.Duration
}

// Invoker executes command lines as range filters.
type Invoker struct {
	Shell  string    // defaults to "sh"
	Dir    string    // working directory for the command
	Env    []string  // nil inherits the current environment
	Stderr io.Writer // receives the command's stderr as it is produced
	Logger *zap.Logger
}

func (inv *Invoker) logger() *zap.Logger {
	if inv.Logger == nil {
		return zap.NewNop()
	}
	return inv.Logger
}

// Apply pipes the target range of buf through the command of cl and
// replaces the range with the command's stdout. Exactly one process is
// spawned. On non-zero exit a *FilterError is returned and buf is not
// modified. There is no timeout; ctx cancellation is the only way to stop
// a running filter.
func (inv *Invoker) Apply(ctx context.Context, buf *Buffer, cl command.CommandLine) (*Result, error) {
	rng, shellCmd, err := cl.Split()
	if err != nil {
		return nil, err
	}
	target, err := buf.Range(rng)
	if err != nil {
		return nil, err
	}

	shell := inv.Shell
	if shell == "" {
		shell = "sh"
	}

	cmd := exec.CommandContext(ctx, shell, "-c", shellCmd)
	cmd.Dir = inv.Dir
	cmd.Env = inv.Env
	setProcessGroup(cmd)
	cmd.WaitDelay = 5 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdin = strings.NewReader(buf.Text(target))
	cmd.Stdout = &stdout
	if inv.Stderr != nil {
		cmd.Stderr = io.MultiWriter(inv.Stderr, &stderr)
	} else {
		cmd.Stderr = &stderr
	}

	log := inv.logger().With(zap.String("range", target.String()))
	log.Debug("running filter", zap.String("command", shellCmd))

	start := time.Now()
	code, err := proc.ExitCode(cmd.Run())
	res := &Result{
		Range:    target,
		ExitCode: code,
		LinesIn:  target.End - target.Start + 1,
		Duration: time.Since(start),
	}
	if err != nil {
		return res, fmt.Errorf("running filter: %w", err)
	}
	if ctx.Err() != nil {
		return res, ctx.Err()
	}
	if code != 0 {
		log.Debug("filter failed", zap.Int("exit_code", code))
		return res, &FilterError{Code: code, Stderr: stderr.String()}
	}

	out := stdout.String()
	buf.Replace(target, out)
	res.LinesOut = len(splitLines(out))
	log.Debug("filter applied",
		zap.Int("lines_in", res.LinesIn),
		zap.Int("lines_out", res.LinesOut),
		zap.Duration("duration", res.Duration))
	return res, nil
}

// ApplyFile runs cl over the file at path and writes the result back
// atomically. selection marks the '<,'> range; nil selects the whole file.
func (inv *Invoker) ApplyFile(ctx context.Context, path string, cl command.CommandLine, selection *command.LineRange) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	buf := NewBuffer(string(data))
	if selection != nil {
		buf.Selection = selection
	} else {
		buf.SelectAll()
	}
	res, err := inv.Apply(ctx, buf, cl)
	if err != nil {
		return res, err
	}
	if err := writeFileAtomic(path, []byte(buf.String()), info.Mode().Perm()); err != nil {
		return res, fmt.Errorf("writing %s: %w", path, err)
	}
	return res, nil
}

// ApplyStream reads all of r, runs cl over it and writes the whole result
// to w. The selection covers all input. On failure the original input is
// written unchanged, so a pipe never loses text.
func (inv *Invoker) ApplyStream(ctx context.Context, r io.Reader, w io.Writer, cl command.CommandLine) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	buf := NewBuffer(string(data))
	buf.SelectAll()
	res, applyErr := inv.Apply(ctx, buf, cl)
	if applyErr != nil {
		if _, err := w.Write(data); err != nil {
			return res, err
		}
		return res, applyErr
	}
	_, err = io.WriteString(w, buf.String())
	return res, err
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
