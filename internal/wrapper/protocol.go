package wrapper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jorge-barreto/opencode-inline/internal/command"
	"github.com/jorge-barreto/opencode-inline/internal/config"
)

// Environment variables read only by the wrapper.
const (
	EnvTool         = config.EnvPrefix + "TOOL"
	EnvPromptMode   = config.EnvPrefix + "PROMPT_MODE"
	EnvArtifactsDir = config.EnvPrefix + "ARTIFACTS_DIR"
)

// Exit codes of the wrapper besides those propagated from the tool.
const (
	ExitFailure      = 1
	ExitUsage        = 2
	ExitToolNotFound = 127
)

// Params are the protocol inputs carried in the environment.
type Params struct {
	Filetype string
	Strip    bool
}

// ParamsFromEnv reads the filetype hint and strip flag. Only "0" turns
// stripping off; an unset flag keeps the default of stripping.
func ParamsFromEnv(getenv func(string) string) Params {
	return Params{
		Filetype: getenv(command.EnvFiletype),
		Strip:    getenv(command.EnvStripCodeblock) != "0",
	}
}

// Invocation is one run of the wrapper executable.
type Invocation struct {
	Args   []string // instruction followed by forwarded tool args
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Tool   *Tool // nil builds one from the environment
	Logger *zap.Logger
}

// Run executes the wrapper protocol and returns the process exit code.
// Nothing is written to Stdout unless the tool succeeded.
func Run(ctx context.Context, inv Invocation) int {
	getenv := inv.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	log := inv.Logger
	if log == nil {
		log = zap.NewNop()
	}
	runID := uuid.NewString()
	log = log.With(zap.String("run_id", runID))

	if len(inv.Args) == 0 {
		fmt.Fprintln(inv.Stderr, "opencode-inline: instruction argument is required")
		return ExitUsage
	}
	instruction, forwarded := inv.Args[0], inv.Args[1:]
	params := ParamsFromEnv(getenv)

	body, err := io.ReadAll(inv.Stdin)
	if err != nil {
		fmt.Fprintf(inv.Stderr, "opencode-inline: reading selection: %v\n", err)
		return ExitFailure
	}

	request := Frame(instruction, params.Filetype, string(body))
	log.Debug("framed request",
		zap.String("filetype", params.Filetype),
		zap.Bool("strip", params.Strip),
		zap.Int("body_bytes", len(body)),
		zap.Strings("forwarded", forwarded))

	tool := inv.Tool
	if tool == nil {
		tool = &Tool{
			Command:    ToolCommand(getenv(EnvTool)),
			PromptMode: getenv(EnvPromptMode),
			Env:        BuildEnv(os.Environ()),
			Stderr:     inv.Stderr,
			Logger:     log,
		}
	}

	tee := newArtifacts(getenv(EnvArtifactsDir), runID, log)
	tee.save("prompt.md", request)

	res, err := tool.Run(ctx, request, forwarded)
	if err != nil {
		fmt.Fprintf(inv.Stderr, "opencode-inline: %v\n", err)
		if errors.Is(err, ErrToolNotFound) {
			return ExitToolNotFound
		}
		return ExitFailure
	}
	tee.save("response.txt", res.Stdout)
	if res.ExitCode != 0 {
		log.Info("tool failed", zap.Int("exit_code", res.ExitCode))
		return res.ExitCode
	}

	ext := Extract(res.Stdout, params.Strip)
	log.Debug("extracted", zap.Bool("found", ext.Found), zap.String("lang", ext.Lang))
	if _, err := io.WriteString(inv.Stdout, ext.Payload); err != nil {
		fmt.Fprintf(inv.Stderr, "opencode-inline: writing output: %v\n", err)
		return ExitFailure
	}
	return 0
}

// artifacts saves the framed prompt and raw response of a run under
// <root>/<run id>/ for inspection. An empty root disables it.
type artifacts struct {
	dir string
	log *zap.Logger
}

func newArtifacts(root, runID string, log *zap.Logger) *artifacts {
	if root == "" {
		return &artifacts{log: log}
	}
	dir := filepath.Join(root, runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Warn("artifacts disabled", zap.Error(err))
		return &artifacts{log: log}
	}
	return &artifacts{dir: dir, log: log}
}

func (a *artifacts) save(name, content string) {
	if a.dir == "" {
		return
	}
	if err := os.WriteFile(filepath.Join(a.dir, name), []byte(content), 0644); err != nil {
		a.log.Warn("saving artifact", zap.String("name", name), zap.Error(err))
	}
}
