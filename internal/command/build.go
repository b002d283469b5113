package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jorge-barreto/opencode-inline/internal/shellquote"
)

// ErrNoCommand is returned for a blank instruction. Callers treat it as a
// silent no-op: it is what an interactive cancel produces.
var ErrNoCommand = errors.New("no command: instruction is blank")

var ErrMalformedCommandLine = errors.New("malformed command line")

// CommandLine is a range prefix followed by fully escaped tokens, e.g.
//
//	12,20! OPENCODE_INLINE_FILETYPE=go OPENCODE_INLINE_STRIP_CODEBLOCK=1 /usr/bin/opencode-inline 'Add docs'
type CommandLine string

// Build assembles the command line for req. script is the resolved wrapper
// path. Every untrusted value is quoted exactly once; env keys are emitted
// as-is since config validation restricts them to identifiers.
func Build(req ExecutionRequest, script string) (CommandLine, error) {
	if strings.TrimSpace(req.Instruction) == "" {
		return "", ErrNoCommand
	}

	tokens := make([]string, 0, 4+len(req.Env)+len(req.DefaultArgs)+len(req.ExtraArgs))

	strip := "0"
	if req.StripCodeblock {
		strip = "1"
	}
	tokens = append(tokens,
		EnvFiletype+"="+shellquote.Quote(req.Filetype),
		EnvStripCodeblock+"="+strip,
	)
	for _, e := range req.Env {
		if strings.TrimSpace(e.Key) == "" || e.Value == nil {
			continue
		}
		tokens = append(tokens, e.Key+"="+shellquote.Quote(*e.Value))
	}

	tokens = append(tokens, shellquote.Quote(script), shellquote.Quote(req.Instruction))
	for _, a := range req.DefaultArgs {
		tokens = append(tokens, shellquote.Quote(a))
	}
	for _, a := range req.ExtraArgs {
		tokens = append(tokens, shellquote.Quote(a))
	}

	return CommandLine(rangePrefix(req.Range) + " " + strings.Join(tokens, " ")), nil
}

func rangePrefix(r *LineRange) string {
	if r == nil {
		return SelectionMarker + "!"
	}
	return fmt.Sprintf("%d,%d!", r.Start, r.End)
}

// Split separates the range prefix from the shell command. A nil range
// means the command targets the marked selection.
func (c CommandLine) Split() (*LineRange, string, error) {
	s := string(c)
	bang := strings.IndexByte(s, '!')
	if bang < 0 {
		return nil, "", fmt.Errorf("%w: missing '!'", ErrMalformedCommandLine)
	}
	prefix, cmd := s[:bang], strings.TrimPrefix(s[bang+1:], " ")
	if strings.TrimSpace(cmd) == "" {
		return nil, "", fmt.Errorf("%w: empty command", ErrMalformedCommandLine)
	}
	if prefix == SelectionMarker {
		return nil, cmd, nil
	}
	startStr, endStr, ok := strings.Cut(prefix, ",")
	if !ok {
		return nil, "", fmt.Errorf("%w: range %q", ErrMalformedCommandLine, prefix)
	}
	start, err1 := strconv.Atoi(startStr)
	end, err2 := strconv.Atoi(endStr)
	if err1 != nil || err2 != nil {
		return nil, "", fmt.Errorf("%w: range %q", ErrMalformedCommandLine, prefix)
	}
	return &LineRange{Start: start, End: end}, cmd, nil
}

func (c CommandLine) String() string {
	return string(c)
}
