// Package command turns an instruction and its configuration into a single
// escaped range-filter command line.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jorge-barreto/opencode-inline/internal/config"
)

const (
	// EnvFiletype carries the filetype hint to the wrapper.
	EnvFiletype = config.EnvPrefix + "FILETYPE"
	// EnvStripCodeblock carries "1" or "0" to the wrapper.
	EnvStripCodeblock = config.EnvPrefix + "STRIP_CODEBLOCK"

	// SelectionMarker is the range that targets the caller's marked selection.
	SelectionMarker = "'<,'>"
)

var ErrInvalidRange = errors.New("invalid line range")

// LineRange is an inclusive, 1-based line range.
type LineRange struct {
	Start int
	End   int
}

// ParseRange parses "start,end". A single number selects one line.
func ParseRange(s string) (*LineRange, error) {
	s = strings.TrimSpace(s)
	startStr, endStr, found := strings.Cut(s, ",")
	if !found {
		endStr = startStr
	}
	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidRange, s, err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(endStr))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidRange, s, err)
	}
	r := &LineRange{Start: start, End: end}
	if start < 1 || start > end {
		return nil, fmt.Errorf("%w %q: need 1 <= start <= end", ErrInvalidRange, s)
	}
	return r, nil
}

// Validate checks the range against a buffer of lineCount lines.
func (r LineRange) Validate(lineCount int) error {
	if r.Start < 1 || r.Start > r.End {
		return fmt.Errorf("%w %s: need 1 <= start <= end", ErrInvalidRange, r)
	}
	if r.End > lineCount {
		return fmt.Errorf("%w %s: buffer has %d lines", ErrInvalidRange, r, lineCount)
	}
	return nil
}

func (r LineRange) String() string {
	return fmt.Sprintf("%d,%d", r.Start, r.End)
}

// ExecutionRequest is the unit of work handed to Build. It is constructed
// fresh per invocation and never stored.
type ExecutionRequest struct {
	Instruction    string
	ExtraArgs      []string
	DefaultArgs    []string
	Env            config.OrderedEnv
	Filetype       string
	Range          *LineRange // nil targets the marked selection
	StripCodeblock bool
}

// Options are the per-call inputs combined with configuration by NewRequest.
type Options struct {
	Instruction string
	Preset      string
	Filetype    string
	Range       *LineRange
	Strip       *bool // nil uses the configured default
	ExtraArgs   []string
	Presets     PresetLookup // nil looks presets up in the config
}

// PresetLookup resolves a preset trigger, typically a preset.Registry.
type PresetLookup interface {
	Lookup(trigger string) (config.Preset, bool)
}

// NewRequest assembles a request from configuration and per-call options.
// A preset supplies the instruction when none is given and contributes its
// extra args ahead of the caller's.
func NewRequest(cfg *config.Config, opts Options) (ExecutionRequest, error) {
	req := ExecutionRequest{
		Instruction:    opts.Instruction,
		DefaultArgs:    cfg.DefaultArgs,
		Env:            cfg.Env,
		Filetype:       opts.Filetype,
		Range:          opts.Range,
		StripCodeblock: cfg.Strip(),
	}
	if opts.Strip != nil {
		req.StripCodeblock = *opts.Strip
	}
	if opts.Preset != "" {
		lookup := cfg.Preset
		if opts.Presets != nil {
			lookup = opts.Presets.Lookup
		}
		p, ok := lookup(opts.Preset)
		if !ok {
			return ExecutionRequest{}, fmt.Errorf("unknown preset %q", opts.Preset)
		}
		if strings.TrimSpace(req.Instruction) == "" {
			req.Instruction = p.Instruction
		}
		req.ExtraArgs = append(req.ExtraArgs, p.ExtraArgs...)
	}
	req.ExtraArgs = append(req.ExtraArgs, opts.ExtraArgs...)
	return req, nil
}
