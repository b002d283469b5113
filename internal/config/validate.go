package config

import (
	"fmt"
	"regexp"
	"strings"
)

var envKeyRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// reserved are set by the command builder itself and may not be overridden.
var reserved = map[string]bool{
	EnvPrefix + "FILETYPE":        true,
	EnvPrefix + "STRIP_CODEBLOCK": true,
}

// Validate checks the config for errors and sets defaults.
func Validate(cfg *Config) error {
	if cfg.StripCodeblock == nil {
		strip := true
		cfg.StripCodeblock = &strip
	}

	for _, arg := range cfg.DefaultArgs {
		if strings.TrimSpace(arg) == "" {
			return fmt.Errorf("config: 'default-args' entries must be non-empty")
		}
	}

	// Blank keys are tolerated here and skipped when commands are built.
	seenEnv := make(map[string]bool)
	for _, v := range cfg.Env {
		if strings.TrimSpace(v.Key) == "" {
			continue
		}
		if !envKeyRe.MatchString(v.Key) {
			return fmt.Errorf("config: env: %q is not a valid variable name (must match [A-Za-z_][A-Za-z0-9_]*)", v.Key)
		}
		if reserved[v.Key] {
			return fmt.Errorf("config: env: %q is set by opencode-inline and cannot be overridden", v.Key)
		}
		if seenEnv[v.Key] {
			return fmt.Errorf("config: env: duplicate variable %q", v.Key)
		}
		seenEnv[v.Key] = true
	}

	seenTrigger := make(map[string]bool)
	for i, p := range cfg.Presets {
		if p.Trigger == "" {
			continue
		}
		if strings.TrimSpace(p.Instruction) == "" {
			return fmt.Errorf("config: preset %q: 'instruction' is required", p.Trigger)
		}
		if seenTrigger[p.Trigger] {
			return fmt.Errorf("config: duplicate preset trigger %q", p.Trigger)
		}
		seenTrigger[p.Trigger] = true
		for _, arg := range p.ExtraArgs {
			if strings.TrimSpace(arg) == "" {
				return fmt.Errorf("config: preset %d (%s): 'extra-args' entries must be non-empty", i+1, p.Trigger)
			}
		}
	}

	if cfg.History.Enabled && cfg.History.DBPath == "" {
		cfg.History.DBPath = DefaultHistoryPath()
	}
	return nil
}
