package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is shared by every environment variable this project reads.
const EnvPrefix = "OPENCODE_INLINE_"

// ProjectFileNames are probed, in order, in each directory while walking up.
var ProjectFileNames = []string{
	".opencode-inline.yaml",
	".opencode-inline.yml",
	".opencode-inline.toml",
}

// Preset is a named instruction bound to a trigger. A preset without a
// trigger is inert.
type Preset struct {
	Trigger     string   `yaml:"trigger" toml:"trigger"`
	Instruction string   `yaml:"instruction" toml:"instruction"`
	Description string   `yaml:"description" toml:"description"`
	ExtraArgs   []string `yaml:"extra-args" toml:"extra-args"`
}

type History struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	DBPath  string `yaml:"db-path" toml:"db-path"`
}

// Config is the read-only configuration consumed when building commands.
// A Config is never mutated after Load returns; reloading yields a new value.
type Config struct {
	ScriptPath     string     `yaml:"script-path"`
	StripCodeblock *bool      `yaml:"strip-codeblock"`
	DefaultArgs    []string   `yaml:"default-args"`
	Env            OrderedEnv `yaml:"env"`
	Presets        []Preset   `yaml:"presets"`
	History        History    `yaml:"history"`

	// Path is the file the config was loaded from, empty for defaults.
	Path string `yaml:"-"`
}

// tomlConfig mirrors Config for TOML files. TOML tables carry no order,
// so env entries are sorted by key when converted.
type tomlConfig struct {
	ScriptPath     string            `toml:"script-path"`
	StripCodeblock *bool             `toml:"strip-codeblock"`
	DefaultArgs    []string          `toml:"default-args"`
	Env            map[string]string `toml:"env"`
	Presets        []Preset          `toml:"presets"`
	History        History           `toml:"history"`
}

// Strip reports whether code block stripping is enabled by default.
func (c *Config) Strip() bool {
	return c.StripCodeblock == nil || *c.StripCodeblock
}

// Preset returns the active preset with the given trigger.
func (c *Config) Preset(trigger string) (Preset, bool) {
	if trigger == "" {
		return Preset{}, false
	}
	for _, p := range c.Presets {
		if p.Trigger == trigger {
			return p, true
		}
	}
	return Preset{}, false
}

// Default returns a validated configuration with no file behind it.
func Default() *Config {
	cfg := &Config{}
	// Validate cannot fail on an empty config.
	_ = Validate(cfg)
	return cfg
}

// Load reads a YAML or TOML config file and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := parse(path, data)
	if err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

func parse(path string, data []byte) (*Config, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var tc tomlConfig
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&tc); err != nil {
			return nil, err
		}
		return &Config{
			ScriptPath:     tc.ScriptPath,
			StripCodeblock: tc.StripCodeblock,
			DefaultArgs:    tc.DefaultArgs,
			Env:            envFromMap(tc.Env),
			Presets:        tc.Presets,
			History:        tc.History,
		}, nil
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// An empty or comment-only file decodes to EOF: all defaults.
		if errors.Is(err, io.EOF) {
			return &Config{}, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// Resolve finds and loads the configuration for this process. explicit
// comes from the --config flag and wins over everything else; then the
// OPENCODE_INLINE_CONFIG variable, then the nearest project file walking up
// from dir, then the user config directory. With no file found, defaults
// are returned.
func Resolve(explicit, dir string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if p := os.Getenv(EnvPrefix + "CONFIG"); p != "" {
		return Load(p)
	}
	if p := Locate(dir); p != "" {
		return Load(p)
	}
	return Default(), nil
}

// Locate walks up from dir looking for a project config file, then checks
// the user config directory. Returns "" when nothing is found.
func Locate(dir string) string {
	if dir != "" {
		for {
			for _, name := range ProjectFileNames {
				p := filepath.Join(dir, name)
				if _, err := os.Stat(p); err == nil {
					return p
				}
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}
	userDir := UserConfigDir()
	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		p := filepath.Join(userDir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// UserConfigDir returns $XDG_CONFIG_HOME/opencode-inline or its ~/.config fallback.
func UserConfigDir() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "opencode-inline")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "opencode-inline")
}

// DataDir returns $XDG_DATA_HOME/opencode-inline or its ~/.local/share
// fallback.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return filepath.Join(d, "opencode-inline")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".local", "share", "opencode-inline")
}

// DefaultHistoryPath returns the history database location used when
// history is enabled without an explicit db-path.
func DefaultHistoryPath() string {
	return filepath.Join(DataDir(), "history.db")
}
