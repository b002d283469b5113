// Package scaffold writes a starter project configuration.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/opencode-inline/internal/config"
	"github.com/jorge-barreto/opencode-inline/internal/ux"
)

// Formats accepted by Init.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

var yamlTemplate = `# opencode-inline project configuration.
# Run "inline docs config" for every option.

# script-path: /path/to/opencode-inline
strip-codeblock: true

# Arguments passed to the AI tool on every invocation.
default-args: []

# Extra variables set on the wrapper command line, in this order.
env: {}

presets:
  - trigger: doc
    instruction: Add or improve doc comments. Do not change behaviour.
    description: Document the selection
  - trigger: fix
    instruction: Fix any bugs in this code and keep the style.
    description: Fix bugs in the selection
  - trigger: tests
    instruction: Write unit tests for this code.
    description: Generate tests

history:
  enabled: false
`

var tomlTemplate = `# opencode-inline project configuration.
# Run "inline docs config" for every option.

# script-path = "/path/to/opencode-inline"
strip-codeblock = true

# Arguments passed to the AI tool on every invocation.
default-args = []

[env]

[[presets]]
trigger = "doc"
instruction = "Add or improve doc comments. Do not change behaviour."
description = "Document the selection"

[[presets]]
trigger = "fix"
instruction = "Fix any bugs in this code and keep the style."
description = "Fix bugs in the selection"

[[presets]]
trigger = "tests"
instruction = "Write unit tests for this code."
description = "Generate tests"

[history]
enabled = false
`

// FileName returns the project config file name for format.
func FileName(format string) string {
	if format == FormatTOML {
		return ".opencode-inline.toml"
	}
	return ".opencode-inline.yaml"
}

// Init writes an example project config into targetDir. It refuses to
// overwrite any existing project config. Returns the written path.
func Init(targetDir, format string) (string, error) {
	var tmpl string
	switch format {
	case "", FormatYAML:
		format, tmpl = FormatYAML, yamlTemplate
	case FormatTOML:
		tmpl = tomlTemplate
	default:
		return "", fmt.Errorf("unknown config format %q (want yaml or toml)", format)
	}

	for _, name := range config.ProjectFileNames {
		if _, err := os.Stat(filepath.Join(targetDir, name)); err == nil {
			return "", fmt.Errorf("%s already exists in %s", name, targetDir)
		}
	}

	path := filepath.Join(targetDir, FileName(format))
	if err := os.WriteFile(path, []byte(tmpl), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", FileName(format), err)
	}

	ux.Success("Created %s", path)
	ux.Info("  Next steps:")
	ux.Info("    1. Edit %s to add presets and default tool args", FileName(format))
	ux.Info("    2. Run \"inline check\" to verify the wrapper and tool are installed")
	return path, nil
}
