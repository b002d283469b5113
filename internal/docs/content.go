package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with inline",
		Content: topicQuickstart,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "Config file locations, fields, and defaults",
		Content: topicConfig,
	},
	{
		Name:    "filter",
		Title:   "Range Filters",
		Summary: "Command line syntax and how the selection is replaced",
		Content: topicFilter,
	},
	{
		Name:    "protocol",
		Title:   "Wrapper Protocol",
		Summary: "Arguments, environment, and output of opencode-inline",
		Content: topicProtocol,
	},
	{
		Name:    "presets",
		Title:   "Presets",
		Summary: "Named instructions bound to triggers",
		Content: topicPresets,
	},
	{
		Name:    "history",
		Title:   "Invocation History",
		Summary: "Opt-in SQLite log of filter runs",
		Content: topicHistory,
	},
}

const topicQuickstart = "# Quick Start\n\n" +
	"1. Install both binaries on your PATH: `inline` and `opencode-inline`.\n" +
	"2. Check the installation:\n\n" +
	"       inline check\n\n" +
	"3. Create a project config with a few presets:\n\n" +
	"       inline init\n\n" +
	"4. Rewrite lines 10 to 20 of a file in place:\n\n" +
	"       inline run --file main.go --range 10,20 \"Add doc comments\"\n\n" +
	"5. Or print the filter command for your editor and run it there:\n\n" +
	"       inline build --range 10,20 --filetype go \"Add doc comments\"\n\n" +
	"## Commands\n\n" +
	"| command | purpose |\n" +
	"|---|---|\n" +
	"| `inline build` | print the range-filter command line |\n" +
	"| `inline run` | filter a file range in place, or stdin to stdout |\n" +
	"| `inline presets` | list configured presets |\n" +
	"| `inline check` | verify wrapper and AI tool are installed |\n" +
	"| `inline init` | write an example project config |\n" +
	"| `inline docs [topic]` | show documentation |\n" +
	"| `inline history` | show recent invocations |\n\n" +
	"A blank instruction is a no-op: nothing is built and nothing runs.\n"

const topicConfig = "# Configuration Reference\n\n" +
	"Configuration is read once per process from the first of:\n\n" +
	"1. the `--config` flag\n" +
	"2. `$OPENCODE_INLINE_CONFIG`\n" +
	"3. the nearest `.opencode-inline.yaml`, `.yml` or `.toml` walking up from the working directory\n" +
	"4. `$XDG_CONFIG_HOME/opencode-inline/config.{yaml,yml,toml}`\n\n" +
	"With no file, built-in defaults apply. Unknown fields are errors.\n\n" +
	"## Fields\n\n" +
	"| field | type | default | meaning |\n" +
	"|---|---|---|---|\n" +
	"| `script-path` | string | | explicit wrapper executable |\n" +
	"| `strip-codeblock` | bool | `true` | replace the selection with the first fenced block only |\n" +
	"| `default-args` | list | `[]` | arguments for the AI tool on every run |\n" +
	"| `env` | mapping | `{}` | extra variables on the wrapper command line, in order |\n" +
	"| `presets` | list | `[]` | see `inline docs presets` |\n" +
	"| `history.enabled` | bool | `false` | record runs, see `inline docs history` |\n" +
	"| `history.db-path` | string | `$XDG_DATA_HOME/opencode-inline/history.db` | database file |\n\n" +
	"`env` keys must be shell identifiers. `OPENCODE_INLINE_FILETYPE` and\n" +
	"`OPENCODE_INLINE_STRIP_CODEBLOCK` are reserved. Values are quoted for the shell.\n\n" +
	"## Environment\n\n" +
	"| variable | meaning |\n" +
	"|---|---|\n" +
	"| `OPENCODE_INLINE_CONFIG` | config file path |\n" +
	"| `OPENCODE_INLINE_LOG` | JSON log file |\n" +
	"| `OPENCODE_INLINE_DEBUG=1` | debug-level logging |\n"

const topicFilter = "# Range Filters\n\n" +
	"`inline build` prints a command line in range-filter form:\n\n" +
	"    '<,'>! OPENCODE_INLINE_FILETYPE='go' OPENCODE_INLINE_STRIP_CODEBLOCK=1 '/usr/bin/opencode-inline' 'Add docs' ...\n\n" +
	"With `--range A,B` the prefix is `A,B!` instead of the selection marker.\n" +
	"Every value taken from the user is single-quoted, so `$(...)`, backticks\n" +
	"and quotes in an instruction reach the AI tool literally.\n\n" +
	"Token order is fixed: filetype, strip flag, `env` entries, wrapper path,\n" +
	"instruction, `default-args`, then extra args.\n\n" +
	"## Running filters\n\n" +
	"`inline run` is a range-filter host. It pipes the selected lines to\n" +
	"`sh -c <command>` and replaces them with the command's stdout. If the\n" +
	"command exits non-zero the file is left untouched and the last line of\n" +
	"stderr is reported. An empty output deletes the range.\n\n" +
	"    inline run --file app.py --range 3,9 --preset doc\n" +
	"    git diff | inline run --stdin \"Summarise this diff\"\n"

const topicProtocol = "# Wrapper Protocol\n\n" +
	"`opencode-inline <instruction> [tool args...]` reads the selection on\n" +
	"stdin and writes the replacement on stdout.\n\n" +
	"| variable | meaning |\n" +
	"|---|---|\n" +
	"| `OPENCODE_INLINE_FILETYPE` | language hint for the fenced selection, `text` when empty |\n" +
	"| `OPENCODE_INLINE_STRIP_CODEBLOCK` | `1` extracts the first fenced block, `0` passes the response through |\n" +
	"| `OPENCODE_INLINE_TOOL` | AI tool command, default `opencode run` |\n" +
	"| `OPENCODE_INLINE_PROMPT_MODE` | `arg` (default) or `stdin` |\n" +
	"| `OPENCODE_INLINE_ARTIFACTS_DIR` | save `prompt.md` and `response.txt` per run |\n\n" +
	"The request sent to the tool is a fixed code-only instruction, the user\n" +
	"instruction, and the selection inside a fence tagged with the filetype.\n\n" +
	"## Extraction\n\n" +
	"With stripping on, the body of the first complete fenced block is the\n" +
	"output. If no block is found the response is output unchanged.\n\n" +
	"## Exit codes\n\n" +
	"| code | meaning |\n" +
	"|---|---|\n" +
	"| 0 | success |\n" +
	"| 2 | missing instruction |\n" +
	"| 127 | AI tool not found |\n" +
	"| other | the AI tool's own exit code; nothing is written to stdout |\n"

const topicPresets = "# Presets\n\n" +
	"A preset binds a trigger to an instruction:\n\n" +
	"```yaml\n" +
	"presets:\n" +
	"  - trigger: doc\n" +
	"    instruction: Add doc comments\n" +
	"    description: Document the selection\n" +
	"    extra-args: [\"--agent\", \"docs\"]\n" +
	"```\n\n" +
	"Use one with `--preset doc`. An explicit instruction overrides the\n" +
	"preset's; its `extra-args` come before any given on the command line.\n" +
	"A preset without a trigger is ignored. Triggers must be unique.\n\n" +
	"Presets are loaded as one generation: when the config is read again,\n" +
	"triggers that were removed stop resolving.\n"

const topicHistory = "# Invocation History\n\n" +
	"Enable with:\n\n" +
	"```yaml\n" +
	"history:\n" +
	"  enabled: true\n" +
	"```\n\n" +
	"Every `inline run` then records the target, range, filetype,\n" +
	"instruction, preset, exit code, line counts and duration in SQLite.\n" +
	"Records older than 90 days are pruned.\n\n" +
	"    inline history --limit 20\n"
