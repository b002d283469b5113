// Package check diagnoses an installation: configuration, the wrapper
// executable and the binaries it depends on.
package check

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/jorge-barreto/opencode-inline/internal/command"
	"github.com/jorge-barreto/opencode-inline/internal/config"
	"github.com/jorge-barreto/opencode-inline/internal/ux"
	"github.com/jorge-barreto/opencode-inline/internal/wrapper"
)

// Item is the outcome of one diagnostic.
type Item struct {
	Name   string
	OK     bool
	Detail string
}

// Report is an ordered list of diagnostics.
type Report []Item

// OK reports whether every item passed.
func (r Report) OK() bool {
	for _, it := range r {
		if !it.OK {
			return false
		}
	}
	return true
}

// Failed returns the names of failing items.
func (r Report) Failed() []string {
	var names []string
	for _, it := range r {
		if !it.OK {
			names = append(names, it.Name)
		}
	}
	return names
}

// Options supplies the environment to diagnose.
type Options struct {
	Config      *config.Config
	InstallRoot string
	Getenv      func(string) string
	LookPath    func(string) (string, error) // defaults to exec.LookPath
}

// Run performs every diagnostic. It never stops at the first failure.
func Run(opts Options) Report {
	lookPath := opts.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	var r Report

	if cfg.Path != "" {
		r = append(r, Item{Name: "config", OK: true, Detail: cfg.Path})
	} else {
		r = append(r, Item{Name: "config", OK: true, Detail: "built-in defaults"})
	}
	r = append(r, Item{Name: "presets", OK: true, Detail: fmt.Sprintf("%d configured", len(cfg.Presets))})

	script, err := command.ResolveScript(command.ResolveOptions{
		Override:    cfg.ScriptPath,
		InstallRoot: opts.InstallRoot,
		LookPath:    lookPath,
	})
	if err != nil {
		r = append(r, Item{Name: "wrapper", Detail: err.Error()})
	} else {
		r = append(r, Item{Name: "wrapper", OK: true, Detail: script})
	}

	r = append(r, binary("sh", lookPath))

	toolSpec := ""
	if opts.Getenv != nil {
		toolSpec = opts.Getenv(wrapper.EnvTool)
	}
	r = append(r, binary(wrapper.ToolCommand(toolSpec)[0], lookPath))

	return r
}

func binary(name string, lookPath func(string) (string, error)) Item {
	p, err := lookPath(name)
	if err != nil {
		return Item{Name: name, Detail: "not found in PATH"}
	}
	return Item{Name: name, OK: true, Detail: p}
}

// Render prints the report as check-marked lines.
func (r Report) Render(w io.Writer) {
	for _, it := range r {
		mark, style := "✓", ux.SuccessStyle
		if !it.OK {
			mark, style = "✗", ux.ErrorStyle
		}
		fmt.Fprintf(w, "  %s %-10s %s\n", ux.Render(style, mark), it.Name, ux.Render(ux.DimStyle, it.Detail))
	}
}
