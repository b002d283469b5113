package command

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// WrapperName is the wrapper executable looked up on PATH and in the
// install root.
const WrapperName = "opencode-inline"

var (
	ErrScriptNotFound      = errors.New("wrapper script not found")
	ErrScriptNotExecutable = errors.New("wrapper script is not executable")
)

// ResolveOptions controls where ResolveScript looks.
type ResolveOptions struct {
	Override    string                       // configured script-path
	Name        string                       // defaults to WrapperName
	InstallRoot string                       // bundled fallback root; see InstallRoot
	LookPath    func(string) (string, error) // defaults to exec.LookPath
}

// ResolveScript returns the absolute path of the wrapper executable. It
// tries the configured override, then Name on PATH, then
// <InstallRoot>/bin/<Name>. The first candidate that exists and is
// executable wins. When a candidate exists without the execute bit and
// nothing else resolves, ErrScriptNotExecutable is returned.
func ResolveScript(opts ResolveOptions) (string, error) {
	name := opts.Name
	if name == "" {
		name = WrapperName
	}
	lookPath := opts.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	var searched []string
	var notExec string

	check := func(p string) bool {
		abs, err := filepath.Abs(expandHome(p))
		if err != nil {
			return false
		}
		searched = append(searched, abs)
		switch ok, exists := executable(abs); {
		case ok:
			return true
		case exists && notExec == "":
			notExec = abs
		}
		return false
	}

	if opts.Override != "" && check(opts.Override) {
		return filepath.Abs(expandHome(opts.Override))
	}
	if p, err := lookPath(name); err == nil && check(p) {
		return filepath.Abs(p)
	}
	if opts.InstallRoot != "" {
		fallback := filepath.Join(opts.InstallRoot, "bin", name)
		if check(fallback) {
			return fallback, nil
		}
	}

	if notExec != "" {
		return "", fmt.Errorf("%w: %s", ErrScriptNotExecutable, notExec)
	}
	where := "PATH"
	if len(searched) > 0 {
		where = strings.Join(searched, ", ") + ", PATH"
	}
	return "", fmt.Errorf("%w: looked for %q in %s", ErrScriptNotFound, name, where)
}

// InstallRoot returns the directory above the one holding the running
// executable, so a wrapper installed next to it in bin/ is found.
func InstallRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(filepath.Dir(exe))
}

// executable reports whether p is a regular file with an execute bit, and
// whether it exists at all.
func executable(p string) (ok, exists bool) {
	info, err := os.Stat(p)
	if err != nil {
		return false, false
	}
	if info.IsDir() {
		return false, false
	}
	return info.Mode().Perm()&0111 != 0, true
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
