package command

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeExec(t *testing.T, dir, name string, mode os.FileMode) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("#!/bin/sh\n"), mode); err != nil {
		t.Fatal(err)
	}
	return p
}

func lookPathTo(p string) func(string) (string, error) {
	return func(string) (string, error) {
		if p == "" {
			return "", errors.New("not found")
		}
		return p, nil
	}
}

func TestResolveScript_OverrideWins(t *testing.T) {
	root := t.TempDir()
	override := writeExec(t, filepath.Join(root, "custom"), "wrap", 0755)
	onPath := writeExec(t, filepath.Join(root, "path"), WrapperName, 0755)
	writeExec(t, filepath.Join(root, "install", "bin"), WrapperName, 0755)

	got, err := ResolveScript(ResolveOptions{
		Override:    override,
		InstallRoot: filepath.Join(root, "install"),
		LookPath:    lookPathTo(onPath),
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != override {
		t.Fatalf("got %q, want override %q", got, override)
	}
}

func TestResolveScript_PathBeforeFallback(t *testing.T) {
	root := t.TempDir()
	onPath := writeExec(t, filepath.Join(root, "path"), WrapperName, 0755)
	writeExec(t, filepath.Join(root, "install", "bin"), WrapperName, 0755)

	got, err := ResolveScript(ResolveOptions{
		Override:    filepath.Join(root, "missing"),
		InstallRoot: filepath.Join(root, "install"),
		LookPath:    lookPathTo(onPath),
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != onPath {
		t.Fatalf("got %q, want PATH match %q", got, onPath)
	}
}

func TestResolveScript_Fallback(t *testing.T) {
	root := t.TempDir()
	fallback := writeExec(t, filepath.Join(root, "bin"), WrapperName, 0755)

	got, err := ResolveScript(ResolveOptions{InstallRoot: root, LookPath: lookPathTo("")})
	if err != nil {
		t.Fatal(err)
	}
	if got != fallback {
		t.Fatalf("got %q, want %q", got, fallback)
	}
}

func TestResolveScript_NotExecutableOverrideFallsThrough(t *testing.T) {
	root := t.TempDir()
	override := writeExec(t, root, "plain", 0644)
	fallback := writeExec(t, filepath.Join(root, "bin"), WrapperName, 0755)

	got, err := ResolveScript(ResolveOptions{Override: override, InstallRoot: root, LookPath: lookPathTo("")})
	if err != nil {
		t.Fatal(err)
	}
	if got != fallback {
		t.Fatalf("got %q, want %q", got, fallback)
	}
}

func TestResolveScript_NotExecutable(t *testing.T) {
	root := t.TempDir()
	override := writeExec(t, root, "plain", 0644)

	_, err := ResolveScript(ResolveOptions{Override: override, LookPath: lookPathTo("")})
	if !errors.Is(err, ErrScriptNotExecutable) {
		t.Fatalf("got %v, want ErrScriptNotExecutable", err)
	}
}

func TestResolveScript_NotFound(t *testing.T) {
	root := t.TempDir()
	_, err := ResolveScript(ResolveOptions{
		Override:    filepath.Join(root, "nope"),
		InstallRoot: root,
		LookPath:    lookPathTo(""),
	})
	if !errors.Is(err, ErrScriptNotFound) {
		t.Fatalf("got %v, want ErrScriptNotFound", err)
	}
}

func TestResolveScript_DirectoryIsNotAScript(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "bin", WrapperName), 0755); err != nil {
		t.Fatal(err)
	}
	_, err := ResolveScript(ResolveOptions{InstallRoot: root, LookPath: lookPathTo("")})
	if !errors.Is(err, ErrScriptNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestResolveScript_HomeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	want := writeExec(t, filepath.Join(home, "bin"), "wrap", 0755)

	got, err := ResolveScript(ResolveOptions{Override: "~/bin/wrap", LookPath: lookPathTo("")})
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
