package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jorge-barreto/opencode-inline/internal/config"
	"github.com/jorge-barreto/opencode-inline/internal/ux"
)

func quiet(t *testing.T) {
	t.Helper()
	prev := ux.Stderr
	ux.Stderr = &bytes.Buffer{}
	t.Cleanup(func() { ux.Stderr = prev })
}

func TestInit_YAMLIsValid(t *testing.T) {
	quiet(t)
	dir := t.TempDir()
	path, err := Init(dir, "")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if filepath.Base(path) != ".opencode-inline.yaml" {
		t.Fatalf("path = %s", path)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("config.Load failed on generated config: %v", err)
	}
	if len(cfg.Presets) != 3 {
		t.Fatalf("expected 3 presets, got %d", len(cfg.Presets))
	}
	if !cfg.Strip() {
		t.Fatal("generated config should strip code blocks")
	}
}

func TestInit_TOMLIsValid(t *testing.T) {
	quiet(t)
	dir := t.TempDir()
	path, err := Init(dir, FormatTOML)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("config.Load failed on generated config: %v", err)
	}
	if p, ok := cfg.Preset("tests"); !ok || p.Description != "Generate tests" {
		t.Fatalf("preset tests = %+v, %v", p, ok)
	}
}

func TestInit_FailsIfConfigExists(t *testing.T) {
	quiet(t)
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, ".opencode-inline.toml"), []byte(""), 0644)

	_, err := Init(dir, FormatYAML)
	if err == nil {
		t.Fatal("expected error when a project config already exists")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInit_UnknownFormat(t *testing.T) {
	quiet(t)
	if _, err := Init(t.TempDir(), "json"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestInit_LocatedFromSubdirectory(t *testing.T) {
	quiet(t)
	dir := t.TempDir()
	path, err := Init(dir, FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "a", "b")
	os.MkdirAll(sub, 0755)
	if got := config.Locate(sub); got != path {
		t.Fatalf("Locate = %q, want %q", got, path)
	}
}
