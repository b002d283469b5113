package filter

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jorge-barreto/opencode-inline/internal/command"
)

func TestApply_ExplicitRange(t *testing.T) {
	b := NewBuffer("one\ntwo\nthree\n")
	inv := &Invoker{}
	res, err := inv.Apply(context.Background(), b, "2,3! tr a-z A-Z")
	if err != nil {
		t.Fatal(err)
	}
	if b.String() != "one\nTWO\nTHREE\n" {
		t.Fatalf("buffer = %q", b.String())
	}
	if res.ExitCode != 0 || res.LinesIn != 2 || res.LinesOut != 2 {
		t.Fatalf("result = %+v", res)
	}
}

func TestApply_Selection(t *testing.T) {
	b := NewBuffer("one\ntwo\nthree\n")
	b.Selection = &command.LineRange{Start: 1, End: 1}
	if _, err := (&Invoker{}).Apply(context.Background(), b, "'<,'>! sed s/one/uno/"); err != nil {
		t.Fatal(err)
	}
	if b.String() != "uno\ntwo\nthree\n" {
		t.Fatalf("buffer = %q", b.String())
	}
}

func TestApply_NoSelection(t *testing.T) {
	b := NewBuffer("x\n")
	if _, err := (&Invoker{}).Apply(context.Background(), b, "'<,'>! cat"); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("got %v", err)
	}
}

func TestApply_RangeOutOfBounds(t *testing.T) {
	b := NewBuffer("x\n")
	if _, err := (&Invoker{}).Apply(context.Background(), b, "1,5! cat"); !errors.Is(err, command.ErrInvalidRange) {
		t.Fatalf("got %v", err)
	}
}

func TestApply_FailureLeavesBufferIntact(t *testing.T) {
	b := NewBuffer("keep\nme\n")
	var stderr bytes.Buffer
	inv := &Invoker{Stderr: &stderr}
	_, err := inv.Apply(context.Background(), b, "1,2! echo partial; echo boom >&2; exit 3")
	var fe *FilterError
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want *FilterError", err)
	}
	if fe.Code != 3 {
		t.Fatalf("Code = %d", fe.Code)
	}
	if !strings.Contains(fe.Error(), "boom") {
		t.Fatalf("Error() = %q", fe.Error())
	}
	if !strings.Contains(stderr.String(), "boom") {
		t.Fatalf("stderr not relayed: %q", stderr.String())
	}
	if b.String() != "keep\nme\n" {
		t.Fatalf("buffer modified: %q", b.String())
	}
}

func TestApply_SingleSpawn(t *testing.T) {
	counter := filepath.Join(t.TempDir(), "count")
	b := NewBuffer("a\n")
	cl := command.CommandLine("1,1! echo run >> " + counter + "; exit 1")
	if _, err := (&Invoker{}).Apply(context.Background(), b, cl); err == nil {
		t.Fatal("expected failure")
	}
	data, err := os.ReadFile(counter)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(data), "run") != 1 {
		t.Fatalf("spawned %d times, want 1", strings.Count(string(data), "run"))
	}
}

func TestApply_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := NewBuffer("a\n")
	if _, err := (&Invoker{}).Apply(ctx, b, "1,1! cat"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if b.String() != "a\n" {
		t.Fatalf("buffer modified: %q", b.String())
	}
}

func TestApplyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.go")
	if err := os.WriteFile(path, []byte("package main\nfunc a() {}\nfunc b() {}\n"), 0600); err != nil {
		t.Fatal(err)
	}
	inv := &Invoker{}
	if _, err := inv.ApplyFile(context.Background(), path, "'<,'>! sed s/func/FUNC/", &command.LineRange{Start: 3, End: 3}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "package main\nfunc a() {}\nFUNC b() {}\n" {
		t.Fatalf("file = %q", data)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Fatalf("perm = %v, want 0600", info.Mode().Perm())
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestApplyFile_WholeFileByDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("a\nb\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := (&Invoker{}).ApplyFile(context.Background(), path, "'<,'>! tr a-z A-Z", nil); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "A\nB\n" {
		t.Fatalf("file = %q", data)
	}
}

func TestApplyFile_FailureKeepsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("original\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := (&Invoker{}).ApplyFile(context.Background(), path, "'<,'>! exit 9", nil)
	var fe *FilterError
	if !errors.As(err, &fe) || fe.Code != 9 {
		t.Fatalf("got %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "original\n" {
		t.Fatalf("file = %q", data)
	}
}

func TestApplyStream(t *testing.T) {
	var out bytes.Buffer
	if _, err := (&Invoker{}).ApplyStream(context.Background(), strings.NewReader("x\ny\n"), &out, "'<,'>! tr x z"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "z\ny\n" {
		t.Fatalf("out = %q", out.String())
	}
}

func TestApplyStream_FailureEchoesInput(t *testing.T) {
	var out bytes.Buffer
	_, err := (&Invoker{}).ApplyStream(context.Background(), strings.NewReader("x\ny\n"), &out, "'<,'>! exit 1")
	if err == nil {
		t.Fatal("expected error")
	}
	if out.String() != "x\ny\n" {
		t.Fatalf("out = %q", out.String())
	}
}
