package ux

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func captureStderr(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Stderr
	Stderr = &buf
	t.Cleanup(func() { Stderr = prev })
	return &buf
}

func TestError_PlainWhenNotTerminal(t *testing.T) {
	buf := captureStderr(t)
	Error("wrapper %q not found", "x")
	if got := buf.String(); got != "error: wrapper \"x\" not found\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWarnAndSuccess(t *testing.T) {
	buf := captureStderr(t)
	Warn("careful")
	Success("ok")
	Failure("bad")
	want := "warning: careful\n✓ ok\n✗ bad\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatal("non-terminal output must not carry ANSI codes")
	}
}

func TestDuration(t *testing.T) {
	cases := map[time.Duration]string{
		1200 * time.Millisecond: "1.2s",
		65 * time.Second:        "1m 05s",
		10 * time.Minute:        "10m 00s",
	}
	for d, want := range cases {
		if got := Duration(d); got != want {
			t.Errorf("Duration(%v) = %q, want %q", d, got, want)
		}
	}
}

func TestFormatTable(t *testing.T) {
	got := FormatTable([]string{"TRIGGER", "DESC"}, [][]string{
		{"doc", "Document it"},
		{"refactor", ""},
	})
	want := "TRIGGER   DESC\n" +
		"────────  ───────────\n" +
		"doc       Document it\n" +
		"refactor\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatTable_NoHeaders(t *testing.T) {
	if got := FormatTable(nil, [][]string{{"a"}}); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := Truncate("a long instruction", 8); got != "a lon..." {
		t.Fatalf("got %q", got)
	}
	if got := Truncate("héllo wörld", 6); got != "hél..." {
		t.Fatalf("got %q", got)
	}
}
