package filter

import (
	"errors"
	"testing"

	"github.com/jorge-barreto/opencode-inline/internal/command"
)

func TestNewBuffer_TrailingNewline(t *testing.T) {
	b := NewBuffer("a\nb\n")
	if len(b.Lines) != 2 {
		t.Fatalf("Lines = %q", b.Lines)
	}
	if b.String() != "a\nb\n" {
		t.Fatalf("String() = %q", b.String())
	}

	b = NewBuffer("a\nb")
	if b.String() != "a\nb" {
		t.Fatalf("String() = %q", b.String())
	}
}

func TestNewBuffer_Empty(t *testing.T) {
	b := NewBuffer("")
	if len(b.Lines) != 1 || b.Lines[0] != "" {
		t.Fatalf("Lines = %q", b.Lines)
	}
	if b.String() != "" {
		t.Fatalf("String() = %q", b.String())
	}
}

func TestBuffer_Range(t *testing.T) {
	b := NewBuffer("1\n2\n3\n")
	if _, err := b.Range(nil); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("got %v", err)
	}
	b.Selection = &command.LineRange{Start: 2, End: 3}
	r, err := b.Range(nil)
	if err != nil || r != (command.LineRange{Start: 2, End: 3}) {
		t.Fatalf("got %v, %v", r, err)
	}
	explicit := &command.LineRange{Start: 1, End: 1}
	if r, _ := b.Range(explicit); r != *explicit {
		t.Fatalf("explicit range should win, got %v", r)
	}
	if _, err := b.Range(&command.LineRange{Start: 2, End: 9}); !errors.Is(err, command.ErrInvalidRange) {
		t.Fatalf("got %v", err)
	}
}

func TestBuffer_Text(t *testing.T) {
	b := NewBuffer("a\nb\nc")
	if got := b.Text(command.LineRange{Start: 2, End: 3}); got != "b\nc\n" {
		t.Fatalf("Text = %q", got)
	}
}

func TestBuffer_Replace(t *testing.T) {
	b := NewBuffer("a\nb\nc\nd\n")
	b.Replace(command.LineRange{Start: 2, End: 3}, "x\ny\nz\n")
	if b.String() != "a\nx\ny\nz\nd\n" {
		t.Fatalf("String() = %q", b.String())
	}
	if *b.Selection != (command.LineRange{Start: 2, End: 4}) {
		t.Fatalf("Selection = %v", b.Selection)
	}
}

func TestBuffer_ReplaceWithNothingDeletes(t *testing.T) {
	b := NewBuffer("a\nb\nc\n")
	b.Replace(command.LineRange{Start: 2, End: 2}, "")
	if b.String() != "a\nc\n" {
		t.Fatalf("String() = %q", b.String())
	}
	if b.Selection != nil {
		t.Fatalf("Selection = %v, want nil", b.Selection)
	}
}

func TestBuffer_ReplaceOutputWithoutNewline(t *testing.T) {
	b := NewBuffer("a\nb\n")
	b.Replace(command.LineRange{Start: 1, End: 1}, "z")
	if b.String() != "z\nb\n" {
		t.Fatalf("String() = %q", b.String())
	}
}
