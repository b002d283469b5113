// Package filter is a range-filter host: it pipes a line range through a
// shell command and replaces the range with the command's output.
package filter

import (
	"errors"
	"strings"

	"github.com/jorge-barreto/opencode-inline/internal/command"
)

var ErrNoSelection = errors.New("command targets the selection but no selection is marked")

// Buffer is a sequence of lines plus an optional marked selection ('< and '>).
type Buffer struct {
	Lines     []string
	Selection *command.LineRange

	// trailingNewline records whether the source text ended in "\n".
	trailingNewline bool
}

// NewBuffer splits text into lines. A final newline does not produce an
// extra empty line and is restored by String. Like an editor buffer, an
// empty text still holds one empty line.
func NewBuffer(text string) *Buffer {
	b := &Buffer{trailingNewline: strings.HasSuffix(text, "\n")}
	b.Lines = splitLines(text)
	if len(b.Lines) == 0 {
		b.Lines = []string{""}
	}
	return b
}

// SelectAll marks every line as the selection.
func (b *Buffer) SelectAll() {
	b.Selection = &command.LineRange{Start: 1, End: len(b.Lines)}
}

// String joins the lines back into text.
func (b *Buffer) String() string {
	if len(b.Lines) == 0 {
		return ""
	}
	s := strings.Join(b.Lines, "\n")
	if b.trailingNewline {
		s += "\n"
	}
	return s
}

// Range resolves the target range: r when given, the marked selection
// otherwise. The result is validated against the buffer size.
func (b *Buffer) Range(r *command.LineRange) (command.LineRange, error) {
	if r == nil {
		if b.Selection == nil {
			return command.LineRange{}, ErrNoSelection
		}
		r = b.Selection
	}
	if err := r.Validate(len(b.Lines)); err != nil {
		return command.LineRange{}, err
	}
	return *r, nil
}

// Text returns the lines of r, each terminated by "\n", as a range filter
// feeds them to the command.
func (b *Buffer) Text(r command.LineRange) string {
	var sb strings.Builder
	for _, l := range b.Lines[r.Start-1 : r.End] {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Replace swaps the lines of r for the lines of output. The selection is
// moved to cover the replacement, or cleared when output is empty.
func (b *Buffer) Replace(r command.LineRange, output string) {
	repl := splitLines(output)
	lines := make([]string, 0, len(b.Lines)-(r.End-r.Start+1)+len(repl))
	lines = append(lines, b.Lines[:r.Start-1]...)
	lines = append(lines, repl...)
	lines = append(lines, b.Lines[r.End:]...)
	b.Lines = lines

	if len(repl) == 0 {
		b.Selection = nil
		return
	}
	b.Selection = &command.LineRange{Start: r.Start, End: r.Start + len(repl) - 1}
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
