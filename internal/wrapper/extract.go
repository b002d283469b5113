package wrapper

import (
	"strings"
)

// Extraction is the outcome of Extract. When Found is false, Payload is
// the response exactly as received.
type Extraction struct {
	Payload string
	Found   bool
	Lang    string // info string of the opening fence, if any
}

// Extract reduces a response to the body of its first fenced block when
// strip is set. Later blocks are ignored. A response without a complete
// fenced block, or any response when strip is off, is returned unchanged.
func Extract(response string, strip bool) Extraction {
	if !strip {
		return Extraction{Payload: response}
	}

	lines := strings.Split(response, "\n")
	for i := 0; i < len(lines); i++ {
		open, ok := parseOpeningFence(lines[i])
		if !ok {
			continue
		}
		var body strings.Builder
		for j := i + 1; j < len(lines); j++ {
			if open.closedBy(lines[j]) {
				return Extraction{Payload: body.String(), Found: true, Lang: open.info}
			}
			body.WriteString(lines[j])
			body.WriteByte('\n')
		}
		// The first opening fence never closes: there is no block.
		break
	}
	return Extraction{Payload: response}
}

type fence struct {
	char byte
	size int
	info string
}

// parseOpeningFence recognises ``` or ~~~ (three or more), indented by at
// most three spaces, followed by an optional info string.
func parseOpeningFence(line string) (fence, bool) {
	line = strings.TrimRight(line, "\r")
	rest, ok := trimIndent(line)
	if !ok || len(rest) < 3 || (rest[0] != '`' && rest[0] != '~') {
		return fence{}, false
	}
	f := fence{char: rest[0]}
	for f.size < len(rest) && rest[f.size] == f.char {
		f.size++
	}
	if f.size < 3 {
		return fence{}, false
	}
	info := strings.TrimSpace(rest[f.size:])
	if f.char == '`' && strings.ContainsRune(info, '`') {
		return fence{}, false
	}
	if fields := strings.Fields(info); len(fields) > 0 {
		f.info = fields[0]
	}
	return f, true
}

// closedBy reports whether line closes f: the same fence character, at
// least as many of them, and nothing after but whitespace.
func (f fence) closedBy(line string) bool {
	rest, ok := trimIndent(strings.TrimRight(line, "\r"))
	if !ok {
		return false
	}
	n := 0
	for n < len(rest) && rest[n] == f.char {
		n++
	}
	return n >= f.size && strings.TrimSpace(rest[n:]) == ""
}

func trimIndent(line string) (string, bool) {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	if n > 3 {
		return "", false
	}
	return line[n:], true
}
