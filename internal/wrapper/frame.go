// Package wrapper implements the stdin protocol of the opencode-inline
// executable: it frames the selection into a prompt, runs the AI tool and
// reduces the response to a replacement payload.
package wrapper

import (
	"strings"
)

// DefaultLang tags the fenced body when no filetype hint is given.
const DefaultLang = "text"

// systemFraming is prepended to every request. It must stay free of
// anything time- or environment-dependent so requests are reproducible.
const systemFraming = `You are a code transformation engine used as a text filter inside an editor.
Apply the instruction to the code in the fenced block below.
Reply with exactly one fenced code block containing the complete replacement for that code.
Do not add explanations, notes, or any text outside the code block.`

// Frame builds the request sent to the AI tool: the fixed framing, the
// instruction, and the body in a fence tagged with the filetype. The body
// is kept byte for byte; the fence grows longer than any backtick run
// inside the body so it cannot be closed early.
func Frame(instruction, filetype, body string) string {
	lang := strings.TrimSpace(filetype)
	if lang == "" {
		lang = DefaultLang
	}
	fence := fenceFor(body)

	var sb strings.Builder
	sb.Grow(len(systemFraming) + len(instruction) + len(body) + 64)
	sb.WriteString(systemFraming)
	sb.WriteString("\n\nInstruction: ")
	sb.WriteString(instruction)
	sb.WriteString("\n\n")
	sb.WriteString(fence)
	sb.WriteString(lang)
	sb.WriteByte('\n')
	sb.WriteString(body)
	if body != "" && !strings.HasSuffix(body, "\n") {
		sb.WriteByte('\n')
	}
	sb.WriteString(fence)
	sb.WriteByte('\n')
	return sb.String()
}

func fenceFor(body string) string {
	longest, run := 0, 0
	for i := 0; i < len(body); i++ {
		if body[i] == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	n := 3
	if longest >= n {
		n = longest + 1
	}
	return strings.Repeat("`", n)
}
