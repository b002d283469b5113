// Package shellquote turns arbitrary strings into single POSIX shell words.
//
// Every value that reaches a command line built by this module goes through
// Quote exactly once: instructions, tool arguments, environment values and
// resolved executable paths.
package shellquote

import (
	"strings"

	"al.essio.dev/pkg/shellescape"
)

// Quote returns s as one shell word. After shell tokenization the word
// decodes to exactly s, including quotes, backslashes, newlines and
// metacharacters. The empty string becomes ''.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	return shellescape.Quote(s)
}

// Join quotes each word and joins the results with single spaces.
func Join(words ...string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = Quote(w)
	}
	return strings.Join(quoted, " ")
}
