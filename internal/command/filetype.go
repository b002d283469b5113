package command

import (
	"path/filepath"
	"strings"
)

// filetypes maps file extensions to the fence language used in prompts
// where the two differ.
var filetypes = map[string]string{
	"py":   "python",
	"rb":   "ruby",
	"js":   "javascript",
	"ts":   "typescript",
	"rs":   "rust",
	"sh":   "bash",
	"yml":  "yaml",
	"md":   "markdown",
	"h":    "c",
	"hpp":  "cpp",
	"cc":   "cpp",
	"kt":   "kotlin",
	"tf":   "hcl",
	"mk":   "make",
	"psql": "sql",
}

// FiletypeFromPath guesses a filetype hint from a file name. Unknown
// extensions are used as-is; a name without one yields "".
func FiletypeFromPath(path string) string {
	base := filepath.Base(path)
	switch base {
	case "Makefile", "GNUmakefile":
		return "make"
	case "Dockerfile":
		return "dockerfile"
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(base), "."))
	if ft, ok := filetypes[ext]; ok {
		return ft
	}
	return ext
}
