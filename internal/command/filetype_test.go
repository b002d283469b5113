package command

import "testing"

func TestFiletypeFromPath(t *testing.T) {
	cases := map[string]string{
		"main.go":          "go",
		"/src/app.py":      "python",
		"lib/Thing.RS":     "rust",
		"Makefile":         "make",
		"build/Dockerfile": "dockerfile",
		"README":           "",
		"notes.txt":        "txt",
		".bashrc":          "bashrc",
	}
	for in, want := range cases {
		if got := FiletypeFromPath(in); got != want {
			t.Errorf("FiletypeFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}
