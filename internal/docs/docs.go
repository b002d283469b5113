// Package docs holds the topics shown by "inline docs".
package docs

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Topic holds a single documentation article.
type Topic struct {
	Name    string // short slug used as CLI argument
	Title   string // human-readable title
	Summary string // one-line description for topic listing
	Content string // markdown
}

// All returns every topic in display order.
func All() []Topic {
	return topics
}

// Get looks up a topic by name. Returns an error with a hint if not found.
func Get(name string) (Topic, error) {
	for _, t := range topics {
		if t.Name == name {
			return t, nil
		}
	}
	return Topic{}, fmt.Errorf("unknown topic %q; run 'inline docs' to list available topics", name)
}

// Render returns the topic ready for display. With styled set the
// markdown is rendered for a terminal of the given width; otherwise the
// raw markdown is returned.
func Render(t Topic, styled bool, width int) (string, error) {
	if !styled {
		return t.Content, nil
	}
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(t.Content)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", t.Name, err)
	}
	return out, nil
}
