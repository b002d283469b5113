package docs

import (
	"strings"
	"testing"
)

func TestAll_ReturnsTopics(t *testing.T) {
	topics := All()
	if len(topics) == 0 {
		t.Fatal("All() returned no topics")
	}
	if topics[0].Name != "quickstart" {
		t.Errorf("first topic = %q, want %q", topics[0].Name, "quickstart")
	}
}

func TestAll_NoDuplicateNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, topic := range All() {
		if seen[topic.Name] {
			t.Errorf("duplicate topic name: %q", topic.Name)
		}
		seen[topic.Name] = true
	}
}

func TestAll_AllFieldsPopulated(t *testing.T) {
	for _, topic := range All() {
		if topic.Name == "" {
			t.Error("topic has empty Name")
		}
		if topic.Title == "" {
			t.Errorf("topic %q has empty Title", topic.Name)
		}
		if topic.Summary == "" {
			t.Errorf("topic %q has empty Summary", topic.Name)
		}
		if !strings.HasPrefix(topic.Content, "# "+topic.Title+"\n") {
			t.Errorf("topic %q content should start with its title heading", topic.Name)
		}
	}
}

func TestGet_Found(t *testing.T) {
	topic, err := Get("protocol")
	if err != nil {
		t.Fatalf("Get(protocol) error: %v", err)
	}
	if !strings.Contains(topic.Content, "OPENCODE_INLINE_STRIP_CODEBLOCK") {
		t.Error("protocol topic should document the strip variable")
	}
}

func TestGet_NotFound(t *testing.T) {
	_, err := Get("nonexistent")
	if err == nil {
		t.Fatal("expected error for unknown topic")
	}
	if !strings.Contains(err.Error(), "inline docs") {
		t.Errorf("error should hint at 'inline docs', got: %v", err)
	}
}

func TestRender_Plain(t *testing.T) {
	topic, _ := Get("presets")
	out, err := Render(topic, false, 0)
	if err != nil {
		t.Fatal(err)
	}
	if out != topic.Content {
		t.Fatal("unstyled render should return raw markdown")
	}
}

func TestRender_Styled(t *testing.T) {
	topic, _ := Get("quickstart")
	out, err := Render(topic, true, 60)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Quick Start") {
		t.Fatalf("rendered output lost the title:\n%s", out)
	}
}
