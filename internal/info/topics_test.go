package info

import (
	"strings"
	"testing"
)

func TestNormalizeTopic(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Tarot!!!", "tarot"},
		{"  The   BOOK  ", "the book"},
		{"e-mail & phone?", "e mail phone"},
		{"", ""},
		{"***", ""},
	}
	for _, c := range cases {
		if got := NormalizeTopic(c.in); got != c.want {
			t.Errorf("NormalizeTopic(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestResolve(t *testing.T) {
	cases := []struct {
		topic string
		want  string
	}{
		{"Tell me about the Tarot book", "fortunes told"},
		{"How can I reach you?", "contact"},
		{"weather today", "general"},
		{"your ML research", "ai research"},
		{"storybook", "ai research"},
		{"your ethics policy", "ethics"},
		{"the animation film", "animation"},
		{"phone number please", "contact"},
		{"", "general"},
	}
	for _, c := range cases {
		if got := Resolve(c.topic); got != c.want {
			t.Errorf("Resolve(%q) = %q, want %q", c.topic, got, c.want)
		}
	}
}

// A topic matching two groups resolves to the earlier-listed group.
func TestResolve_GroupOrderWins(t *testing.T) {
	if got := Resolve("the book with your contact details"); got != "fortunes told" {
		t.Errorf("Resolve = %q, want %q", got, "fortunes told")
	}
	if got := Resolve("research into film"); got != "ai research" {
		t.Errorf("Resolve = %q, want %q", got, "ai research")
	}
}

func TestLookup(t *testing.T) {
	if text := Lookup("fortunes told"); !strings.Contains(text, "June 19th") {
		t.Errorf("fortunes told text missing release date: %q", text)
	}
	if Lookup("no-such-category") != Lookup(CategoryGeneral) {
		t.Error("unknown category should fall back to general")
	}
}
