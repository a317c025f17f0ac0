package content

import (
	"strings"
	"testing"
)

func TestExcerptTruncation(t *testing.T) {
	t.Parallel()

	body := "<p>Hello <b>world</b>. " + strings.Repeat("x", 200) + "</p>"
	got := Excerpt(body)

	if !strings.HasPrefix(got, "Hello world. x") {
		t.Fatalf("tags not stripped: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("missing ellipsis: %q", got)
	}
	if n := len([]rune(got)); n != 153 {
		t.Fatalf("expected 153 chars, got %d: %q", n, got)
	}
}

func TestExcerptLengthInvariant(t *testing.T) {
	t.Parallel()

	bodies := []string{
		"",
		"short",
		"<div>" + strings.Repeat("word ", 100) + "</div>",
		strings.Repeat("é", 400),
		"<p>entities &amp; more " + strings.Repeat("y", 300) + "</p>",
	}

	for _, body := range bodies {
		if n := len([]rune(Excerpt(body))); n > 153 {
			t.Fatalf("excerpt too long (%d) for body %.40q", n, body)
		}
	}
}

func TestExcerptShortBody(t *testing.T) {
	t.Parallel()

	if got := Excerpt("<p>Hi there</p>"); got != "Hi there..." {
		t.Fatalf("unexpected excerpt: %q", got)
	}
}

func TestCoverImage(t *testing.T) {
	t.Parallel()

	body := `<p>intro</p><img class="hero" src="https://cdn.example.com/a.png" alt=""><img src="https://cdn.example.com/b.png">`
	if got := CoverImage(body); got != "https://cdn.example.com/a.png" {
		t.Fatalf("unexpected cover image: %s", got)
	}

	if got := CoverImage("<p>no images here</p>"); got != placeholderImage {
		t.Fatalf("expected placeholder, got %s", got)
	}
}
