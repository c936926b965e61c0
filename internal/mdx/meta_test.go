package mdx

import (
	"strings"
	"testing"
)

func TestWordCountASCII(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{"", 0},
		{"one", 1},
		{"one two three", 3},
		{"  spaced   out  ", 2},
		{"don't count contractions twice", 4},
	}
	for _, tt := range tests {
		if got := WordCount(tt.body); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.body, got, tt.want)
		}
	}
}

func TestWordCountCJK(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{"Hello 世界", 3},
		{"世界", 2},
		{"こんにちは", 5},
		{"한국어 텍스트", 6},
		{"mixed 日本語 text", 5},
	}
	for _, tt := range tests {
		if got := WordCount(tt.body); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.body, got, tt.want)
		}
	}
}

func TestWordCountIgnoresMarkup(t *testing.T) {
	body := "# Heading\n\nSome **bold** text with a [link label](https://example.com).\n\n```go\nfunc ignored() {}\n```\n\n![alt text](img.png)\n"

	// "Heading Some bold text with a link label": the code fence and image
	// contribute nothing, the link keeps its text.
	if got := WordCount(body); got != 8 {
		t.Errorf("WordCount() = %d, want 8", got)
	}
}

func TestReadingTimeFloor(t *testing.T) {
	for _, body := range []string{"", "one word or two"} {
		if got := ReadingTime(body); got != 1 {
			t.Errorf("ReadingTime(%q) = %d, want 1", body, got)
		}
	}
}

func TestReadingTimeRoundsUp(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{200, 1},
		{201, 2},
		{450, 3},
	}
	for _, tt := range tests {
		body := strings.TrimSpace(strings.Repeat("word ", tt.words))
		if got := ReadingTime(body); got != tt.want {
			t.Errorf("ReadingTime(%d words) = %d, want %d", tt.words, got, tt.want)
		}
	}
}

func TestExcerptShortBodyUnchanged(t *testing.T) {
	body := "A short body that fits."
	if got := Excerpt(body, DefaultExcerptLength); got != body {
		t.Errorf("Excerpt() = %q, want body unchanged", got)
	}
}

func TestExcerptBreaksAtWordBoundary(t *testing.T) {
	// One space at rune 190, inside the final 20% of a 200-rune window.
	body := strings.Repeat("a", 190) + " " + strings.Repeat("b", 60)

	got := Excerpt(body, 200)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("Excerpt() = %q, want trailing ellipsis", got)
	}
	if len([]rune(got)) > 203 {
		t.Errorf("Excerpt() length = %d runes, want <= 203", len([]rune(got)))
	}
	if strings.Contains(got, "b") {
		t.Errorf("Excerpt() = %q, should have cut at the space before the b-run", got)
	}
}

func TestExcerptHardCutWithoutNearbySpace(t *testing.T) {
	// Last space falls at rune 10, outside the final 20%: keep the hard cut.
	body := "tiny lead " + strings.Repeat("c", 300)

	got := Excerpt(body, 200)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("Excerpt() = %q, want trailing ellipsis", got)
	}
	if n := len([]rune(got)); n != 203 {
		t.Errorf("Excerpt() length = %d runes, want 203", n)
	}
}

func TestExcerptStripsMarkup(t *testing.T) {
	got := Excerpt("# Title\n\nSome **bold** and `code` and a [link](https://x.com).", 200)

	for _, marker := range []string{"#", "*", "`", "]("} {
		if strings.Contains(got, marker) {
			t.Errorf("Excerpt() = %q, still contains %q", got, marker)
		}
	}
	if !strings.Contains(got, "link") {
		t.Errorf("Excerpt() = %q, link text was lost", got)
	}
}
