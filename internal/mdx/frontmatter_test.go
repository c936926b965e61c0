package mdx

import (
	"reflect"
	"testing"
)

func TestExtractFrontmatterRoundTrip(t *testing.T) {
	fm, body := ExtractFrontmatter("---\nkey: value\n---\nbody")

	if fm["key"] != "value" {
		t.Errorf("fm[key] = %v, want %q", fm["key"], "value")
	}
	if body != "body" {
		t.Errorf("body = %q, want %q", body, "body")
	}
}

func TestExtractFrontmatterTypes(t *testing.T) {
	raw := `---
title: Building a Bookshelf
featured: true
tags:
  - go
  - webgl
---

# Hello`

	fm, body := ExtractFrontmatter(raw)

	if fm["title"] != "Building a Bookshelf" {
		t.Errorf("title = %v, want %q", fm["title"], "Building a Bookshelf")
	}
	if fm["featured"] != true {
		t.Errorf("featured = %v, want true", fm["featured"])
	}
	tags, ok := fm["tags"].([]any)
	if !ok || len(tags) != 2 {
		t.Errorf("tags = %v, want two entries", fm["tags"])
	}
	if body != "\n# Hello" {
		t.Errorf("body = %q, want %q", body, "\n# Hello")
	}
}

func TestExtractFrontmatterMissing(t *testing.T) {
	for _, input := range []string{
		"# Just a heading\n\nNo header here.",
		"",
		"---\nunclosed header without a closing fence",
		"\xff\xfe binary garbage \x00\x01",
	} {
		fm, body := ExtractFrontmatter(input)
		if len(fm) != 0 {
			t.Errorf("ExtractFrontmatter(%q) fm = %v, want empty", input, fm)
		}
		if body != input {
			t.Errorf("ExtractFrontmatter(%q) body = %q, want original input", input, body)
		}
	}
}

func TestExtractFrontmatterMalformedYAMLFallback(t *testing.T) {
	// The tab-indented line is invalid YAML; the loose parser takes over.
	raw := "---\ntitle: \"Quoted: title\"\n\ttags: [\"a\", \"b\"]\ncount: 3\n---\nbody"

	fm, body := ExtractFrontmatter(raw)

	if body != "body" {
		t.Errorf("body = %q, want %q", body, "body")
	}
	if fm["title"] != "Quoted: title" {
		t.Errorf("title = %v, want %q", fm["title"], "Quoted: title")
	}
	tags, ok := fm["tags"].([]any)
	if !ok {
		t.Fatalf("tags = %T, want JSON array", fm["tags"])
	}
	want := []any{"a", "b"}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("tags = %v, want %v", tags, want)
	}
	if fm["count"] != "3" {
		t.Errorf("count = %v, want the string %q", fm["count"], "3")
	}
}

func TestParseLooseHeaderQuotes(t *testing.T) {
	tests := []struct {
		line string
		key  string
		want string
	}{
		{`title: "Hello"`, "title", "Hello"},
		{`title: 'Hello'`, "title", "Hello"},
		{`title: "mismatched'`, "title", `"mismatched'`},
		{`url: https://example.com/a`, "url", "https://example.com/a"},
	}
	for _, tt := range tests {
		fm := parseLooseHeader(tt.line)
		if fm[tt.key] != tt.want {
			t.Errorf("parseLooseHeader(%q)[%s] = %v, want %q", tt.line, tt.key, fm[tt.key], tt.want)
		}
	}
}
