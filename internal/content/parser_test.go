package content

import (
	"strings"
	"testing"
)

func TestParseTypedFrontmatter(t *testing.T) {
	raw := `---
title: Building a Bookshelf
slug: building-a-bookshelf
tags: go, webgl
featured: true
status: published
published_at: "2024-03-01T10:00:00Z"
---

# Hello

Body text here.`

	parsed, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	fm := parsed.Frontmatter
	if fm.Title != "Building a Bookshelf" {
		t.Errorf("Title = %q", fm.Title)
	}
	if fm.Slug != "building-a-bookshelf" {
		t.Errorf("Slug = %q", fm.Slug)
	}
	if len(fm.Tags) != 2 || fm.Tags[0] != "go" || fm.Tags[1] != "webgl" {
		t.Errorf("Tags = %v, want [go webgl]", fm.Tags)
	}
	if !fm.Featured {
		t.Error("Featured = false, want true")
	}
	if fm.PublishedAt != "2024-03-01T10:00:00Z" {
		t.Errorf("PublishedAt = %q", fm.PublishedAt)
	}
	if !strings.Contains(parsed.HTML, "<h1") {
		t.Errorf("HTML = %q, want a rendered heading", parsed.HTML)
	}
	if parsed.Compiled == nil || parsed.Compiled.ReadingTime != 1 {
		t.Errorf("Compiled = %+v, want reading time 1", parsed.Compiled)
	}
}

func TestParseBlocksDangerousContent(t *testing.T) {
	_, err := Parse([]byte("---\ntitle: T\n---\n<script>alert(1)</script>"))
	if err == nil {
		t.Fatal("Parse() error = nil, want validation failure")
	}
	if !strings.Contains(err.Error(), "validation") {
		t.Errorf("error = %v, want a validation message", err)
	}
}

func TestParseNoFrontmatter(t *testing.T) {
	parsed, err := Parse([]byte("# Just markdown\n\nNo header."))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if parsed.Frontmatter.Title != "" {
		t.Errorf("Title = %q, want empty", parsed.Frontmatter.Title)
	}
	if parsed.Markdown == "" {
		t.Error("Markdown is empty")
	}
}

func TestParseReader(t *testing.T) {
	parsed, err := ParseReader(strings.NewReader("---\ntitle: From Reader\n---\nbody"))
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}
	if parsed.Frontmatter.Title != "From Reader" {
		t.Errorf("Title = %q", parsed.Frontmatter.Title)
	}
}
