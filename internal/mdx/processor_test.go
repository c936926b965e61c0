package mdx

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestCompileEndToEnd(t *testing.T) {
	p := NewProcessor(nil, DefaultOptions())

	raw := "---\ntitle: Test\ntags: a, b\n---\n# Hello\n\nSome **text**."
	compiled, err := p.Compile(raw)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if compiled.Frontmatter["title"] != "Test" {
		t.Errorf("title = %v, want %q", compiled.Frontmatter["title"], "Test")
	}
	tags, ok := compiled.Metadata["tags"].([]string)
	if !ok || len(tags) != 2 || tags[0] != "a" || tags[1] != "b" {
		t.Errorf("tags = %v, want [a b]", compiled.Metadata["tags"])
	}
	if compiled.WordCount < 2 {
		t.Errorf("WordCount = %d, want >= 2", compiled.WordCount)
	}
	if compiled.ReadingTime != 1 {
		t.Errorf("ReadingTime = %d, want 1", compiled.ReadingTime)
	}
	if compiled.Excerpt == "" || strings.ContainsAny(compiled.Excerpt, "#*") {
		t.Errorf("Excerpt = %q, want plain text", compiled.Excerpt)
	}
	if !strings.Contains(compiled.HTML, "<h1") {
		t.Errorf("HTML = %q, want a rendered heading", compiled.HTML)
	}
	if !strings.Contains(compiled.HTML, "<strong>text</strong>") {
		t.Errorf("HTML = %q, want rendered emphasis", compiled.HTML)
	}
}

func TestCompileNormalizesDates(t *testing.T) {
	p := NewProcessor(nil, DefaultOptions())

	// Quoted values stay strings through YAML decoding, so normalization
	// itself is what produces the time.Time values.
	compiled, err := p.Compile("---\ndate: \"2024-01-15\"\npublished_at: \"2024-01-15T09:30:00Z\"\n---\nbody")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	d, ok := compiled.Metadata["date"].(time.Time)
	if !ok {
		t.Fatalf("date = %T, want time.Time", compiled.Metadata["date"])
	}
	if d.Year() != 2024 || d.Month() != time.January || d.Day() != 15 {
		t.Errorf("date = %v, want 2024-01-15", d)
	}
	if _, ok := compiled.Metadata["published_at"].(time.Time); !ok {
		t.Errorf("published_at = %T, want time.Time", compiled.Metadata["published_at"])
	}
	// The as-authored frontmatter keeps the original strings.
	if _, ok := compiled.Frontmatter["date"].(time.Time); ok {
		t.Error("Frontmatter[date] was normalized; the original header must stay as authored")
	}
}

func TestCompileSanitizesBody(t *testing.T) {
	p := NewProcessor(nil, DefaultOptions())

	compiled, err := p.Compile("---\ntitle: T\n---\nbefore <script>alert(1)</script> after")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if strings.Contains(strings.ToLower(compiled.Source), "<script") {
		t.Errorf("Source = %q, script tag survived sanitization", compiled.Source)
	}
	if strings.Contains(strings.ToLower(compiled.HTML), "<script") {
		t.Errorf("HTML = %q, script tag survived rendering", compiled.HTML)
	}
}

func TestCompileSanitizeDisabledKeepsSource(t *testing.T) {
	opts := DefaultOptions()
	opts.SanitizeContent = false
	p := NewProcessor(nil, opts)

	compiled, err := p.Compile("raw <script>alert(1)</script> body")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !strings.Contains(compiled.Source, "<script") {
		t.Errorf("Source = %q, want the unsanitized body", compiled.Source)
	}
}

func TestCompilePreservesComponents(t *testing.T) {
	p := NewProcessor(nil, DefaultOptions())

	compiled, err := p.Compile("Intro.\n\n<Callout type=\"note\">heads up</Callout>\n")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !strings.Contains(compiled.HTML, `<Callout type="note">heads up</Callout>`) {
		t.Errorf("HTML = %q, component markup was not preserved", compiled.HTML)
	}
}

func TestCompileOversizedContent(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxContentLength = 50
	p := NewProcessor(nil, opts)

	_, err := p.Compile(strings.Repeat("a", 51))
	if err == nil {
		t.Fatal("Compile() error = nil, want oversized-content failure")
	}
	var perr *ProcessingError
	if !errors.As(err, &perr) {
		t.Fatalf("Compile() error = %T, want *ProcessingError", err)
	}
	if len(perr.Errors) == 0 || perr.Errors[0].Kind != KindSecurity {
		t.Errorf("Errors = %v, want a security-kind diagnostic", perr.Errors)
	}
}

func TestValidateCleanContent(t *testing.T) {
	p := NewProcessor(nil, DefaultOptions())

	result := p.Validate("---\ntitle: T\n---\n# Hello\n\nPlain prose.")
	if !result.Valid {
		t.Errorf("Valid = false, errors = %v", result.Errors)
	}
	if result.Errors == nil || result.Warnings == nil {
		t.Error("Errors and Warnings must be empty slices, not nil")
	}
}

func TestValidateAggregatesStages(t *testing.T) {
	p := NewProcessor(nil, DefaultOptions())

	result := p.Validate("<script>alert(1)</script>\n\n<NoSuchWidget/>\n\n<div><span></span>")
	if result.Valid {
		t.Fatal("Valid = true, want false")
	}

	kinds := map[ErrorKind]bool{}
	for _, e := range result.Errors {
		kinds[e.Kind] = true
	}
	if !kinds[KindSecurity] {
		t.Errorf("errors = %v, want a security finding", result.Errors)
	}
	if !kinds[KindComponent] {
		t.Errorf("errors = %v, want a component finding", result.Errors)
	}

	syntaxWarning := false
	for _, w := range result.Warnings {
		if w.Kind == KindSyntax {
			syntaxWarning = true
		}
	}
	if !syntaxWarning {
		t.Errorf("warnings = %v, want a tag-balance warning", result.Warnings)
	}
}

func TestValidateWarningsDoNotInvalidate(t *testing.T) {
	p := NewProcessor(nil, DefaultOptions())

	result := p.Validate("<div><span></span>")
	if !result.Valid {
		t.Errorf("Valid = false for warning-only content, errors = %v", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Error("want at least one warning for unbalanced tags")
	}
}

func TestValidateNeverPanics(t *testing.T) {
	p := NewProcessor(nil, DefaultOptions())

	for _, raw := range []string{
		"",
		"---\n---\n",
		"---\nbroken: [\n---\nbody",
		"\xff\xfe\x00garbage",
		strings.Repeat("<", 1000),
	} {
		result := p.Validate(raw)
		if result.Errors == nil || result.Warnings == nil {
			t.Errorf("Validate(%q) returned nil slices", raw)
		}
	}
}

func TestValidateRespectsAllowList(t *testing.T) {
	opts := DefaultOptions()
	opts.AllowedComponents = []string{"Callout"}
	p := NewProcessor(nil, opts)

	result := p.Validate("<ProjectCard title=\"x\"/>")
	if result.Valid {
		t.Error("Valid = true, want false for off-list component")
	}

	result = p.Validate("<Callout type=\"note\">ok</Callout>")
	for _, e := range result.Errors {
		if e.Kind == KindComponent {
			t.Errorf("unexpected component error for allowed component: %v", e)
		}
	}
}

func TestSplitCommaList(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"a, b, c", 3},
		{"solo", 1},
		{" , , ", 0},
		{"a,,b", 2},
	}
	for _, tt := range tests {
		if got := splitCommaList(tt.in); len(got) != tt.want {
			t.Errorf("splitCommaList(%q) = %v, want %d entries", tt.in, got, tt.want)
		}
	}
}
