package mdx

import (
	"errors"
	"strings"
	"testing"
)

var dangerousFixtures = []struct {
	name  string
	input string
}{
	{"javascript url", `[click me](javascript:alert(1))`},
	{"data html url", `<a href="data:text/html;base64,PHNjcmlwdD4=">x</a>`},
	{"vbscript url", `[legacy](vbscript:msgbox)`},
	{"event handler", `<img src="x.png" onerror=alert(1)>`},
	{"script tag", `<script>alert(1)</script>`},
	{"iframe tag", `<iframe src="https://example.com"></iframe>`},
	{"object tag", `<object data="x.swf"></object>`},
	{"embed tag", `<embed src="x.swf">`},
	{"form tag", `<form action="/steal">`},
	{"input tag", `<input type="text">`},
	{"textarea tag", `<textarea>x</textarea>`},
}

func TestValidateSecurityDetectsEveryPattern(t *testing.T) {
	s := NewSanitizer(0, 0)

	for _, tt := range dangerousFixtures {
		t.Run(tt.name, func(t *testing.T) {
			errs := s.ValidateSecurity(tt.input)
			found := false
			for _, e := range errs {
				if e.Kind == KindSecurity && e.Severity == SeverityError {
					found = true
				}
			}
			if !found {
				t.Errorf("ValidateSecurity(%q) produced no security error", tt.input)
			}
		})
	}
}

func TestSanitizeRemovesPatterns(t *testing.T) {
	s := NewSanitizer(0, 0)

	out, err := s.Sanitize(`before <script>alert(1)</script> after`)
	if err != nil {
		t.Fatalf("Sanitize() error = %v", err)
	}
	if strings.Contains(strings.ToLower(out), "<script") {
		t.Errorf("output still contains <script: %q", out)
	}
	if !strings.Contains(out, "before") || !strings.Contains(out, "after") {
		t.Errorf("surrounding text was lost: %q", out)
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	s := NewSanitizer(0, 0)

	for _, tt := range dangerousFixtures {
		once, err := s.Sanitize(tt.input)
		if err != nil {
			t.Fatalf("Sanitize(%q) error = %v", tt.input, err)
		}
		twice, err := s.Sanitize(once)
		if err != nil {
			t.Fatalf("Sanitize(Sanitize(%q)) error = %v", tt.input, err)
		}
		if once != twice {
			t.Errorf("not idempotent for %q: first %q, second %q", tt.input, once, twice)
		}
	}
}

func TestSanitizeRejectsOversizedContent(t *testing.T) {
	s := NewSanitizer(100, 0)

	_, err := s.Sanitize(strings.Repeat("a", 101))
	if !errors.Is(err, ErrContentTooLarge) {
		t.Errorf("Sanitize() error = %v, want ErrContentTooLarge", err)
	}

	errs := s.ValidateSecurity(strings.Repeat("a", 101))
	found := false
	for _, e := range errs {
		if e.Kind == KindSecurity && strings.Contains(e.Message, "100") {
			found = true
		}
	}
	if !found {
		t.Errorf("ValidateSecurity() errors = %v, want one citing the 100-char limit", errs)
	}
}

func TestSanitizeRewritesInvalidLinkTargets(t *testing.T) {
	s := NewSanitizer(0, 0)

	out, err := s.Sanitize(`see [the docs](ftp://example.com/file) and [home](/about)`)
	if err != nil {
		t.Fatalf("Sanitize() error = %v", err)
	}
	if !strings.Contains(out, "[the docs]("+InvalidURLMarker+")") {
		t.Errorf("ftp link not rewritten: %q", out)
	}
	if !strings.Contains(out, "[home](/about)") {
		t.Errorf("relative link should be preserved: %q", out)
	}
}

func TestValidateSecurityComponentBudget(t *testing.T) {
	s := NewSanitizer(0, 2)

	body := `<Callout/> <Callout/> <Callout/>`
	errs := s.ValidateSecurity(body)
	found := false
	for _, e := range errs {
		if strings.Contains(e.Message, "component invocations") {
			found = true
		}
	}
	if !found {
		t.Errorf("ValidateSecurity() errors = %v, want a component-budget error", errs)
	}
}

func TestComponentBudgetIgnoresHTMLTags(t *testing.T) {
	s := NewSanitizer(0, 0)

	body := strings.Repeat("line<br>\n", DefaultMaxComponents+10)
	for _, e := range s.ValidateSecurity(body) {
		if strings.Contains(e.Message, "component invocations") {
			t.Fatalf("ValidateSecurity() flagged lowercase HTML tags against the component budget: %v", e)
		}
	}

	result := NewProcessor(nil, DefaultOptions()).Validate(body)
	if !result.Valid {
		t.Errorf("Validate() = invalid for component-free content, errors = %v", result.Errors)
	}
}

func TestContentLengthCountsRunes(t *testing.T) {
	s := NewSanitizer(100, 0)

	// 50 runes but 150 bytes; the character limit must not trip.
	body := strings.Repeat("汉", 50)
	if _, err := s.Sanitize(body); err != nil {
		t.Errorf("Sanitize() error = %v for 50-character content under a 100-character limit", err)
	}
	if errs := s.ValidateSecurity(body); len(errs) != 0 {
		t.Errorf("ValidateSecurity() errors = %v, want none", errs)
	}

	over := strings.Repeat("汉", 101)
	if _, err := s.Sanitize(over); !errors.Is(err, ErrContentTooLarge) {
		t.Errorf("Sanitize() error = %v for 101 characters, want ErrContentTooLarge", err)
	}
}

func TestValidLinkTarget(t *testing.T) {
	tests := []struct {
		target string
		want   bool
	}{
		{"https://example.com", true},
		{"http://example.com", true},
		{"mailto:me@example.com", true},
		{"tel:+15551234567", true},
		{"/relative/path", true},
		{"//cdn.example.com/x.png", true},
		{"ftp://example.com", false},
		{"javascript:alert(1)", false},
		{"JaVaScRiPt:alert(1)", false},
		{"data:text/html,<b>x</b>", false},
		{"", true},
	}
	for _, tt := range tests {
		if got := validLinkTarget(tt.target); got != tt.want {
			t.Errorf("validLinkTarget(%q) = %v, want %v", tt.target, got, tt.want)
		}
	}
}
