package mdx

import (
	"strings"
	"testing"
)

func TestValidateSyntaxUnclosedTags(t *testing.T) {
	errs := ValidateSyntax(`<div><span></span>`)

	found := false
	for _, e := range errs {
		if e.Kind == KindSyntax && strings.Contains(e.Message, "unclosed") {
			found = true
			if e.Severity != SeverityWarning {
				t.Errorf("tag-balance finding severity = %q, want warning", e.Severity)
			}
		}
	}
	if !found {
		t.Errorf("ValidateSyntax() = %v, want an unclosed-tags warning", errs)
	}
}

func TestValidateSyntaxBalancedTags(t *testing.T) {
	for _, body := range []string{
		`<div><span></span></div>`,
		`<Callout type="info">text</Callout>`,
		`plain markdown with no tags at all`,
		`<ImageGallery columns="3"/>`,
	} {
		for _, e := range ValidateSyntax(body) {
			if strings.Contains(e.Message, "unclosed") {
				t.Errorf("ValidateSyntax(%q) flagged balanced tags: %v", body, e)
			}
		}
	}
}

func TestValidateSyntaxMalformedAttributes(t *testing.T) {
	errs := ValidateSyntax(`<Callout type=info>text</Callout>`)

	found := false
	for _, e := range errs {
		if strings.Contains(e.Message, "malformed JSX attributes") {
			found = true
		}
	}
	if !found {
		t.Errorf("ValidateSyntax() = %v, want a malformed-attributes warning", errs)
	}
}

func TestValidateSyntaxWellFormedAttributes(t *testing.T) {
	for _, body := range []string{
		`<Callout type="info">text</Callout>`,
		`<Callout type='info'>text</Callout>`,
		`<Counter start={3}>text</Counter>`,
	} {
		for _, e := range ValidateSyntax(body) {
			if strings.Contains(e.Message, "malformed") {
				t.Errorf("ValidateSyntax(%q) flagged well-formed attributes: %v", body, e)
			}
		}
	}
}
