package mdx

import (
	"io"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// syntaxProbe is only used to surface conversion failures; its output is
// discarded. The real render pass lives in render.go.
var syntaxProbe = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Tag heuristics. These are lexical approximations, not a JSX parser:
// a '<' inside a code fence is counted like any other tag. That failure
// mode only affects warnings.
var (
	// openTagRe matches any non-closing tag, self-closing included, so a
	// self-closing tag counts on both sides of the balance check below.
	openTagRe       = regexp.MustCompile(`<[^/!][^>]*>`)
	closeTagRe      = regexp.MustCompile(`</[^>]+>`)
	selfClosingRe   = regexp.MustCompile(`<[^>]*/>`)
	malformedAttrRe = regexp.MustCompile(`<[A-Za-z][A-Za-z0-9]*\s+[A-Za-z][A-Za-z0-9-]*=[^"'{\s>][^\s>]*`)
)

// ValidateSyntax runs the markdown parser over body and applies the
// tag-balance and attribute heuristics. Parser failures are errors;
// heuristic findings are warnings.
func ValidateSyntax(body string) []ValidationError {
	var errs []ValidationError

	if err := syntaxProbe.Convert([]byte(body), io.Discard); err != nil {
		errs = append(errs, ValidationError{
			Kind:     KindSyntax,
			Severity: SeverityError,
			Message:  "markdown parse failed: " + err.Error(),
		})
	}

	opens := len(openTagRe.FindAllString(body, -1))
	closes := len(closeTagRe.FindAllString(body, -1))
	selfClosing := len(selfClosingRe.FindAllString(body, -1))
	if opens != closes+selfClosing {
		errs = append(errs, ValidationError{
			Kind:       KindSyntax,
			Severity:   SeverityWarning,
			Message:    "possible unclosed JSX tags",
			Suggestion: "check that every opening tag has a matching closing tag or is self-closing",
		})
	}

	if loc := malformedAttrRe.FindStringIndex(body); loc != nil {
		errs = append(errs, ValidationError{
			Kind:       KindSyntax,
			Severity:   SeverityWarning,
			Message:    "malformed JSX attributes",
			Line:       lineOf(body, loc[0]),
			Suggestion: `wrap attribute values in quotes or braces, e.g. title="..." or count={3}`,
		})
	}

	return errs
}
