// Package mdx implements the content pipeline that turns raw MDX/markdown
// source into validated, sanitized, render-ready output: frontmatter
// extraction, security sanitization, component-usage and syntax validation,
// and derived metadata (reading time, word count, excerpt).
package mdx

import (
	"fmt"
	"strings"
)

// ErrorKind categorizes a validation finding.
type ErrorKind string

const (
	KindSyntax    ErrorKind = "syntax"
	KindComponent ErrorKind = "component"
	KindSecurity  ErrorKind = "security"
	KindRuntime   ErrorKind = "runtime"
)

// Severity ranks a validation finding. Only "error" blocks a save.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ValidationError is a single diagnostic produced by a pipeline stage.
// Line and Column are 1-based and zero when unknown.
type ValidationError struct {
	Kind       ErrorKind `json:"kind"`
	Severity   Severity  `json:"severity"`
	Message    string    `json:"message"`
	Line       int       `json:"line,omitempty"`
	Column     int       `json:"column,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
}

func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", e.Kind, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// ValidationResult aggregates the diagnostics of one validation call.
// Valid is true iff Errors is empty; warnings never block.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
}

// ProcessingError is returned by Compile on unrecoverable failure. It
// carries the classified diagnostics that caused the failure.
type ProcessingError struct {
	Errors []ValidationError
}

func (e *ProcessingError) Error() string {
	if len(e.Errors) == 0 {
		return "mdx: processing failed"
	}
	msgs := make([]string, len(e.Errors))
	for i, v := range e.Errors {
		msgs[i] = v.Error()
	}
	return "mdx: " + strings.Join(msgs, "; ")
}

func newProcessingError(errs ...ValidationError) *ProcessingError {
	return &ProcessingError{Errors: errs}
}

// classify maps an arbitrary stage failure onto the error taxonomy.
// Message inspection mirrors the save API's blocking rules: parser-shaped
// failures are syntax, component mentions are component, the rest runtime.
func classify(err error) ValidationError {
	msg := err.Error()
	lower := strings.ToLower(msg)
	kind := KindRuntime
	switch {
	case strings.Contains(lower, "component"):
		kind = KindComponent
	case strings.Contains(lower, "markdown"), strings.Contains(lower, "render"), strings.Contains(lower, "parse"):
		kind = KindSyntax
	case strings.Contains(lower, "content length"), strings.Contains(lower, "exceeds"):
		kind = KindSecurity
	}
	return ValidationError{Kind: kind, Severity: SeverityError, Message: msg}
}

// lineOf returns the 1-based line number of byte offset idx in s.
func lineOf(s string, idx int) int {
	if idx < 0 || idx > len(s) {
		return 0
	}
	return strings.Count(s[:idx], "\n") + 1
}
