package mdx

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrContentTooLarge is returned by Sanitize when the input exceeds the
// configured maximum content length.
var ErrContentTooLarge = errors.New("content length exceeds configured maximum")

const (
	// DefaultMaxContentLength bounds a single document, in characters.
	DefaultMaxContentLength = 50000
	// DefaultMaxComponents bounds component invocations per document.
	DefaultMaxComponents = 50
)

// securityPattern pairs a dangerous-content regex with its human message.
type securityPattern struct {
	re      *regexp.Regexp
	message string
}

// dangerousPatterns is the canonical pattern table. The source system kept
// two slightly divergent copies of this list; this is the unified one.
var dangerousPatterns = []securityPattern{
	{regexp.MustCompile(`(?i)javascript:`), "javascript: URL scheme is not allowed"},
	{regexp.MustCompile(`(?i)data:text/html`), "data:text/html URL scheme is not allowed"},
	{regexp.MustCompile(`(?i)vbscript:`), "vbscript: URL scheme is not allowed"},
	{regexp.MustCompile(`(?i)\bon\w+\s*=`), "inline event handler attributes are not allowed"},
	{regexp.MustCompile(`(?i)<script`), "script tags are not allowed"},
	{regexp.MustCompile(`(?i)<iframe`), "iframe tags are not allowed"},
	{regexp.MustCompile(`(?i)<object`), "object tags are not allowed"},
	{regexp.MustCompile(`(?i)<embed`), "embed tags are not allowed"},
	{regexp.MustCompile(`(?i)<form`), "form tags are not allowed"},
	{regexp.MustCompile(`(?i)<input`), "input tags are not allowed"},
	{regexp.MustCompile(`(?i)<textarea`), "textarea tags are not allowed"},
}

// markdownLinkRe matches [text](target) and ![alt](target).
var markdownLinkRe = regexp.MustCompile(`(!?)\[([^\]]*)\]\(([^)]*)\)`)

// componentOpenRe matches component invocations only: capitalized tag
// names. Lowercase-initial tags are native HTML and exempt from the
// component budget.
var componentOpenRe = regexp.MustCompile(`<[A-Z][A-Za-z0-9]*`)

var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
	"tel":    true,
}

// InvalidURLMarker replaces link targets that fail the URL policy; the
// link text is preserved so the author can spot and fix the target.
const InvalidURLMarker = "#invalid-url"

// Sanitizer strips dangerous patterns from markdown source and enforces
// the content-size limits. The zero value is not usable; construct with
// NewSanitizer.
type Sanitizer struct {
	maxContentLength int
	maxComponents    int
}

// NewSanitizer returns a Sanitizer with the given limits. Non-positive
// values fall back to the package defaults.
func NewSanitizer(maxContentLength, maxComponents int) *Sanitizer {
	if maxContentLength <= 0 {
		maxContentLength = DefaultMaxContentLength
	}
	if maxComponents <= 0 {
		maxComponents = DefaultMaxComponents
	}
	return &Sanitizer{maxContentLength: maxContentLength, maxComponents: maxComponents}
}

// Sanitize removes every dangerous-pattern match (table order, each pattern
// applied globally) and rewrites markdown link targets that fail the URL
// policy to InvalidURLMarker. Oversized input is rejected outright with
// ErrContentTooLarge rather than truncated.
func (s *Sanitizer) Sanitize(body string) (string, error) {
	if n := utf8.RuneCountInString(body); n > s.maxContentLength {
		return "", fmt.Errorf("%w (%d > %d)", ErrContentTooLarge, n, s.maxContentLength)
	}
	for _, p := range dangerousPatterns {
		body = p.re.ReplaceAllString(body, "")
	}
	body = markdownLinkRe.ReplaceAllStringFunc(body, func(match string) string {
		parts := markdownLinkRe.FindStringSubmatch(match)
		if validLinkTarget(parts[3]) {
			return match
		}
		return fmt.Sprintf("%s[%s](%s)", parts[1], parts[2], InvalidURLMarker)
	})
	return body, nil
}

// ValidateSecurity reports, without modifying anything, every security
// finding in body: dangerous patterns, oversized content, too many
// component invocations, and disallowed link targets.
func (s *Sanitizer) ValidateSecurity(body string) []ValidationError {
	var errs []ValidationError

	if n := utf8.RuneCountInString(body); n > s.maxContentLength {
		errs = append(errs, ValidationError{
			Kind:     KindSecurity,
			Severity: SeverityError,
			Message:  fmt.Sprintf("content length %d exceeds the maximum of %d characters", n, s.maxContentLength),
		})
	}

	if n := len(componentOpenRe.FindAllString(body, -1)); n > s.maxComponents {
		errs = append(errs, ValidationError{
			Kind:     KindSecurity,
			Severity: SeverityError,
			Message:  fmt.Sprintf("%d component invocations exceed the maximum of %d", n, s.maxComponents),
		})
	}

	for _, p := range dangerousPatterns {
		loc := p.re.FindStringIndex(body)
		if loc == nil {
			continue
		}
		errs = append(errs, ValidationError{
			Kind:     KindSecurity,
			Severity: SeverityError,
			Message:  p.message,
			Line:     lineOf(body, loc[0]),
		})
	}

	for _, m := range markdownLinkRe.FindAllStringSubmatchIndex(body, -1) {
		target := body[m[6]:m[7]]
		if validLinkTarget(target) {
			continue
		}
		errs = append(errs, ValidationError{
			Kind:       KindSecurity,
			Severity:   SeverityError,
			Message:    fmt.Sprintf("link target %q uses a disallowed protocol", target),
			Line:       lineOf(body, m[0]),
			Suggestion: "use http, https, mailto or tel URLs, or a relative path",
		})
	}

	return errs
}

// validLinkTarget accepts absolute URLs on the allowed scheme list and
// relative or protocol-relative targets that do not smuggle a scheme.
func validLinkTarget(target string) bool {
	target = strings.TrimSpace(target)
	if target == "" {
		return true
	}
	lower := strings.ToLower(target)
	if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "data:") || strings.HasPrefix(lower, "vbscript:") {
		return false
	}
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		return true
	}
	return allowedSchemes[u.Scheme]
}
