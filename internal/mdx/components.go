package mdx

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// componentTagRe captures the first identifier after a '<'. Lowercase
// names are native HTML tags; capitalized names must be registered.
var componentTagRe = regexp.MustCompile(`<([A-Za-z][A-Za-z0-9]*)`)

// componentAttrsRe captures the attribute segment of a component tag so
// prop names can be checked against the registration's allow-list.
var componentAttrsRe = regexp.MustCompile(`<([A-Z][A-Za-z0-9]*)([^>]*)>?`)

var attrNameRe = regexp.MustCompile(`([A-Za-z][A-Za-z0-9-]*)\s*=`)

// ValidateComponents lexically scans body for JSX-like component usage and
// checks every capitalized tag name against the registry, or against the
// explicit allowed list when one is given. This is a best-effort scan, not
// a JSX parser; tags inside code fences are scanned like everything else.
func ValidateComponents(body string, registry *Registry, allowed []string) []ValidationError {
	var errs []ValidationError

	allowSet := map[string]bool{}
	for _, name := range allowed {
		allowSet[name] = true
	}

	known := registry.Names()
	suggestion := "no components are registered"
	if len(allowed) > 0 {
		suggestion = "allowed components: " + strings.Join(allowed, ", ")
	} else if len(known) > 0 {
		suggestion = "known components: " + strings.Join(known, ", ")
	}

	seen := map[string]bool{}
	for _, m := range componentTagRe.FindAllStringSubmatchIndex(body, -1) {
		name := body[m[2]:m[3]]
		if unicode.IsLower(rune(name[0])) {
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true

		permitted := false
		if len(allowed) > 0 {
			permitted = allowSet[name]
		} else {
			_, permitted = registry.Lookup(name)
		}
		if !permitted {
			errs = append(errs, ValidationError{
				Kind:       KindComponent,
				Severity:   SeverityError,
				Message:    fmt.Sprintf("unknown component <%s>", name),
				Line:       lineOf(body, m[0]),
				Suggestion: suggestion,
			})
		}
	}

	errs = append(errs, validateComponentProps(body, registry)...)
	return errs
}

// validateComponentProps warns about props outside a registered
// component's allow-list. Components without an AllowedProps list accept
// anything.
func validateComponentProps(body string, registry *Registry) []ValidationError {
	var errs []ValidationError
	for _, m := range componentAttrsRe.FindAllStringSubmatchIndex(body, -1) {
		name := body[m[2]:m[3]]
		reg, ok := registry.Lookup(name)
		if !ok || len(reg.AllowedProps) == 0 {
			continue
		}
		propSet := map[string]bool{}
		for _, p := range reg.AllowedProps {
			propSet[p] = true
		}
		attrs := body[m[4]:m[5]]
		for _, am := range attrNameRe.FindAllStringSubmatch(attrs, -1) {
			prop := am[1]
			if propSet[prop] {
				continue
			}
			errs = append(errs, ValidationError{
				Kind:       KindComponent,
				Severity:   SeverityWarning,
				Message:    fmt.Sprintf("component <%s> does not declare prop %q", name, prop),
				Line:       lineOf(body, m[0]),
				Suggestion: "declared props: " + strings.Join(reg.AllowedProps, ", "),
			})
		}
	}
	return errs
}
