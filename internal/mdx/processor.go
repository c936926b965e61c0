package mdx

import (
	"errors"
	"strings"
	"time"
)

// Options configures one Processor. The zero value is NOT the default;
// use DefaultOptions and adjust.
type Options struct {
	// SanitizeContent runs the security sanitizer over the body before
	// anything else sees it.
	SanitizeContent bool
	// EnableCodeHighlight turns on syntax highlighting for code fences.
	EnableCodeHighlight bool
	// AllowedComponents restricts component validation to this explicit
	// list; empty means every component in the registry is allowed.
	AllowedComponents []string
	// MaxContentLength overrides the global content-size limit when > 0.
	MaxContentLength int
	// MaxComponents overrides the component-invocation limit when > 0.
	MaxComponents int
}

// DefaultOptions returns the options the save and render paths use.
func DefaultOptions() Options {
	return Options{
		SanitizeContent:     true,
		EnableCodeHighlight: true,
	}
}

// CompiledContent is the successful output of compilation, ready for
// persistence or hand-off to the rendering layer.
type CompiledContent struct {
	// Source is the sanitized markdown body.
	Source string `json:"source"`
	// HTML is the render-ready serialization of Source.
	HTML string `json:"html"`
	// Frontmatter is the extracted header, as authored.
	Frontmatter map[string]any `json:"frontmatter"`
	// Metadata is Frontmatter with dates and tag lists normalized.
	Metadata    map[string]any `json:"metadata"`
	ReadingTime int            `json:"reading_time"`
	WordCount   int            `json:"word_count"`
	Excerpt     string         `json:"excerpt"`
}

// Processor sequences the pipeline stages. Safe for concurrent use; each
// call's state is local and the registry is read-only during calls.
type Processor struct {
	registry  *Registry
	sanitizer *Sanitizer
	renderer  *Renderer
	opts      Options
}

// NewProcessor builds a processor over the given registry. A nil registry
// means the application-wide default.
func NewProcessor(registry *Registry, opts Options) *Processor {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Processor{
		registry:  registry,
		sanitizer: NewSanitizer(opts.MaxContentLength, opts.MaxComponents),
		renderer:  NewRenderer(opts.EnableCodeHighlight),
		opts:      opts,
	}
}

// Compile runs the full pipeline over raw content. On failure the returned
// error is a *ProcessingError carrying the classified diagnostics.
//
// Sanitization applies to the body only, after frontmatter extraction:
// the header never reaches a renderer as markup, and pattern-stripping it
// would corrupt legitimate YAML (an "on:" key looks like an event
// handler).
func (p *Processor) Compile(raw string) (*CompiledContent, error) {
	frontmatter, body := ExtractFrontmatter(raw)

	if p.opts.SanitizeContent {
		sanitized, err := p.sanitizer.Sanitize(body)
		if err != nil {
			if errors.Is(err, ErrContentTooLarge) {
				return nil, newProcessingError(ValidationError{
					Kind:     KindSecurity,
					Severity: SeverityError,
					Message:  err.Error(),
				})
			}
			return nil, newProcessingError(classify(err))
		}
		body = sanitized
	}

	compiled := &CompiledContent{
		Source:      body,
		Frontmatter: frontmatter,
		Metadata:    normalizeMetadata(frontmatter),
		ReadingTime: ReadingTime(body),
		WordCount:   WordCount(body),
		Excerpt:     Excerpt(body, DefaultExcerptLength),
	}

	htmlOut, err := p.renderer.Render(body)
	if err != nil {
		return nil, newProcessingError(classify(err))
	}
	compiled.HTML = htmlOut

	return compiled, nil
}

// Validate runs every validator over raw content and reports the merged
// result. It never fails: stage failures become diagnostics, including
// any failure of the internal compile probe (which exists to surface
// render-stage errors the lexical validators cannot see).
func (p *Processor) Validate(raw string) ValidationResult {
	_, body := ExtractFrontmatter(raw)

	var all []ValidationError
	all = append(all, p.sanitizer.ValidateSecurity(body)...)
	all = append(all, ValidateComponents(body, p.registry, p.opts.AllowedComponents)...)
	all = append(all, ValidateSyntax(body)...)

	if _, err := p.Compile(raw); err != nil {
		var perr *ProcessingError
		if errors.As(err, &perr) {
			all = append(all, dedupeAgainst(all, perr.Errors)...)
		} else {
			all = append(all, classify(err))
		}
	}

	result := ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}
	for _, v := range all {
		if v.Severity == SeverityError {
			result.Errors = append(result.Errors, v)
		} else {
			result.Warnings = append(result.Warnings, v)
		}
	}
	result.Valid = len(result.Errors) == 0
	return result
}

// dedupeAgainst drops probe findings whose messages already appear in the
// directly-collected set, so the compile probe only contributes what the
// lexical validators missed.
func dedupeAgainst(existing, candidates []ValidationError) []ValidationError {
	seen := map[string]bool{}
	for _, v := range existing {
		seen[v.Message] = true
	}
	var fresh []ValidationError
	for _, v := range candidates {
		if !seen[v.Message] {
			fresh = append(fresh, v)
		}
	}
	return fresh
}

// dateKeys are frontmatter fields normalized from ISO strings to
// time.Time values.
var dateKeys = []string{"date", "published_at", "updated_at", "created_at"}

// listKeys are frontmatter fields normalized from comma-separated strings
// to string slices.
var listKeys = []string{"tags", "categories", "tech"}

// normalizeMetadata copies the frontmatter and normalizes its well-known
// fields. The original mapping is never mutated.
func normalizeMetadata(frontmatter map[string]any) map[string]any {
	meta := make(map[string]any, len(frontmatter))
	for k, v := range frontmatter {
		meta[k] = v
	}

	for _, key := range dateKeys {
		s, ok := meta[key].(string)
		if !ok {
			continue
		}
		if t, err := parseDate(s); err == nil {
			meta[key] = t
		}
	}

	for _, key := range listKeys {
		switch v := meta[key].(type) {
		case string:
			meta[key] = splitCommaList(v)
		case []any:
			list := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					list = append(list, s)
				}
			}
			meta[key] = list
		}
	}

	return meta
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func splitCommaList(s string) []string {
	parts := strings.Split(s, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			list = append(list, p)
		}
	}
	return list
}
