package mdx

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// componentBlockRe matches a whole component invocation: either a
// self-closing tag or a paired tag with children.
var componentBlockRe = regexp.MustCompile(`(?s)<([A-Z][A-Za-z0-9]*)([^>]*?)(?:>(.*?)</[A-Z][A-Za-z0-9]*>|/>)`)

// Renderer serializes a sanitized body to render-ready HTML. Component
// tags are protected with placeholders across the markdown conversion and
// the HTML sanitization pass so the rendering layer downstream can still
// dispatch them by name.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer builds a renderer with GFM tables/strikethrough, automatic
// heading IDs and, when enableHighlight is set, chroma syntax highlighting
// for code fences.
func NewRenderer(enableHighlight bool) *Renderer {
	exts := []goldmark.Extender{extension.GFM}
	if enableHighlight {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		))
	}
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowAttrs("class").OnElements("pre", "code", "span", "div")
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		policy: policy,
	}
}

// Render converts body to sanitized HTML.
func (r *Renderer) Render(body string) (string, error) {
	protected, placeholders := protectComponents(body)

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(protected), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	out := r.policy.Sanitize(buf.String())
	return restoreComponents(out, placeholders), nil
}

// protectComponents swaps component invocations for opaque tokens that
// survive both goldmark and bluemonday untouched.
func protectComponents(body string) (string, map[string]string) {
	placeholders := map[string]string{}
	counter := 0
	out := componentBlockRe.ReplaceAllStringFunc(body, func(match string) string {
		token := fmt.Sprintf("folio-component-%d", counter)
		placeholders[token] = match
		counter++
		return token
	})
	return out, placeholders
}

func restoreComponents(htmlOut string, placeholders map[string]string) string {
	for token, original := range placeholders {
		htmlOut = strings.ReplaceAll(htmlOut, token, original)
	}
	return htmlOut
}
