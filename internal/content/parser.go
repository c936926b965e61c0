// Package content turns authored markdown/MDX files into publishable
// documents: typed frontmatter plus the compiled output of the processing
// pipeline.
package content

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/folio-sh/folio/internal/mdx"
)

// Frontmatter holds the typed header fields the folio API cares about.
// Unknown keys survive in the compiled metadata map.
type Frontmatter struct {
	Title       string
	Slug        string
	Tags        []string
	Categories  []string
	Tech        []string
	Featured    bool
	Status      string
	Excerpt     string
	MetaTitle   string
	MetaDesc    string
	FeatureImg  string
	RepoURL     string
	DemoURL     string
	PublishedAt string
}

// ParsedContent is a fully processed document ready for upload. Warnings
// carry non-blocking validation findings for the caller to surface.
type ParsedContent struct {
	Frontmatter Frontmatter
	Compiled    *mdx.CompiledContent
	Markdown    string
	HTML        string
	Warnings    []mdx.ValidationError
}

// ParseFile reads and compiles a markdown file. "-" reads stdin.
func ParseFile(path string) (*ParsedContent, error) {
	if path == "-" {
		return ParseReader(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return ParseReader(f)
}

// ParseReader compiles markdown with frontmatter from a reader.
func ParseReader(r io.Reader) (*ParsedContent, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return Parse(data)
}

// Parse validates and compiles raw content. Validation errors block the
// document; warnings do not.
func Parse(data []byte) (*ParsedContent, error) {
	p := mdx.NewProcessor(nil, mdx.DefaultOptions())

	result := p.Validate(string(data))
	if !result.Valid {
		msgs := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			msgs = append(msgs, e.Error())
		}
		return nil, fmt.Errorf("content failed validation: %s", strings.Join(msgs, "; "))
	}

	compiled, err := p.Compile(string(data))
	if err != nil {
		return nil, fmt.Errorf("compiling content: %w", err)
	}

	return &ParsedContent{
		Frontmatter: frontmatterFrom(compiled.Metadata),
		Compiled:    compiled,
		Markdown:    compiled.Source,
		HTML:        compiled.HTML,
		Warnings:    result.Warnings,
	}, nil
}

// frontmatterFrom projects the normalized metadata map onto the typed
// header. Missing keys leave zero values.
func frontmatterFrom(meta map[string]any) Frontmatter {
	fm := Frontmatter{
		Title:      metaString(meta, "title"),
		Slug:       metaString(meta, "slug"),
		Tags:       metaStrings(meta, "tags"),
		Categories: metaStrings(meta, "categories"),
		Tech:       metaStrings(meta, "tech"),
		Status:     metaString(meta, "status"),
		Excerpt:    metaString(meta, "excerpt"),
		MetaTitle:  metaString(meta, "meta_title"),
		MetaDesc:   metaString(meta, "meta_description"),
		FeatureImg: metaString(meta, "feature_image"),
		RepoURL:    metaString(meta, "repo"),
		DemoURL:    metaString(meta, "demo"),
	}
	if b, ok := meta["featured"].(bool); ok {
		fm.Featured = b
	}
	switch v := meta["published_at"].(type) {
	case time.Time:
		fm.PublishedAt = v.Format(time.RFC3339)
	case string:
		fm.PublishedAt = v
	}
	return fm
}

func metaString(meta map[string]any, key string) string {
	s, _ := meta[key].(string)
	return s
}

func metaStrings(meta map[string]any, key string) []string {
	switch v := meta[key].(type) {
	case []string:
		return v
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}
