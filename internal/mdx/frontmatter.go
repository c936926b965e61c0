package mdx

import (
	"encoding/json"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// fenceRe matches a leading frontmatter block in dot-all mode: an opening
// --- line, the header, a closing --- line, then the body.
var fenceRe = regexp.MustCompile(`(?s)\A---\r?\n(.*?)\r?\n---\r?\n?(.*)\z`)

// ExtractFrontmatter splits raw content into its frontmatter mapping and
// body. It never fails: content without a fenced header, or with a header
// that neither YAML nor the loose line parser can make sense of, comes back
// as an empty mapping with the input untouched as body.
func ExtractFrontmatter(raw string) (map[string]any, string) {
	m := fenceRe.FindStringSubmatch(raw)
	if m == nil {
		return map[string]any{}, raw
	}
	header, body := m[1], m[2]

	var fm map[string]any
	if err := yaml.Unmarshal([]byte(header), &fm); err == nil {
		if fm == nil {
			fm = map[string]any{}
		}
		return fm, body
	}

	// Malformed YAML: degrade to the line-based parser rather than failing.
	return parseLooseHeader(header), body
}

// parseLooseHeader is the fallback for headers yaml.v3 rejects. Each line
// is split at the first colon; values keep their string form except for
// bracket-delimited JSON arrays.
func parseLooseHeader(header string) map[string]any {
	fm := map[string]any{}
	for _, line := range strings.Split(header, "\n") {
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		if key == "" {
			continue
		}
		val = stripMatchingQuotes(val)
		if strings.HasPrefix(val, "[") && strings.HasSuffix(val, "]") {
			var arr []any
			if err := json.Unmarshal([]byte(val), &arr); err == nil {
				fm[key] = arr
				continue
			}
		}
		fm[key] = val
	}
	return fm
}

func stripMatchingQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
