package mdx

import (
	"regexp"
	"strings"
	"unicode"
)

// wordsPerMinute is the baseline reading speed for the reading-time
// estimate. CJK ideographs count as one word each, same as the word count.
const wordsPerMinute = 200

// DefaultExcerptLength is the excerpt truncation window, in runes.
const DefaultExcerptLength = 200

var (
	fencedCodeRe = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe = regexp.MustCompile("`[^`\n]*`")
	mdImageRe    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	mdLinkTextRe = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdMarkerRe   = regexp.MustCompile("[#*_~`]")
	whitespaceRe = regexp.MustCompile(`\s+`)
	asciiWordRe  = regexp.MustCompile(`[A-Za-z0-9]+(?:'[A-Za-z0-9]+)*`)
)

// cleanMarkdown reduces body to plain text: code is dropped, images are
// dropped, links keep their text, emphasis and heading markers are
// stripped, whitespace collapses to single spaces.
func cleanMarkdown(body string) string {
	s := fencedCodeRe.ReplaceAllString(body, " ")
	s = inlineCodeRe.ReplaceAllString(s, " ")
	s = mdImageRe.ReplaceAllString(s, " ")
	s = mdLinkTextRe.ReplaceAllString(s, "$1")
	s = mdMarkerRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}

// WordCount counts CJK ideographs individually plus whitespace-delimited
// ASCII word tokens, over the cleaned body.
func WordCount(body string) int {
	cleaned := cleanMarkdown(body)
	if cleaned == "" {
		return 0
	}

	cjk := 0
	var rest strings.Builder
	for _, r := range cleaned {
		if isCJK(r) {
			cjk++
			rest.WriteByte(' ')
			continue
		}
		rest.WriteRune(r)
	}

	return cjk + len(asciiWordRe.FindAllString(rest.String(), -1))
}

// ReadingTime estimates reading minutes for body, rounded up, never below
// one minute.
func ReadingTime(body string) int {
	minutes := (WordCount(body) + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// Excerpt derives a plain-text summary of at most maxLength runes. When
// truncating, it backtracks to the last space if that space falls inside
// the final 20% of the window, then appends an ellipsis.
func Excerpt(body string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultExcerptLength
	}
	cleaned := cleanMarkdown(body)
	runes := []rune(cleaned)
	if len(runes) <= maxLength {
		return cleaned
	}

	cut := runes[:maxLength]
	lastSpace := -1
	for i, r := range cut {
		if r == ' ' {
			lastSpace = i
		}
	}
	if float64(lastSpace) > float64(maxLength)*0.8 {
		cut = cut[:lastSpace]
	}
	return string(cut) + "..."
}
