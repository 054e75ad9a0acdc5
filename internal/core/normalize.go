package core

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

var (
	lineBreakTags = regexp.MustCompile(`(?i)<\s*(?:br\s*/?|/p|/div|/tr|/li)\s*>`)
	spaceRuns     = regexp.MustCompile(`[ \t]+`)
	blankLineRuns = regexp.MustCompile(`\n\s*\n\s*\n+`)
)

// characters that survive HTML stripping but confuse pattern matching
var characterRepairs = strings.NewReplacer(
	"\u00a0", " ", // non-breaking space
	"\u200b", "", // zero-width space
	"\u2018", "'", // smart quotes
	"\u2019", "'",
	"\u201a", "'",
	"\u201c", `"`,
	"\u201d", `"`,
	"\u201e", `"`,
	"\u2013", "-", // en and em dashes
	"\u2014", "-",
)

// Normalizer turns a raw, possibly HTML, email body into canonical plain
// text for pattern matching. Normalize is total: it never fails, and worst
// case returns an empty string.
type Normalizer struct {
	policy *bluemonday.Policy
}

// NewNormalizer creates a new Normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Normalize strips markup, decodes entities, repairs mis-encoded characters
// and collapses whitespace.
func (n *Normalizer) Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	// Keep the line structure of HTML bodies: the extractors are
	// line-oriented and <br>/<p> boundaries carry meaning.
	text = lineBreakTags.ReplaceAllString(text, "\n")

	// The strict policy drops every tag and the content of script/style
	// blocks. It re-escapes text content, so entities are decoded after.
	text = n.policy.Sanitize(text)
	text = html.UnescapeString(text)

	text = norm.NFC.String(text)
	text = characterRepairs.Replace(text)

	text = spaceRuns.ReplaceAllString(text, " ")
	text = blankLineRuns.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
