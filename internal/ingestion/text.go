// Package ingestion assembles resume chunk rows into full documents and
// prepares text for vectorization.
package ingestion

import (
	"regexp"
	"strings"
)

// DefaultSummaryLimit caps resume summaries at roughly a screenful.
const DefaultSummaryLimit = 600

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanText collapses whitespace runs (spaces, tabs, newlines) to single
// spaces and trims the result. Vectorization and skill matching operate
// on this flattened form.
func CleanText(content string) string {
	if content == "" {
		return ""
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(content, " "))
}

// Summarize cleans text and truncates it to limit characters, appending
// "..." when content was cut. A non-positive limit uses
// DefaultSummaryLimit. Truncation counts runes, not bytes.
func Summarize(text string, limit int) string {
	if limit <= 0 {
		limit = DefaultSummaryLimit
	}
	cleaned := CleanText(text)
	runes := []rune(cleaned)
	if len(runes) <= limit {
		return cleaned
	}
	return string(runes[:limit]) + "..."
}
