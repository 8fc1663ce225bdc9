package message

import (
	"regexp"
	"strings"
)

// blankRuns matches runs of two or more consecutive blank lines.
var blankRuns = regexp.MustCompile(`\n{3,}`)

// NormalizeDescription cleans up free-text event descriptions: runs of blank
// lines collapse to a single line break, a configured trailing signature
// fragment is removed, and surrounding whitespace is trimmed.
func NormalizeDescription(s, signature string) string {
	s = blankRuns.ReplaceAllString(s, "\n")
	s = strings.TrimSpace(s)
	if signature != "" {
		s = strings.TrimSpace(strings.TrimSuffix(s, signature))
	}
	return s
}
