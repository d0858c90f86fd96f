package answer

import (
	"regexp"
	"strings"
)

// citationPattern matches 【...】 markers left by retrieval-backed assistants.
// The body excludes both brackets so an unmatched 【 or 】 stays literal.
var citationPattern = regexp.MustCompile(`【[^【】]*】`)

// StripCitations removes every citation marker and trims surrounding space.
func StripCitations(text string) string {
	return strings.TrimSpace(citationPattern.ReplaceAllString(text, ""))
}
