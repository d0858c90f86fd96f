// File: internal/services/reference/normalize.go
package reference

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// KeyPrefix is the marker carried by raw catalog labels, e.g. "source_ibuprofen_200mg".
const KeyPrefix = "source_"

var separatorReplacer = strings.NewReplacer("_", " ", ",", " ")

// Normalize turns a raw catalog key into its display/matching label.
func Normalize(key string) string {
	label := strings.TrimPrefix(key, KeyPrefix)
	label = separatorReplacer.Replace(label)
	return strings.ToLower(label)
}

// Tokenize splits text into lowercase alphanumeric tokens. Compatibility forms
// (full-width letters, ligatures) are folded first so they compare equal to ASCII.
func Tokenize(text string) []string {
	folded := strings.ToLower(norm.NFKC.String(text))

	var tokens []string
	start := -1
	for i := 0; i < len(folded); i++ {
		if isTokenByte(folded[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, folded[start:i])
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, folded[start:])
	}
	return tokens
}

func isTokenByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// tokenSet returns the distinct tokens of text.
func tokenSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
