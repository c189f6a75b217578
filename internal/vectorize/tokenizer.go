package vectorize

import (
	"strings"
	"unicode"

	"github.com/blevesearch/bleve/v2/analysis"
)

// Tokenize lowercases text, splits on non-alphanumeric runes, and drops
// single-character tokens and stopwords. Accented letters are kept so
// Portuguese terms tokenize intact. stop may be nil.
func Tokenize(text string, stop analysis.TokenMap) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len([]rune(w)) < 2 {
			continue
		}
		if stop != nil && stop[w] {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}
