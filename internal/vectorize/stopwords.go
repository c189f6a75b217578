// Package vectorize builds per-query TF-IDF vector spaces over candidate and
// job documents. The vocabulary is derived only from the documents of one
// query evaluation and is discarded after scoring.
package vectorize

import (
	"fmt"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/analysis/lang/pt"
)

// Stopwords returns the stopword token map for a language tag ("en", "pt").
// "none" or "" returns an empty map (no terms excluded).
func Stopwords(language string) (analysis.TokenMap, error) {
	tm := analysis.NewTokenMap()
	switch language {
	case "", "none":
		return tm, nil
	case "en":
		if err := tm.LoadBytes(en.EnglishStopWords); err != nil {
			return nil, fmt.Errorf("load english stopwords: %w", err)
		}
	case "pt":
		if err := tm.LoadBytes(pt.PortugueseStopWords); err != nil {
			return nil, fmt.Errorf("load portuguese stopwords: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported stopword language %q", language)
	}
	return tm, nil
}
