// Package scoring computes similarity scores between a query and a set of
// candidate documents. Two strategies are available: lexical (TF-IDF over the
// query-time corpus) and embedding (dense encoder inner product).
package scoring

import "context"

// Scorer scores every document against a query in one call. Scores are in
// [0,1], returned in document order. Implementations must be deterministic
// for a fixed query and document set.
type Scorer interface {
	Name() string
	Score(ctx context.Context, query string, docs []string) ([]float64, error)
}
