package scoring

import (
	"context"

	"github.com/blevesearch/bleve/v2/analysis"

	"github.com/jessiysantos/fase5/internal/config"
	"github.com/jessiysantos/fase5/internal/vectorize"
)

// LexicalScorer scores with TF-IDF cosine similarity. The vector space is
// rebuilt per call over the documents plus the query, so scores reflect the
// corpus as it stands at query time.
type LexicalScorer struct {
	stopwords analysis.TokenMap
}

// NewLexicalScorer builds a lexical scorer with the stopword list for the
// given language tag.
func NewLexicalScorer(language string) (*LexicalScorer, error) {
	stop, err := vectorize.Stopwords(language)
	if err != nil {
		return nil, err
	}
	return &LexicalScorer{stopwords: stop}, nil
}

// Name identifies the strategy in responses and logs.
func (s *LexicalScorer) Name() string {
	return config.StrategyLexical
}

// Score fits a vector space over docs plus the query and returns the cosine
// similarity of each document against the query. ErrEmptyVocabulary
// propagates when no document contributes a term.
func (s *LexicalScorer) Score(ctx context.Context, query string, docs []string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	vs, err := vectorize.Build(append(append([]string{}, docs...), query), s.stopwords)
	if err != nil {
		return nil, err
	}
	queryVec := vs.Vector(len(docs))
	scores := make([]float64, len(docs))
	for i := range docs {
		scores[i] = vectorize.Cosine(vs.Vector(i), queryVec)
	}
	return scores, nil
}
