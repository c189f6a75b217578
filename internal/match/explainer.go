package match

import (
	"strings"

	"github.com/blevesearch/bleve/v2/analysis"

	"github.com/jessiysantos/fase5/internal/vectorize"
)

// explainer produces the keyword summary shown with each match. It always
// uses a lexical vector space over the candidate documents, regardless of the
// scoring strategy, so keywords stay interpretable terms from the candidate's
// own profile.
type explainer struct {
	vs *vectorize.VectorSpace
	n  int
}

// newExplainer builds the keyword space over docs. When the documents yield
// no vocabulary the explainer is disabled rather than failing the match.
func newExplainer(docs []string, stop analysis.TokenMap, n int) *explainer {
	vs, err := vectorize.Build(docs, stop)
	if err != nil {
		return &explainer{n: n}
	}
	return &explainer{vs: vs, n: n}
}

// keywordsFor returns the top-weighted terms of document i joined with
// ", ". Empty when the explainer is disabled or the document has no terms.
func (e *explainer) keywordsFor(i int) string {
	if e.vs == nil || e.n <= 0 {
		return ""
	}
	return strings.Join(e.vs.TopTerms(i, e.n), ", ")
}
