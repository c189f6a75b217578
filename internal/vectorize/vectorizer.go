package vectorize

import (
	"errors"
	"math"
	"sort"

	"github.com/blevesearch/bleve/v2/analysis"
)

// ErrEmptyVocabulary is returned when the documents yield no usable tokens
// (all terms are stopwords or every document is empty). Callers should degrade
// to an empty match set rather than propagate a crash.
var ErrEmptyVocabulary = errors.New("vectorize: empty vocabulary")

// VectorSpace holds L2-normalized TF-IDF vectors for one set of documents.
// It is built per query evaluation and never mutated after construction, so it
// is safe to read from concurrent goroutines.
type VectorSpace struct {
	terms   []string       // vocabulary, sorted
	index   map[string]int // term -> position in terms
	idf     []float64
	vectors [][]float64 // per input document, same order as Build input
}

// Build constructs a TF-IDF vector space over docs. The vocabulary is the
// sorted set of non-stopword tokens across all documents, so the result is
// independent of document and token encounter order. IDF uses the smoothed
// form ln((1+N)/(1+df))+1 and every document vector is L2-normalized, so the
// inner product of two vectors is their cosine similarity.
func Build(docs []string, stop analysis.TokenMap) (*VectorSpace, error) {
	tokenized := make([][]string, len(docs))
	vocab := make(map[string]struct{})
	for i, doc := range docs {
		tokenized[i] = Tokenize(doc, stop)
		for _, tok := range tokenized[i] {
			vocab[tok] = struct{}{}
		}
	}
	if len(vocab) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(vocab))
	for term := range vocab {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	index := make(map[string]int, len(terms))
	for i, term := range terms {
		index[term] = i
	}

	df := make([]int, len(terms))
	for _, toks := range tokenized {
		seen := make(map[string]struct{}, len(toks))
		for _, tok := range toks {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[index[tok]]++
		}
	}

	n := float64(len(docs))
	idf := make([]float64, len(terms))
	for i, count := range df {
		idf[i] = math.Log((1+n)/(1+float64(count))) + 1
	}

	vs := &VectorSpace{
		terms:   terms,
		index:   index,
		idf:     idf,
		vectors: make([][]float64, len(docs)),
	}
	for i, toks := range tokenized {
		vs.vectors[i] = vs.weigh(toks)
	}
	return vs, nil
}

// weigh computes the L2-normalized TF-IDF vector for one token list.
// An empty token list yields the zero vector.
func (vs *VectorSpace) weigh(tokens []string) []float64 {
	vec := make([]float64, len(vs.terms))
	for _, tok := range tokens {
		if i, ok := vs.index[tok]; ok {
			vec[i]++
		}
	}
	var norm float64
	for i := range vec {
		vec[i] *= vs.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// Vector returns the weight vector of document i (Build input order).
// The returned slice must not be modified.
func (vs *VectorSpace) Vector(i int) []float64 {
	return vs.vectors[i]
}

// Len returns the number of documents in the space.
func (vs *VectorSpace) Len() int {
	return len(vs.vectors)
}

// Terms returns the vocabulary size.
func (vs *VectorSpace) Terms() int {
	return len(vs.terms)
}

// TopTerms returns the n highest-weighted terms of document i, by weight
// descending with lexicographic order breaking ties. Zero-weight terms are
// never returned, so the result may be shorter than n.
func (vs *VectorSpace) TopTerms(i, n int) []string {
	if n <= 0 || i < 0 || i >= len(vs.vectors) {
		return nil
	}
	vec := vs.vectors[i]
	type weighted struct {
		term   string
		weight float64
	}
	nonzero := make([]weighted, 0, n)
	for j, w := range vec {
		if w > 0 {
			nonzero = append(nonzero, weighted{vs.terms[j], w})
		}
	}
	sort.SliceStable(nonzero, func(a, b int) bool {
		if nonzero[a].weight != nonzero[b].weight {
			return nonzero[a].weight > nonzero[b].weight
		}
		return nonzero[a].term < nonzero[b].term
	})
	if len(nonzero) > n {
		nonzero = nonzero[:n]
	}
	top := make([]string, len(nonzero))
	for j, w := range nonzero {
		top[j] = w.term
	}
	return top
}
