package scoring

import (
	"context"
	"fmt"

	"github.com/jessiysantos/fase5/internal/config"
	"github.com/jessiysantos/fase5/internal/embedding"
	"github.com/jessiysantos/fase5/pkg/utils"
)

// EmbeddingScorer scores with the inner product of unit-length dense vectors.
type EmbeddingScorer struct {
	encoder embedding.Encoder
}

// NewEmbeddingScorer wraps an encoder as a scorer.
func NewEmbeddingScorer(encoder embedding.Encoder) *EmbeddingScorer {
	return &EmbeddingScorer{encoder: encoder}
}

// Name identifies the strategy in responses and logs.
func (s *EmbeddingScorer) Name() string {
	return config.StrategyEmbedding
}

// Score encodes the query and every document and returns their inner
// products, clamped to [0,1]. Encoders normalize their output, so the inner
// product is cosine similarity.
func (s *EmbeddingScorer) Score(ctx context.Context, query string, docs []string) ([]float64, error) {
	queryVec, err := s.encoder.Encode(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	docVecs, err := s.encoder.EncodeBatch(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("encode documents: %w", err)
	}
	scores := make([]float64, len(docs))
	for i, vec := range docVecs {
		sim := utils.InnerProduct(queryVec, vec)
		if sim < 0 {
			sim = 0
		}
		if sim > 1 {
			sim = 1
		}
		scores[i] = sim
	}
	return scores, nil
}

// Close releases the underlying encoder.
func (s *EmbeddingScorer) Close() error {
	return s.encoder.Close()
}
