package embedding

import (
	"context"
	"hash/fnv"
	"strings"

	"github.com/jessiysantos/fase5/pkg/utils"
)

// HashEncoder is a deterministic encoder: each word hashes into a bucket of a
// fixed-dimension vector, which is then unit-normalized. The same text always
// encodes to the same vector and texts sharing words land near each other, so
// it exercises the full embedding pipeline without a model.
type HashEncoder struct {
	dimensions int
}

// NewHashEncoder returns a hash encoder with the given dimensions (384 when
// non-positive, matching the MiniLM default).
func NewHashEncoder(dimensions int) *HashEncoder {
	if dimensions <= 0 {
		dimensions = 384
	}
	return &HashEncoder{dimensions: dimensions}
}

// Encode hashes each whitespace-separated lowercased word into a bucket.
func (e *HashEncoder) Encode(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dimensions)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(word))
		bucket := int(h.Sum32()) % e.dimensions
		if bucket < 0 {
			bucket += e.dimensions
		}
		// Signed contribution so distinct vocabularies stay distinguishable.
		if h.Sum32()%2 == 0 {
			vec[bucket]++
		} else {
			vec[bucket]--
		}
	}
	if allZero(vec) {
		return vec, nil
	}
	utils.NormalizeL2(vec)
	return vec, nil
}

// EncodeBatch encodes each text in order.
func (e *HashEncoder) EncodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.Encode(ctx, text)
		if err != nil {
			return nil, err
		}
		vecs[i] = vec
	}
	return vecs, nil
}

// Dimensions returns the vector dimension.
func (e *HashEncoder) Dimensions() int {
	return e.dimensions
}

// Close is a no-op.
func (e *HashEncoder) Close() error {
	return nil
}

func allZero(vec []float32) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}
