// Package embedding provides dense text encoders for the embedding scoring
// strategy: an ONNX MiniLM encoder (requires CGO) and a deterministic hash
// encoder for tests and environments without a model.
package embedding

import "context"

// Encoder produces unit-length dense vectors for text. Encoders must be safe
// for concurrent use; the inner product of two encoded vectors is their
// cosine similarity.
type Encoder interface {
	Encode(ctx context.Context, text string) ([]float32, error)
	EncodeBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}
