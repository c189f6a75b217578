//go:build !cgo
// +build !cgo

package embedding

import (
	"context"
	"errors"
)

// ONNXEncoder stub type when built without CGO (see onnx.go for the real
// implementation).
type ONNXEncoder struct{}

// NewONNXEncoder returns an error when built without CGO.
func NewONNXEncoder(_ string, _, _, _ int) (*ONNXEncoder, error) {
	return nil, errors.New("ONNX encoder requires CGO; build with CGO_ENABLED=1 and onnxruntime")
}

// Encode is unreachable without CGO; NewONNXEncoder always errors.
func (e *ONNXEncoder) Encode(_ context.Context, _ string) ([]float32, error) {
	return nil, errors.New("ONNX encoder requires CGO; build with CGO_ENABLED=1 and onnxruntime")
}

// EncodeBatch is unreachable without CGO; NewONNXEncoder always errors.
func (e *ONNXEncoder) EncodeBatch(_ context.Context, _ []string) ([][]float32, error) {
	return nil, errors.New("ONNX encoder requires CGO; build with CGO_ENABLED=1 and onnxruntime")
}

// Dimensions is unreachable without CGO; NewONNXEncoder always errors.
func (e *ONNXEncoder) Dimensions() int {
	return 0
}

// Close is unreachable without CGO; NewONNXEncoder always errors.
func (e *ONNXEncoder) Close() error {
	return nil
}
