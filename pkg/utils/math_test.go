package utils

import (
	"math"
	"testing"
)

func TestNormalizeL2(t *testing.T) {
	v := []float32{3, 4}
	NormalizeL2(v)
	if math.Abs(float64(v[0])-0.6) > 1e-6 || math.Abs(float64(v[1])-0.8) > 1e-6 {
		t.Errorf("normalized = %v, want [0.6 0.8]", v)
	}

	zero := []float32{0, 0, 0}
	NormalizeL2(zero)
	for i, x := range zero {
		if x != 0 {
			t.Errorf("zero[%d] = %v, zero vector must stay zero", i, x)
		}
	}
}

func TestInnerProduct(t *testing.T) {
	if got := InnerProduct([]float32{1, 0}, []float32{1, 0}); got != 1 {
		t.Errorf("identical unit vectors = %v, want 1", got)
	}
	if got := InnerProduct([]float32{1, 0}, []float32{0, 1}); got != 0 {
		t.Errorf("orthogonal vectors = %v, want 0", got)
	}
	if got := InnerProduct([]float32{1}, []float32{1, 2}); got != 0 {
		t.Errorf("mismatched lengths = %v, want 0", got)
	}
	if got := InnerProduct(nil, nil); got != 0 {
		t.Errorf("empty vectors = %v, want 0", got)
	}
}
