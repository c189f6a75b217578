package vectorize

// Cosine returns the cosine similarity of two L2-normalized weight vectors,
// clamped to [0,1]. A zero vector (empty document) yields exactly 0, never NaN.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	if dot < 0 {
		return 0
	}
	if dot > 1 {
		return 1
	}
	return dot
}
