package triad

// Kernel computes a[i] = b[i] + c[i]*d[i] over the whole of a, iters times.
// B, C and D are never modified, so every pass recomputes the same result;
// the repetition exists only to consume a reproducible amount of memory
// traffic and arithmetic. b, c and d must be at least as long as a.
func Kernel(a, b, c, d []float64, iters int) {
	n := len(a)
	b, c, d = b[:n], c[:n], d[:n]
	for j := 0; j < iters; j++ {
		for i := range a {
			a[i] = b[i] + c[i]*d[i]
		}
	}
}

// FlopsPerElement is the number of floating-point operations per element
// and pass (one multiply, one add).
const FlopsPerElement = 2
