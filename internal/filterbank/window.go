package filterbank

import "math"

// sineRamp returns the length-2*overlap Princen-Bradley sine window
// w[i] = sin((i+0.5)*pi/(2*overlap)): for any i in [0,overlap) it
// satisfies w[i]^2 + w[overlap+i]^2 = 1, the identity time-domain
// alias cancellation at a seam relies on.
func sineRamp(overlap int) []float64 {
	n := 2 * overlap
	w := make([]float64, n)
	for i := 0; i < n; i++ {
		w[i] = math.Sin((float64(i) + 0.5) * math.Pi / float64(n))
	}
	return w
}

// seamWindow returns the length-2*segLen MDCT window for a transform
// whose analysis segment is segLen samples: a sine ramp of width
// overlap at the leading edge, a unity run filling the rest of the
// segment, a matching sine ramp at the trailing edge, and a zero run
// padding out the remainder of the transform.
//
// Keeping the ramp width fixed at overlap regardless of segLen is
// what lets a long block (segLen > overlap) and a short block
// (segLen == overlap) hand off an identically-shaped seam, so
// long-short and short-long transitions reconstruct the same way a
// long-long or short-short transition does. For segLen == overlap the
// unity and zero runs are empty and the window degenerates to the
// textbook full-length sine window.
func seamWindow(segLen, overlap int) []float64 {
	w := make([]float64, 2*segLen)
	ramp := sineRamp(overlap)
	copy(w[:overlap], ramp[:overlap])
	for i := overlap; i < segLen; i++ {
		w[i] = 1
	}
	copy(w[segLen:segLen+overlap], ramp[overlap:])
	return w
}
