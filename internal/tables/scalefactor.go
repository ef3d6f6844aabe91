package tables

import "math"

// NumScaleFactors is the size of the scale-factor table.
const NumScaleFactors = 64

// ScaleFactor is the 64-entry log-spaced scale-factor table,
// ScaleFactor[i] = 2^(i/3 - 21).
var ScaleFactor = buildScaleFactors()

func buildScaleFactors() [NumScaleFactors]float64 {
	var sf [NumScaleFactors]float64
	for i := range sf {
		sf[i] = math.Exp2(float64(i)/3 - 21)
	}
	return sf
}

// ScaleFactorIndexFor returns the smallest index i with ScaleFactor[i] >=
// maxAbs, or 0 if maxAbs is 0 (the "silent BFU" convention).
func ScaleFactorIndexFor(maxAbs float64) int {
	if maxAbs <= 0 {
		return 0
	}
	for i, sf := range ScaleFactor {
		if sf >= maxAbs {
			return i
		}
	}
	return NumScaleFactors - 1
}
