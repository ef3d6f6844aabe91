// Package quant implements per-BFU scalar quantization and
// dequantization against the scale-factor table.
package quant

import (
	"math"

	"github.com/nimrav/atrac1/internal/tables"
)

// ChooseScaleFactor returns the smallest scale-factor index covering the
// largest-magnitude coefficient in coeffs, or 0 if coeffs are all zero.
func ChooseScaleFactor(coeffs []float64) int {
	var maxAbs float64
	for _, c := range coeffs {
		if a := math.Abs(c); a > maxAbs {
			maxAbs = a
		}
	}
	return tables.ScaleFactorIndexFor(maxAbs)
}

// Quantize quantizes coeffs under the given word-length index and
// scale-factor index, writing the signed integer results into out.
// A word-length index of 0, or scale-factor index of 0 with nonzero
// input, both degrade to all-zero output per the format's "silent BFU"
// convention.
func Quantize(coeffs []float64, wlIndex, sfIndex int, out []int32) {
	bits := tables.WordLengthBits[wlIndex]
	if bits == 0 || sfIndex == 0 {
		for i := range out {
			out[i] = 0
		}
		return
	}

	qRange := float64(int32(1)<<(bits-1) - 1)
	sf := tables.ScaleFactor[sfIndex]

	for i, c := range coeffs {
		q := math.Round(c * qRange / sf)
		if q > qRange {
			q = qRange
		}
		if q < -qRange-1 {
			q = -qRange - 1
		}
		out[i] = int32(q)
	}
}

// Dequantize reconstructs floating-point coefficients from quantized
// integers under the given word-length and scale-factor indices.
func Dequantize(quantized []int32, wlIndex, sfIndex int, out []float64) {
	bits := tables.WordLengthBits[wlIndex]
	if bits == 0 || sfIndex == 0 {
		for i := range out {
			out[i] = 0
		}
		return
	}

	qRange := float64(int32(1)<<(bits-1) - 1)
	sf := tables.ScaleFactor[sfIndex]

	for i, q := range quantized {
		out[i] = float64(q) * sf / qRange
	}
}
