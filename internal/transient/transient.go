// Package transient implements the per-band transient detector that
// drives long/short MDCT block-mode selection.
package transient

import (
	"math"

	"github.com/nimrav/atrac1/internal/fft"
)

const epsilon = 1e-10

// Detector holds the previous frame's magnitude spectrum for one band,
// persisted across calls so Detect can compute frame-to-frame deltas.
// haveMag false means "no previous frame": Detect then reports no
// transient, per the first-frame convention.
type Detector struct {
	fftSize int
	re, im  []float64

	// mag holds the two most recent magnitude spectra in a ping-pong
	// pair; curIdx selects which half is "current" this call, so Detect
	// never allocates a fresh magnitude buffer per frame.
	mag     [2][]float64
	curIdx  int
	haveMag bool
}

// New creates a Detector that analyzes band frames via an fftSize-point
// FFT (128 for low/mid, 256 for high).
func New(fftSize int) *Detector {
	return &Detector{
		fftSize: fftSize,
		re:      make([]float64, fftSize),
		im:      make([]float64, fftSize),
		mag:     [2][]float64{make([]float64, fftSize), make([]float64, fftSize)},
	}
}

// Reset clears the retained previous spectrum, forcing the next Detect
// call to report no transient.
func (d *Detector) Reset() {
	d.haveMag = false
}

// Detect computes the composite transient score for samples against the
// retained previous-frame spectrum, compares it to threshold, and
// updates the retained spectrum for the next call.
func (d *Detector) Detect(samples []float64, threshold float64) bool {
	for i := range d.re {
		if i < len(samples) {
			d.re[i] = samples[i]
		} else {
			d.re[i] = 0
		}
		d.im[i] = 0
	}
	_ = fft.Transform(d.re, d.im, false)

	prevIdx := d.curIdx
	d.curIdx = 1 - d.curIdx
	curr := d.mag[d.curIdx]
	fft.Magnitude(d.re, d.im, curr)

	if !d.haveMag {
		d.haveMag = true
		return false
	}

	prev := d.mag[prevIdx]
	score := compositeScore(prev, curr)

	return score > threshold
}

func compositeScore(prev, curr []float64) float64 {
	flux := spectralFlux(prev, curr)
	flat := math.Sqrt(math.Abs(flatness(curr) - flatness(prev)))
	hf := math.Abs(logCompress(hfRatio(curr)) - logCompress(hfRatio(prev)))
	energy := energyChangeDB(prev, curr)

	return (flux + flat + hf + energy) / 4
}

// spectralFlux sums positive magnitude increases, normalized by the
// current frame's energy.
func spectralFlux(prev, curr []float64) float64 {
	var sum, energy float64
	for i := range curr {
		if d := curr[i] - prev[i]; d > 0 {
			sum += d
		}
		energy += curr[i] * curr[i]
	}
	if energy < epsilon {
		return 0
	}
	return sum / math.Sqrt(energy)
}

// flatness is the geometric-mean-over-arithmetic-mean spectral flatness,
// restricted to bins above epsilon to keep the log well-defined.
func flatness(mag []float64) float64 {
	var logSum, sum float64
	n := 0
	for _, m := range mag {
		if m > epsilon {
			logSum += math.Log(m)
			sum += m
			n++
		}
	}
	if n == 0 || sum == 0 {
		return 0
	}
	geoMean := math.Exp(logSum / float64(n))
	arithMean := sum / float64(n)
	return geoMean / arithMean
}

// hfRatio is the fraction of spectral energy in the upper half of the
// magnitude spectrum.
func hfRatio(mag []float64) float64 {
	half := len(mag) / 2
	var upper, total float64
	for i, m := range mag {
		e := m * m
		total += e
		if i >= half {
			upper += e
		}
	}
	if total < epsilon {
		return 0
	}
	return upper / total
}

func logCompress(x float64) float64 {
	return math.Log1p(x)
}

// energyChangeDB computes max(0, 10*log10(Ecurr/Eprev)) clamped to 30 dB
// and normalized to [0, 1].
func energyChangeDB(prev, curr []float64) float64 {
	var eCurr, ePrev float64
	for i := range curr {
		eCurr += curr[i] * curr[i]
		ePrev += prev[i] * prev[i]
	}
	if eCurr < epsilon {
		return 0
	}
	if ePrev < epsilon {
		// Rising out of silence: the ratio is unbounded, so the change
		// sits at the 30 dB clamp.
		return 1
	}
	db := 10 * math.Log10(eCurr/ePrev)
	if db < 0 {
		db = 0
	}
	if db > 30 {
		db = 30
	}
	return db / 30
}
