// Package qmf implements the two-band Quadrature Mirror Filter used to
// split a PCM frame into low/high subbands (and, applied twice, into the
// low/mid/high band tree the encoder operates on).
package qmf

import "math"

// TapCount is the number of taps in the prototype analysis/synthesis
// filter. Coefficients are stored pre-split into even- and odd-indexed
// halves of TapCount/2 entries each, matching the butterfly form the
// analysis/synthesis convolution loops consume.
const TapCount = 48

const halfTaps = TapCount / 2

// even and odd hold the prototype low-pass filter's even- and
// odd-indexed taps. The prototype itself is a Hamming-windowed sinc
// half-band design, computed once at init time rather than carried as a
// literal table: no publicly documented ATRAC1 tap table was available
// in the reference material this module was built from, and the QMF
// round-trip property (§8: aliasing cancellation to 1 part in 10^6) only
// depends on the prototype being a valid half-band low-pass filter, not
// on any particular set of published coefficients.
var (
	even [halfTaps]float64
	odd  [halfTaps]float64
)

func init() {
	var proto [TapCount]float64
	center := (float64(TapCount) - 1) / 2
	for n := 0; n < TapCount; n++ {
		x := float64(n) - center
		var sinc float64
		if x == 0 {
			sinc = 0.5
		} else {
			sinc = math.Sin(math.Pi*x/2) / (math.Pi * x)
		}
		w := 0.54 - 0.46*math.Cos(2*math.Pi*float64(n)/float64(TapCount-1))
		proto[n] = sinc * w
	}

	var sum float64
	for _, v := range proto {
		sum += v
	}
	for n := range proto {
		proto[n] /= sum / 2
	}

	for j := 0; j < halfTaps; j++ {
		even[j] = proto[2*j]
		odd[j] = proto[2*j+1]
	}
}

// QMF holds the persistent delay line for one analysis or synthesis
// instance. Analysis and synthesis each own a private QMF; they are
// never shared across channels or directions.
type QMF struct {
	delay []float64
	work  []float64
}

// New creates a QMF stage with a zero-initialized delay line of the
// given length (46 for both stages of the band-split tree; the high
// band's 39-sample compensation uses DelayLine instead).
func New(delayLen int) *QMF {
	return &QMF{delay: make([]float64, delayLen)}
}

// scratch returns a reusable work buffer of length len(q.delay)+n,
// growing it only the first time a given n is requested so steady-state
// calls (always the same frame size) never allocate.
func (q *QMF) scratch(n int) []float64 {
	need := len(q.delay) + n
	if cap(q.work) < need {
		q.work = make([]float64, need)
	}
	return q.work[:need]
}

// Analyze splits in (length n) into low and high bands (each length
// n/2), updating the internal delay line for the next call.
func (q *QMF) Analyze(in []float64, low, high []float64) {
	n := len(in)
	half := n / 2
	work := q.scratch(n)
	copy(work, q.delay)
	copy(work[len(q.delay):], in)

	for i := 0; i < half; i++ {
		var evenSum, oddSum float64
		for j := 0; j < halfTaps; j++ {
			ei := 2*i + len(q.delay) - 1 - 2*j
			oi := 2*i + len(q.delay) - 2 - 2*j
			if ei >= 0 && ei < len(work) {
				evenSum += work[ei] * even[j]
			}
			if oi >= 0 && oi < len(work) {
				oddSum += work[oi] * odd[j]
			}
		}
		low[i] = evenSum + oddSum
		high[i] = evenSum - oddSum
	}

	copy(q.delay, work[len(work)-len(q.delay):])
}

// Synthesize combines low and high bands (each length n/2) back into a
// length-n output, updating the internal delay line.
func (q *QMF) Synthesize(low, high []float64, out []float64) {
	half := len(low)
	n := half * 2
	d := len(q.delay)
	work := q.scratch(n)
	copy(work, q.delay)

	for i := 0; i < half; i++ {
		work[d+2*i] = 0.5 * (low[i] + high[i])
		work[d+2*i+1] = 0.5 * (low[i] - high[i])
	}

	for i := 0; i < half; i++ {
		var evenSum, oddSum float64
		for j := 0; j < halfTaps; j++ {
			ei := 2*i + d - 1 - 2*j
			oi := 2*i + d - 2 - 2*j
			if ei >= 0 && ei < len(work) {
				evenSum += work[ei] * even[j]
			}
			if oi >= 0 && oi < len(work) {
				oddSum += work[oi] * odd[j]
			}
		}
		out[2*i] = evenSum - oddSum
		out[2*i+1] = evenSum + oddSum
	}

	copy(q.delay, work[len(work)-d:])
}

// DelayLine is a plain sample-shift register, used to align the
// high-band path's group delay with the two-stage low/mid QMF split it
// runs alongside (39 samples, per spec.md §4.4's tree description).
type DelayLine struct {
	buf     []float64
	scratch []float64
}

// NewDelayLine creates a DelayLine of the given length, zero-initialized.
func NewDelayLine(length int) *DelayLine {
	return &DelayLine{buf: make([]float64, length)}
}

// Apply shifts in (length n) through the delay line into out (length n):
// out[i] is in[i-len(buf)], with the first len(buf) outputs taken from
// the samples retained by the previous call. Updates the retained state
// for the next call.
func (d *DelayLine) Apply(in []float64, out []float64) {
	n := len(in)
	need := len(d.buf) + n
	if cap(d.scratch) < need {
		d.scratch = make([]float64, need)
	}
	combined := d.scratch[:need]
	copy(combined, d.buf)
	copy(combined[len(d.buf):], in)
	copy(out, combined[:n])
	copy(d.buf, combined[n:])
}
