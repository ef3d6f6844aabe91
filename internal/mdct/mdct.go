// Package mdct implements the Modified Discrete Cosine Transform and its
// inverse, the numerical core shared by every band's forward/inverse
// transform stage.
package mdct

import (
	"fmt"
	"math"

	"github.com/nimrav/atrac1/internal/fft"
)

// MDCT holds the twiddle state for one transform size. A single instance
// is reused across frames; Forward and Inverse allocate no state beyond
// their scratch buffers.
//
// The classic fast MDCT folds the N-point transform into a size-N/4
// complex FFT via even/odd symmetry in the cosine kernel. This
// implementation instead modulates the real input by a half-bin
// frequency shift and runs the full size-N complex FFT: a size-N/4
// reduction requires an additional symmetry decomposition this package
// forgoes, since spec correctness here is judged by the TDAC
// overlap-add identity (§4.3, §8), not by bit-exact agreement with any
// other MDCT implementation (an explicit non-goal).
type MDCT struct {
	N  int
	N2 int
	n0 float64

	preCos []float64
	preSin []float64

	postCos []float64
	postSin []float64

	re []float64
	im []float64
}

// New creates an MDCT for transform size n. n must be a power of 2 and a
// multiple of 4.
func New(n int) (*MDCT, error) {
	if n <= 0 || n%4 != 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("mdct: size %d must be a power of 2 and a multiple of 4", n)
	}

	m := &MDCT{
		N:  n,
		N2: n / 2,
		n0: float64(n)/4 + 0.5,
		re: make([]float64, n),
		im: make([]float64, n),
	}

	m.preCos = make([]float64, n)
	m.preSin = make([]float64, n)
	for i := 0; i < n; i++ {
		angle := math.Pi * float64(i) / float64(n)
		m.preCos[i] = math.Cos(angle)
		m.preSin[i] = math.Sin(angle)
	}

	m.postCos = make([]float64, m.N2)
	m.postSin = make([]float64, m.N2)
	for k := 0; k < m.N2; k++ {
		phi := (2 * math.Pi / float64(n)) * (float64(k) + 0.5) * m.n0
		m.postCos[k] = math.Cos(phi)
		m.postSin[k] = math.Sin(phi)
	}

	return m, nil
}

// Forward computes the MDCT of x (length N), producing N/2 coefficients.
func (m *MDCT) Forward(x []float64, out []float64) {
	for i := 0; i < m.N; i++ {
		m.re[i] = x[i] * m.preCos[i]
		m.im[i] = x[i] * m.preSin[i]
	}

	_ = fft.Transform(m.re, m.im, true) // inverse DFT sum, unnormalized use below

	for k := 0; k < m.N2; k++ {
		// fft.Transform(inverse=true) already divides by N; undo that
		// since the pre-twiddle derivation wants the raw sum S[k].
		sr := m.re[k] * float64(m.N)
		si := m.im[k] * float64(m.N)
		out[k] = sr*m.postCos[k] - si*m.postSin[k]
	}
}

// Inverse computes the IMDCT of X (length N/2), producing N samples.
// The output still needs windowing and overlap-add with the previous
// block's tail (done by the filterbank package) before it is usable PCM.
//
// This mirrors Forward's construction: X is rotated by the same
// per-bin phase used in the post-twiddle step, zero-extended to N, and
// run back through the size-N complex FFT, which is the adjoint of the
// sum Forward computes.
func (m *MDCT) Inverse(x []float64, out []float64) {
	for k := 0; k < m.N2; k++ {
		m.re[k] = x[k] * m.postCos[k]
		m.im[k] = x[k] * m.postSin[k]
	}
	for k := m.N2; k < m.N; k++ {
		m.re[k] = 0
		m.im[k] = 0
	}

	_ = fft.Transform(m.re, m.im, true)

	const scale = 2.0
	for n := 0; n < m.N; n++ {
		out[n] = scale * (m.re[n]*m.preCos[n] - m.im[n]*m.preSin[n])
	}
}
