// Package pool provides the lifetime-scoped scratch and state allocation
// shared by one encoder or decoder instance. Every array an instance
// touches on the hot path is allocated once here and reused frame after
// frame; nothing in the codec allocates during steady-state encode or
// decode.
package pool

// Buffers holds the per-instance scratch buffers shared between the QMF,
// filterbank, and psychoacoustic stages of one channel's encoder or
// decoder. Persistent state specific to one stage (QMF delay lines,
// filterbank overlap-add history, transient detector history) lives in
// that stage's own type instead of here, so each stage stays usable on
// its own; Buffers only holds the hand-off scratch passed between
// stages, sized once and reused frame after frame.
type Buffers struct {
	// Band frame scratch (post-QMF, pre-MDCT / post-IMDCT, pre-QMF).
	BandLow  []float64 // 128
	BandMid  []float64 // 128
	BandHigh []float64 // 256

	// Spectrum scratch: the 512-coefficient concatenated layout.
	Spectrum []float64

	// Raw PCM frame scratch, converted to float64 on entry.
	Scratch512 []float64
}

// New allocates a zero-initialized Buffers instance. Called once per
// channel per stream.
func New() *Buffers {
	return &Buffers{
		BandLow:  make([]float64, 128),
		BandMid:  make([]float64, 128),
		BandHigh: make([]float64, 256),

		Spectrum: make([]float64, 512),

		Scratch512: make([]float64, 512),
	}
}
