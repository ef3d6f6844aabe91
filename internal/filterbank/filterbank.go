// Package filterbank implements the per-band MDCT analysis and
// synthesis stage: long-block and short-block transforms, sine
// windowing, and the overlap-add state that gives the codec its
// time-domain alias cancellation.
//
// Every block mode shares the same fixed-width, 32-sample seam: a long
// block's transform is zero-padded out to its full size with a flat
// (unity-weight) run between the leading and trailing ramps, rather
// than windowing across its entire length. That keeps the overlap
// geometry identical regardless of block size, so a long block can
// hand its trailing seam to a following short block (or vice versa)
// exactly the way it would to another long block.
package filterbank

import (
	"fmt"

	"github.com/nimrav/atrac1/internal/mdct"
	"github.com/nimrav/atrac1/internal/tables"
)

// overlapLen is the fixed seam width, in samples, shared by every
// block mode and band.
const overlapLen = tables.ShortSegmentLen

// Band holds the MDCT instances, windows, and persistent overlap state
// for one QMF band. bandLen is the band's sample count per frame (128
// for low/mid, 256 for high).
type Band struct {
	bandLen int
	numSegs int // bandLen / tables.ShortSegmentLen

	mdctLong  *mdct.MDCT
	mdctShort *mdct.MDCT

	windowLong  []float64 // length 2*bandLen
	windowShort []float64 // length 2*tables.ShortSegmentLen

	// tail holds the last overlapLen raw band-domain samples handed
	// off by the most recently processed segment (long or short): the
	// leading seam for whichever segment comes next, regardless of its
	// mode.
	tail []float64

	// accum is the overlap-add accumulator for synthesis, length
	// 2*bandLen; the first bandLen entries are always the next frame's
	// finished output once all of a frame's segments have been added.
	accum []float64

	windowScratch []float64 // length 2*bandLen, reused per segment
	coeffScratch  []float64 // length bandLen, reused per segment
}

// NewBand constructs a Band for the given per-frame sample count. bandLen
// must be a positive multiple of tables.ShortSegmentLen.
func NewBand(bandLen int) (*Band, error) {
	if bandLen <= 0 || bandLen%tables.ShortSegmentLen != 0 {
		return nil, fmt.Errorf("filterbank: bandLen %d must be a positive multiple of %d", bandLen, tables.ShortSegmentLen)
	}

	mdctLong, err := mdct.New(2 * bandLen)
	if err != nil {
		return nil, fmt.Errorf("filterbank: long MDCT: %w", err)
	}
	mdctShort, err := mdct.New(2 * tables.ShortSegmentLen)
	if err != nil {
		return nil, fmt.Errorf("filterbank: short MDCT: %w", err)
	}

	return &Band{
		bandLen:       bandLen,
		numSegs:       bandLen / tables.ShortSegmentLen,
		mdctLong:      mdctLong,
		mdctShort:     mdctShort,
		windowLong:    seamWindow(bandLen, overlapLen),
		windowShort:   seamWindow(tables.ShortSegmentLen, overlapLen),
		tail:          make([]float64, overlapLen),
		accum:         make([]float64, 2*bandLen),
		windowScratch: make([]float64, 2*bandLen),
		coeffScratch:  make([]float64, bandLen),
	}, nil
}

// Reset clears all persistent overlap state, as at stream start.
func (b *Band) Reset() {
	for i := range b.tail {
		b.tail[i] = 0
	}
	for i := range b.accum {
		b.accum[i] = 0
	}
}

// Forward transforms one frame of bandLen time-domain samples into
// bandLen spectral coefficients under the given block mode, and updates
// the persisted seam tail for the next segment's analysis window.
func (b *Band) Forward(mode tables.BlockMode, samples []float64, coeffsOut []float64) {
	segLen := b.bandLen
	numSegs := 1
	m := b.mdctLong
	win := b.windowLong
	if mode == tables.BlockShort {
		segLen = tables.ShortSegmentLen
		numSegs = b.numSegs
		m = b.mdctShort
		win = b.windowShort
	}

	n := 2 * segLen
	input := b.windowScratch[:n]
	coeffs := b.coeffScratch[:segLen]

	for s := 0; s < numSegs; s++ {
		seg := samples[s*segLen : (s+1)*segLen]

		copy(input[:overlapLen], b.tail)
		copy(input[overlapLen:overlapLen+segLen], seg)
		for i := overlapLen + segLen; i < n; i++ {
			input[i] = 0
		}
		for i := range input {
			input[i] *= win[i]
		}

		m.Forward(input, coeffs)
		copy(coeffsOut[s*segLen:(s+1)*segLen], coeffs)

		copy(b.tail, seg[segLen-overlapLen:])
	}
}

// Inverse reconstructs one frame of bandLen time-domain samples from
// bandLen spectral coefficients under the given block mode, overlap-
// adding against the persisted accumulator from prior frames.
func (b *Band) Inverse(mode tables.BlockMode, coeffsIn []float64, samplesOut []float64) {
	segLen := b.bandLen
	numSegs := 1
	m := b.mdctLong
	win := b.windowLong
	if mode == tables.BlockShort {
		segLen = tables.ShortSegmentLen
		numSegs = b.numSegs
		m = b.mdctShort
		win = b.windowShort
	}

	out := b.windowScratch[:2*segLen]

	for s := 0; s < numSegs; s++ {
		m.Inverse(coeffsIn[s*segLen:(s+1)*segLen], out)
		base := s * segLen
		for i := 0; i < 2*segLen; i++ {
			b.accum[base+i] += out[i] * win[i]
		}
	}

	copy(samplesOut, b.accum[:b.bandLen])
	copy(b.accum, b.accum[b.bandLen:])
	for i := b.bandLen; i < len(b.accum); i++ {
		b.accum[i] = 0
	}
}
