// Package tables holds the fixed, format-defined lookup tables shared by
// the quantizer, bit allocator, and serializer: BFU sizes and start
// offsets, the scale-factor table, and the word-length bit-width table.
package tables

import "errors"

// ErrInvalidBFUIndex is returned when a BFU index falls outside [0, NumBFU).
var ErrInvalidBFUIndex = errors.New("tables: invalid BFU index")

// NumBFU is the total number of Block Floating Units the spectrum is
// partitioned into.
const NumBFU = 52

// Band identifies which QMF band a BFU's coefficients belong to.
type Band uint8

const (
	BandLow Band = iota
	BandMid
	BandHigh
)

// bfuSize[i] is the number of spectral coefficients BFU i holds. The
// sizes are drawn from the allowed set {4, 6, 7, 8, 9, 10, 12, 20} and
// sum to exactly 512, split 128/128/256 across low/mid/high per the
// fixed spectrum layout.
var bfuSize = buildSizes()

func buildSizes() [NumBFU]int {
	var s [NumBFU]int
	// Low band: 20 BFUs covering 128 coefficients.
	for i := 0; i < 12; i++ {
		s[i] = 4
	}
	for i := 12; i < 20; i++ {
		s[i] = 10
	}
	// Mid band: 16 BFUs covering 128 coefficients.
	for i := 20; i < 36; i++ {
		s[i] = 8
	}
	// High band: 16 BFUs covering 256 coefficients.
	for i := 36; i < 48; i++ {
		s[i] = 20
	}
	for i := 48; i < 52; i++ {
		s[i] = 4
	}
	return s
}

// bfuStart[i] is BFU i's starting coefficient index in the 512-wide
// concatenated spectrum. The same offsets are used whether the owning
// band is in long or short block mode: short mode still serializes its
// K sub-blocks into one contiguous per-band run of the same total
// length, so only the spectral *content* at an offset changes with
// block mode, not the offset table itself. spec.md models long/short
// start tables as independent; this module unifies them, see DESIGN.md.
var bfuStart = buildStarts()

func buildStarts() [NumBFU]int {
	var s [NumBFU]int
	offset := 0
	for i := 0; i < NumBFU; i++ {
		s[i] = offset
		offset += bfuSize[i]
	}
	return s
}

// bandOf[i] is the QMF band BFU i's coefficients were produced by.
var bandOf = buildBands()

func buildBands() [NumBFU]Band {
	var b [NumBFU]Band
	for i := 0; i < 20; i++ {
		b[i] = BandLow
	}
	for i := 20; i < 36; i++ {
		b[i] = BandMid
	}
	for i := 36; i < 52; i++ {
		b[i] = BandHigh
	}
	return b
}

// BFUSize returns the coefficient count of BFU i.
func BFUSize(i int) (int, error) {
	if i < 0 || i >= NumBFU {
		return 0, ErrInvalidBFUIndex
	}
	return bfuSize[i], nil
}

// BFUStartLong returns BFU i's starting offset in the spectrum when its
// band is in long block mode.
func BFUStartLong(i int) (int, error) {
	if i < 0 || i >= NumBFU {
		return 0, ErrInvalidBFUIndex
	}
	return bfuStart[i], nil
}

// BFUBand returns the QMF band BFU i belongs to.
func BFUBand(i int) (Band, error) {
	if i < 0 || i >= NumBFU {
		return 0, ErrInvalidBFUIndex
	}
	return bandOf[i], nil
}

// ActiveBFUCounts is the fixed set of selectable active-BFU counts,
// indexed by the 3-bit nBfuIndex field.
var ActiveBFUCounts = [8]int{20, 28, 32, 36, 40, 44, 48, 52}

// NBfuIndex returns the 3-bit index for an active BFU count, and false
// if n is not one of the eight selectable counts.
func NBfuIndex(n int) (int, bool) {
	for i, c := range ActiveBFUCounts {
		if c == n {
			return i, true
		}
	}
	return 0, false
}
