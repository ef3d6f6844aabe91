package atrac1

import (
	"fmt"

	"github.com/nimrav/atrac1/internal/bits"
	"github.com/nimrav/atrac1/internal/tables"
)

// headerDataBits is the width of the block-mode and nBfu fields before
// padding; the header as a whole is fixed at 16 bits (spec.md §3's
// "header 16" overhead figure), so the remaining 16-headerDataBits bits
// are zero padding. The table in spec.md §4.11 lists a 5-bit padding
// field, which doesn't reconcile with a 16-bit header given 2+2+2+3 = 9
// bits of real fields (9+5=14); this module takes the §3 invariant
// ("header 16") as authoritative and pads to fill it exactly.
const headerDataBits = 2 + 2 + 2 + 3
const headerPaddingBits = 16 - headerDataBits

// SerializeFrame packs f into a fixed 212-byte sound unit.
func SerializeFrame(f *EncodedFrame) [FrameBytes]byte {
	var out [FrameBytes]byte
	w := bits.NewWriter(out[:])

	w.PutBits(uint32(2-int(f.BlockMode[bandLowIdx])), 2)
	w.PutBits(uint32(2-int(f.BlockMode[bandMidIdx])), 2)
	w.PutBits(uint32(3-int(f.BlockMode[bandHighIdx])), 2)

	nBfuIdx, ok := tables.NBfuIndex(f.NBfu)
	if !ok {
		nBfuIdx = 0
	}
	w.PutBits(uint32(nBfuIdx), 3)
	w.PutBits(0, headerPaddingBits)

	for i := 0; i < f.NBfu; i++ {
		w.PutBits(uint32(f.WordLengthIndex[i]), 4)
	}
	for i := 0; i < f.NBfu; i++ {
		w.PutBits(uint32(f.ScaleFactorIndex[i]), 6)
	}
	for i := 0; i < f.NBfu; i++ {
		bitsPerSample := tables.WordLengthBits[f.WordLengthIndex[i]]
		if bitsPerSample == 0 {
			continue
		}
		size, err := tables.BFUSize(i)
		if err != nil {
			continue
		}
		for j := 0; j < size; j++ {
			w.PutSigned(f.Coefficients[i][j], uint(bitsPerSample))
		}
	}

	w.Flush()
	return out
}

// DeserializeFrame unpacks a 212-byte sound unit. buf must be exactly
// FrameBytes long.
func DeserializeFrame(buf []byte) (EncodedFrame, error) {
	var f EncodedFrame
	if len(buf) != FrameBytes {
		return f, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidFrameSize, len(buf), FrameBytes)
	}

	r := bits.NewReader(buf)

	lowCode := r.GetBits(2)
	midCode := r.GetBits(2)
	highCode := r.GetBits(2)
	f.BlockMode[bandLowIdx] = tables.BlockMode(2 - lowCode)
	f.BlockMode[bandMidIdx] = tables.BlockMode(2 - midCode)
	f.BlockMode[bandHighIdx] = tables.BlockMode(3 - highCode)

	nBfuIdx := int(r.GetBits(3))
	r.FlushBits(headerPaddingBits)
	if nBfuIdx < 0 || nBfuIdx >= len(tables.ActiveBFUCounts) {
		nBfuIdx = 0
	}
	f.NBfu = tables.ActiveBFUCounts[nBfuIdx]

	for i := 0; i < f.NBfu; i++ {
		f.WordLengthIndex[i] = int(r.GetBits(4))
	}
	for i := 0; i < f.NBfu; i++ {
		f.ScaleFactorIndex[i] = int(r.GetBits(6))
	}
	for i := 0; i < f.NBfu; i++ {
		bitsPerSample := tables.WordLengthBits[f.WordLengthIndex[i]]
		if bitsPerSample == 0 {
			continue
		}
		size, err := tables.BFUSize(i)
		if err != nil {
			continue
		}
		for j := 0; j < size; j++ {
			f.Coefficients[i][j] = r.GetSigned(uint(bitsPerSample))
		}
	}

	return f, nil
}
