package atrac1

import "github.com/nimrav/atrac1/internal/tables"

// NumBFU is the fixed number of Block Floating Units a full spectrum is
// partitioned into.
const NumBFU = tables.NumBFU

// FrameBytes is the fixed size of one serialized sound unit.
const FrameBytes = 212

// FrameBits is FrameBytes expressed in bits.
const FrameBits = FrameBytes * 8

// EncodedFrame is the logical content of one 212-byte sound unit: the
// decision data (block modes, active BFU count) plus the per-BFU side
// info and quantized coefficients. JSON tags support the dump view
// named in spec.md §6 (the CLI itself is an external collaborator).
type EncodedFrame struct {
	NBfu             int                 `json:"nBfu"`
	BlockMode        [3]tables.BlockMode `json:"blockMode"`
	ScaleFactorIndex [NumBFU]int         `json:"scaleFactorIndex"`
	WordLengthIndex  [NumBFU]int         `json:"wordLengthIndex"`
	Coefficients     [NumBFU][20]int32   `json:"coefficients"`
}

// Band indices into EncodedFrame.BlockMode.
const (
	bandLowIdx = iota
	bandMidIdx
	bandHighIdx
)
