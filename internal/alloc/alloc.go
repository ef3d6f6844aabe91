// Package alloc implements the rate-distortion bit allocator: given each
// BFU's signal-to-mask ratio and a total bit budget, it greedily assigns
// word-length indices to the BFUs whose current quantization noise most
// exceeds the masking threshold, until the budget is exhausted.
package alloc

import (
	"container/heap"
	"math"

	"github.com/nimrav/atrac1/internal/tables"
)

// bitsPerStep is the approximate SNR gain, in dB, of one word-length
// step (6.02 dB per bit, the standard uniform-quantizer rule of thumb).
const bitsPerStep = 6.02

// scaleFactorFieldBits and wordLengthFieldBits are the fixed per-BFU side-info
// field widths charged against the budget for every active BFU,
// independent of its assigned word length.
const (
	scaleFactorFieldBits = 6
	wordLengthFieldBits  = 4
)

// Result is the per-BFU allocation chosen for one channel's frame.
type Result struct {
	WordLengthIndex  [tables.NumBFU]int
	ScaleFactorIndex [tables.NumBFU]int
	BitsUsed         int
}

// bfuState tracks one BFU's allocation progress during the greedy pass.
type bfuState struct {
	index      int
	smr        float64 // signal-to-mask ratio, dB
	wlIndex    int
	numCoeffs  int
	active     bool
}

// priority is the estimated noise-to-mask ratio remaining after the
// BFU's current word length: higher means "most in need of more bits".
func (b *bfuState) priority() float64 {
	return b.smr - float64(b.wlIndex)*bitsPerStep
}

// heap of *bfuState ordered by descending priority.
type bfuHeap []*bfuState

func (h bfuHeap) Len() int            { return len(h) }
func (h bfuHeap) Less(i, j int) bool  { return h[i].priority() > h[j].priority() }
func (h bfuHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *bfuHeap) Push(x interface{}) { *h = append(*h, x.(*bfuState)) }
func (h *bfuHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Allocate distributes bitBudget bits across the active BFUs (the first
// numActive entries of smrByBFU, all others ignored) proportional to how
// far each BFU's current quantization noise exceeds its masking
// threshold, per spec.md §4.9 Strategy A. scaleFactorIndex supplies the
// scale factor already chosen for each BFU (needed to report it back in
// Result, not to influence allocation). NaN or infinite SMR values are
// treated as already satisfied (lowest priority) rather than allowed to
// poison comparisons.
func Allocate(smrByBFU [tables.NumBFU]float64, scaleFactorIndex [tables.NumBFU]int, numActive int, bitBudget int) Result {
	var result Result
	result.ScaleFactorIndex = scaleFactorIndex

	states := make([]*bfuState, 0, numActive)
	h := &bfuHeap{}
	for i := 0; i < numActive; i++ {
		n, err := tables.BFUSize(i)
		if err != nil {
			continue
		}
		smr := smrByBFU[i]
		if math.IsNaN(smr) || math.IsInf(smr, 0) {
			smr = math.Inf(-1)
		}
		st := &bfuState{index: i, smr: smr, numCoeffs: n, active: true}
		states = append(states, st)
		heap.Push(h, st)
	}

	bitsLeft := bitBudget
	for range states {
		bitsLeft -= scaleFactorFieldBits + wordLengthFieldBits
	}
	if bitsLeft < 0 {
		bitsLeft = 0
	}

	for h.Len() > 0 {
		st := (*h)[0]
		if st.wlIndex >= tables.MaxWordLengthIndex {
			heap.Pop(h)
			continue
		}
		nextBits, ok := bitsWordLength(st.wlIndex + 1)
		if !ok {
			heap.Pop(h)
			continue
		}
		curBits, _ := bitsWordLength(st.wlIndex)
		delta := (nextBits - curBits) * st.numCoeffs
		if delta <= 0 {
			heap.Pop(h)
			continue
		}
		if delta > bitsLeft {
			heap.Pop(h)
			continue
		}
		bitsLeft -= delta
		st.wlIndex++
		heap.Fix(h, 0)
	}

	used := bitBudget - bitsLeft
	for _, st := range states {
		result.WordLengthIndex[st.index] = st.wlIndex
	}
	result.BitsUsed = used
	return result
}

func bitsWordLength(idx int) (int, bool) {
	if idx < 0 || idx > tables.MaxWordLengthIndex {
		return 0, false
	}
	return tables.WordLengthBits[idx], true
}
