package atrac1

import (
	"math"

	"github.com/nimrav/atrac1/internal/alloc"
	"github.com/nimrav/atrac1/internal/filterbank"
	"github.com/nimrav/atrac1/internal/pool"
	"github.com/nimrav/atrac1/internal/psychoacoustic"
	"github.com/nimrav/atrac1/internal/qmf"
	"github.com/nimrav/atrac1/internal/quant"
	"github.com/nimrav/atrac1/internal/tables"
	"github.com/nimrav/atrac1/internal/transient"
)

const epsilon = 1e-10

// Encoder transforms one channel's 512-sample PCM frames into encoded
// sound units. An Encoder is constructed once per channel per stream and
// owns all of its scratch state; it must be called with frames in
// strict arrival order.
type Encoder struct {
	opts EncoderOptions
	buf  *pool.Buffers

	qmfSplit  *qmf.QMF // 512 -> low1(256)/high1(256)
	qmfLowMid *qmf.QMF // low1(256) -> low(128)/mid(128)
	highDelay *qmf.DelayLine

	transientLow  *transient.Detector
	transientMid  *transient.Detector
	transientHigh *transient.Detector

	fbLow  *filterbank.Band
	fbMid  *filterbank.Band
	fbHigh *filterbank.Band

	psychoAnalyzer *psychoacoustic.Analyzer

	low1  []float64
	high1 []float64

	quantScratch [20]int32
}

// NewEncoder constructs an Encoder. opts is validated; an out-of-range
// field returns ErrInvalidOption.
func NewEncoder(opts EncoderOptions) (*Encoder, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	fbLow, err := filterbank.NewBand(128)
	if err != nil {
		return nil, err
	}
	fbMid, err := filterbank.NewBand(128)
	if err != nil {
		return nil, err
	}
	fbHigh, err := filterbank.NewBand(256)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		opts:           opts,
		buf:            pool.New(),
		qmfSplit:       qmf.New(46),
		qmfLowMid:      qmf.New(46),
		highDelay:      qmf.NewDelayLine(39),
		transientLow:   transient.New(128),
		transientMid:   transient.New(128),
		transientHigh:  transient.New(256),
		fbLow:          fbLow,
		fbMid:          fbMid,
		fbHigh:         fbHigh,
		psychoAnalyzer: psychoacoustic.NewAnalyzer(),
		low1:           make([]float64, 256),
		high1:          make([]float64, 256),
	}, nil
}

// EncodeFrame encodes one 512-sample PCM frame. Must be called in order;
// the returned EncodedFrame is a value copy, safe to retain.
func (e *Encoder) EncodeFrame(pcm [512]float32) EncodedFrame {
	samples := e.buf.Scratch512
	for i, v := range pcm {
		samples[i] = float64(v)
	}

	e.qmfSplit.Analyze(samples, e.low1, e.high1)
	e.qmfLowMid.Analyze(e.low1, e.buf.BandLow, e.buf.BandMid)
	e.highDelay.Apply(e.high1, e.buf.BandHigh)

	transientLow := e.transientLow.Detect(e.buf.BandLow, e.opts.TransientThresholdLow)
	transientMid := e.transientMid.Detect(e.buf.BandMid, e.opts.TransientThresholdMid)
	transientHigh := e.transientHigh.Detect(e.buf.BandHigh, e.opts.TransientThresholdHigh)

	var f EncodedFrame
	f.BlockMode[bandLowIdx] = modeFor(transientLow)
	f.BlockMode[bandMidIdx] = modeFor(transientMid)
	f.BlockMode[bandHighIdx] = modeFor(transientHigh)

	spectrum := e.buf.Spectrum
	e.fbLow.Forward(f.BlockMode[bandLowIdx], e.buf.BandLow, spectrum[0:128])
	e.fbMid.Forward(f.BlockMode[bandMidIdx], e.buf.BandMid, spectrum[128:256])
	e.fbHigh.Forward(f.BlockMode[bandHighIdx], e.buf.BandHigh, spectrum[256:512])
	reverse(spectrum[128:256])
	reverse(spectrum[256:512])

	thresholds, shift := e.psychoAnalyzer.Analyze(spectrum)

	var smr [tables.NumBFU]float64
	var sfIndex [tables.NumBFU]int
	for i := 0; i < tables.NumBFU; i++ {
		size, _ := tables.BFUSize(i)
		start, _ := tables.BFUStartLong(i)
		coeffs := spectrum[start : start+size]

		sfIndex[i] = quant.ChooseScaleFactor(coeffs)

		var energy float64
		for _, c := range coeffs {
			energy += c * c
		}
		energyDB := -300.0
		if energy > epsilon {
			energyDB = 10*math.Log10(energy) + shift
		}

		center := float64(start) + float64(size)/2
		band := psychoacoustic.BandForSpectrumFraction(center / 512)
		smr[i] = energyDB - thresholds[band]
	}

	nBfu := selectActiveBFUCount(smr)
	f.NBfu = nBfu

	result := alloc.Allocate(smr, sfIndex, nBfu, FrameBits-16)
	f.ScaleFactorIndex = result.ScaleFactorIndex
	f.WordLengthIndex = result.WordLengthIndex

	for i := 0; i < nBfu; i++ {
		size, _ := tables.BFUSize(i)
		start, _ := tables.BFUStartLong(i)
		out := e.quantScratch[:size]
		quant.Quantize(spectrum[start:start+size], f.WordLengthIndex[i], f.ScaleFactorIndex[i], out)
		copy(f.Coefficients[i][:size], out)
	}

	return f
}

func modeFor(transient bool) tables.BlockMode {
	if transient {
		return tables.BlockShort
	}
	return tables.BlockLong
}

func reverse(s []float64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// selectActiveBFUCount picks the smallest active-BFU count from
// tables.ActiveBFUCounts such that the average SMR of the excluded tail
// is below 10% of the average SMR of the included head, per spec.md
// §4.9 Strategy A's diminishing-returns rule.
func selectActiveBFUCount(smr [tables.NumBFU]float64) int {
	for _, n := range tables.ActiveBFUCounts {
		if n >= tables.NumBFU {
			return tables.NumBFU
		}
		var includedSum, excludedSum float64
		for i := 0; i < n; i++ {
			includedSum += clampSMR(smr[i])
		}
		for i := n; i < tables.NumBFU; i++ {
			excludedSum += clampSMR(smr[i])
		}
		avgIncluded := includedSum / float64(n)
		avgExcluded := excludedSum / float64(tables.NumBFU-n)
		if avgIncluded <= 0 {
			continue
		}
		if avgExcluded < 0.1*avgIncluded {
			return n
		}
	}
	return tables.NumBFU
}

func clampSMR(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, -1) {
		return 0
	}
	if v < 0 {
		return 0
	}
	return v
}
