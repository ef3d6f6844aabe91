package atrac1

import (
	"github.com/nimrav/atrac1/internal/filterbank"
	"github.com/nimrav/atrac1/internal/pool"
	"github.com/nimrav/atrac1/internal/qmf"
	"github.com/nimrav/atrac1/internal/quant"
	"github.com/nimrav/atrac1/internal/tables"
)

// Decoder reconstructs 512-sample PCM frames from encoded sound units.
// A Decoder is constructed once per channel per stream and owns all of
// its scratch state; it must be called with frames in the same order
// they were produced by Encoder.
type Decoder struct {
	buf *pool.Buffers

	qmfSplit  *qmf.QMF // low1(256)/high1(256) -> 512
	qmfLowMid *qmf.QMF // low(128)/mid(128) -> low1(256)

	// low1Delay compensates for Encoder's highDelay: the encoder delays
	// the high1 path by 39 samples to align it with the extra group
	// delay the low/mid path picks up from its second QMF stage, so on
	// the way back the reconstructed low1 path needs the same 39-sample
	// delay before it can be recombined with the (already-delayed)
	// high band.
	low1Delay *qmf.DelayLine

	fbLow  *filterbank.Band
	fbMid  *filterbank.Band
	fbHigh *filterbank.Band

	low1           []float64
	dequantScratch [20]float64
}

// NewDecoder constructs a Decoder.
func NewDecoder() (*Decoder, error) {
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

	return &Decoder{
		buf:       pool.New(),
		qmfSplit:  qmf.New(46),
		qmfLowMid: qmf.New(46),
		low1Delay: qmf.NewDelayLine(39),
		fbLow:     fbLow,
		fbMid:     fbMid,
		fbHigh:    fbHigh,
		low1:      make([]float64, 256),
	}, nil
}

// DecodeFrame reconstructs one 512-sample PCM frame from f. Must be
// called in order; the returned array is a fresh copy, safe to retain.
func (d *Decoder) DecodeFrame(f *EncodedFrame) [512]float32 {
	spectrum := d.buf.Spectrum
	for i := 0; i < f.NBfu; i++ {
		size, err := tables.BFUSize(i)
		if err != nil {
			continue
		}
		start, err := tables.BFUStartLong(i)
		if err != nil {
			continue
		}
		out := d.dequantScratch[:size]
		quant.Dequantize(f.Coefficients[i][:size], f.WordLengthIndex[i], f.ScaleFactorIndex[i], out)
		copy(spectrum[start:start+size], out)
	}
	for i := f.NBfu; i < tables.NumBFU; i++ {
		size, err := tables.BFUSize(i)
		if err != nil {
			continue
		}
		start, err := tables.BFUStartLong(i)
		if err != nil {
			continue
		}
		for j := 0; j < size; j++ {
			spectrum[start+j] = 0
		}
	}

	reverse(spectrum[128:256])
	reverse(spectrum[256:512])

	d.fbLow.Inverse(f.BlockMode[bandLowIdx], spectrum[0:128], d.buf.BandLow)
	d.fbMid.Inverse(f.BlockMode[bandMidIdx], spectrum[128:256], d.buf.BandMid)
	d.fbHigh.Inverse(f.BlockMode[bandHighIdx], spectrum[256:512], d.buf.BandHigh)

	d.qmfLowMid.Synthesize(d.buf.BandLow, d.buf.BandMid, d.low1)
	d.low1Delay.Apply(d.low1, d.low1)

	var out [512]float64
	d.qmfSplit.Synthesize(d.low1, d.buf.BandHigh, out[:])

	var pcm [512]float32
	for i, v := range out {
		pcm[i] = float32(v)
	}
	return pcm
}
