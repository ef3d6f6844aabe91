// Package psychoacoustic implements the masking-threshold model that
// feeds the bit allocator's signal-to-mask ratio computation.
package psychoacoustic

import "math"

// NumCriticalBands is the number of Bark-scale critical bands the
// masking threshold is computed over.
const NumCriticalBands = 25

// TargetLevelDB is the default normalization target: the loudest bin in
// the resampled power spectrum is scaled to this SPL.
const TargetLevelDB = 68.0

const epsilon = 1e-10

// psdSize is the number of PSD bins the 512-coefficient MDCT spectrum is
// resampled into before masker detection (FFT/2+1 for a 256-point FFT).
const psdSize = 129

// bandEdge[j] is the PSD bin index at which critical band j begins;
// bandEdge[NumCriticalBands] is psdSize. Edges are spaced to approximate
// the Bark scale across 0-22050 Hz at psdSize bins.
var bandEdge = buildBandEdges()

// bandBark[j] is critical band j's representative Bark value, used for
// spreading-function distance.
var bandBark [NumCriticalBands]float64

// absoluteThreshold[j] is the absolute threshold of hearing for critical
// band j, in dB SPL, sampled at the band's center frequency from the
// standard ISO 226-style quiet-threshold curve.
var absoluteThreshold [NumCriticalBands]float64

func init() {
	for j := 0; j < NumCriticalBands; j++ {
		centerBin := (bandEdge[j] + bandEdge[j+1]) / 2
		freq := float64(centerBin) / float64(psdSize-1) * 22050
		bandBark[j] = barkOf(freq)
		absoluteThreshold[j] = quietThresholdDB(freq)
	}
}

func buildBandEdges() [NumCriticalBands + 1]int {
	var edges [NumCriticalBands + 1]int
	for j := 0; j <= NumCriticalBands; j++ {
		// Warp linearly-spaced Bark steps back into a PSD bin index so
		// low bands (more perceptually significant) get finer bins.
		z := float64(j) / float64(NumCriticalBands) * 24.0
		freq := barkToFreq(z)
		bin := int(freq / 22050 * float64(psdSize-1))
		if bin > psdSize-1 {
			bin = psdSize - 1
		}
		edges[j] = bin
	}
	edges[NumCriticalBands] = psdSize
	if edges[0] != 0 {
		edges[0] = 0
	}
	return edges
}

func barkOf(freq float64) float64 {
	return 13*math.Atan(0.00076*freq) + 3.5*math.Atan(math.Pow(freq/7500, 2))
}

// barkToFreq inverts barkOf numerically via bisection; it is only used
// at init time to build the fixed band tables.
func barkToFreq(z float64) float64 {
	lo, hi := 0.0, 22050.0
	for i := 0; i < 40; i++ {
		mid := (lo + hi) / 2
		if barkOf(mid) < z {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// quietThresholdDB approximates the absolute threshold of hearing curve
// (Terhardt's analytic approximation).
func quietThresholdDB(freq float64) float64 {
	if freq < 20 {
		freq = 20
	}
	f := freq / 1000
	return 3.64*math.Pow(f, -0.8) - 6.5*math.Exp(-0.6*math.Pow(f-3.3, 2)) + 1e-3*math.Pow(f, 4)
}

// Masker is one detected tonal or non-tonal masking component.
type Masker struct {
	Bin     int
	Bark    float64
	LevelDB float64
	Tonal   bool
}

// maxMaskers bounds the combined tonal+non-tonal masker count per
// frame: at most one tonal masker per PSD bin, plus one non-tonal
// masker per critical band.
const maxMaskers = psdSize + NumCriticalBands

// Analyzer holds the scratch buffers one channel's masking-threshold
// computation reuses every frame. A single instance is reused across
// frames; Analyze allocates no state beyond its buffers.
type Analyzer struct {
	psd     []float64 // length psdSize
	psdDB   []float64 // length psdSize
	used    []bool    // length psdSize
	maskers []Masker  // capacity maxMaskers, reused per call
}

// NewAnalyzer constructs an Analyzer with its scratch buffers
// pre-allocated.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		psd:     make([]float64, psdSize),
		psdDB:   make([]float64, psdSize),
		used:    make([]bool, psdSize),
		maskers: make([]Masker, 0, maxMaskers),
	}
}

// Analyze computes the 25-band masking threshold for one frame's
// 512-coefficient MDCT power spectrum. The spectrum is normalized so its
// loudest bin sits at TargetLevelDB before maskers are detected against
// the fixed absolute-threshold-of-hearing table; the returned shift is
// the amount (in dB) that normalization added, so a caller computing its
// own raw energy-in-dB figures (e.g. per-BFU signal energy) can add the
// same shift before comparing against the returned thresholds, keeping
// both sides of that comparison in the same normalized domain.
func (a *Analyzer) Analyze(spectrum []float64) (thresholds [NumCriticalBands]float64, shift float64) {
	a.resample(spectrum)
	maxDB := a.toDB()

	if maxDB > -300 {
		shift = TargetLevelDB - maxDB
	}
	normalize(a.psdDB, maxDB)

	for i := range a.used {
		a.used[i] = false
	}
	a.maskers = a.maskers[:0]
	a.maskers = a.detectTonal(a.maskers)
	a.maskers = a.detectNonTonal(a.maskers)
	a.maskers = decimate(a.maskers)

	thresholds = spreadThresholds(a.maskers)
	return thresholds, shift
}

// BandForSpectrumFraction maps a position in the 512-wide spectrum
// (frac in [0,1), 0 = DC, 1 = Nyquist) to its critical band index, for
// callers that need to look up a masking threshold at a BFU's center
// frequency.
func BandForSpectrumFraction(frac float64) int {
	freq := frac * 22050
	return criticalBandOf(barkOf(freq))
}

// resample maps the 512 MDCT coefficients onto psdSize power bins by
// grouping consecutive coefficients and summing their squared magnitude,
// into a.psd.
func (a *Analyzer) resample(spectrum []float64) {
	groupSize := float64(len(spectrum)) / float64(psdSize)
	for i := range a.psd {
		lo := int(float64(i) * groupSize)
		hi := int(float64(i+1) * groupSize)
		if hi > len(spectrum) {
			hi = len(spectrum)
		}
		if hi <= lo {
			hi = lo + 1
		}
		var sum float64
		for k := lo; k < hi && k < len(spectrum); k++ {
			sum += spectrum[k] * spectrum[k]
		}
		a.psd[i] = sum
	}
}

func (a *Analyzer) toDB() float64 {
	maxDB := -300.0
	for i, p := range a.psd {
		if p < epsilon {
			a.psdDB[i] = -300
		} else {
			a.psdDB[i] = 10 * math.Log10(p)
		}
		if a.psdDB[i] > maxDB {
			maxDB = a.psdDB[i]
		}
	}
	return maxDB
}

func normalize(db []float64, maxDB float64) {
	if maxDB <= -300 {
		return
	}
	shift := TargetLevelDB - maxDB
	for i := range db {
		db[i] += shift
	}
}

// neighborOffsets returns the offsets used to test bin k for a local
// tonal maximum; the span widens with frequency per spec.md §4.8.
func neighborOffsets(k int) []int {
	switch {
	case k < 16:
		return []int{-2, 2}
	case k < 64:
		return []int{-3, -2, 2, 3}
	default:
		return []int{-6, -5, -4, -3, -2, 2, 3, 4, 5, 6}
	}
}

func (a *Analyzer) detectTonal(out []Masker) []Masker {
	db := a.psdDB
	used := a.used
	for k := 2; k < len(db)-6; k++ {
		if db[k] <= db[k-1] || db[k] <= db[k+1] {
			continue
		}
		isTonal := true
		for _, off := range neighborOffsets(k) {
			n := k + off
			if n < 0 || n >= len(db) {
				continue
			}
			if db[k]-db[n] < 7 {
				isTonal = false
				break
			}
		}
		if !isTonal {
			continue
		}
		out = append(out, Masker{Bin: k, Bark: binBark(k), LevelDB: db[k], Tonal: true})
		for _, off := range neighborOffsets(k) {
			n := k + off
			if n >= 0 && n < len(used) {
				used[n] = true
			}
		}
		used[k] = true
	}
	return out
}

func binBark(bin int) float64 {
	freq := float64(bin) / float64(psdSize-1) * 22050
	return barkOf(freq)
}

func (a *Analyzer) detectNonTonal(out []Masker) []Masker {
	db := a.psdDB
	used := a.used
	for j := 0; j < NumCriticalBands; j++ {
		lo, hi := bandEdge[j], bandEdge[j+1]
		var sumPower, weightedBin float64
		for k := lo; k < hi; k++ {
			if used[k] {
				continue
			}
			p := math.Pow(10, db[k]/10)
			sumPower += p
			weightedBin += float64(k) * p
		}
		if sumPower < epsilon {
			continue
		}
		centroid := weightedBin / sumPower
		level := 10 * math.Log10(sumPower)
		out = append(out, Masker{Bin: int(centroid), Bark: binBark(int(centroid)), LevelDB: level, Tonal: false})
	}
	return out
}

func decimate(maskers []Masker) []Masker {
	out := maskers[:0]
	for _, m := range maskers {
		j := criticalBandOf(m.Bark)
		if m.LevelDB >= absoluteThreshold[j] {
			out = append(out, m)
		}
	}
	return out
}

func criticalBandOf(bark float64) int {
	z := bark / 24.0 * NumCriticalBands
	j := int(z)
	if j < 0 {
		j = 0
	}
	if j >= NumCriticalBands {
		j = NumCriticalBands - 1
	}
	return j
}

// spreadThresholds combines each masker's contribution across critical
// bands via the classical two-slopes-per-side spreading function (ISO
// 11172-3 Annex D psychoacoustic model 1), then combines with the
// absolute threshold in quiet.
func spreadThresholds(maskers []Masker) [NumCriticalBands]float64 {
	if len(maskers) == 0 {
		// Nothing masks: the threshold is exactly the threshold in quiet.
		return absoluteThreshold
	}

	var powerSum [NumCriticalBands]float64
	for j := 0; j < NumCriticalBands; j++ {
		powerSum[j] = math.Pow(10, absoluteThreshold[j]/10)
	}

	for _, m := range maskers {
		maskedBand := criticalBandOf(m.Bark)
		for j := 0; j < NumCriticalBands; j++ {
			dz := bandBark[j] - m.Bark
			if dz < -3 || dz >= 8 {
				continue
			}
			var avIndex float64
			if m.Tonal {
				avIndex = -1.525 - 0.275*bandBark[maskedBand] - 4.5
			} else {
				avIndex = -1.525 - 0.175*bandBark[maskedBand] - 0.5
			}
			spl := spreadingFunc(dz, m.LevelDB)
			thresholdDB := m.LevelDB + avIndex + spl
			powerSum[j] += math.Pow(10, thresholdDB/10)
		}
	}

	var out [NumCriticalBands]float64
	for j := range out {
		out[j] = 10 * math.Log10(powerSum[j])
	}
	return out
}

func spreadingFunc(dz, levelDB float64) float64 {
	switch {
	case dz >= -3 && dz < -1:
		return 17*dz - 0.4*levelDB + 11
	case dz >= -1 && dz < 0:
		return (0.4*levelDB + 6) * dz
	case dz >= 0 && dz < 1:
		return -17 * dz
	default: // 1 <= dz < 8
		return (0.15*levelDB - 17) * dz - 0.15*levelDB
	}
}
