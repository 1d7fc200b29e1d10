package loudness

import (
	"errors"
	"math"
	"sort"

	"github.com/cwbudde/algo-audio/dsp/filter/design"
	"github.com/cwbudde/algo-audio/dsp/pcm"
)

const (
	// Gating parameters from EBU R128 / ITU-R BS.1770-4.
	absThresholdLUFS = -70.0
	relThresholdLU   = -10.0
	rangeThresholdLU = -20.0

	// Integration window durations in seconds.
	blockDuration     = 0.4
	shortTermDuration = 3.0
	hopDuration       = 0.1

	// Loudness = lufsOffset + 10*log10(mean_square).
	lufsOffset = -0.691

	// Effective floor for empty or silent measurements.
	loudnessFloor = -120.0
)

var (
	// ErrInsufficientData is returned when the buffer is shorter than one
	// 400 ms gating block. The result carries peak values only.
	ErrInsufficientData = errors.New("loudness: buffer shorter than one gating block")

	// ErrNoMeasurableLoudness is returned when every gating block falls
	// below the absolute gate (e.g. silence-only input).
	ErrNoMeasurableLoudness = errors.New("loudness: no blocks above the absolute gate")
)

// Result holds a completed EBU R128 measurement. When Valid is false the
// loudness fields are not meaningful; peak fields are always populated.
type Result struct {
	Integrated   float64 // LUFS
	Range        float64 // LU
	MomentaryMax float64 // LUFS, maximum over 400 ms windows
	ShortTermMax float64 // LUFS, maximum over 3 s windows

	SamplePeak   float64 // linear
	SamplePeakDB float64 // dBFS
	TruePeak     float64 // linear, oversampled estimate
	TruePeakDB   float64 // dBFS

	BlockCount int // gating blocks measured before gating
	Valid      bool
}

// Analyze measures the loudness of buf according to EBU R128.
//
// The input buffer is never modified; K-weighting runs on an internal
// copy per channel with filter state owned exclusively by this call.
func Analyze(buf *pcm.Buffer, opts ...Option) (Result, error) {
	cfg := ApplyOptions(opts...)

	res := Result{
		Integrated:   loudnessFloor,
		MomentaryMax: loudnessFloor,
		ShortTermMax: loudnessFloor,
	}

	measurePeaks(&res, buf, cfg.TruePeak)

	rate := buf.SampleRate()
	frames := buf.Frames()

	blockSamples := int(math.Round(blockDuration * float64(rate)))
	hopSamples := max(int(math.Round(hopDuration*float64(rate))), 1)
	shortSamples := int(math.Round(shortTermDuration * float64(rate)))

	if frames < blockSamples {
		return res, ErrInsufficientData
	}

	power := weightedSquares(buf)

	// Prefix sums allow each overlapping window to be evaluated in O(1)
	// without re-summing 400 ms of squares per hop.
	prefix := make([]float64, frames+1)
	for i, p := range power {
		prefix[i+1] = prefix[i] + p
	}

	blockPowers := windowPowers(prefix, blockSamples, hopSamples)
	shortPowers := windowPowers(prefix, shortSamples, hopSamples)

	res.BlockCount = len(blockPowers)

	for _, p := range blockPowers {
		if l := loudnessOf(p); l > res.MomentaryMax {
			res.MomentaryMax = l
		}
	}

	for _, p := range shortPowers {
		if l := loudnessOf(p); l > res.ShortTermMax {
			res.ShortTermMax = l
		}
	}

	integrated, ok := gatedLoudness(blockPowers)
	if !ok {
		return res, ErrNoMeasurableLoudness
	}

	res.Integrated = integrated
	res.Range = loudnessRange(shortPowers)
	res.Valid = true

	return res, nil
}

// weightedSquares returns the per-frame channel-weighted sum of squared
// K-filtered samples.
func weightedSquares(buf *pcm.Buffer) []float64 {
	frames := buf.Frames()
	numCh := buf.NumChannels()

	power := make([]float64, frames)
	filtered := make([]float64, frames)

	for ch := 0; ch < numCh; ch++ {
		// A fresh cascade per channel: no state sharing across channels.
		chain := design.KWeighting(float64(buf.SampleRate()))
		chain.ProcessBlockTo(filtered, buf.Channel(ch))

		weight := channelWeight(ch, numCh)
		for i, v := range filtered {
			power[i] += weight * v * v
		}
	}

	return power
}

// channelWeight returns the BS.1770 channel weighting: 1.0 for front
// channels, 1.41 for surround channels in layouts beyond quad. LFE
// handling is the caller's concern (exclude the channel before Analyze).
func channelWeight(ch, numChannels int) float64 {
	if numChannels > 4 && (ch == 3 || ch == 4) {
		return 1.41
	}

	return 1.0
}

// windowPowers returns the mean-square power of each full window of
// windowSamples length, advancing by hopSamples. prefix is the cumulative
// sum of per-frame powers with prefix[0] == 0.
func windowPowers(prefix []float64, windowSamples, hopSamples int) []float64 {
	frames := len(prefix) - 1
	if windowSamples > frames {
		return nil
	}

	out := make([]float64, 0, (frames-windowSamples)/hopSamples+1)
	for start := 0; start+windowSamples <= frames; start += hopSamples {
		sum := prefix[start+windowSamples] - prefix[start]
		out = append(out, sum/float64(windowSamples))
	}

	return out
}

// gatedLoudness applies the two-stage gate from BS.1770-4: an absolute
// -70 LUFS gate, then a relative gate 10 LU below the mean of the
// surviving blocks.
func gatedLoudness(powers []float64) (float64, bool) {
	var (
		sum   float64
		count int
	)

	for _, p := range powers {
		if loudnessOf(p) > absThresholdLUFS {
			sum += p
			count++
		}
	}

	if count == 0 {
		return 0, false
	}

	gammaRel := loudnessOf(sum/float64(count)) + relThresholdLU

	sum = 0
	count = 0

	for _, p := range powers {
		if loudnessOf(p) > gammaRel {
			sum += p
			count++
		}
	}

	if count == 0 {
		return 0, false
	}

	return loudnessOf(sum / float64(count)), true
}

// loudnessRange computes LRA per EBU Tech 3342: short-term loudness
// distribution gated at -70 LUFS absolute and -20 LU relative, spread
// between the 10th and 95th percentiles.
func loudnessRange(shortPowers []float64) float64 {
	var values []float64

	for _, p := range shortPowers {
		if l := loudnessOf(p); l > absThresholdLUFS {
			values = append(values, l)
		}
	}

	if len(values) < 2 {
		return 0
	}

	sum := 0.0
	for _, l := range values {
		sum += l
	}

	gate := sum/float64(len(values)) + rangeThresholdLU

	gated := values[:0]
	for _, l := range values {
		if l > gate {
			gated = append(gated, l)
		}
	}

	if len(gated) < 2 {
		return 0
	}

	sort.Float64s(gated)

	low := gated[int(float64(len(gated))*0.10)]
	high := gated[int(float64(len(gated))*0.95)]

	return high - low
}

func measurePeaks(res *Result, buf *pcm.Buffer, oversample bool) {
	for ch := 0; ch < buf.NumChannels(); ch++ {
		data := buf.Channel(ch)

		for _, v := range data {
			if a := math.Abs(v); a > res.SamplePeak {
				res.SamplePeak = a
			}
		}

		if oversample {
			if tp := truePeak(data); tp > res.TruePeak {
				res.TruePeak = tp
			}
		}
	}

	if !oversample || res.TruePeak < res.SamplePeak {
		res.TruePeak = res.SamplePeak
	}

	res.SamplePeakDB = peakDB(res.SamplePeak)
	res.TruePeakDB = peakDB(res.TruePeak)
}

func peakDB(linear float64) float64 {
	if linear <= 0 {
		return loudnessFloor
	}

	return 20 * math.Log10(linear)
}

func loudnessOf(meanSquare float64) float64 {
	if meanSquare <= 0 {
		return loudnessFloor
	}

	return lufsOffset + 10*math.Log10(meanSquare)
}
