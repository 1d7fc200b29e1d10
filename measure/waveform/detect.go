package waveform

import "math"

// Direction selects which end of the signal a detection scan starts from.
type Direction int

const (
	// FromStart scans forward for the first sustained onset.
	FromStart Direction = iota
	// FromEnd scans backward for the last sustained offset.
	FromEnd
)

// Detection configures auto start/end detection.
//
// A span only triggers once its RMS stays above Threshold for at least
// MinDuration; a single hot sample never does.
type Detection struct {
	// Threshold is the linear RMS level that counts as signal.
	Threshold float64

	// WindowSize is the RMS window length in samples.
	WindowSize int

	// MinDuration is the sustain requirement in seconds.
	MinDuration float64

	// Direction selects forward or backward scanning.
	Direction Direction
}

// DefaultDetection matches a -40 dB threshold over a 512-sample window
// sustained for 10 ms.
func DefaultDetection() Detection {
	return Detection{
		Threshold:   0.01,
		WindowSize:  512,
		MinDuration: 0.01,
	}
}

// Detect scans samples for a sustained onset and returns its offset in
// seconds from the start of the slice. ok is false when no span
// satisfies the threshold for the required duration.
func (d Detection) Detect(samples []float64, sampleRate int) (offset float64, ok bool) {
	if d.WindowSize <= 0 || d.Threshold <= 0 || len(samples) < d.WindowSize {
		return 0, false
	}

	if d.Direction == FromEnd {
		reversed := make([]float64, len(samples))
		for i, v := range samples {
			reversed[len(samples)-1-i] = v
		}

		tail, found := d.scanForward(reversed, sampleRate)
		if !found {
			return 0, false
		}

		return float64(len(samples))/float64(sampleRate) - tail, true
	}

	return d.scanForward(samples, sampleRate)
}

func (d Detection) scanForward(samples []float64, sampleRate int) (float64, bool) {
	minSamples := int(d.MinDuration * float64(sampleRate))

	var (
		triggered      bool
		potentialStart int
		sumSquares     float64
	)

	// Prime the first window, then slide it one sample at a time.
	for _, v := range samples[:d.WindowSize] {
		sumSquares += v * v
	}

	for i := 0; i+d.WindowSize <= len(samples); i++ {
		rms := math.Sqrt(sumSquares / float64(d.WindowSize))

		switch {
		case !triggered && rms > d.Threshold:
			triggered = true
			potentialStart = i

		case triggered && rms <= d.Threshold:
			triggered = false

		case triggered && i-potentialStart >= minSamples:
			// Sustained long enough: snap to the nearest zero crossing
			// after the trigger point for a click-free boundary.
			for j := potentialStart; j < i; j++ {
				if j+1 < len(samples) && isZeroCrossing(samples[j], samples[j+1]) {
					return float64(j) / float64(sampleRate), true
				}
			}

			return float64(potentialStart) / float64(sampleRate), true
		}

		if i+d.WindowSize < len(samples) {
			leaving := samples[i]
			entering := samples[i+d.WindowSize]
			sumSquares += entering*entering - leaving*leaving

			if sumSquares < 0 {
				sumSquares = 0
			}
		}
	}

	return 0, false
}

func isZeroCrossing(a, b float64) bool {
	return (a < 0 && b >= 0) || (a >= 0 && b < 0)
}
