package design

import (
	"math"

	"github.com/cwbudde/algo-audio/dsp/filter/biquad"
)

// K-weighting analog prototype per ITU-R BS.1770-4. The stage-one shelf
// models head diffraction, stage two is the RLB high-pass. The reference
// design is specified at 48 kHz; recomputing from the analog prototype
// with tan prewarping keeps the response correct at any sample rate.
const (
	kShelfFreq = 1681.974450955533
	kShelfGain = 3.999843853973347
	kShelfQ    = 0.7071752369554196
	kShelfVbE  = 0.4996667741545416 // exponent linking band gain to shelf gain

	kHighpassFreq = 38.13547087602444
	kHighpassQ    = 0.5003270373238773
)

// KWeighting returns the two-stage K-weighting cascade (shelving filter
// followed by a high-pass) for the given sample rate.
func KWeighting(sampleRate float64) *biquad.Chain {
	return biquad.NewChain([]biquad.Coefficients{
		kWeightingShelf(sampleRate),
		kWeightingHighpass(sampleRate),
	})
}

func kWeightingShelf(sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * kShelfFreq / sampleRate)
	vh := math.Pow(10, kShelfGain/20)
	vb := math.Pow(vh, kShelfVbE)

	a0 := 1 + k/kShelfQ + k*k

	return biquad.Coefficients{
		B0: (vh + vb*k/kShelfQ + k*k) / a0,
		B1: 2 * (k*k - vh) / a0,
		B2: (vh - vb*k/kShelfQ + k*k) / a0,
		A1: 2 * (k*k - 1) / a0,
		A2: (1 - k/kShelfQ + k*k) / a0,
	}
}

func kWeightingHighpass(sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * kHighpassFreq / sampleRate)

	a0 := 1 + k/kHighpassQ + k*k

	return biquad.Coefficients{
		B0: 1 / a0,
		B1: -2 / a0,
		B2: 1 / a0,
		A1: 2 * (k*k - 1) / a0,
		A2: (1 - k/kHighpassQ + k*k) / a0,
	}
}
