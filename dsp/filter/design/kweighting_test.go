package design

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-audio/dsp/filter/biquad"
)

func kWeightingCoeffs(sampleRate float64) []biquad.Coefficients {
	return []biquad.Coefficients{
		kWeightingShelf(sampleRate),
		kWeightingHighpass(sampleRate),
	}
}

func TestKWeighting_ReferenceGainAt1kHz(t *testing.T) {
	// The combined K-weighting response at 1 kHz is the reference point
	// that the -0.691 loudness offset compensates for.
	for _, rate := range []float64{44100, 48000, 96000} {
		db := chainMagnitudeDB(kWeightingCoeffs(rate), 1000, rate)
		if math.Abs(db-0.691) > 0.1 {
			t.Errorf("rate %v: 1 kHz gain %.4f dB, want about 0.691", rate, db)
		}
	}
}

func TestKWeighting_ShelfBoost(t *testing.T) {
	db := chainMagnitudeDB(kWeightingCoeffs(48000), 10000, 48000)
	if math.Abs(db-4) > 0.2 {
		t.Errorf("10 kHz gain %.3f dB, want about +4", db)
	}
}

func TestKWeighting_LowFrequencyRolloff(t *testing.T) {
	db := chainMagnitudeDB(kWeightingCoeffs(48000), 10, 48000)
	if db > -20 {
		t.Errorf("10 Hz gain %.3f dB, want below -20", db)
	}
}

func TestKWeighting_ChainShape(t *testing.T) {
	chain := KWeighting(48000)
	if chain.NumSections() != 2 {
		t.Fatalf("got %d sections, want 2", chain.NumSections())
	}
}

func TestKWeighting_RateConsistency(t *testing.T) {
	// The prewarped design should track the analog prototype across
	// sample rates in the audible band.
	for _, freq := range []float64{100, 500, 2000, 8000} {
		a := chainMagnitudeDB(kWeightingCoeffs(48000), freq, 48000)
		b := chainMagnitudeDB(kWeightingCoeffs(96000), freq, 96000)

		if math.Abs(a-b) > 0.1 {
			t.Errorf("freq %v: 48k %.3f dB vs 96k %.3f dB", freq, a, b)
		}
	}
}
