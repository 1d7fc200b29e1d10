package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-audio/dsp/pcm"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// MonoBuffer wraps one channel of samples in a pcm.Buffer.
// Panics on invalid input; intended for test setup only.
func MonoBuffer(sampleRate int, samples []float64) *pcm.Buffer {
	buf, err := pcm.New(sampleRate, [][]float64{samples})
	if err != nil {
		panic(err)
	}
	return buf
}

// StereoBuffer wraps two channels of samples in a pcm.Buffer.
// Panics on invalid input; intended for test setup only.
func StereoBuffer(sampleRate int, left, right []float64) *pcm.Buffer {
	buf, err := pcm.New(sampleRate, [][]float64{left, right})
	if err != nil {
		panic(err)
	}
	return buf
}

// SineBuffer is shorthand for a mono buffer holding a deterministic sine.
func SineBuffer(freqHz float64, sampleRate int, amplitude, seconds float64) *pcm.Buffer {
	length := int(seconds * float64(sampleRate))
	return MonoBuffer(sampleRate, DeterministicSine(freqHz, float64(sampleRate), amplitude, length))
}
