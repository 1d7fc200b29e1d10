package core

import "math"

const defaultEpsilon = 1e-12

// DefaultDBFloor is the decibel floor applied when converting magnitudes
// that may be exactly zero. It keeps spectrogram and envelope values finite
// instead of propagating -Inf.
const DefaultDBFloor = -120.0

// NearlyEqual reports whether a and b are equal within eps, absolutely or
// relative to the larger magnitude. Non-positive eps uses a default.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// AmplitudeToDB converts an amplitude to dB re full scale, clamped to floor.
// The absolute value is taken first, so signed sample values convert directly.
func AmplitudeToDB(x, floor float64) float64 {
	a := math.Abs(x)
	if a == 0 {
		return floor
	}

	db := 20 * math.Log10(a)
	if db < floor {
		return floor
	}

	return db
}
