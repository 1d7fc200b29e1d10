package loudness

import "math"

// True-peak estimation per ITU-R BS.1770-4 Annex 2: 4x oversampling with
// a polyphase band-limited interpolation filter. The filter is a
// windowed sinc (Kaiser, beta 5) with 12 taps per phase; each phase is
// normalized to unity DC gain.
const (
	oversampleFactor = 4
	tapsPerPhase     = 12
	totalTaps        = oversampleFactor * tapsPerPhase
	kaiserBeta       = 5.0
)

var polyphase = buildPolyphase()

func buildPolyphase() [oversampleFactor][tapsPerPhase]float64 {
	var coeffs [oversampleFactor][tapsPerPhase]float64

	center := float64(totalTaps-1) / 2

	for phase := 0; phase < oversampleFactor; phase++ {
		for tap := 0; tap < tapsPerPhase; tap++ {
			idx := tap*oversampleFactor + phase
			offset := float64(idx) - center

			// Lowpass at the original Nyquist (1/4 of the oversampled rate).
			s := sinc(offset / oversampleFactor)

			alpha := offset / center
			if math.Abs(alpha) <= 1 {
				w := besselI0(kaiserBeta*math.Sqrt(1-alpha*alpha)) / besselI0(kaiserBeta)
				coeffs[phase][tap] = s * w
			}
		}
	}

	for phase := 0; phase < oversampleFactor; phase++ {
		var sum float64
		for tap := 0; tap < tapsPerPhase; tap++ {
			sum += coeffs[phase][tap]
		}

		for tap := 0; tap < tapsPerPhase; tap++ {
			coeffs[phase][tap] /= sum
		}
	}

	return coeffs
}

// truePeak returns the maximum absolute oversampled value of one channel.
func truePeak(samples []float64) float64 {
	var (
		history [tapsPerPhase]float64
		peak    float64
	)

	for _, x := range samples {
		copy(history[1:], history[:tapsPerPhase-1])
		history[0] = x

		for phase := 0; phase < oversampleFactor; phase++ {
			var v float64
			for tap := 0; tap < tapsPerPhase; tap++ {
				v += polyphase[phase][tap] * history[tap]
			}

			if a := math.Abs(v); a > peak {
				peak = a
			}
		}
	}

	return peak
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-10 {
		return 1
	}

	px := math.Pi * x

	return math.Sin(px) / px
}

// besselI0 returns a numerical approximation of the modified Bessel function I0.
func besselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < 3.75 {
		y := x / 3.75
		y *= y

		return 1.0 + y*(3.5156229+y*(3.0899424+y*(1.2067492+y*(0.2659732+y*(0.0360768+y*0.0045813)))))
	}

	y := 3.75 / ax

	return (math.Exp(ax) / math.Sqrt(ax)) *
		(0.39894228 + y*(0.01328592+y*(0.00225319+y*(-0.00157565+y*(0.00916281+y*(-0.02057706+y*(0.02635537+y*(-0.01647633+y*0.00392377))))))))
}
