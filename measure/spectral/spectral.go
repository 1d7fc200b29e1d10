package spectral

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-audio/dsp/core"
	"github.com/cwbudde/algo-audio/dsp/pcm"
	"github.com/cwbudde/algo-audio/dsp/window"
)

// ErrEmptyBuffer is returned when the input buffer holds no samples.
var ErrEmptyBuffer = errors.New("spectral: buffer holds no samples")

// Frame is one analysis window: magnitude bins in dB re full scale,
// tagged with the window's center time in seconds.
type Frame struct {
	CenterTime float64
	Bins       []float64
}

// Annotation marks a frequency of interest for downstream rendering.
// The analysis itself never consumes annotations.
type Annotation struct {
	Frequency float64
	Label     string
}

// Spectrogram is an ordered sequence of frames over a retained bin range.
type Spectrogram struct {
	Frames []Frame

	SampleRate int
	WindowSize int
	HopSize    int

	// FirstBin is the FFT bin index of Bins[0] in every frame.
	FirstBin int
}

// NumBins returns the retained bin count per frame.
func (s *Spectrogram) NumBins() int {
	if len(s.Frames) == 0 {
		return 0
	}

	return len(s.Frames[0].Bins)
}

// BinFrequency maps a retained bin index to its center frequency in Hz.
func (s *Spectrogram) BinFrequency(i int) float64 {
	return float64(s.FirstBin+i) * float64(s.SampleRate) / float64(s.WindowSize)
}

// Analyze computes the spectrogram of buf.
//
// Frame count is deterministic: with zero-padding, ceil(n/hop) windows
// are produced; without, floor((n-windowSize)/hop)+1.
func Analyze(buf *pcm.Buffer, opts ...Option) (*Spectrogram, error) {
	cfg := ApplyOptions(opts...)

	if err := validate(buf, cfg); err != nil {
		return nil, err
	}

	samples, err := selectInput(buf, cfg.Channel)
	if err != nil {
		return nil, err
	}

	rate := buf.SampleRate()
	size := cfg.WindowSize

	hop := max(int(float64(size)*(1-cfg.Overlap)), 1)

	loBin, hiBin := binRange(cfg, rate, size)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectral: fft plan: %w", err)
	}

	taper := window.Generate(cfg.WindowType, size, window.WithPeriodic())

	sg := &Spectrogram{
		SampleRate: rate,
		WindowSize: size,
		HopSize:    hop,
		FirstBin:   loBin,
	}

	var (
		scratch = make([]float64, size)
		in      = make([]complex128, size)
		out     = make([]complex128, size)
		re      = make([]float64, hiBin-loBin)
		im      = make([]float64, hiBin-loBin)
	)

	for start := 0; frameFits(start, len(samples), size, cfg.ZeroPad); start += hop {
		// Copy the frame into the scratch slice, zero-padding a partial
		// tail, then taper in place before lifting to complex.
		n := core.CopyInto(scratch, samples[start:])
		core.Zero(scratch[n:])

		if err := window.ApplyCoefficientsInPlace(scratch, taper); err != nil {
			return nil, fmt.Errorf("spectral: window: %w", err)
		}

		for i, v := range scratch {
			in[i] = complex(v, 0)
		}

		if err := plan.Forward(out, in); err != nil {
			return nil, fmt.Errorf("spectral: fft: %w", err)
		}

		for i := loBin; i < hiBin; i++ {
			re[i-loBin] = real(out[i])
			im[i-loBin] = imag(out[i])
		}

		bins := make([]float64, hiBin-loBin)
		vecmath.Magnitude(bins, re, im)

		for i, m := range bins {
			bins[i] = magnitudeDB(m/float64(size), cfg.FloorDB)
		}

		sg.Frames = append(sg.Frames, Frame{
			CenterTime: (float64(start) + float64(size)/2) / float64(rate),
			Bins:       bins,
		})
	}

	return sg, nil
}

func validate(buf *pcm.Buffer, cfg Config) error {
	if buf.Frames() == 0 {
		return ErrEmptyBuffer
	}

	if cfg.WindowSize <= 0 || cfg.WindowSize&(cfg.WindowSize-1) != 0 {
		return fmt.Errorf("spectral: window size must be a power of two: %d", cfg.WindowSize)
	}

	if cfg.Overlap < 0 || cfg.Overlap >= 1 {
		return fmt.Errorf("spectral: overlap must be in [0, 1): %g", cfg.Overlap)
	}

	if cfg.MinFreq < 0 {
		return fmt.Errorf("spectral: min frequency must be >= 0: %g", cfg.MinFreq)
	}

	if cfg.MaxFreq > 0 && cfg.MaxFreq <= cfg.MinFreq {
		return fmt.Errorf("spectral: max frequency %g must exceed min frequency %g",
			cfg.MaxFreq, cfg.MinFreq)
	}

	return nil
}

func selectInput(buf *pcm.Buffer, channel int) ([]float64, error) {
	if channel == MixAllChannels {
		return buf.Mono(), nil
	}

	if channel < 0 || channel >= buf.NumChannels() {
		return nil, fmt.Errorf("spectral: channel %d out of range [0, %d)", channel, buf.NumChannels())
	}

	return buf.Channel(channel), nil
}

// binRange maps the configured frequency range to FFT bin indices
// [lo, hi), capped at the Nyquist bin.
func binRange(cfg Config, rate, size int) (lo, hi int) {
	nyquistBin := size / 2

	maxFreq := cfg.MaxFreq
	if maxFreq <= 0 {
		maxFreq = float64(rate) / 2
	}

	binHz := float64(rate) / float64(size)

	lo = int(math.Ceil(cfg.MinFreq / binHz))
	if lo > nyquistBin {
		lo = nyquistBin
	}

	hi = int(math.Floor(maxFreq/binHz)) + 1
	if hi > nyquistBin {
		hi = nyquistBin
	}

	if hi < lo {
		hi = lo
	}

	return lo, hi
}

func frameFits(start, n, size int, zeroPad bool) bool {
	if zeroPad {
		return start < n
	}

	return start+size <= n
}

func magnitudeDB(m, floor float64) float64 {
	if m <= 0 {
		return floor
	}

	db := 20 * math.Log10(m)
	if db < floor {
		return floor
	}

	return db
}
