package spectral

import "github.com/cwbudde/algo-audio/dsp/window"

// MixAllChannels selects a mono mixdown of all channels as analysis input.
const MixAllChannels = -1

// Config defines configuration for a spectrogram analysis pass.
type Config struct {
	// WindowSize is the analysis window length in samples. Must be a
	// power of two.
	WindowSize int

	// Overlap is the window overlap ratio in [0, 1). The hop size is
	// WindowSize * (1 - Overlap), floored, at least one sample.
	Overlap float64

	// WindowType is the taper applied to each frame.
	WindowType window.Type

	// MinFreq and MaxFreq restrict the retained bins in Hz.
	// MaxFreq <= 0 means the Nyquist frequency.
	MinFreq float64
	MaxFreq float64

	// FloorDB clamps magnitude conversion so zero bins stay finite.
	FloorDB float64

	// Channel selects one channel, or MixAllChannels for a mono mixdown.
	Channel int

	// ZeroPad keeps the final partial window by padding it with zeros,
	// making the frame count a pure function of length, window and hop.
	ZeroPad bool
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		WindowSize: 4096,
		Overlap:    0.75,
		WindowType: window.TypeHann,
		FloorDB:    -120,
		Channel:    MixAllChannels,
		ZeroPad:    true,
	}
}

// WithWindowSize sets the analysis window length in samples.
func WithWindowSize(size int) Option {
	return func(cfg *Config) {
		cfg.WindowSize = size
	}
}

// WithOverlap sets the window overlap ratio.
func WithOverlap(overlap float64) Option {
	return func(cfg *Config) {
		cfg.Overlap = overlap
	}
}

// WithWindowType sets the taper function.
func WithWindowType(t window.Type) Option {
	return func(cfg *Config) {
		cfg.WindowType = t
	}
}

// WithFrequencyRange restricts retained bins to [minFreq, maxFreq] Hz.
func WithFrequencyRange(minFreq, maxFreq float64) Option {
	return func(cfg *Config) {
		cfg.MinFreq = minFreq
		cfg.MaxFreq = maxFreq
	}
}

// WithFloor sets the dB floor for magnitude conversion.
func WithFloor(floorDB float64) Option {
	return func(cfg *Config) {
		cfg.FloorDB = floorDB
	}
}

// WithChannel selects a single input channel instead of a mono mixdown.
func WithChannel(ch int) Option {
	return func(cfg *Config) {
		cfg.Channel = ch
	}
}

// WithoutPadding drops the final partial window instead of zero-padding it.
func WithoutPadding() Option {
	return func(cfg *Config) {
		cfg.ZeroPad = false
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
