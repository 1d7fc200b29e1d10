package waveform

// Scale selects the output value domain of an envelope.
type Scale int

const (
	// ScaleLinear keeps normalized amplitude values in [-1, 1].
	ScaleLinear Scale = iota
	// ScaleDecibel converts values to dB re full scale with a floor.
	ScaleDecibel
)

// String returns a human-readable name for the scale mode.
func (s Scale) String() string {
	switch s {
	case ScaleLinear:
		return "Amplitude"
	case ScaleDecibel:
		return "Decibel"
	default:
		return "Unknown"
	}
}

// Config defines configuration for an envelope analysis pass.
type Config struct {
	// Columns is the output resolution: one (min, max, RMS) triple per column.
	Columns int

	// Scale selects linear amplitude or decibel output.
	Scale Scale

	// FloorDB clamps decibel conversion of silent spans.
	FloorDB float64

	// Range restricts analysis to a time window. Nil means the whole buffer.
	Range *TimeRange

	// AutoStart, when set, overrides the range start with the detected
	// onset (or offset, for FromEnd detection).
	AutoStart *Detection
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Columns: 800,
		Scale:   ScaleLinear,
		FloorDB: -120,
	}
}

// WithColumns sets the output column count.
func WithColumns(n int) Option {
	return func(cfg *Config) {
		cfg.Columns = n
	}
}

// WithScale sets the output scale mode.
func WithScale(s Scale) Option {
	return func(cfg *Config) {
		cfg.Scale = s
	}
}

// WithFloor sets the dB floor for decibel conversion.
func WithFloor(floorDB float64) Option {
	return func(cfg *Config) {
		cfg.FloorDB = floorDB
	}
}

// WithTimeRange restricts analysis to the given range.
func WithTimeRange(r TimeRange) Option {
	return func(cfg *Config) {
		cfg.Range = &r
	}
}

// WithAutoStart enables onset detection for the analysis start boundary.
func WithAutoStart(d Detection) Option {
	return func(cfg *Config) {
		cfg.AutoStart = &d
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
