package loudness

// Config defines configuration for a loudness analysis pass.
type Config struct {
	// TruePeak enables the oversampled inter-sample peak estimate.
	// When disabled, TruePeak in the result equals the sample peak.
	TruePeak bool
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{TruePeak: true}
}

// WithoutTruePeak disables the oversampled true-peak estimate and falls
// back to the plain sample peak.
func WithoutTruePeak() Option {
	return func(cfg *Config) {
		cfg.TruePeak = false
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
