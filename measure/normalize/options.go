package normalize

// LimitMode selects what happens when the requested gain would push the
// projected peak above the ceiling.
type LimitMode int

const (
	// LimitModeCap reduces the gain so the ceiling is met exactly and
	// marks the plan as limited.
	LimitModeCap LimitMode = iota

	// LimitModeReject returns ErrCeilingExceeded, with the capped plan
	// attached for callers that want to proceed anyway.
	LimitModeReject
)

// Config defines configuration for plan computation.
type Config struct {
	// CeilingDB is the maximum allowed projected true peak.
	CeilingDB float64

	// Mode selects capping or rejection on ceiling conflicts.
	Mode LimitMode
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults: 0 dBFS ceiling, capping.
func DefaultConfig() Config {
	return Config{CeilingDB: 0, Mode: LimitModeCap}
}

// WithCeiling sets the maximum allowed projected peak in dBFS.
func WithCeiling(ceilingDB float64) Option {
	return func(cfg *Config) {
		cfg.CeilingDB = ceilingDB
	}
}

// WithLimitMode selects capping or rejection on ceiling conflicts.
func WithLimitMode(mode LimitMode) Option {
	return func(cfg *Config) {
		cfg.Mode = mode
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
