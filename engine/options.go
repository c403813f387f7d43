package engine

import "github.com/rs/zerolog"

// ============================================================================
// ENGINE OPTIONS — functional options for Execute()
// ============================================================================

// Option configures engine behavior via the functional options pattern.
type Option func(*execConfig)

type execConfig struct {
	norm       *Normalizer
	logger     zerolog.Logger
	maxRecords int // 0 = unlimited
	maxBuckets int // 0 = unlimited
}

// WithNormalizer installs per-field value overrides used by filtering,
// grouping, and distinct-value listings.
func WithNormalizer(n *Normalizer) Option {
	return func(c *execConfig) {
		c.norm = n
	}
}

// WithLogger attaches a structured logger. Without it the engine is silent.
func WithLogger(l zerolog.Logger) Option {
	return func(c *execConfig) {
		c.logger = l
	}
}

// WithMaxRecords caps the input record count; Execute fails fast with
// ErrLimitExceeded beyond it.
func WithMaxRecords(n int) Option {
	return func(c *execConfig) {
		c.maxRecords = n
	}
}

// WithMaxBuckets caps the number of (row, column) buckets, guarding against
// cross-tabulation on a near-unique column field.
func WithMaxBuckets(n int) Option {
	return func(c *execConfig) {
		c.maxBuckets = n
	}
}

func applyOptions(opts []Option) *execConfig {
	cfg := &execConfig{
		norm:   NewNormalizer(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
