package twophase

import "go.uber.org/zap"

// DefaultMaxLength is enough for every reachable cube.
const DefaultMaxLength = 23

// Option configures a Solver or a GoCube connection.
type Option func(*config)

type config struct {
	maxLength   int
	logger      *zap.Logger
	tables      *Tables
	moveHistory bool
}

func defaultConfig() *config {
	return &config{
		maxLength:   DefaultMaxLength,
		logger:      zap.NewNop(),
		moveHistory: true,
	}
}

func newConfig(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithMaxLength sets the largest solution the solver accepts.
// Budgets below 20 can fail on some cubes.
func WithMaxLength(n int) Option {
	return func(c *config) {
		c.maxLength = n
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTables makes the solver use t instead of DefaultTables.
func WithTables(t *Tables) Option {
	return func(c *config) {
		c.tables = t
	}
}

// WithMoveHistory enables or disables move history on a GoCube connection.
// When enabled (default), all moves are stored and accessible via Moves().
// Disable this for long sessions to reduce memory usage.
func WithMoveHistory(enabled bool) Option {
	return func(c *config) {
		c.moveHistory = enabled
	}
}
