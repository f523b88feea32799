package trade

import "time"

// Config collects every tunable adopted as a fixed, canonical value
// rather than derived from the wire protocol itself. The struct exists
// so a test can shrink timeouts without forking the engine, the same
// job gameboy.Opt does for constructing a GameBoy without a dozen
// constructor arguments.
type Config struct {
	// PreambleAcceptMinimum is the fewest observed 0xFD bytes the
	// engine will accept before treating the next non-0xFD byte as the
	// first random-seed byte (the degraded path).
	PreambleAcceptMinimum int
	// PreambleSendLength is how many 0xFD bytes the engine sends when
	// it is the one initiating the preamble.
	PreambleSendLength int

	// TcConfirmMaxAttempts bounds how many extra TRADE_CENTER echoes the
	// engine tolerates before advancing to Ready regardless.
	TcConfirmMaxAttempts int
	// TcConfirmTimeout bounds the same negotiation by wall-clock time.
	TcConfirmTimeout time.Duration

	// ByteTimeout is the per-byte idle budget handed to the byte
	// exchange layer for ordinary exchanges.
	ByteTimeout time.Duration
	// StallTolerance is how long a clock stall may last once the
	// session has entered TradeData or later before it is fatal.
	StallTolerance time.Duration
	// CleanupIdleTimeout is how long the peer must be idle during
	// Cleanup before the engine considers the session finished.
	CleanupIdleTimeout time.Duration

	// LinkRetryBudget bounds how many isolated BEL timeouts the session
	// controller tolerates before TradeData on the recoverable retry
	// path.
	LinkRetryBudget int
}

// DefaultConfig returns the canonical tunables this engine adopts.
func DefaultConfig() Config {
	return Config{
		PreambleAcceptMinimum: 3,
		PreambleSendLength:    10,
		TcConfirmMaxAttempts:  4,
		TcConfirmTimeout:      10 * time.Second,
		ByteTimeout:           time.Millisecond,
		StallTolerance:        300 * time.Second,
		CleanupIdleTimeout:    5 * time.Second,
		LinkRetryBudget:       3,
	}
}

// Option mutates a Config away from its defaults. Modeled on
// gameboy.Opt: small named constructors instead of a sprawling
// constructor argument list.
type Option func(*Config)

// NewConfig applies opts over DefaultConfig.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithByteTimeout overrides the per-byte idle budget. Tests shrink
// this from 1ms to microseconds so FakeTransport-driven scenarios
// don't pay the canonical timeout in wall-clock time.
func WithByteTimeout(d time.Duration) Option {
	return func(c *Config) { c.ByteTimeout = d }
}

// WithCleanupIdleTimeout overrides how long Cleanup waits for peer
// idle before declaring the session finished.
func WithCleanupIdleTimeout(d time.Duration) Option {
	return func(c *Config) { c.CleanupIdleTimeout = d }
}

// WithStallTolerance overrides the mid-session clock-stall budget.
func WithStallTolerance(d time.Duration) Option {
	return func(c *Config) { c.StallTolerance = d }
}

// WithPreambleAcceptMinimum overrides the degraded-preamble floor.
func WithPreambleAcceptMinimum(n int) Option {
	return func(c *Config) { c.PreambleAcceptMinimum = n }
}
