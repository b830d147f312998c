// Filename: internal/motor/controller.go
package motor

import (
	"time"

	"go.uber.org/zap"
)

// Config holds the tuning knobs of one engine instance. The zero value
// of any field means "use the default"; the merge happens exactly once
// in New and the result is never mutated afterwards, so distinct
// controllers are fully independent.
type Config struct {
	// LayoutShiftThreshold is the maximum per-axis drift, in pixels,
	// between consecutive box samples that still counts as stable.
	LayoutShiftThreshold float64

	// SpiralSearchAttempts bounds the outward occlusion scan.
	SpiralSearchAttempts int

	// MaxRetries is the total attempt budget of the backoff retrier.
	MaxRetries int

	// BaseDelay is the first backoff delay; later delays grow from it.
	BaseDelay time.Duration

	// PollInterval is the pause between stability samples.
	PollInterval time.Duration

	// StabilityTimeout bounds one stability wait.
	StabilityTimeout time.Duration
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		LayoutShiftThreshold: 3,
		SpiralSearchAttempts: 16,
		MaxRetries:           3,
		BaseDelay:            250 * time.Millisecond,
		PollInterval:         100 * time.Millisecond,
		StabilityTimeout:     5 * time.Second,
	}
}

// withDefaults fills zero-valued fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.LayoutShiftThreshold <= 0 {
		c.LayoutShiftThreshold = d.LayoutShiftThreshold
	}
	if c.SpiralSearchAttempts <= 0 {
		c.SpiralSearchAttempts = d.SpiralSearchAttempts
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = d.MaxRetries
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = d.BaseDelay
	}
	if c.PollInterval <= 0 {
		c.PollInterval = d.PollInterval
	}
	if c.StabilityTimeout <= 0 {
		c.StabilityTimeout = d.StabilityTimeout
	}
	return c
}

// Controller is one engine instance. It holds no mutable state beyond
// its immutable configuration, so any number of controllers may run
// concurrently against distinct pages.
type Controller struct {
	cfg    Config
	logger *zap.Logger
}

// New merges overrides onto the defaults and returns a controller.
func New(cfg Config, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{cfg: cfg.withDefaults(), logger: logger}
}

// Config returns a copy of the merged configuration.
func (c *Controller) Config() Config {
	return c.cfg
}
