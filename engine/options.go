package engine

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for New()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Palette Palette
	Logger  log.FieldLogger
	Now     func() time.Time
}

// WithPalette replaces the default color palette.
// Palettes with no primary colors are ignored.
func WithPalette(p Palette) Option {
	return func(c *config) {
		if len(p.Primary) > 0 {
			c.Palette = p
		}
	}
}

// WithLogger routes engine warnings and progress lines to logger.
func WithLogger(logger log.FieldLogger) Option {
	return func(c *config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithClock sets the time source used for response metadata.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.Now = now
		}
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Palette: DefaultPalette(),
		Logger:  log.StandardLogger(),
		Now:     time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
