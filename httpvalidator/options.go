package httpvalidator

import (
	"github.com/erraggy/oasschema/oas"
	"github.com/erraggy/oasschema/oaserrors"
)

// Option is a functional option for configuring a Validator.
type Option func(*config) error

// config holds the configuration for a Validator.
type config struct {
	logger  oas.Logger
	metrics *Metrics
}

// defaultConfig returns the default configuration.
func defaultConfig() *config {
	return &config{
		logger: oas.NopLogger{},
	}
}

// WithLogger sets the logger used for validation diagnostics.
// A nil logger disables logging.
func WithLogger(l oas.Logger) Option {
	return func(c *config) error {
		c.logger = oas.LoggerOrNop(l)
		return nil
	}
}

// WithMetrics sets the collectors updated on every validation.
func WithMetrics(m *Metrics) Option {
	return func(c *config) error {
		if m == nil {
			return &oaserrors.ConfigError{Option: "WithMetrics", Message: "metrics cannot be nil"}
		}
		c.metrics = m
		return nil
	}
}
