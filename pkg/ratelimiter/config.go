package ratelimiter

import (
	"fmt"
	"time"
)

// Config is a token bucket per key: Burst tokens at most, Refill tokens
// added every Interval.
type Config struct {
	Enabled  bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	Burst    int           `env:"RATE_LIMIT_BURST" envDefault:"60"`
	Refill   int           `env:"RATE_LIMIT_REFILL" envDefault:"1"`
	Interval time.Duration `env:"RATE_LIMIT_INTERVAL" envDefault:"1s"`
}

func (c Config) validate() error {
	if c.Burst <= 0 {
		return fmt.Errorf("%w: burst must be positive, got %d", ErrInvalidConfig, c.Burst)
	}
	if c.Refill <= 0 {
		return fmt.Errorf("%w: refill must be positive, got %d", ErrInvalidConfig, c.Refill)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive, got %v", ErrInvalidConfig, c.Interval)
	}
	return nil
}
