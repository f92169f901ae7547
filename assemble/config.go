package assemble

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/ecf/internal/options"
)

// Config holds the settings shared by every assembly strategy.
type Config struct {
	logger   *slog.Logger
	maxSteps int
}

func newConfig() *Config {
	return &Config{
		logger: slog.New(slog.DiscardHandler),
	}
}

// Option represents a functional option for configuring an Assembler.
type Option = options.Option[*Config]

// WithLogger sets the logger used for step traces. Traces are emitted at debug level.
// A nil logger keeps the default, which discards everything.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithMaxSteps bounds the number of engine calls a single Assemble may make.
// Zero, the default, means unlimited.
func WithMaxSteps(steps int) Option {
	return options.New(func(c *Config) error {
		if steps < 0 {
			return fmt.Errorf("invalid max steps: %d", steps)
		}
		c.maxSteps = steps

		return nil
	})
}

// Logger returns the configured logger.
func (c *Config) Logger() *slog.Logger {
	return c.logger
}

// MaxSteps returns the configured step limit, 0 when unlimited.
func (c *Config) MaxSteps() int {
	return c.maxSteps
}

// exceeded reports whether step, counted from 1, is past the limit.
func (c *Config) exceeded(step int) bool {
	return c.maxSteps > 0 && step > c.maxSteps
}
