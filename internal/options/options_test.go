package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	steps   int
	name    string
	applied []string
}

var errNegativeSteps = errors.New("steps cannot be negative")

func withSteps(n int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if n < 0 {
			return errNegativeSteps
		}
		c.steps = n
		c.applied = append(c.applied, "steps")

		return nil
	})
}

func withName(name string) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.name = name
		c.applied = append(c.applied, "name")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withName("pip"), withSteps(10))
		require.NoError(t, err)
		require.Equal(t, 10, cfg.steps)
		require.Equal(t, "pip", cfg.name)
		require.Equal(t, []string{"name", "steps"}, cfg.applied)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withSteps(-1), withName("never"))
		require.ErrorIs(t, err, errNegativeSteps)
		require.Empty(t, cfg.name)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg))
		require.Empty(t, cfg.applied)
	})

	t.Run("nil option is skipped", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg, nil, withSteps(3)))
		require.Equal(t, 3, cfg.steps)
	})

	t.Run("later option wins", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg, withSteps(1), withSteps(2)))
		require.Equal(t, 2, cfg.steps)
	})
}
