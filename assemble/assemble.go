// Package assemble builds the full ECF of a number from the local prefixes returned by
// a tree engine.
//
// A single PrefixFind only reveals the part of ECF(n) decided by the bits on n's path.
// Two strategies turn that into the whole form:
//
//   - PrefixConsumption applies the local prefix, continues from the odd number it
//     reaches and glues the pieces together with prefix.Add.
//   - PathExtension keeps n fixed and appends true bits to its path, which moves n
//     deeper into the tree, until the prefix found there reduces n to 1.
//
// Both strategies work with either engine and give the same result as direct simulation.
package assemble

import (
	"fmt"
	"math/big"

	"github.com/arloliu/ecf/errs"
	"github.com/arloliu/ecf/format"
	"github.com/arloliu/ecf/internal/options"
	"github.com/arloliu/ecf/prefix"
	"github.com/arloliu/ecf/tree"
)

// Assembler computes the ECF of a number with a tree engine.
//
// Implementations hold no mutable state and are safe for concurrent use.
type Assembler interface {
	// Assemble returns ECF(n) for n >= 1.
	Assemble(n *big.Int) (prefix.Prefix, error)
	// Strategy returns the assembly strategy identifier.
	Strategy() format.StrategyType
	// Engine returns the tree engine the assembler queries.
	Engine() tree.Engine
}

// New is a factory function that creates an Assembler for the given strategy.
//
// Parameters:
//   - strategy: Assembly strategy (StrategyPrefix or StrategyPath)
//   - engine: Tree engine queried for local prefixes
//   - opts: Optional configuration (logger, step limit)
//
// Returns:
//   - Assembler: Configured assembler
//   - error: errs.ErrInvalidStrategy, errs.ErrInvalidEngine or an option error
func New(strategy format.StrategyType, engine tree.Engine, opts ...Option) (Assembler, error) {
	switch strategy {
	case format.StrategyPrefix:
		return NewPrefixConsumption(engine, opts...)
	case format.StrategyPath:
		return NewPathExtension(engine, opts...)
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidStrategy, strategy)
	}
}

func buildConfig(engine tree.Engine, opts []Option) (*Config, error) {
	if engine == nil {
		return nil, fmt.Errorf("%w: nil engine", errs.ErrInvalidEngine)
	}

	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

func checkPositive(n *big.Int) error {
	if n.Sign() < 1 {
		return fmt.Errorf("%w: got %s", errs.ErrPathUndefined, n)
	}

	return nil
}

func stepLimitError(strategy format.StrategyType, n *big.Int, limit int) error {
	return fmt.Errorf("%w: %s assembly of %s stopped after %d steps", errs.ErrStepLimitExceeded, strategy, n, limit)
}
