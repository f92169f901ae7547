package assemble

import (
	"fmt"
	"math/big"

	"github.com/arloliu/ecf/bijection"
	"github.com/arloliu/ecf/format"
	"github.com/arloliu/ecf/prefix"
	"github.com/arloliu/ecf/tree"
)

// PathExtension assembles an ECF by pushing n deeper into the tree.
//
// Appending true to a path keeps it indexing the same number, while every extra bit
// lets the engine decide one more parity. The path grows until the prefix found there
// reduces n to 1, at which point that prefix is the ECF.
type PathExtension struct {
	engine tree.Engine
	cfg    *Config
}

var _ Assembler = (*PathExtension)(nil)

// NewPathExtension creates a PathExtension assembler over engine.
func NewPathExtension(engine tree.Engine, opts ...Option) (*PathExtension, error) {
	cfg, err := buildConfig(engine, opts)
	if err != nil {
		return nil, err
	}

	return &PathExtension{engine: engine, cfg: cfg}, nil
}

// Strategy implements Assembler.
func (a *PathExtension) Strategy() format.StrategyType {
	return format.StrategyPath
}

// Engine implements Assembler.
func (a *PathExtension) Engine() tree.Engine {
	return a.engine
}

// Assemble implements Assembler.
func (a *PathExtension) Assemble(n *big.Int) (prefix.Prefix, error) {
	p, err := bijection.ToPath(n)
	if err != nil {
		return nil, err
	}

	logger := a.cfg.logger.With("strategy", a.Strategy(), "engine", a.engine.Type(), "n", n)

	for step := 1; ; step++ {
		if a.cfg.exceeded(step) {
			return nil, stepLimitError(a.Strategy(), n, a.cfg.maxSteps)
		}

		pf, err := a.engine.PrefixFind(n, p)
		if err != nil {
			return nil, fmt.Errorf("assemble %s: %w", n, err)
		}
		r, err := prefix.Iterate(n, pf)
		if err != nil {
			return nil, fmt.Errorf("assemble %s: %w", n, err)
		}
		logger.Debug("path extended", "step", step, "depth", len(p), "local", pf, "reached", r)

		if r.Cmp(bigOne) == 0 {
			return pf, nil
		}

		// still n, one level deeper
		p = append(p, true)
	}
}
