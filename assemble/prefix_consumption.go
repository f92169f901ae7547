package assemble

import (
	"fmt"
	"math/big"

	"github.com/arloliu/ecf/bijection"
	"github.com/arloliu/ecf/format"
	"github.com/arloliu/ecf/prefix"
	"github.com/arloliu/ecf/tree"
)

// PrefixConsumption assembles an ECF by repeatedly consuming the local prefix of the
// current number.
//
// Each round finds the prefix of cur at its own path, reduces cur through it to an odd
// number and applies 3x+1. The halving count reached so far is repeated at the end of
// the result so that the next local prefix, added with prefix.Add, continues from it.
type PrefixConsumption struct {
	engine tree.Engine
	cfg    *Config
}

var _ Assembler = (*PrefixConsumption)(nil)

// NewPrefixConsumption creates a PrefixConsumption assembler over engine.
func NewPrefixConsumption(engine tree.Engine, opts ...Option) (*PrefixConsumption, error) {
	cfg, err := buildConfig(engine, opts)
	if err != nil {
		return nil, err
	}

	return &PrefixConsumption{engine: engine, cfg: cfg}, nil
}

// Strategy implements Assembler.
func (a *PrefixConsumption) Strategy() format.StrategyType {
	return format.StrategyPrefix
}

// Engine implements Assembler.
func (a *PrefixConsumption) Engine() tree.Engine {
	return a.engine
}

// Assemble implements Assembler.
func (a *PrefixConsumption) Assemble(n *big.Int) (prefix.Prefix, error) {
	if err := checkPositive(n); err != nil {
		return nil, err
	}

	logger := a.cfg.logger.With("strategy", a.Strategy(), "engine", a.engine.Type(), "n", n)
	cur := new(big.Int).Set(n)
	var result prefix.Prefix

	for step := 1; ; step++ {
		if a.cfg.exceeded(step) {
			return nil, stepLimitError(a.Strategy(), n, a.cfg.maxSteps)
		}

		p, err := bijection.ToPath(cur)
		if err != nil {
			return nil, err
		}
		pf, err := a.engine.PrefixFind(cur, p)
		if err != nil {
			return nil, fmt.Errorf("assemble %s: %w", n, err)
		}
		result = prefix.Add(result, pf)

		cur, err = prefix.Iterate(cur, pf)
		if err != nil {
			return nil, fmt.Errorf("assemble %s: %w", n, err)
		}
		logger.Debug("prefix consumed", "step", step, "local", pf, "reached", cur)

		if cur.Cmp(bigOne) == 0 {
			return result, nil
		}

		cur = prefix.ThreeXPlusOne(cur)
		if last, ok := result.Last(); ok {
			result = append(result, last)
		}
	}
}

var bigOne = big.NewInt(1)
