// Package ecf computes the exponential canonical form (ECF) of Collatz trajectories.
//
// The ECF of n lists, for each odd step of its trajectory, how many halvings happened
// before that step. It identifies the trajectory completely:
//
//	3 -> 10 -> 5 -> 16 -> 8 -> 4 -> 2 -> 1    ECF(3) = [0 1 5]
//
// Instead of simulating the whole trajectory, this package reads the form off an
// infinite binary tree that indexes every integer. A tree engine (RIPTree or PIPTree,
// see package tree) returns the part of ECF(n) decided by the bits of n's path, and an
// assembly strategy (see package assemble) stitches those parts into the full form.
//
// # Basic Usage
//
//	pf, err := ecf.Compute(big.NewInt(27))
//
//	// choose an engine and strategy explicitly
//	pf, err = ecf.ComputeWith(n, format.StrategyPath, format.EngineRIP)
//
//	// cross-check every combination against direct simulation
//	err = ecf.Verify(n)
//
// Computed forms can be stored in a compact binary table, see NewTableEncoder and
// DecodeTable.
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the tree, assemble and
// table packages. For fine-grained control, use those packages directly.
package ecf

import (
	"fmt"
	"math/big"
	"runtime"

	"github.com/arloliu/ecf/assemble"
	"github.com/arloliu/ecf/bijection"
	"github.com/arloliu/ecf/collatz"
	"github.com/arloliu/ecf/errs"
	"github.com/arloliu/ecf/format"
	"github.com/arloliu/ecf/prefix"
	"github.com/arloliu/ecf/table"
	"github.com/arloliu/ecf/tree"
	"golang.org/x/sync/errgroup"
)

// Default engine and strategy used by Compute and ComputeMany.
const (
	DefaultEngine   = format.EnginePIP
	DefaultStrategy = format.StrategyPrefix
)

var (
	strategies = []format.StrategyType{format.StrategyPrefix, format.StrategyPath}
	engines    = []format.EngineType{format.EngineRIP, format.EnginePIP}
)

// Compute returns ECF(n) using the PIPTree engine and prefix consumption.
//
// Parameters:
//   - n: Number to compute, must be >= 1
//
// Returns:
//   - prefix.Prefix: The ECF of n
//   - error: errs.ErrPathUndefined if n < 1
func Compute(n *big.Int) (prefix.Prefix, error) {
	return ComputeWith(n, DefaultStrategy, DefaultEngine)
}

// ComputeWith returns ECF(n) using the given strategy and engine.
//
// Parameters:
//   - n: Number to compute, must be >= 1
//   - strategy: Assembly strategy (StrategyPrefix or StrategyPath)
//   - engine: Tree engine (EngineRIP or EnginePIP)
//   - opts: Optional assembler configuration (logger, step limit)
//
// Returns:
//   - prefix.Prefix: The ECF of n
//   - error: errs.ErrInvalidStrategy, errs.ErrInvalidEngine, errs.ErrPathUndefined or
//     errs.ErrStepLimitExceeded
func ComputeWith(n *big.Int, strategy format.StrategyType, engine format.EngineType, opts ...assemble.Option) (prefix.Prefix, error) {
	a, err := newAssembler(strategy, engine, opts...)
	if err != nil {
		return nil, err
	}

	return a.Assemble(n)
}

func newAssembler(strategy format.StrategyType, engine format.EngineType, opts ...assemble.Option) (assemble.Assembler, error) {
	e, err := tree.GetEngine(engine)
	if err != nil {
		return nil, err
	}

	return assemble.New(strategy, e, opts...)
}

// Verify computes ECF(n) with every strategy and engine combination and checks each
// result against direct simulation of the trajectory.
//
// Returns:
//   - error: errs.ErrDisagreement naming the first combination that differs, or the
//     error of a failing computation
func Verify(n *big.Int) error {
	want, err := collatz.ECF(n)
	if err != nil {
		return err
	}

	for _, strategy := range strategies {
		for _, engine := range engines {
			got, err := ComputeWith(n, strategy, engine)
			if err != nil {
				return fmt.Errorf("%s/%s of %s: %w", strategy, engine, n, err)
			}
			if !got.Equal(want) {
				return fmt.Errorf("%w: %s/%s of %s gave %s, simulation gave %s",
					errs.ErrDisagreement, strategy, engine, n, got, want)
			}
		}
	}

	return nil
}

// ComputeMany returns the ECF of every number in ns, in order, computed concurrently
// with the default engine and strategy on up to GOMAXPROCS goroutines.
//
// A nil entry fails with errs.ErrNotPositive. If any computation fails, the error of
// the lowest failing index is returned.
func ComputeMany(ns []*big.Int) ([]prefix.Prefix, error) {
	a, err := newAssembler(DefaultStrategy, DefaultEngine)
	if err != nil {
		return nil, err
	}

	results := make([]prefix.Prefix, len(ns))
	failures := make([]error, len(ns))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, n := range ns {
		if n == nil {
			failures[i] = fmt.Errorf("%w: nil number", errs.ErrNotPositive)
			continue
		}
		g.Go(func() error {
			results[i], failures[i] = a.Assemble(n)
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range failures {
		if err != nil {
			return nil, fmt.Errorf("number %d (%s): %w", i, ns[i], err)
		}
	}

	return results, nil
}

// PrefixMap returns ToNum of the RIPTree local prefix of n, the sum of 2^p over the
// prefix found at n's own path. It maps every n >= 1 to a natural number.
func PrefixMap(n *big.Int) (*big.Int, error) {
	p, err := bijection.ToPath(n)
	if err != nil {
		return nil, err
	}

	pf, err := tree.NewRIPTree().PrefixFind(n, p)
	if err != nil {
		return nil, err
	}

	return prefix.ToNum(pf), nil
}

// NewTableEncoder creates an encoder for a binary table of computed ECFs.
//
// Without options the table is little-endian, delta encoded, uncompressed and filled
// with the default engine and strategy.
func NewTableEncoder(opts ...table.EncoderOption) (*table.Encoder, error) {
	return table.NewEncoder(opts...)
}

// DecodeTable parses a table produced by a table encoder.
func DecodeTable(data []byte) (*table.Table, error) {
	return table.Decode(data)
}
