package tree

import (
	"fmt"
	"math/big"

	"github.com/arloliu/ecf/bijection"
	"github.com/arloliu/ecf/format"
	"github.com/arloliu/ecf/prefix"
)

// RIPTree finds prefixes by comparing n with the next number on the same path.
//
// Every number at path p is congruent modulo 2^len(p), so n and n + 2^len(p) share
// their trajectory for as long as the low bits decide the parity. The common prefix of
// the two is therefore a prefix of ECF(n).
type RIPTree struct{}

var _ Engine = RIPTree{}

// NewRIPTree creates a RIPTree engine.
func NewRIPTree() RIPTree {
	return RIPTree{}
}

// Type implements Engine.
func (RIPTree) Type() format.EngineType {
	return format.EngineRIP
}

// PrefixFind implements Engine.
func (RIPTree) PrefixFind(n *big.Int, p bijection.Path) (prefix.Prefix, error) {
	if err := checkPath(n, p); err != nil {
		return nil, fmt.Errorf("riptree: %w", err)
	}
	if pf, ok := powerOfTwoPrefix(n); ok {
		return pf, nil
	}

	pf, err := prefix.Find(n, NextInPath(n, p))
	if err != nil {
		return nil, fmt.Errorf("riptree: %w", err)
	}

	return pf, nil
}

// NextInPath returns the next number sharing path p with n, that is n + 2^len(p).
func NextInPath(n *big.Int, p bijection.Path) *big.Int {
	next := new(big.Int).Lsh(bigOne, uint(len(p)))
	return next.Add(next, n)
}
