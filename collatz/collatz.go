// Package collatz computes Collatz trajectories by direct simulation.
//
// It is the brute-force reference the structural engines are checked against: every
// function here walks the trajectory of n one step at a time, so the cost is
// proportional to the trajectory length.
package collatz

import (
	"fmt"
	"math/big"

	"github.com/arloliu/ecf/errs"
	"github.com/arloliu/ecf/prefix"
)

var (
	bigOne   = big.NewInt(1)
	bigThree = big.NewInt(3)
)

func checkPositive(n *big.Int) error {
	if n.Sign() < 1 {
		return fmt.Errorf("%w: got %s", errs.ErrNotPositive, n)
	}

	return nil
}

// ECF returns the exponential canonical form of n: the cumulative halving count
// recorded before every odd step, plus the final count on reaching 1.
//
//	ECF(3) = [0 1 5]
//	ECF(1) = [0]
func ECF(n *big.Int) (prefix.Prefix, error) {
	if err := checkPositive(n); err != nil {
		return nil, err
	}

	cur := new(big.Int).Set(n)
	pf := prefix.Prefix{}
	var twos uint32
	for cur.Cmp(bigOne) != 0 {
		if cur.Bit(0) == 0 {
			tz := cur.TrailingZeroBits()
			twos += uint32(tz) //nolint: gosec
			cur.Rsh(cur, tz)

			continue
		}
		pf = append(pf, twos)
		cur.Mul(cur, bigThree).Add(cur, bigOne)
	}

	return append(pf, twos), nil
}

// ECFToN recovers the number whose ECF is pf.
//
// Starting from 1, each halving gap is undone from the last element backwards: the
// value is doubled pf[i]-pf[i-1] times and then (x-1)/3 is taken. Every such odd
// predecessor must exist and be greater than 1, otherwise pf is not the ECF of any
// number.
//
// Returns:
//   - *big.Int: Number with ECF pf
//   - error: errs.ErrNotCanonical if pf is empty, not strictly ascending or not reachable
func ECFToN(pf prefix.Prefix) (*big.Int, error) {
	if len(pf) == 0 {
		return nil, fmt.Errorf("%w: empty prefix", errs.ErrNotCanonical)
	}
	if err := pf.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrNotCanonical, err)
	}

	n := big.NewInt(1)
	rem := new(big.Int)
	for i := len(pf) - 1; i >= 1; i-- {
		n.Lsh(n, uint(pf[i]-pf[i-1]))
		n.Sub(n, bigOne)
		n.DivMod(n, bigThree, rem)
		if rem.Sign() != 0 || n.Bit(0) == 0 || n.Cmp(bigOne) == 0 {
			return nil, fmt.Errorf("%w: %s has no odd predecessor at element %d", errs.ErrNotCanonical, pf, i)
		}
	}

	return n.Lsh(n, uint(pf[0])), nil
}

// Length returns the number of terms in the trajectory of n, both ends included.
func Length(n *big.Int) (int, error) {
	if err := checkPositive(n); err != nil {
		return 0, err
	}

	cur := new(big.Int).Set(n)
	length := 1
	for cur.Cmp(bigOne) != 0 {
		step(cur)
		length++
	}

	return length, nil
}

// Sequence returns every term of the trajectory of n, from n down to 1.
func Sequence(n *big.Int) ([]*big.Int, error) {
	if err := checkPositive(n); err != nil {
		return nil, err
	}

	cur := new(big.Int).Set(n)
	seq := []*big.Int{new(big.Int).Set(cur)}
	for cur.Cmp(bigOne) != 0 {
		step(cur)
		seq = append(seq, new(big.Int).Set(cur))
	}

	return seq, nil
}

// ReducedSequence returns the odd terms of the trajectory of n, ending with 1.
// An even n is kept as the first term.
//
//	ReducedSequence(28) = [28 7 11 17 13 5 1]
func ReducedSequence(n *big.Int) ([]*big.Int, error) {
	if err := checkPositive(n); err != nil {
		return nil, err
	}

	cur := new(big.Int).Set(n)
	var seq []*big.Int
	if cur.Bit(0) == 0 {
		seq = append(seq, new(big.Int).Set(cur))
	}
	for cur.Cmp(bigOne) != 0 {
		if cur.Bit(0) == 1 {
			seq = append(seq, new(big.Int).Set(cur))
		}
		step(cur)
	}

	return append(seq, new(big.Int).Set(cur)), nil
}

func step(cur *big.Int) {
	if cur.Bit(0) == 0 {
		cur.Rsh(cur, 1)
	} else {
		cur.Mul(cur, bigThree).Add(cur, bigOne)
	}
}
