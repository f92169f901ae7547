// Package prefix implements the algebra of ECF prefixes.
//
// A Prefix is an ascending list of cumulative halving counts, one per odd (3x+1) step
// of a Collatz trajectory. The full ECF of n is the prefix that reduces n to 1:
//
//	ECF(3) = [0, 1, 5]   3 -> 10 -> 5 -> 16 -> 8 -> 4 -> 2 -> 1
//
// The package derives common prefixes of two numbers without simulating either
// trajectory to the end (Find), applies a prefix to a number (Iterate), glues two
// consecutive trajectory segments together (Add) and maps prefixes to integers and
// back (ToNum, FromNum).
package prefix

import (
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/arloliu/ecf/errs"
)

var (
	bigOne   = big.NewInt(1)
	bigThree = big.NewInt(3)
)

// Prefix is a (possibly partial) exponential canonical form.
type Prefix []uint32

// Clone returns a copy of pf that shares no memory with it.
func (pf Prefix) Clone() Prefix {
	return slices.Clone(pf)
}

// Equal reports whether pf and other hold the same elements.
// A nil prefix equals an empty one.
func (pf Prefix) Equal(other Prefix) bool {
	return slices.Equal(pf, other)
}

// Last returns the last element of pf, or false if pf is empty.
func (pf Prefix) Last() (uint32, bool) {
	if len(pf) == 0 {
		return 0, false
	}

	return pf[len(pf)-1], true
}

// Validate checks that pf is strictly ascending, as every ECF is.
func (pf Prefix) Validate() error {
	for i := 1; i < len(pf); i++ {
		if pf[i] <= pf[i-1] {
			return fmt.Errorf("%w: element %d (%d) after %d", errs.ErrUnsortedPrefix, i, pf[i], pf[i-1])
		}
	}

	return nil
}

// String renders pf as "[a b c]".
func (pf Prefix) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range pf {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", v)
	}
	sb.WriteByte(']')

	return sb.String()
}

// ThreeXPlusOne returns 3n + 1 as a new value.
func ThreeXPlusOne(n *big.Int) *big.Int {
	r := new(big.Int).Mul(n, bigThree)
	return r.Add(r, bigOne)
}

// Find returns the common prefix of ECF(n) and ECF(m) by synchronized descent.
//
// Both numbers are halved together while both are even, and stepped with 3x+1
// together while both are odd; each joint odd step records the running halving count.
// The descent stops at the first step where the parities differ. Find is commutative.
//
// Example: ECF(3) = [0 1 5] and ECF(7) = [0 1 2 4 7 11], so Find(3, 7) = [0 1].
//
// The descent does not stop at 1. When ECF(n) is a prefix of ECF(m), n keeps cycling
// through 1 -> 4 -> 2 -> 1 and the result runs past ECF(n): ECF(1) = [0] and
// ECF(9) = [0 2 ...], yet Find(1, 9) = [0 2]. The result then still starts with ECF(n).
// Powers of two are resolved before Find is reached by the tree engines.
//
// Parameters:
//   - n, m: Natural numbers, must differ
//
// Returns:
//   - Prefix: Common prefix, possibly empty
//   - error: errs.ErrNegativeNumber for a negative operand, errs.ErrIdenticalOperands if n == m
func Find(n, m *big.Int) (Prefix, error) {
	if n.Sign() < 0 || m.Sign() < 0 {
		return nil, fmt.Errorf("%w: find(%s, %s)", errs.ErrNegativeNumber, n, m)
	}
	if n.Cmp(m) == 0 {
		return nil, fmt.Errorf("%w: find(%s, %s)", errs.ErrIdenticalOperands, n, m)
	}

	a := new(big.Int).Set(n)
	b := new(big.Int).Set(m)
	pf := Prefix{}
	var twos uint32

	for {
		aOdd, bOdd := a.Bit(0) == 1, b.Bit(0) == 1
		switch {
		case !aOdd && !bOdd:
			twos++
			a.Rsh(a, 1)
			b.Rsh(b, 1)
		case aOdd && bOdd:
			pf = append(pf, twos)
			a.Mul(a, bigThree).Add(a, bigOne)
			b.Mul(b, bigThree).Add(b, bigOne)
		default:
			return pf, nil
		}
	}
}

// Iterate reduces n through pf.
//
// n is divided by 2^pf[0]; then, for each following element, 3x+1 is applied and the
// result divided by 2^(pf[i]-pf[i-1]). If pf is the ECF of n the result is 1; if pf is
// a proper prefix of it the result is odd.
//
// Every division must be exact. A non-zero remainder means pf is not a prefix of ECF(n)
// and is reported rather than truncated.
//
// Parameters:
//   - n: Natural number to reduce
//   - pf: Ascending prefix
//
// Returns:
//   - *big.Int: Reduced number (a copy of n for an empty prefix)
//   - error: errs.ErrNegativeNumber, errs.ErrUnsortedPrefix or errs.ErrInexactDivision
func Iterate(n *big.Int, pf Prefix) (*big.Int, error) {
	if n.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s", errs.ErrNegativeNumber, n)
	}

	r := new(big.Int).Set(n)
	if len(pf) == 0 {
		return r, nil
	}

	if err := exactShift(r, pf[0]); err != nil {
		return nil, fmt.Errorf("iterate %s through %s: %w", n, pf, err)
	}

	for i := 1; i < len(pf); i++ {
		if pf[i] < pf[i-1] {
			return nil, fmt.Errorf("%w: element %d (%d) after %d", errs.ErrUnsortedPrefix, i, pf[i], pf[i-1])
		}

		r.Mul(r, bigThree).Add(r, bigOne)
		if err := exactShift(r, pf[i]-pf[i-1]); err != nil {
			return nil, fmt.Errorf("iterate %s through %s at element %d: %w", n, pf, i, err)
		}
	}

	return r, nil
}

// exactShift divides r by 2^k in place, failing if the division leaves a remainder.
func exactShift(r *big.Int, k uint32) error {
	if k == 0 || r.Sign() == 0 {
		return nil
	}
	if r.TrailingZeroBits() < uint(k) {
		return fmt.Errorf("%w: %s by 2^%d", errs.ErrInexactDivision, r, k)
	}
	r.Rsh(r, uint(k))

	return nil
}

// Add composes two prefixes describing consecutive trajectory segments.
//
//	pf1: [a, b, c]
//	pf2:       [x,   y,   z]
//	sum: [a, b, c+x, c+y, c+z]
//
// If either prefix is empty a copy of the other is returned. Neither input is modified.
func Add(pf1, pf2 Prefix) Prefix {
	if len(pf1) == 0 {
		return pf2.Clone()
	}
	if len(pf2) == 0 {
		return pf1.Clone()
	}

	last := pf1[len(pf1)-1]
	sum := make(Prefix, len(pf1), len(pf1)+len(pf2)-1)
	copy(sum, pf1)
	sum[len(sum)-1] += pf2[0]

	for _, v := range pf2[1:] {
		sum = append(sum, v+last)
	}

	return sum
}

// ToNum maps pf to the integer sum of 2^p over its elements.
// It is a bijection between strictly ascending prefixes and natural numbers.
func ToNum(pf Prefix) *big.Int {
	n := new(big.Int)
	term := new(big.Int)
	for _, p := range pf {
		n.Add(n, term.Lsh(bigOne, uint(p)))
	}

	return n
}

// FromNum returns the ascending set-bit positions of k, the inverse of ToNum.
func FromNum(k *big.Int) (Prefix, error) {
	if k.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s", errs.ErrNegativeNumber, k)
	}

	pf := Prefix{}
	for i := range k.BitLen() {
		if k.Bit(i) == 1 {
			pf = append(pf, uint32(i)) //nolint: gosec
		}
	}

	return pf, nil
}

// CommonPrefix returns the longest literal common prefix of a and b.
func CommonPrefix(a, b Prefix) Prefix {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}

	return slices.Clone(a[:i:i])
}
