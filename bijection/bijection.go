package bijection

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/arloliu/ecf/errs"
)

var bigOne = big.NewInt(1)

// Digits is a minimal big-endian binary representation: Digits[0] is the most
// significant bit and true stands for 1.
type Digits []bool

// String renders the digits as a string of '0' and '1'.
func (d Digits) String() string {
	return bitString(d)
}

// Path locates a number in the infinite binary tree. Path[0] is the first step below
// the root.
type Path []bool

// String renders the path as a string of '0' and '1'.
func (p Path) String() string {
	return bitString(p)
}

// Clone returns a copy of the path that shares no memory with p.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}

	c := make(Path, len(p))
	copy(c, p)

	return c
}

// Extend returns a new path with bit appended to p. p is not modified.
func (p Path) Extend(bit bool) Path {
	c := make(Path, len(p), len(p)+1)
	copy(c, p)

	return append(c, bit)
}

// ToBinary returns the minimal big-endian binary digits of n.
//
// Parameters:
//   - n: Natural number to convert
//
// Returns:
//   - Digits: Digits of n, empty for zero
//   - error: errs.ErrNegativeNumber if n < 0
func ToBinary(n *big.Int) (Digits, error) {
	if n.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s", errs.ErrNegativeNumber, n)
	}

	l := n.BitLen()
	d := make(Digits, l)
	for i := range l {
		d[i] = n.Bit(l-1-i) == 1
	}

	return d, nil
}

// FromBinary returns the number whose big-endian binary digits are d.
// Leading false digits are accepted and ignored.
func FromBinary(d Digits) *big.Int {
	n := new(big.Int)
	l := len(d)
	for i, bit := range d {
		if bit {
			n.SetBit(n, l-1-i, 1)
		}
	}

	return n
}

// ToPath returns the tree path of n.
//
// The path is reverse(complement(ToBinary(n - 1))). Bit i of the path is therefore the
// complement of bit i of n-1, counting from the least significant bit.
//
// Parameters:
//   - n: Number to locate, must be >= 1
//
// Returns:
//   - Path: Path of n, empty for n = 1
//   - error: errs.ErrPathUndefined if n < 1
func ToPath(n *big.Int) (Path, error) {
	if n.Sign() < 1 {
		return nil, fmt.Errorf("%w: got %s", errs.ErrPathUndefined, n)
	}

	m := new(big.Int).Sub(n, bigOne)
	l := m.BitLen()
	p := make(Path, l)
	for i := range l {
		p[i] = m.Bit(i) == 0
	}

	return p, nil
}

// FromPath returns the number located at path p.
//
// It is the inverse of ToPath: FromBinary(reverse(complement(p))) + 1. Every path,
// including the empty one (which belongs to 1), indexes exactly one number.
func FromPath(p Path) *big.Int {
	n := new(big.Int)
	for i, bit := range p {
		if !bit {
			n.SetBit(n, i, 1)
		}
	}

	return n.Add(n, bigOne)
}

// IsPow2 reports whether n has exactly one bit set.
//
// Following the n & (n-1) == 0 convention, IsPow2 also reports true for zero.
// Negative numbers are never powers of two.
func IsPow2(n *big.Int) bool {
	switch n.Sign() {
	case 0:
		return true
	case -1:
		return false
	}

	m := new(big.Int).Sub(n, bigOne)

	return m.And(m, n).Sign() == 0
}

// Log2 returns the number of halvings that take n down to 1, i.e. floor(log2(n)).
// It returns 0 for n <= 1.
func Log2(n *big.Int) uint32 {
	if n.Sign() < 1 {
		return 0
	}

	return uint32(n.BitLen() - 1) //nolint: gosec
}

func bitString(bits []bool) string {
	var sb strings.Builder
	sb.Grow(len(bits))
	for _, bit := range bits {
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	return sb.String()
}
