// Package bijection converts between natural numbers, their binary digits and their
// paths in the infinite binary tree that indexes every integer >= 1.
//
// # Binary digits
//
// Digits are most-significant first and of minimal length, so zero is the empty
// sequence:
//
//	ToBinary(12) = 1100
//	ToBinary(0)  = (empty)
//
// # Paths
//
// The path of n is obtained by decrementing, taking the binary digits, reversing them
// and complementing every bit:
//
//	n = 27 -> 26 = 11010 -> reversed 01011 -> complemented 10100
//
// Paths and numbers >= 1 are in exact bijection. The empty path belongs to 1, and a
// path has bitlen(n-1) elements. Appending true to a path keeps it pointing at the
// same number, which is what the path-extension assembler relies on.
//
// # Powers of two
//
// IsPow2 follows the n & (n-1) == 0 bit trick and therefore also reports true for
// zero. Zero has no path, so the quirk is unreachable from the tree engines, but it is
// kept and tested as part of the contract.
//
// All functions are pure and run in O(bitlen(n)) time and space.
package bijection
