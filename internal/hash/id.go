package hash

import (
	"math/big"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given bytes.
func ID(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// NumberID computes the table ID of a natural number from its big-endian magnitude.
func NumberID(n *big.Int) uint64 {
	return xxhash.Sum64(n.Bytes())
}
