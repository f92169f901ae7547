package collision

import (
	"fmt"
	"math/big"

	"github.com/arloliu/ecf/errs"
)

// Tracker records the numbers added to a table and detects ID collisions.
//
// Two distinct numbers may share an xxHash64 ID. That is not an error: the table keeps
// both and lookups compare the stored number. Adding the same number twice is.
type Tracker struct {
	numbers      map[uint64][]*big.Int // ID -> numbers carrying that ID
	count        int
	hasCollision bool
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		numbers: make(map[uint64][]*big.Int),
	}
}

// Track records n under id.
//
// Returns errs.ErrDuplicateNumber if n was already tracked.
func (t *Tracker) Track(id uint64, n *big.Int) error {
	existing := t.numbers[id]
	for _, m := range existing {
		if m.Cmp(n) == 0 {
			return fmt.Errorf("%w: %s", errs.ErrDuplicateNumber, n)
		}
	}
	if len(existing) > 0 {
		t.hasCollision = true
	}

	t.numbers[id] = append(existing, new(big.Int).Set(n))
	t.count++

	return nil
}

// HasCollision reports whether two distinct numbers shared an ID.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Count returns the number of tracked numbers.
func (t *Tracker) Count() int {
	return t.count
}

// Reset clears all tracked numbers and the collision flag.
func (t *Tracker) Reset() {
	clear(t.numbers)
	t.count = 0
	t.hasCollision = false
}
