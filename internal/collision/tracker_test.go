package collision

import (
	"math/big"
	"testing"

	"github.com/arloliu/ecf/errs"
	"github.com/stretchr/testify/require"
)

func TestTracker_Track(t *testing.T) {
	tr := NewTracker()

	require.NoError(t, tr.Track(1, big.NewInt(27)))
	require.NoError(t, tr.Track(2, big.NewInt(28)))
	require.Equal(t, 2, tr.Count())
	require.False(t, tr.HasCollision())

	err := tr.Track(1, big.NewInt(27))
	require.ErrorIs(t, err, errs.ErrDuplicateNumber)
	require.Equal(t, 2, tr.Count())
}

func TestTracker_Collision(t *testing.T) {
	tr := NewTracker()

	require.NoError(t, tr.Track(7, big.NewInt(3)))
	require.NoError(t, tr.Track(7, big.NewInt(5)))
	require.True(t, tr.HasCollision())
	require.Equal(t, 2, tr.Count())

	require.ErrorIs(t, tr.Track(7, big.NewInt(5)), errs.ErrDuplicateNumber)
}

func TestTracker_CopiesNumbers(t *testing.T) {
	tr := NewTracker()
	n := big.NewInt(10)
	require.NoError(t, tr.Track(1, n))

	n.SetInt64(11)
	require.NoError(t, tr.Track(1, n))
	require.True(t, tr.HasCollision())
}

func TestTracker_Reset(t *testing.T) {
	tr := NewTracker()
	require.NoError(t, tr.Track(7, big.NewInt(3)))
	require.NoError(t, tr.Track(7, big.NewInt(5)))

	tr.Reset()
	require.Equal(t, 0, tr.Count())
	require.False(t, tr.HasCollision())
	require.NoError(t, tr.Track(7, big.NewInt(3)))
}
