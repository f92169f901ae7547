package ecf

import (
	"math/big"
	"testing"

	"github.com/arloliu/ecf/collatz"
	"github.com/arloliu/ecf/errs"
	"github.com/arloliu/ecf/format"
	"github.com/arloliu/ecf/prefix"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		n    int64
		want prefix.Prefix
	}{
		{1, prefix.Prefix{0}},
		{6, prefix.Prefix{1, 2, 6}},
		{7, prefix.Prefix{0, 1, 2, 4, 7, 11}},
		{16, prefix.Prefix{4}},
	}
	for _, tt := range tests {
		t.Run(big.NewInt(tt.n).String(), func(t *testing.T) {
			got, err := Compute(big.NewInt(tt.n))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestComputeWith(t *testing.T) {
	n := big.NewInt(27)
	want, err := collatz.ECF(n)
	require.NoError(t, err)

	for _, strategy := range strategies {
		for _, engine := range engines {
			got, err := ComputeWith(n, strategy, engine)
			require.NoError(t, err)
			require.Equal(t, want, got, "%s/%s", strategy, engine)
		}
	}

	_, err = ComputeWith(n, format.StrategyType(9), format.EnginePIP)
	require.ErrorIs(t, err, errs.ErrInvalidStrategy)
	_, err = ComputeWith(n, format.StrategyPrefix, format.EngineType(9))
	require.ErrorIs(t, err, errs.ErrInvalidEngine)
	_, err = Compute(big.NewInt(0))
	require.ErrorIs(t, err, errs.ErrPathUndefined)
}

func TestVerify(t *testing.T) {
	for i := int64(1); i <= 200; i++ {
		require.NoError(t, Verify(big.NewInt(i)), "verify %d", i)
	}

	n, ok := new(big.Int).SetString("186438726873", 10)
	require.True(t, ok)
	require.NoError(t, Verify(n))

	require.ErrorIs(t, Verify(big.NewInt(0)), errs.ErrNotPositive)
}

func TestComputeMany(t *testing.T) {
	ns := make([]*big.Int, 500)
	for i := range ns {
		ns[i] = big.NewInt(int64(i + 1))
	}

	got, err := ComputeMany(ns)
	require.NoError(t, err)
	require.Len(t, got, len(ns))
	for i, n := range ns {
		want, err := collatz.ECF(n)
		require.NoError(t, err)
		require.Equal(t, want, got[i], "ecf of %s", n)
	}

	empty, err := ComputeMany(nil)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestComputeMany_ReportsLowestFailure(t *testing.T) {
	ns := []*big.Int{big.NewInt(3), big.NewInt(0), big.NewInt(5), big.NewInt(-1)}
	_, err := ComputeMany(ns)
	require.ErrorIs(t, err, errs.ErrPathUndefined)
	require.Contains(t, err.Error(), "number 1 (0)")
}

func TestComputeMany_NilNumber(t *testing.T) {
	ns := []*big.Int{big.NewInt(7), nil, big.NewInt(9)}
	_, err := ComputeMany(ns)
	require.ErrorIs(t, err, errs.ErrNotPositive)
	require.Contains(t, err.Error(), "number 1")

	// a nil entry after a failing one still reports the lowest index
	_, err = ComputeMany([]*big.Int{big.NewInt(0), nil})
	require.ErrorIs(t, err, errs.ErrPathUndefined)
}

func TestPrefixMap(t *testing.T) {
	tests := []struct {
		n, want int64
	}{
		{1, 1},
		{2, 2},
		{3, 3},
		{5, 1},
		{6, 6},
		{27, 27},
		{100, 52},
	}
	for _, tt := range tests {
		got, err := PrefixMap(big.NewInt(tt.n))
		require.NoError(t, err)
		require.Equal(t, tt.want, got.Int64(), "prefix map of %d", tt.n)
	}

	_, err := PrefixMap(big.NewInt(0))
	require.ErrorIs(t, err, errs.ErrPathUndefined)
}

func TestTableFacade(t *testing.T) {
	enc, err := NewTableEncoder()
	require.NoError(t, err)
	for i := int64(1); i <= 10; i++ {
		require.NoError(t, enc.Add(big.NewInt(i)))
	}
	tbl, err := enc.Finish()
	require.NoError(t, err)

	decoded, err := DecodeTable(tbl.Bytes())
	require.NoError(t, err)
	require.Equal(t, 10, decoded.Len())

	got, ok := decoded.Lookup(big.NewInt(7))
	require.True(t, ok)
	require.Equal(t, prefix.Prefix{0, 1, 2, 4, 7, 11}, got)
}

func BenchmarkCompute(b *testing.B) {
	n, _ := new(big.Int).SetString("186438726873", 10)
	for b.Loop() {
		_, _ = Compute(n)
	}
}
