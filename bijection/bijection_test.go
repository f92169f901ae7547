package bijection

import (
	"math/big"
	"testing"

	"github.com/arloliu/ecf/errs"
	"github.com/stretchr/testify/require"
)

func parseBits(s string) []bool {
	bits := make([]bool, len(s))
	for i, c := range s {
		bits[i] = c == '1'
	}

	return bits
}

func TestBinary(t *testing.T) {
	tests := []struct {
		n    int64
		bits string
	}{
		{1, "1"},
		{2, "10"},
		{3, "11"},
		{8, "1000"},
		{15, "1111"},
		{27, "11011"},
		{322, "101000010"},
	}
	for _, tt := range tests {
		t.Run(tt.bits, func(t *testing.T) {
			n := big.NewInt(tt.n)
			d, err := ToBinary(n)
			require.NoError(t, err)
			require.Equal(t, Digits(parseBits(tt.bits)), d)
			require.Equal(t, tt.bits, d.String())
			require.Equal(t, 0, FromBinary(d).Cmp(n))
		})
	}
}

func TestBinary_Zero(t *testing.T) {
	d, err := ToBinary(big.NewInt(0))
	require.NoError(t, err)
	require.Empty(t, d)
	require.Equal(t, 0, FromBinary(nil).Sign())
	require.Equal(t, 0, FromBinary(Digits{}).Sign())
}

func TestBinary_Negative(t *testing.T) {
	_, err := ToBinary(big.NewInt(-3))
	require.ErrorIs(t, err, errs.ErrNegativeNumber)
}

func TestFromBinary_LeadingZeros(t *testing.T) {
	require.Equal(t, int64(5), FromBinary(Digits(parseBits("000101"))).Int64())
}

func TestPath(t *testing.T) {
	tests := []struct {
		n    int64
		path string
	}{
		{1, ""},
		{2, "0"},
		{3, "10"},
		{4, "00"},
		{5, "110"},
		{8, "000"},
		{27, "10100"},
		{100, "0011100"},
		{321, "111111010"},
		{322, "011111010"},
	}
	for _, tt := range tests {
		t.Run(big.NewInt(tt.n).String(), func(t *testing.T) {
			n := big.NewInt(tt.n)
			p, err := ToPath(n)
			require.NoError(t, err)
			require.Equal(t, tt.path, p.String())
			require.Len(t, p, new(big.Int).Sub(n, big.NewInt(1)).BitLen())
			require.Equal(t, 0, FromPath(p).Cmp(n))
		})
	}
}

func TestPath_Undefined(t *testing.T) {
	for _, n := range []int64{0, -1, -100} {
		_, err := ToPath(big.NewInt(n))
		require.ErrorIs(t, err, errs.ErrPathUndefined)
	}
}

func TestFromPath_EmptyIsOne(t *testing.T) {
	require.Equal(t, int64(1), FromPath(nil).Int64())
	require.Equal(t, int64(1), FromPath(Path{}).Int64())
}

func TestRoundTrip(t *testing.T) {
	for i := int64(1); i <= 2048; i++ {
		n := big.NewInt(i)

		p, err := ToPath(n)
		require.NoError(t, err)
		require.Equal(t, 0, FromPath(p).Cmp(n), "path round trip of %d", i)

		d, err := ToBinary(n)
		require.NoError(t, err)
		require.Equal(t, 0, FromBinary(d).Cmp(n), "binary round trip of %d", i)
	}
}

func TestRoundTrip_Large(t *testing.T) {
	n, ok := new(big.Int).SetString("340282366920938463463374607431768211457", 10) // 2^128 + 1
	require.True(t, ok)

	p, err := ToPath(n)
	require.NoError(t, err)
	require.Len(t, p, 129)
	require.Equal(t, 0, FromPath(p).Cmp(n))
}

func TestPath_ExtendKeepsNumber(t *testing.T) {
	n := big.NewInt(27)
	p, err := ToPath(n)
	require.NoError(t, err)

	ext := p
	for range 5 {
		ext = ext.Extend(true)
		require.Equal(t, 0, FromPath(ext).Cmp(n))
	}
	require.Equal(t, "10100", p.String(), "Extend must not modify the receiver")
	require.Equal(t, "1010011111", ext.String())

	// a false bit moves to another number
	require.NotEqual(t, 0, FromPath(p.Extend(false)).Cmp(n))
}

func TestPath_Clone(t *testing.T) {
	p := Path(parseBits("101"))
	c := p.Clone()
	c[0] = false
	require.Equal(t, "101", p.String())
	require.Nil(t, Path(nil).Clone())
}

func TestIsPow2(t *testing.T) {
	tests := []struct {
		yes int64
		no  int64
	}{
		{1, 3},
		{2, 5},
		{4, 7},
		{16, 19},
		{1 << 40, 1<<40 + 1},
	}
	for _, tt := range tests {
		require.True(t, IsPow2(big.NewInt(tt.yes)), "%d", tt.yes)
		require.False(t, IsPow2(big.NewInt(tt.no)), "%d", tt.no)
	}

	require.True(t, IsPow2(big.NewInt(0)), "zero follows the n&(n-1) convention")
	require.False(t, IsPow2(big.NewInt(-4)))
	require.True(t, IsPow2(new(big.Int).Lsh(big.NewInt(1), 300)))
}

func TestLog2(t *testing.T) {
	require.Equal(t, uint32(0), Log2(big.NewInt(0)))
	require.Equal(t, uint32(0), Log2(big.NewInt(1)))
	require.Equal(t, uint32(1), Log2(big.NewInt(2)))
	require.Equal(t, uint32(3), Log2(big.NewInt(8)))
	require.Equal(t, uint32(4), Log2(big.NewInt(16)))
	require.Equal(t, uint32(200), Log2(new(big.Int).Lsh(big.NewInt(1), 200)))
}

func BenchmarkToPath(b *testing.B) {
	n := new(big.Int).Lsh(big.NewInt(186438726873), 64)
	b.ResetTimer()
	for b.Loop() {
		_, _ = ToPath(n)
	}
}
