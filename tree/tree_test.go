package tree

import (
	"math/big"
	"testing"

	"github.com/arloliu/ecf/bijection"
	"github.com/arloliu/ecf/collatz"
	"github.com/arloliu/ecf/errs"
	"github.com/arloliu/ecf/format"
	"github.com/arloliu/ecf/prefix"
	"github.com/stretchr/testify/require"
)

func pathOf(t *testing.T, n *big.Int) bijection.Path {
	t.Helper()
	p, err := bijection.ToPath(n)
	require.NoError(t, err)

	return p
}

func parsePath(s string) bijection.Path {
	p := make(bijection.Path, len(s))
	for i, c := range s {
		p[i] = c == '1'
	}

	return p
}

var prefixFindTests = []struct {
	name string
	n    int64
	want prefix.Prefix
}{
	{"one", 1, prefix.Prefix{0}},
	{"pow2_2", 2, prefix.Prefix{1}},
	{"pow2_8", 8, prefix.Prefix{3}},
	{"5", 5, prefix.Prefix{0}},
	{"3", 3, prefix.Prefix{0, 1}},
	{"7", 7, prefix.Prefix{0, 1, 2}},
	{"27", 27, prefix.Prefix{0, 1, 3, 4}},
	{"321", 321, prefix.Prefix{0, 2, 4}},
	{"322", 322, prefix.Prefix{1, 3, 5, 6, 8}},
}

func TestPrefixFind(t *testing.T) {
	for _, engine := range []Engine{NewRIPTree(), NewPIPTree()} {
		t.Run(engine.Type().String(), func(t *testing.T) {
			for _, tt := range prefixFindTests {
				t.Run(tt.name, func(t *testing.T) {
					n := big.NewInt(tt.n)
					pf, err := engine.PrefixFind(n, pathOf(t, n))
					require.NoError(t, err)
					require.Equal(t, tt.want, pf)

					r, err := prefix.Iterate(n, pf)
					require.NoError(t, err)
					require.Equal(t, uint(1), r.Bit(0), "iterating through a local prefix must end odd")
				})
			}
		})
	}
}

func TestPrefixFind_EnginesAgree(t *testing.T) {
	rip, pip := NewRIPTree(), NewPIPTree()
	for i := int64(1); i <= 1500; i++ {
		n := big.NewInt(i)
		p := pathOf(t, n)
		full, err := collatz.ECF(n)
		require.NoError(t, err)

		for ext := range 6 {
			a, err := rip.PrefixFind(n, p)
			require.NoError(t, err)
			b, err := pip.PrefixFind(n, p)
			require.NoError(t, err)
			require.Equal(t, a, b, "n=%d ext=%d", i, ext)
			require.Equal(t, a, prefix.CommonPrefix(a, full), "n=%d ext=%d: not a prefix of the ECF", i, ext)

			// past the full form the trajectory cycles through 1 -> 4 -> 2 -> 1
			if len(a) == len(full) {
				break
			}
			p = p.Extend(true)
		}
	}
}

func TestPrefixFind_ExtendedPath(t *testing.T) {
	n := big.NewInt(27)
	p := pathOf(t, n).Extend(true).Extend(true)

	for _, engine := range []Engine{NewRIPTree(), NewPIPTree()} {
		pf, err := engine.PrefixFind(n, p)
		require.NoError(t, err)
		require.Equal(t, prefix.Prefix{0, 1, 3, 4, 5, 6}, pf, engine.Type().String())
	}
}

func TestPrefixFind_Errors(t *testing.T) {
	for _, engine := range []Engine{NewRIPTree(), NewPIPTree()} {
		t.Run(engine.Type().String(), func(t *testing.T) {
			_, err := engine.PrefixFind(big.NewInt(27), pathOf(t, big.NewInt(26)))
			require.ErrorIs(t, err, errs.ErrPathMismatch)

			_, err = engine.PrefixFind(big.NewInt(27), parsePath("1010"))
			require.ErrorIs(t, err, errs.ErrPathMismatch)

			_, err = engine.PrefixFind(big.NewInt(0), nil)
			require.ErrorIs(t, err, errs.ErrPathUndefined)
		})
	}
}

func TestNextInPath(t *testing.T) {
	tests := []struct {
		n, want int64
	}{
		{1, 2},
		{2, 4},
		{3, 7},
		{7, 15},
		{5, 13},
		{27, 59},
	}
	for _, tt := range tests {
		n := big.NewInt(tt.n)
		p := pathOf(t, n)
		next := NextInPath(n, p)
		require.Equal(t, tt.want, next.Int64(), "next of %d", tt.n)
		require.Equal(t, tt.n, n.Int64(), "operand modified")
	}
}

func TestRootDirections(t *testing.T) {
	tests := []struct {
		path string
		want []Direction
	}{
		{"10100", []Direction{Left, Right, Left, Left}},
		{"10", []Direction{Left}},
		{"110", []Direction{Right, Left}},
		{"101000010", []Direction{Left, Right, Left, Left, Left, Left, Right, Left}},
		{"01", nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.Equal(t, tt.want, RootDirections(parsePath(tt.path)))
		})
	}
}

func TestWalk(t *testing.T) {
	nodes, err := NewPIPTree().Walk(parsePath("10100"))
	require.NoError(t, err)

	type visit struct {
		value  int64
		pf     prefix.Prefix
		nature Nature
		path   string
	}
	want := []visit{
		{16, prefix.Prefix{4}, Good, "00001"},
		{24, prefix.Prefix{3, 4}, Good, "00010"},
		{12, prefix.Prefix{2, 3}, Good, "00101"},
		{22, prefix.Prefix{1, 2, 4}, Good, "01010"},
		{27, prefix.Prefix{0, 1, 3, 4}, Bad, "10100"},
	}

	var got []visit
	for depth, node := range nodes {
		require.Equal(t, len(got), depth)
		require.Equal(t, 0, bijection.FromPath(node.Path).Cmp(node.Value), "node value must sit at node path")
		got = append(got, visit{node.Value.Int64(), node.Prefix, node.Nature, node.Path.String()})
	}
	require.Equal(t, want, got)
}

func TestWalk_MatchesPrefixFind(t *testing.T) {
	pip := NewPIPTree()
	for i := int64(3); i <= 600; i++ {
		n := big.NewInt(i)
		if bijection.IsPow2(n) {
			continue
		}
		p := pathOf(t, n).Extend(true)

		nodes, err := pip.Walk(p)
		require.NoError(t, err)

		var last Node
		for _, node := range nodes {
			require.Equal(t, 0, bijection.FromPath(node.Path).Cmp(node.Value))
			last = node
		}
		require.Equal(t, 0, last.Value.Cmp(n))

		pf, err := pip.PrefixFind(n, p)
		require.NoError(t, err)
		require.Equal(t, pf, last.Prefix)
	}
}

func TestWalk_VisitsEveryNode(t *testing.T) {
	pip := NewPIPTree()
	for i := int64(3); i <= 2048; i++ {
		n := big.NewInt(i)
		if bijection.IsPow2(n) {
			continue
		}
		p := pathOf(t, n)

		nodes, err := pip.Walk(p)
		require.NoError(t, err)

		count := 0
		for depth := range nodes {
			require.Equal(t, count, depth)
			count++
		}
		require.Equal(t, len(RootDirections(p))+1, count, "walk of %d ended early", i)
	}
}

func TestWalk_EarlyBreak(t *testing.T) {
	nodes, err := NewPIPTree().Walk(parsePath("10100"))
	require.NoError(t, err)

	count := 0
	for range nodes {
		count++
		if count == 2 {
			break
		}
	}
	require.Equal(t, 2, count)
}

func TestWalk_PowerOfTwo(t *testing.T) {
	_, err := NewPIPTree().Walk(pathOf(t, big.NewInt(8)))
	require.ErrorIs(t, err, errs.ErrPowerOfTwo)
}

func TestEngineFactory(t *testing.T) {
	for _, typ := range []format.EngineType{format.EngineRIP, format.EnginePIP} {
		e, err := CreateEngine(typ)
		require.NoError(t, err)
		require.Equal(t, typ, e.Type())

		g, err := GetEngine(typ)
		require.NoError(t, err)
		require.Equal(t, typ, g.Type())
	}

	_, err := CreateEngine(format.EngineType(0))
	require.ErrorIs(t, err, errs.ErrInvalidEngine)
	_, err = GetEngine(format.EngineType(9))
	require.ErrorIs(t, err, errs.ErrInvalidEngine)
}

func TestStringers(t *testing.T) {
	require.Equal(t, "L", Left.String())
	require.Equal(t, "R", Right.String())
	require.Equal(t, "GOOD", Good.String())
	require.Equal(t, "BAD", Bad.String())
}
