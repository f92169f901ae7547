package tree

import (
	"fmt"
	"iter"
	"math/big"
	"slices"

	"github.com/arloliu/ecf/bijection"
	"github.com/arloliu/ecf/errs"
	"github.com/arloliu/ecf/format"
	"github.com/arloliu/ecf/prefix"
)

// Direction is one step of a root-to-node walk in the PIPTree.
type Direction uint8

const (
	Left  Direction = iota // Left moves to the child that adds the root value.
	Right                  // Right moves to the child that only halves.
)

func (d Direction) String() string {
	if d == Right {
		return "R"
	}

	return "L"
}

// Nature classifies a PIPTree node by the parity its prefix leaves behind.
type Nature uint8

const (
	// Bad marks a node whose value, iterated through prefix ++ [rootDepth+1], is odd.
	Bad Nature = iota
	// Good marks a node whose value, iterated through prefix ++ [rootDepth+1], is even.
	Good
)

func (n Nature) String() string {
	if n == Good {
		return "GOOD"
	}

	return "BAD"
}

// Node is a PIPTree node visited during a walk.
//
// Value is always the number indexed by Path, and Prefix is the prefix of ECF(Value)
// the walk has accumulated so far.
type Node struct {
	Path   bijection.Path
	Prefix prefix.Prefix
	Value  *big.Int
	Nature Nature
}

// PIPTree finds prefixes by walking from the root of the subtree that contains n.
//
// All paths of the same length form a subtree rooted at 2^(len-1). Starting with the
// root prefix [len-1], each step down to a child rewrites the prefix using only the
// nature of the current node, so the prefix of the target is built without iterating
// the target itself.
type PIPTree struct{}

var _ Engine = PIPTree{}

// NewPIPTree creates a PIPTree engine.
func NewPIPTree() PIPTree {
	return PIPTree{}
}

// Type implements Engine.
func (PIPTree) Type() format.EngineType {
	return format.EnginePIP
}

// PrefixFind implements Engine.
func (PIPTree) PrefixFind(n *big.Int, p bijection.Path) (prefix.Prefix, error) {
	if err := checkPath(n, p); err != nil {
		return nil, fmt.Errorf("piptree: %w", err)
	}
	if pf, ok := powerOfTwoPrefix(n); ok {
		return pf, nil
	}

	w, err := walkTo(p, RootDirections(p))
	if err != nil {
		return nil, fmt.Errorf("piptree: prefix of %s: %w", n, err)
	}

	return w.node.Prefix, nil
}

// Walk returns an iterator over the nodes visited on the way from the subtree root to
// the number at path p, root first. The index is the depth below the root.
//
// The walk consumed by PrefixFind is the same: the Prefix of the last node equals
// PrefixFind(FromPath(p), p). Powers of two have no walk.
//
// The walk is run to completion before Walk returns, so a failing step is reported as
// the returned error and the iterator always visits every node up to p.
//
// Example:
//
//	nodes, err := tree.NewPIPTree().Walk(path)
//	for depth, node := range nodes {
//	    fmt.Println(depth, node.Value, node.Prefix, node.Nature)
//	}
func (PIPTree) Walk(p bijection.Path) (iter.Seq2[int, Node], error) {
	n := bijection.FromPath(p)
	if bijection.IsPow2(n) {
		return nil, fmt.Errorf("%w: %s", errs.ErrPowerOfTwo, n)
	}
	dirs := RootDirections(p)

	end, err := walkTo(p, dirs)
	if err == nil {
		_, err = end.nature()
	}
	if err != nil {
		return nil, fmt.Errorf("piptree: walk to %s: %w", n, err)
	}

	return func(yield func(int, Node) bool) {
		w := newWalker(p)
		for depth := 0; ; depth++ {
			// replays the walk checked above, so neither call can fail here
			nature, _ := w.nature()
			w.node.Nature = nature
			if !yield(depth, w.snapshot()) || depth == len(dirs) {
				return
			}
			_ = w.step(dirs[depth])
		}
	}, nil
}

// walkTo starts a walker for p and moves it along dirs.
func walkTo(p bijection.Path, dirs []Direction) (*walker, error) {
	w := newWalker(p)
	for _, dir := range dirs {
		if err := w.step(dir); err != nil {
			return nil, err
		}
	}

	return w, nil
}

// RootDirections returns the directions leading from the subtree root down to the node
// at path p.
//
// Reading p as a binary number i, the walk is recovered backwards: an odd i was reached
// by a Right step from (i-1)/2, an even one by a Left step from i/2, until i reaches 1.
func RootDirections(p bijection.Path) []Direction {
	i := bijection.FromBinary(bijection.Digits(p))

	var dirs []Direction
	for i.Cmp(bigOne) > 0 {
		if i.Bit(0) == 1 {
			dirs = append(dirs, Right)
		} else {
			dirs = append(dirs, Left)
		}
		i.Rsh(i, 1)
	}
	slices.Reverse(dirs)

	return dirs
}

var bigOne = big.NewInt(1)

// walker holds the current node of a PIPTree walk.
type walker struct {
	rootDepth uint32
	rootValue *big.Int
	node      Node
}

// newWalker starts a walk at the root of the subtree holding paths as long as p.
// p has at least two elements for every number that is not a power of two.
func newWalker(p bijection.Path) *walker {
	rootDepth := uint32(len(p) - 1) //nolint: gosec
	rootPath := make(bijection.Path, len(p))
	rootPath[len(p)-1] = true
	rootValue := new(big.Int).Lsh(bigOne, uint(rootDepth))

	return &walker{
		rootDepth: rootDepth,
		rootValue: rootValue,
		node: Node{
			Path:   rootPath,
			Prefix: prefix.Prefix{rootDepth},
			Value:  new(big.Int).Set(rootValue),
		},
	}
}

// nature reports whether the current value stays even after prefix ++ [rootDepth+1].
func (w *walker) nature() (Nature, error) {
	probe := make(prefix.Prefix, len(w.node.Prefix), len(w.node.Prefix)+1)
	copy(probe, w.node.Prefix)
	probe = append(probe, w.rootDepth+1)

	r, err := prefix.Iterate(w.node.Value, probe)
	if err != nil {
		return Bad, err
	}
	if r.Bit(0) == 0 {
		return Good, nil
	}

	return Bad, nil
}

// step moves the walker to the child in direction dir.
func (w *walker) step(dir Direction) error {
	nature, err := w.nature()
	if err != nil {
		return err
	}

	pf := w.node.Prefix
	for i := range pf {
		pf[i]--
	}
	if (dir == Right && nature == Bad) || (dir == Left && nature == Good) {
		pf = append(pf, w.rootDepth)
	}
	w.node.Prefix = pf

	v := w.node.Value
	v.Rsh(v, 1)
	if dir == Left {
		v.Add(v, w.rootValue)
	}

	copy(w.node.Path, w.node.Path[1:])
	w.node.Path[len(w.node.Path)-1] = dir == Right

	return nil
}

// snapshot returns a copy of the current node that later steps do not modify.
func (w *walker) snapshot() Node {
	return Node{
		Path:   w.node.Path.Clone(),
		Prefix: w.node.Prefix.Clone(),
		Value:  new(big.Int).Set(w.node.Value),
		Nature: w.node.Nature,
	}
}
