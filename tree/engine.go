package tree

import (
	"fmt"
	"math/big"

	"github.com/arloliu/ecf/bijection"
	"github.com/arloliu/ecf/errs"
	"github.com/arloliu/ecf/format"
	"github.com/arloliu/ecf/prefix"
)

// Engine derives a prefix of ECF(n) from the position of n in the binary tree.
//
// Implementations are stateless and safe for concurrent use.
type Engine interface {
	// PrefixFind returns a prefix of ECF(n) for n located at path p.
	//
	// p must index n, i.e. bijection.FromPath(p) == n; longer paths (n's own path with
	// true bits appended) yield longer prefixes. Iterating n through the result gives an
	// odd number, or 1 once the prefix is the whole ECF.
	PrefixFind(n *big.Int, p bijection.Path) (prefix.Prefix, error)

	// Type returns the engine identifier stored in table headers.
	Type() format.EngineType
}

// CreateEngine is a factory function that creates an Engine of the given type.
//
// Parameters:
//   - engineType: Type of engine (EngineRIP or EnginePIP)
//
// Returns:
//   - Engine: Engine instance for the specified type
//   - error: errs.ErrInvalidEngine for an unknown type
func CreateEngine(engineType format.EngineType) (Engine, error) {
	switch engineType {
	case format.EngineRIP:
		return NewRIPTree(), nil
	case format.EnginePIP:
		return NewPIPTree(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidEngine, engineType)
	}
}

var builtinEngines = map[format.EngineType]Engine{
	format.EngineRIP: NewRIPTree(),
	format.EnginePIP: NewPIPTree(),
}

// GetEngine retrieves a shared built-in Engine for the given type.
func GetEngine(engineType format.EngineType) (Engine, error) {
	if engine, ok := builtinEngines[engineType]; ok {
		return engine, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidEngine, engineType)
}

// checkPath verifies that p indexes n.
func checkPath(n *big.Int, p bijection.Path) error {
	if n.Sign() < 1 {
		return fmt.Errorf("%w: got %s", errs.ErrPathUndefined, n)
	}
	if at := bijection.FromPath(p); at.Cmp(n) != 0 {
		return fmt.Errorf("%w: path %s indexes %s, not %s", errs.ErrPathMismatch, p, at, n)
	}

	return nil
}

// powerOfTwoPrefix returns [log2(n)] when n is a power of two. Such an n halves straight
// down to 1, so the single element is its whole ECF.
func powerOfTwoPrefix(n *big.Int) (prefix.Prefix, bool) {
	if !bijection.IsPow2(n) {
		return nil, false
	}

	return prefix.Prefix{bijection.Log2(n)}, true
}
