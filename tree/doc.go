// Package tree implements the two tree engines that derive ECF prefixes from the
// position of a number in the infinite binary tree.
//
// Every integer n >= 1 sits at exactly one path (see package bijection). Both engines
// take n together with a path that indexes it and return a prefix of ECF(n):
//
//   - RIPTree compares n with n + 2^len(p), the next number on the same path, and
//     returns their common prefix.
//   - PIPTree walks from the root of the subtree of equal-length paths down to n,
//     rewriting the prefix at each node from the node's nature alone.
//
// For the same (n, p) both engines return the same prefix. Powers of two are answered
// directly with [log2(n)].
//
// Appending true bits to a path keeps it pointing at n while placing n deeper in the
// tree, which makes the engines return longer prefixes; package assemble relies on this.
//
// # Usage
//
//	engine, err := tree.CreateEngine(format.EnginePIP)
//	if err != nil {
//	    return err
//	}
//	p, _ := bijection.ToPath(n)
//	pf, err := engine.PrefixFind(n, p)
package tree
