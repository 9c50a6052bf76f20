// Package hash provides the fixed, deterministic string hash used as the key
// into the delete index. Collisions are tolerated: every bucket probe in
// pkg/lookup re-verifies candidates with the exact distance function, so a
// collision only costs a wasted distance computation, never correctness.
//
// This is deliberately the one place in the module that reaches for the
// standard library instead of a pack dependency: none of the retrieved repos
// import a third-party hashing library (xxhash, murmur, etc.), and FNV-1a is
// exactly the kind of fixed, dependency-free hash spec.md calls for.
package hash

import "hash/fnv"

// Variant hashes a delete-index variant string to its bucket key.
func Variant(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
