/*
Package hamt implements a persistent hash-array-mapped trie (HAMT),
the engine backing the hash-trie map and set of this module.

A HAMT is a branching trie keyed by successive slices of a key's hash
value. We consume 5 bits of the 32-bit hash per trie level, giving 32-way
branching and a depth of O(log₃₂ n). Each trie node holds a 32-bit bitmap;
a set bit marks an occupied slot, and the node's children are packed into a
slice indexed by popcount of the bitmap below the slot's bit. A slot
holding exactly one leaf stores the entry inline, avoiding chains of
single-child nodes. Keys whose full 32-bit hashes collide degrade into a
collision node scanned by real equality.

Modifying operations copy only the nodes on the path from the root to the
modified leaf; all sibling subtrees are shared by reference with the prior
version. No node is ever mutated once a second handle can observe it, so
tries are inherently concurrency-safe. The one exception is the Builder, a
transient form for bulk construction that mutates uniquely-owned nodes in
place and freezes them into an ordinary persistent trie when done.

Hashing and equality of keys are delegated to a keys.Arbiter; the trie
never derives that policy itself.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package hamt

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pds.hamt'.
func tracer() tracing.Trace {
	return tracing.Select("pds.hamt")
}
