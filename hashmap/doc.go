/*
Package hashmap implements a persistent (immutable) hash-trie map.

A map associates keys with values on top of the HAMT engine (package
hamt): lookups, insertions and removals cost O(log₃₂ n), and every
“modifying” operation returns a new map handle, leaving all previously
observed handles valid and unchanged. Most of the trie is shared between
the versions, so derived maps are cheap.

Maps expose their keys, values and entries as views. A view binds the
snapshot of the map at view-creation time: later operations on the
original map do not affect it, because the view's snapshot is itself a
persistent value. The key view is set-like and participates in set algebra
and comparisons with any hashset.SetLike collection.

Two maps are equal iff they have the same size and agree on the value for
every key, independent of internal trie shape or insertion order; the map
hash is likewise order-independent.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package hashmap

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pds.hashmap'.
func tracer() tracing.Trace {
	return tracing.Select("pds.hashmap")
}
