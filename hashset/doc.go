/*
Package hashset implements a persistent (immutable) hash-trie set.

A set is a thin specialization of the HAMT engine (package hamt), storing
keys without associated values. “Modifying” a set returns a new set handle
and leaves all previously observed handles valid and unchanged; most of
the underlying trie is shared between the versions.

Besides membership and insertion/removal, sets offer eager set algebra:
union, intersection, difference and symmetric difference, each returning a
new set. Binary operations iterate the smaller operand and probe the
larger one, bounding the cost by O(min(|A|,|B|)·log n).

The SetLike interface is the family protocol for anything set-shaped in
this module: hash-trie sets and the key views of hash-trie maps both
satisfy it, so algebra and comparisons work across the concrete types.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package hashset

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pds.hashset'.
func tracer() tracing.Trace {
	return tracing.Select("pds.hashset")
}
