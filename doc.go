/*
Package pds provides persistent (immutable) collection types for Go: a
hash-trie map, a hash-trie set, a persistent singly-linked list, a
persistent stack and a persistent FIFO queue.

Every “modifying” operation on one of these collections returns a new
handle to a logically updated collection, leaving all previously observed
handles valid and unchanged. Under the hood the structures retain most of
the memory held by the original and create new incarnations only for the
parts that changed. This structural sharing makes copies cheap in terms of
space- and time-complexity, transparently to clients.

Persistent collections are inherently concurrency-safe: no node is ever
mutated once a second handle can observe it, so any number of goroutines
may traverse and derive new versions from the same handle without
synchronization.

The map and the set are backed by a hash-array-mapped trie (HAMT, package
hamt) with 32-way branching, giving O(log₃₂ n) updates that copy only the
path from the root to the modified leaf. The queue uses an incremental
rotation scheme which keeps dequeue O(1) even when old queue handles are
replayed arbitrarily often.

Hashing and equality for keys and elements are delegated to an arbiter
(package keys), so foreign values with host-defined hash/equality policies
can be used as keys without the collections re-deriving that policy.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pds
