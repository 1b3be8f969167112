package hamt

// Iterator is a lazy, one-shot, non-restartable iterator over a trie. It
// holds its own private snapshot handle and on every step takes an
// arbitrary entry and removes it from that private copy; the trie it was
// created from is untouched. No ordering is guaranteed across iterations
// of logically-equal tries.
//
// Use it like this:
//
//	for it := trie.Iterator(); it.HasElem(); it.Next() {
//	    key, value := it.Elem()
//	    …
//	}
type Iterator[K, V any] struct {
	trie Trie[K, V]
}

// Iterator creates an iterator positioned on some entry of the trie.
func (t Trie[K, V]) Iterator() *Iterator[K, V] {
	return &Iterator[K, V]{trie: t}
}

// HasElem reports whether the iterator is positioned on an entry.
func (it *Iterator[K, V]) HasElem() bool {
	return it.trie.length > 0
}

// Elem returns the current entry.
func (it *Iterator[K, V]) Elem() (K, V) {
	assertThat(it.trie.length > 0, "attempt to read exhausted iterator")
	e := firstEntry[K, V](it.trie.root)
	return e.key, e.val
}

// Next removes the current entry from the iterator's private snapshot and
// moves on. Removal is purely structural, so stepping never invokes the
// arbiter and cannot fail.
func (it *Iterator[K, V]) Next() {
	assertThat(it.trie.length > 0, "attempt to advance exhausted iterator")
	it.trie.root = dropFirstEntry[K, V](it.trie.root)
	it.trie.length--
}

// firstEntry descends to the first entry in trie order.
func firstEntry[K, V any](node interface{}) *entry[K, V] {
	for {
		switch n := node.(type) {
		case *entry[K, V]:
			return n
		case *collision[K, V]:
			return &n.entries[0]
		case *bnode[K, V]:
			node = n.children[0]
		default:
			panic("hamt: corrupt trie node")
		}
	}
}

// dropFirstEntry removes the first entry in trie order, copying only the
// leftmost path.
func dropFirstEntry[K, V any](node interface{}) interface{} {
	switch n := node.(type) {
	case *entry[K, V]:
		return nil
	case *collision[K, V]:
		if len(n.entries) == 2 {
			survivor := n.entries[1]
			return &survivor
		}
		return n.withoutEntry(0)
	case *bnode[K, V]:
		child := dropFirstEntry[K, V](n.children[0])
		lowBit := n.bitmap & -n.bitmap
		if child == nil {
			if n.bitmap == lowBit {
				return nil
			}
			return liftSingleLeaf[K, V](n.withDeletedChild(lowBit, 0))
		}
		return liftSingleLeaf[K, V](n.withReplacedChild(0, child))
	}
	panic("hamt: corrupt trie node")
}
