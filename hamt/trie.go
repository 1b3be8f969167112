package hamt

import (
	"github.com/npillmayer/pds/keys"
)

// Trie is a persistent hash-array-mapped trie. The zero value is not
// usable; create tries with Immutable, handing it the arbiter which will
// decide hashing and equality for keys.
//
// A Trie value is an immutable handle: every modifying operation returns a
// new handle and leaves the receiver untouched. Handles may be copied and
// shared between goroutines freely.
type Trie[K, V any] struct {
	arb    keys.Arbiter[K]
	length int
	root   interface{} // nil (empty) | *bnode | *collision | inline *entry
}

// Immutable creates an empty persistent trie over the given arbiter.
//
// Use it like this:
//
//	trie := hamt.Immutable[string, int](keys.Strings{})
//	trie, _ = trie.With("a", 1)
func Immutable[K, V any](arb keys.Arbiter[K]) Trie[K, V] {
	assertThat(arb != nil, "trie needs an arbiter for its key type")
	return Trie[K, V]{arb: arb}
}

// Len returns the number of entries. It is tracked incrementally, not by
// traversal.
func (t Trie[K, V]) Len() int {
	return t.length
}

// IsEmpty reports whether the trie holds no entries.
func (t Trie[K, V]) IsEmpty() bool {
	return t.length == 0
}

// Arbiter returns the arbiter the trie was created with.
func (t Trie[K, V]) Arbiter() keys.Arbiter[K] {
	return t.arb
}

// Lookup locates a key, if present, and returns the value associated with
// it. The found flag distinguishes an absent key from a stored zero value.
// Errors stem from the arbiter only (unhashable key, failing comparator);
// a failed lookup never perturbs the trie.
func (t Trie[K, V]) Lookup(key K) (V, bool, error) {
	var none V
	if t.root == nil {
		return none, false, nil
	}
	hash, err := t.arb.Hash(key)
	if err != nil {
		return none, false, err
	}
	node, shift := t.root, uint32(0)
	for {
		switch n := node.(type) {
		case *entry[K, V]:
			if n.hash != hash {
				return none, false, nil
			}
			eq, err := t.arb.Equal(key, n.key)
			if err != nil || !eq {
				return none, false, err
			}
			return n.val, true, nil
		case *collision[K, V]:
			if n.hash != hash {
				return none, false, nil
			}
			for _, e := range n.entries {
				eq, err := t.arb.Equal(key, e.key)
				if err != nil {
					return none, false, err
				}
				if eq {
					return e.val, true, nil
				}
			}
			return none, false, nil
		case *bnode[K, V]:
			bit := bitpos(hash, shift)
			if n.bitmap&bit == 0 {
				return none, false, nil
			}
			node = n.children[sparseIndex(n.bitmap, bit)]
			shift += nbits
		default:
			panic("hamt: corrupt trie node")
		}
	}
}

// With returns a copy of the trie with key bound to value. A previous
// binding for an equal key is replaced (last write wins). Only the nodes
// on the path from the root to the modified leaf are copied; all sibling
// subtrees are shared with the receiver.
func (t Trie[K, V]) With(key K, value V) (Trie[K, V], error) {
	hash, err := t.arb.Hash(key)
	if err != nil {
		return t, err
	}
	e := &entry[K, V]{hash: hash, key: key, val: value}
	root, added, err := t.insert(t.root, 0, e)
	if err != nil {
		return t, err
	}
	newTrie := t
	newTrie.root = root
	if added {
		newTrie.length++
	}
	return newTrie, nil
}

func (t Trie[K, V]) insert(node interface{}, shift uint32, e *entry[K, V]) (interface{}, bool, error) {
	if node == nil {
		return e, true, nil
	}
	switch n := node.(type) {
	case *entry[K, V]:
		if n.hash == e.hash {
			eq, err := t.arb.Equal(e.key, n.key)
			if err != nil {
				return nil, false, err
			}
			if eq { // replace binding for an equal key
				return e, false, nil
			}
			tracer().Debugf("hash collision on %#x, degrading to collision node", e.hash)
			return &collision[K, V]{hash: e.hash, entries: []entry[K, V]{*n, *e}}, true, nil
		}
		return join[K, V](n.hash, n, e, shift), true, nil
	case *collision[K, V]:
		if n.hash == e.hash {
			for i, x := range n.entries {
				eq, err := t.arb.Equal(e.key, x.key)
				if err != nil {
					return nil, false, err
				}
				if eq {
					return n.withReplacedEntry(i, *e), false, nil
				}
			}
			return n.withAddedEntry(*e), true, nil
		}
		return join[K, V](n.hash, n, e, shift), true, nil
	case *bnode[K, V]:
		bit := bitpos(e.hash, shift)
		at := sparseIndex(n.bitmap, bit)
		if n.bitmap&bit == 0 {
			return n.withInsertedChild(bit, at, e), true, nil
		}
		child, added, err := t.insert(n.children[at], shift+nbits, e)
		if err != nil {
			return nil, false, err
		}
		return n.withReplacedChild(at, child), added, nil
	}
	panic("hamt: corrupt trie node")
}

// WithDeleted returns a copy of the trie with key removed, together with a
// flag reporting whether the key was present. An absent key returns the
// receiver unchanged; layering a strict "no such key" error on top of the
// flag is left to clients.
func (t Trie[K, V]) WithDeleted(key K) (Trie[K, V], bool, error) {
	if t.root == nil {
		return t, false, nil
	}
	hash, err := t.arb.Hash(key)
	if err != nil {
		return t, false, err
	}
	root, found, err := t.remove(t.root, 0, hash, key)
	if err != nil {
		return t, false, err
	}
	if !found {
		return t, false, nil
	}
	newTrie := t
	newTrie.root = root
	newTrie.length--
	return newTrie, true, nil
}

func (t Trie[K, V]) remove(node interface{}, shift, hash uint32, key K) (interface{}, bool, error) {
	switch n := node.(type) {
	case *entry[K, V]:
		if n.hash != hash {
			return node, false, nil
		}
		eq, err := t.arb.Equal(key, n.key)
		if err != nil || !eq {
			return node, false, err
		}
		return nil, true, nil
	case *collision[K, V]:
		if n.hash != hash {
			return node, false, nil
		}
		for i, e := range n.entries {
			eq, err := t.arb.Equal(key, e.key)
			if err != nil {
				return node, false, err
			}
			if !eq {
				continue
			}
			if len(n.entries) == 2 { // collision resolved, inline survivor
				survivor := n.entries[1-i]
				return &survivor, true, nil
			}
			return n.withoutEntry(i), true, nil
		}
		return node, false, nil
	case *bnode[K, V]:
		bit := bitpos(hash, shift)
		if n.bitmap&bit == 0 {
			return node, false, nil
		}
		at := sparseIndex(n.bitmap, bit)
		child, found, err := t.remove(n.children[at], shift+nbits, hash, key)
		if err != nil || !found {
			return node, false, err
		}
		if child == nil {
			if n.bitmap == bit { // last slot vacated
				return nil, true, nil
			}
			cow := n.withDeletedChild(bit, at)
			return liftSingleLeaf[K, V](cow), true, nil
		}
		cow := n.withReplacedChild(at, child)
		return liftSingleLeaf[K, V](cow), true, nil
	}
	panic("hamt: corrupt trie node")
}

// liftSingleLeaf collapses a branching node that is left holding a single
// leaf, keeping the "no single-child chain above a leaf" shape intact.
// A single *bnode child stays in place: its slot position encodes deeper
// hash bits.
func liftSingleLeaf[K, V any](n *bnode[K, V]) interface{} {
	if len(n.children) != 1 {
		return n
	}
	if _, isLeaf := leafHash[K, V](n.children[0]); isLeaf {
		return n.children[0]
	}
	return n
}

// Each walks all entries, in trie order, until the visitor returns false.
// Mutating operations on other handles never affect a running walk.
func (t Trie[K, V]) Each(visit func(key K, val V) bool) {
	each[K, V](t.root, visit)
}

func each[K, V any](node interface{}, visit func(K, V) bool) bool {
	switch n := node.(type) {
	case nil:
		return true
	case *entry[K, V]:
		return visit(n.key, n.val)
	case *collision[K, V]:
		for _, e := range n.entries {
			if !visit(e.key, e.val) {
				return false
			}
		}
		return true
	case *bnode[K, V]:
		for _, child := range n.children {
			if !each[K, V](child, visit) {
				return false
			}
		}
		return true
	}
	panic("hamt: corrupt trie node")
}
