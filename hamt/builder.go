package hamt

import (
	"github.com/npillmayer/pds/keys"
)

// builderToken marks nodes owned by one particular builder. Struct must
// have a field since two distinct zero-size variables may share an address
// in memory.
type builderToken struct{ _ byte }

// Builder is the transient, uniquely-owned form of a trie, used to
// accelerate bulk construction. Put and Delete mutate nodes owned by the
// builder in place instead of copying the whole path; nodes inherited from
// a frozen trie are cloned on first touch. Freeze converts the graph into
// an ordinary persistent trie, after which the builder must not be used
// again.
//
// A Builder must not be shared between goroutines.
type Builder[K, V any] struct {
	arb    keys.Arbiter[K]
	token  *builderToken
	length int
	root   interface{}
	frozen bool
}

// NewBuilder creates an empty transient trie over the given arbiter.
func NewBuilder[K, V any](arb keys.Arbiter[K]) *Builder[K, V] {
	assertThat(arb != nil, "builder needs an arbiter for its key type")
	return &Builder[K, V]{arb: arb, token: &builderToken{}}
}

// Builder returns a transient extending the receiver. The receiver's nodes
// stay shared and untouched: the builder clones them lazily as its
// mutations reach them.
func (t Trie[K, V]) Builder() *Builder[K, V] {
	return &Builder[K, V]{
		arb:    t.arb,
		token:  &builderToken{},
		length: t.length,
		root:   t.root,
	}
}

// Len returns the current number of entries.
func (b *Builder[K, V]) Len() int {
	return b.length
}

// Freeze converts the builder's node graph into a persistent trie. The
// builder gives up ownership; any further use panics.
func (b *Builder[K, V]) Freeze() Trie[K, V] {
	assertThat(!b.frozen, "attempt to re-use frozen builder")
	b.frozen = true
	b.token = nil
	return Trie[K, V]{arb: b.arb, length: b.length, root: b.root}
}

// Put binds key to value, mutating the builder's owned nodes in place.
// Last write wins for equal keys.
func (b *Builder[K, V]) Put(key K, value V) error {
	assertThat(!b.frozen, "attempt to re-use frozen builder")
	hash, err := b.arb.Hash(key)
	if err != nil {
		return err
	}
	e := &entry[K, V]{hash: hash, key: key, val: value}
	root, added, err := b.put(b.root, 0, e)
	if err != nil {
		return err
	}
	b.root = root
	if added {
		b.length++
	}
	return nil
}

// owned returns a branching node the builder may mutate: n itself if the
// builder already owns it, otherwise a clone marked with the builder's
// token.
func (b *Builder[K, V]) owned(n *bnode[K, V]) *bnode[K, V] {
	if n.owner == b.token {
		return n
	}
	children := make([]interface{}, len(n.children))
	copy(children, n.children)
	return &bnode[K, V]{bitmap: n.bitmap, children: children, owner: b.token}
}

func (b *Builder[K, V]) put(node interface{}, shift uint32, e *entry[K, V]) (interface{}, bool, error) {
	if node == nil {
		return e, true, nil
	}
	switch n := node.(type) {
	case *entry[K, V]:
		if n.hash == e.hash {
			eq, err := b.arb.Equal(e.key, n.key)
			if err != nil {
				return nil, false, err
			}
			if eq {
				return e, false, nil
			}
			return &collision[K, V]{hash: e.hash, entries: []entry[K, V]{*n, *e}}, true, nil
		}
		return b.claim(join[K, V](n.hash, n, e, shift)), true, nil
	case *collision[K, V]:
		if n.hash == e.hash {
			for i, x := range n.entries {
				eq, err := b.arb.Equal(e.key, x.key)
				if err != nil {
					return nil, false, err
				}
				if eq {
					return n.withReplacedEntry(i, *e), false, nil
				}
			}
			return n.withAddedEntry(*e), true, nil
		}
		return b.claim(join[K, V](n.hash, n, e, shift)), true, nil
	case *bnode[K, V]:
		bit := bitpos(e.hash, shift)
		at := sparseIndex(n.bitmap, bit)
		if n.bitmap&bit == 0 {
			if n.owner == b.token {
				children := make([]interface{}, len(n.children)+1)
				copy(children, n.children[:at])
				children[at] = e
				copy(children[at+1:], n.children[at:])
				n.children = children
				n.bitmap |= bit
				return n, true, nil
			}
			cow := n.withInsertedChild(bit, at, e)
			cow.owner = b.token
			return cow, true, nil
		}
		child, added, err := b.put(n.children[at], shift+nbits, e)
		if err != nil {
			return nil, false, err
		}
		cow := b.owned(n)
		cow.children[at] = child
		return cow, added, nil
	}
	panic("hamt: corrupt trie node")
}

// claim marks freshly joined branching nodes as builder-owned, so that
// follow-up inserts into the same subtrie mutate in place.
func (b *Builder[K, V]) claim(node interface{}) interface{} {
	n, ok := node.(*bnode[K, V])
	if !ok {
		return node
	}
	n.owner = b.token
	if len(n.children) == 1 {
		n.children[0] = b.claim(n.children[0])
	}
	return n
}

// Delete removes the binding for key, reporting whether it was present.
func (b *Builder[K, V]) Delete(key K) (bool, error) {
	assertThat(!b.frozen, "attempt to re-use frozen builder")
	if b.root == nil {
		return false, nil
	}
	hash, err := b.arb.Hash(key)
	if err != nil {
		return false, err
	}
	root, found, err := b.del(b.root, 0, hash, key)
	if err != nil {
		return false, err
	}
	if found {
		b.root = root
		b.length--
	}
	return found, nil
}

func (b *Builder[K, V]) del(node interface{}, shift, hash uint32, key K) (interface{}, bool, error) {
	switch n := node.(type) {
	case *entry[K, V]:
		if n.hash != hash {
			return node, false, nil
		}
		eq, err := b.arb.Equal(key, n.key)
		if err != nil || !eq {
			return node, false, err
		}
		return nil, true, nil
	case *collision[K, V]:
		if n.hash != hash {
			return node, false, nil
		}
		for i, e := range n.entries {
			eq, err := b.arb.Equal(key, e.key)
			if err != nil {
				return node, false, err
			}
			if !eq {
				continue
			}
			if len(n.entries) == 2 {
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
		child, found, err := b.del(n.children[at], shift+nbits, hash, key)
		if err != nil || !found {
			return node, false, err
		}
		if child == nil {
			if n.bitmap == bit {
				return nil, true, nil
			}
			cow := b.owned(n)
			copy(cow.children[at:], cow.children[at+1:])
			cow.children = cow.children[:len(cow.children)-1]
			cow.bitmap &^= bit
			return liftSingleLeaf[K, V](cow), true, nil
		}
		cow := b.owned(n)
		cow.children[at] = child
		return liftSingleLeaf[K, V](cow), true, nil
	}
	panic("hamt: corrupt trie node")
}
