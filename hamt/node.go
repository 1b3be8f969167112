package hamt

import (
	"fmt"
	"math/bits"
	"strings"
)

const (
	nbits    uint32 = 5 // will produce nodes with degree 2 ^ 5 = 32
	degree   uint32 = 1 << nbits
	slotmask uint32 = degree - 1
	hashBits uint32 = 32
)

// bitpos returns the bitmap bit for the hash slice at the given depth.
// Hash values are reduced per level by shifting, not by modulo-division.
func bitpos(hash, shift uint32) uint32 {
	return 1 << ((hash >> shift) & slotmask)
}

// sparseIndex returns the packed-children index for a bitmap bit: the
// number of occupied slots below it.
func sparseIndex(bitmap, bit uint32) int {
	return bits.OnesCount32(bitmap & (bit - 1))
}

// entry is a key-value leaf, inlined directly into a bitmap slot whenever
// the slot holds exactly one leaf.
type entry[K, V any] struct {
	hash uint32
	key  K
	val  V
}

// collision holds entries whose full 32-bit hashes are identical, making
// trie descent unable to separate them. Lookups scan it by real equality.
type collision[K, V any] struct {
	hash    uint32
	entries []entry[K, V]
}

// bnode is a bitmap-indexed branching node. children holds, per set bitmap
// bit and in bit order, either a *bnode, a *collision or an inline *entry.
//
// owner marks the node as mutable by the one Builder holding the same
// token. Tokens are never reused, so a stale owner left behind by a
// frozen builder never matches a live one and the node is effectively
// immutable again.
type bnode[K, V any] struct {
	bitmap   uint32
	children []interface{}
	owner    *builderToken
}

// withInsertedChild returns a copy of the node with a child occupying a
// previously free slot.
func (n *bnode[K, V]) withInsertedChild(bit uint32, at int, child interface{}) *bnode[K, V] {
	children := make([]interface{}, len(n.children)+1)
	copy(children, n.children[:at])
	children[at] = child
	copy(children[at+1:], n.children[at:])
	return &bnode[K, V]{bitmap: n.bitmap | bit, children: children}
}

// withReplacedChild returns a copy of the node with the child at a packed
// index substituted.
func (n *bnode[K, V]) withReplacedChild(at int, child interface{}) *bnode[K, V] {
	children := make([]interface{}, len(n.children))
	copy(children, n.children)
	children[at] = child
	return &bnode[K, V]{bitmap: n.bitmap, children: children}
}

// withDeletedChild returns a copy of the node with the slot for bit
// vacated.
func (n *bnode[K, V]) withDeletedChild(bit uint32, at int) *bnode[K, V] {
	children := make([]interface{}, len(n.children)-1)
	copy(children, n.children[:at])
	copy(children[at:], n.children[at+1:])
	return &bnode[K, V]{bitmap: n.bitmap &^ bit, children: children}
}

// withoutEntry returns a collision node shrunk by the entry at index i.
// Shrinking to a single entry is the caller's concern.
func (c *collision[K, V]) withoutEntry(i int) *collision[K, V] {
	entries := make([]entry[K, V], len(c.entries)-1)
	copy(entries, c.entries[:i])
	copy(entries[i:], c.entries[i+1:])
	return &collision[K, V]{hash: c.hash, entries: entries}
}

// withReplacedEntry returns a collision node with entry i substituted.
func (c *collision[K, V]) withReplacedEntry(i int, e entry[K, V]) *collision[K, V] {
	entries := make([]entry[K, V], len(c.entries))
	copy(entries, c.entries)
	entries[i] = e
	return &collision[K, V]{hash: c.hash, entries: entries}
}

// withAddedEntry returns a collision node extended by e.
func (c *collision[K, V]) withAddedEntry(e entry[K, V]) *collision[K, V] {
	entries := make([]entry[K, V], len(c.entries), len(c.entries)+1)
	copy(entries, c.entries)
	return &collision[K, V]{hash: c.hash, entries: append(entries, e)}
}

// join builds the minimal subtrie holding two leaves with different
// hashes, starting at the given shift. Equal hash slices push the pair one
// level deeper; the recursion terminates because differing hashes diverge
// within 32 bits.
func join[K, V any](ahash uint32, a interface{}, e *entry[K, V], shift uint32) interface{} {
	assertThat(ahash != e.hash, "attempt to join leaves with equal hashes")
	ai := (ahash >> shift) & slotmask
	bi := (e.hash >> shift) & slotmask
	if ai == bi {
		inner := join(ahash, a, e, shift+nbits)
		return &bnode[K, V]{bitmap: 1 << ai, children: []interface{}{inner}}
	}
	if ai < bi {
		return &bnode[K, V]{bitmap: 1<<ai | 1<<bi, children: []interface{}{a, e}}
	}
	return &bnode[K, V]{bitmap: 1<<ai | 1<<bi, children: []interface{}{e, a}}
}

// leafHash returns the hash of a leaf node, i.e. of an inline entry or a
// collision node.
func leafHash[K, V any](node interface{}) (uint32, bool) {
	switch n := node.(type) {
	case *entry[K, V]:
		return n.hash, true
	case *collision[K, V]:
		return n.hash, true
	}
	return 0, false
}

// --- Debugging -------------------------------------------------------------

func (n *bnode[K, V]) String() string {
	b := strings.Builder{}
	b.WriteByte('[')
	for slot, i := uint32(0), 0; slot < degree; slot++ {
		if n.bitmap&(1<<slot) == 0 {
			b.WriteByte('_')
			continue
		}
		switch n.children[i].(type) {
		case *bnode[K, V]:
			b.WriteString("▪︎")
		case *collision[K, V]:
			b.WriteRune('≡')
		default:
			b.WriteRune('•')
		}
		i++
	}
	b.WriteByte(']')
	return b.String()
}

func (e *entry[K, V]) String() string {
	return fmt.Sprintf("⟨%v=%v⟩", e.key, e.val)
}

// ---------------------------------------------------------------------------

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("hamt: "+msg, msgargs...)
		panic(msg)
	}
}
