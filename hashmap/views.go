package hashmap

import (
	"github.com/npillmayer/pds/hashset"
	"github.com/npillmayer/pds/keys"
)

// A view binds the snapshot of a map at view-creation time: the snapshot
// is a persistent map value, so operations on the map the view was taken
// from can never affect it.

// KeyView is a read-only, set-like view of a map's keys. It satisfies
// hashset.SetLike and participates in set algebra and comparisons with
// any set-like collection.
type KeyView[K, V any] struct {
	snap Map[K, V]
}

// Keys returns a set-like view of the map's keys, bound to the map's
// current state.
func (m Map[K, V]) Keys() KeyView[K, V] {
	return KeyView[K, V]{snap: m}
}

// Len returns the number of keys in the view's snapshot.
func (view KeyView[K, V]) Len() int {
	return view.snap.Len()
}

// Contains reports membership of key in the view's snapshot.
func (view KeyView[K, V]) Contains(key K) (bool, error) {
	return view.snap.Contains(key)
}

// Each walks all keys until the visitor returns false.
func (view KeyView[K, V]) Each(visit func(key K) bool) {
	view.snap.trie.Each(func(key K, _ V) bool {
		return visit(key)
	})
}

// Iterator returns a lazy, one-shot iterator over the keys.
type KeyIterator[K, V any] struct {
	inner *Iterator[K, V]
}

func (view KeyView[K, V]) Iterator() *KeyIterator[K, V] {
	return &KeyIterator[K, V]{inner: view.snap.Iterator()}
}

func (it *KeyIterator[K, V]) HasElem() bool { return it.inner.HasElem() }
func (it *KeyIterator[K, V]) Next()         { it.inner.Next() }

func (it *KeyIterator[K, V]) Elem() K {
	key, _ := it.inner.Elem()
	return key
}

// Set materializes the view as a hash-trie set of the keys.
func (view KeyView[K, V]) Set() (hashset.Set[K], error) {
	return hashset.Collect[K](view.snap.trie.Arbiter(), view)
}

// Union returns a key-set holding the view's keys and other's elements.
func (view KeyView[K, V]) Union(other hashset.SetLike[K]) (hashset.Set[K], error) {
	s, err := view.Set()
	if err != nil {
		return s, err
	}
	return s.Union(other)
}

// Intersect returns a key-set holding the keys also present in other.
func (view KeyView[K, V]) Intersect(other hashset.SetLike[K]) (hashset.Set[K], error) {
	s, err := view.Set()
	if err != nil {
		return s, err
	}
	return s.Intersect(other)
}

// Difference returns a key-set holding the view's keys not in other.
func (view KeyView[K, V]) Difference(other hashset.SetLike[K]) (hashset.Set[K], error) {
	s, err := view.Set()
	if err != nil {
		return s, err
	}
	return s.Difference(other)
}

// SymmetricDifference returns a key-set of keys in exactly one operand.
func (view KeyView[K, V]) SymmetricDifference(other hashset.SetLike[K]) (hashset.Set[K], error) {
	s, err := view.Set()
	if err != nil {
		return s, err
	}
	return s.SymmetricDifference(other)
}

// Equal reports whether the view and any set-like collection hold the
// same keys: equal size plus mutual containment.
func (view KeyView[K, V]) Equal(other hashset.SetLike[K]) (bool, error) {
	if view.Len() != other.Len() {
		return false, nil
	}
	return view.containsAll(other)
}

// SubsetOf reports whether every key of the view is in other.
func (view KeyView[K, V]) SubsetOf(other hashset.SetLike[K]) (bool, error) {
	if view.Len() > other.Len() {
		return false, nil
	}
	all := true
	var err error
	view.Each(func(key K) bool {
		var in bool
		if in, err = other.Contains(key); err != nil {
			return false
		}
		all = in
		return all
	})
	if err != nil {
		return false, err
	}
	return all, nil
}

// ProperSubsetOf reports whether the view's keys form a subset of other
// and other holds at least one element more.
func (view KeyView[K, V]) ProperSubsetOf(other hashset.SetLike[K]) (bool, error) {
	if view.Len() >= other.Len() {
		return false, nil
	}
	return view.SubsetOf(other)
}

// SupersetOf reports whether the view contains every element of other.
func (view KeyView[K, V]) SupersetOf(other hashset.SetLike[K]) (bool, error) {
	if view.Len() < other.Len() {
		return false, nil
	}
	return view.containsAll(other)
}

// ProperSupersetOf reports whether the view contains every element of
// other plus at least one key more.
func (view KeyView[K, V]) ProperSupersetOf(other hashset.SetLike[K]) (bool, error) {
	if view.Len() <= other.Len() {
		return false, nil
	}
	return view.containsAll(other)
}

func (view KeyView[K, V]) containsAll(other hashset.SetLike[K]) (bool, error) {
	all := true
	var err error
	other.Each(func(key K) bool {
		var in bool
		if in, err = view.Contains(key); err != nil {
			return false
		}
		all = in
		return all
	})
	if err != nil {
		return false, err
	}
	return all, nil
}

// Hash mirrors the set hashing scheme, applied to the keys alone.
func (view KeyView[K, V]) Hash() (uint32, error) {
	arb := view.snap.trie.Arbiter()
	var folded uint32
	var err error
	view.Each(func(key K) bool {
		var kh uint32
		if kh, err = arb.Hash(key); err != nil {
			return false
		}
		folded ^= keys.Mix(kh)
		return true
	})
	if err != nil {
		return 0, err
	}
	return keys.Mix(folded^uint32(view.Len())) * 0x9e3779b1, nil
}

// --- Value view ------------------------------------------------------------

// ValueView is a read-only view of a map's values, bound to a snapshot.
// Values form a sequence, not a set: duplicates are retained.
type ValueView[K, V any] struct {
	snap Map[K, V]
}

// Values returns a view of the map's values, bound to the map's current
// state.
func (m Map[K, V]) Values() ValueView[K, V] {
	return ValueView[K, V]{snap: m}
}

// Len returns the number of values (counting duplicates).
func (view ValueView[K, V]) Len() int {
	return view.snap.Len()
}

// Contains reports whether any entry holds an equal value; a linear scan.
func (view ValueView[K, V]) Contains(value V) (bool, error) {
	if view.snap.varb == nil {
		return false, ErrNoValueArbiter
	}
	found := false
	var err error
	view.snap.trie.Each(func(_ K, val V) bool {
		if found, err = view.snap.varb.Equal(value, val); err != nil {
			return false
		}
		return !found
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// Iterator returns a lazy, one-shot iterator over the values.
type ValueIterator[K, V any] struct {
	inner *Iterator[K, V]
}

func (view ValueView[K, V]) Iterator() *ValueIterator[K, V] {
	return &ValueIterator[K, V]{inner: view.snap.Iterator()}
}

func (it *ValueIterator[K, V]) HasElem() bool { return it.inner.HasElem() }
func (it *ValueIterator[K, V]) Next()         { it.inner.Next() }

func (it *ValueIterator[K, V]) Elem() V {
	_, val := it.inner.Elem()
	return val
}

// --- Item view -------------------------------------------------------------

// ItemView is a read-only view of a map's entries, bound to a snapshot.
type ItemView[K, V any] struct {
	snap Map[K, V]
}

// Items returns a view of the map's key-value entries, bound to the map's
// current state.
func (m Map[K, V]) Items() ItemView[K, V] {
	return ItemView[K, V]{snap: m}
}

// Len returns the number of entries.
func (view ItemView[K, V]) Len() int {
	return view.snap.Len()
}

// Contains reports whether the snapshot binds key to an equal value.
func (view ItemView[K, V]) Contains(key K, value V) (bool, error) {
	if view.snap.varb == nil {
		return false, ErrNoValueArbiter
	}
	val, found, err := view.snap.trie.Lookup(key)
	if err != nil || !found {
		return false, err
	}
	return view.snap.varb.Equal(value, val)
}

// Each walks all entries until the visitor returns false.
func (view ItemView[K, V]) Each(visit func(key K, val V) bool) {
	view.snap.trie.Each(visit)
}

// Iterator returns a lazy, one-shot iterator over the entries.
func (view ItemView[K, V]) Iterator() *Iterator[K, V] {
	return view.snap.Iterator()
}

// Pairs exports the entries as a slice of pairs, in current iteration
// order. The order is not stable across versions.
func (view ItemView[K, V]) Pairs() []Pair[K, V] {
	pairs := make([]Pair[K, V], 0, view.Len())
	view.snap.trie.Each(func(key K, val V) bool {
		pairs = append(pairs, Pair[K, V]{Key: key, Value: val})
		return true
	})
	return pairs
}
