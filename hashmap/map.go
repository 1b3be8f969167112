package hashmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/pds/hamt"
	"github.com/npillmayer/pds/keys"
	"github.com/npillmayer/pds/maybe"
)

// ErrNoKey flags lookup or strict removal of a key that is not in the map.
var ErrNoKey = errors.New("no such key in map")

// ErrNoValueArbiter flags whole-map equality or hashing on a map created
// without a value arbiter.
var ErrNoValueArbiter = errors.New("map carries no arbiter for its value type")

// Pair is a key-value pair for bulk construction and bulk update.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// Map is a persistent hash-trie map. The zero value is not usable; create
// maps with Immutable, FromPairs or FromGoMap. Map values are immutable
// handles and safe to share between goroutines; a handle is also the
// snapshot its views bind to.
type Map[K, V any] struct {
	trie hamt.Trie[K, V]
	varb keys.Arbiter[V]
}

// Immutable creates an empty persistent map. The key arbiter decides
// hashing and equality of keys and is mandatory. The value arbiter is
// needed for whole-map equality and hashing only; it may be nil, in which
// case Equal and Hash return ErrNoValueArbiter.
//
// Use it like this:
//
//	m := hashmap.Immutable[string, int](keys.Strings{}, keys.Ints{})
//	m, _ = m.With("a", 1)
func Immutable[K, V any](karb keys.Arbiter[K], varb keys.Arbiter[V]) Map[K, V] {
	return Map[K, V]{trie: hamt.Immutable[K, V](karb), varb: varb}
}

// FromPairs creates a map from key-value pairs, using the transient
// builder fast path. Later pairs override earlier ones.
func FromPairs[K, V any](karb keys.Arbiter[K], varb keys.Arbiter[V], pairs []Pair[K, V]) (Map[K, V], error) {
	b := hamt.NewBuilder[K, V](karb)
	for _, p := range pairs {
		if err := b.Put(p.Key, p.Value); err != nil {
			return Map[K, V]{}, err
		}
	}
	return Map[K, V]{trie: b.Freeze(), varb: varb}, nil
}

// FromGoMap creates a map from a native Go map. This is the mapping-like
// ingestion fast path: entries are read key/value directly, without
// intermediate pair allocation.
func FromGoMap[K comparable, V any](karb keys.Arbiter[K], varb keys.Arbiter[V], src map[K]V) (Map[K, V], error) {
	b := hamt.NewBuilder[K, V](karb)
	for k, v := range src {
		if err := b.Put(k, v); err != nil {
			return Map[K, V]{}, err
		}
	}
	return Map[K, V]{trie: b.Freeze(), varb: varb}, nil
}

// Len returns the number of entries, tracked incrementally.
func (m Map[K, V]) Len() int {
	return m.trie.Len()
}

// IsEmpty reports whether the map has no entries.
func (m Map[K, V]) IsEmpty() bool {
	return m.trie.Len() == 0
}

// Contains reports whether key has a binding in the map.
func (m Map[K, V]) Contains(key K) (bool, error) {
	_, found, err := m.trie.Lookup(key)
	return found, err
}

// At returns the value bound to key, or ErrNoKey. A missing key is
// distinguishable from a stored zero value.
func (m Map[K, V]) At(key K) (V, error) {
	v, found, err := m.trie.Lookup(key)
	if err != nil {
		return v, err
	}
	if !found {
		return v, fmt.Errorf("%w: %v", ErrNoKey, key)
	}
	return v, nil
}

// Get is the non-raising lookup: it returns the value bound to key as an
// option. Use maybe.Maybe.WithDefault for get-with-default semantics.
func (m Map[K, V]) Get(key K) (maybe.Maybe[V], error) {
	v, found, err := m.trie.Lookup(key)
	if err != nil || !found {
		return maybe.Nothing[V](), err
	}
	return maybe.Just(v), nil
}

// With returns a copy of the map with key bound to value. A previous
// binding for an equal key is replaced (last write wins, size unchanged).
func (m Map[K, V]) With(key K, value V) (Map[K, V], error) {
	trie, err := m.trie.With(key, value)
	if err != nil {
		return m, err
	}
	return Map[K, V]{trie: trie, varb: m.varb}, nil
}

// WithDeleted returns a copy of the map with key removed, or ErrNoKey if
// the key has no binding. The receiver is untouched either way.
func (m Map[K, V]) WithDeleted(key K) (Map[K, V], error) {
	trie, found, err := m.trie.WithDeleted(key)
	if err != nil {
		return m, err
	}
	if !found {
		return m, fmt.Errorf("%w: %v", ErrNoKey, key)
	}
	return Map[K, V]{trie: trie, varb: m.varb}, nil
}

// Discard returns a copy of the map with key removed; discarding an
// absent key is a no-op, not an error.
func (m Map[K, V]) Discard(key K) (Map[K, V], error) {
	trie, _, err := m.trie.WithDeleted(key)
	if err != nil {
		return m, err
	}
	return Map[K, V]{trie: trie, varb: m.varb}, nil
}

// Update returns a copy of the map merged with other maps, left to right:
// for keys bound in several operands, later writers override earlier
// ones, with the receiver leftmost.
func (m Map[K, V]) Update(others ...Map[K, V]) (Map[K, V], error) {
	tracer().Debugf("bulk update of map with %d source maps", len(others))
	b := m.trie.Builder()
	var err error
	for _, other := range others {
		other.trie.Each(func(key K, val V) bool {
			err = b.Put(key, val)
			return err == nil
		})
		if err != nil {
			return m, err
		}
	}
	return Map[K, V]{trie: b.Freeze(), varb: m.varb}, nil
}

// UpdatePairs returns a copy of the map with the pairs written into it,
// left to right, later pairs overriding earlier ones.
func (m Map[K, V]) UpdatePairs(pairs ...Pair[K, V]) (Map[K, V], error) {
	b := m.trie.Builder()
	for _, p := range pairs {
		if err := b.Put(p.Key, p.Value); err != nil {
			return m, err
		}
	}
	return Map[K, V]{trie: b.Freeze(), varb: m.varb}, nil
}

// Each walks all entries until the visitor returns false.
func (m Map[K, V]) Each(visit func(key K, val V) bool) {
	m.trie.Each(visit)
}

// Iterator returns a lazy, one-shot, non-restartable iterator over the
// entries. It iterates a private snapshot; the map itself is untouched.
type Iterator[K, V any] struct {
	inner *hamt.Iterator[K, V]
}

func (m Map[K, V]) Iterator() *Iterator[K, V] {
	return &Iterator[K, V]{inner: m.trie.Iterator()}
}

func (it *Iterator[K, V]) HasElem() bool { return it.inner.HasElem() }
func (it *Iterator[K, V]) Elem() (K, V)  { return it.inner.Elem() }
func (it *Iterator[K, V]) Next()         { it.inner.Next() }

// Equal reports whether two maps hold the same entries: same size and,
// for every key in one, an equal value at that key in the other,
// independent of trie shape or insertion order.
func (m Map[K, V]) Equal(other Map[K, V]) (bool, error) {
	if m.varb == nil {
		return false, ErrNoValueArbiter
	}
	if m.Len() != other.Len() {
		return false, nil
	}
	equal := true
	var err error
	m.trie.Each(func(key K, val V) bool {
		otherVal, found, lookupErr := other.trie.Lookup(key)
		if lookupErr != nil {
			err = lookupErr
			return false
		}
		if !found {
			equal = false
			return false
		}
		if equal, err = m.varb.Equal(val, otherVal); err != nil {
			return false
		}
		return equal
	})
	if err != nil {
		return false, err
	}
	return equal, nil
}

// Hash computes an order-independent hash of the map: each entry's key and
// value hashes are folded into a per-entry hash with avalanche mixing,
// the entry hashes are XOR-combined, the entry count is folded in and a
// final multiplicative scramble applied. Equal maps hash equally
// regardless of construction order.
func (m Map[K, V]) Hash() (uint32, error) {
	if m.varb == nil {
		return 0, ErrNoValueArbiter
	}
	karb := m.trie.Arbiter()
	var folded uint32
	var err error
	m.trie.Each(func(key K, val V) bool {
		var kh, vh uint32
		if kh, err = karb.Hash(key); err != nil {
			return false
		}
		if vh, err = m.varb.Hash(val); err != nil {
			return false
		}
		folded ^= keys.PairHash(kh, vh)
		return true
	})
	if err != nil {
		return 0, err
	}
	return keys.Mix(folded^uint32(m.Len())) * 0x9e3779b1, nil
}

// MarshalJSON emits the entries as a JSON array of [key, value] pairs, in
// current iteration order. The order is not stable across versions.
func (m Map[K, V]) MarshalJSON() ([]byte, error) {
	entries := make([][2]interface{}, 0, m.Len())
	for it := m.Iterator(); it.HasElem(); it.Next() {
		k, v := it.Elem()
		entries = append(entries, [2]interface{}{k, v})
	}
	return json.Marshal(entries)
}

func (m Map[K, V]) String() string {
	b := strings.Builder{}
	b.WriteByte('{')
	first := true
	m.trie.Each(func(key K, val V) bool {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(fmt.Sprintf("%v: %v", key, val))
		return true
	})
	b.WriteByte('}')
	return b.String()
}
