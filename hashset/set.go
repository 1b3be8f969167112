package hashset

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/pds/hamt"
	"github.com/npillmayer/pds/keys"
)

// ErrNoElement flags strict removal of an element that is not in the set.
var ErrNoElement = errors.New("no such element in set")

// SetLike is the protocol shared by everything set-shaped in this module.
// Hash-trie sets satisfy it, as do the key views of hash-trie maps, so
// generic algorithms (equality, containment, algebra) work without knowing
// the concrete type.
type SetLike[K any] interface {
	// Len returns the number of elements.
	Len() int
	// Contains reports membership of key.
	Contains(key K) (bool, error)
	// Each walks all elements until the visitor returns false.
	Each(visit func(key K) bool)
}

// Set is a persistent hash-trie set. The zero value is not usable; create
// sets with Immutable. Set values are immutable handles and safe to share
// between goroutines.
type Set[K any] struct {
	trie hamt.Trie[K, struct{}]
}

// Immutable creates an empty persistent set over the given arbiter.
//
// Use it like this:
//
//	s := hashset.Immutable[string](keys.Strings{})
//	s, _ = s.With("a")
func Immutable[K any](arb keys.Arbiter[K]) Set[K] {
	return Set[K]{trie: hamt.Immutable[K, struct{}](arb)}
}

// FromSlice creates a set holding the given elements, using the transient
// builder fast path. Duplicates collapse.
func FromSlice[K any](arb keys.Arbiter[K], elements []K) (Set[K], error) {
	b := hamt.NewBuilder[K, struct{}](arb)
	for _, el := range elements {
		if err := b.Put(el, struct{}{}); err != nil {
			return Set[K]{}, err
		}
	}
	return Set[K]{trie: b.Freeze()}, nil
}

// Collect drains any set-like collection into a new hash-trie set.
func Collect[K any](arb keys.Arbiter[K], src SetLike[K]) (Set[K], error) {
	b := hamt.NewBuilder[K, struct{}](arb)
	var err error
	src.Each(func(key K) bool {
		err = b.Put(key, struct{}{})
		return err == nil
	})
	if err != nil {
		return Set[K]{}, err
	}
	return Set[K]{trie: b.Freeze()}, nil
}

// Len returns the number of elements, tracked incrementally.
func (s Set[K]) Len() int {
	return s.trie.Len()
}

// IsEmpty reports whether the set has no elements.
func (s Set[K]) IsEmpty() bool {
	return s.trie.Len() == 0
}

// Contains reports membership of key.
func (s Set[K]) Contains(key K) (bool, error) {
	_, found, err := s.trie.Lookup(key)
	return found, err
}

// With returns a copy of the set with key added. Adding a present element
// returns a set equal to the receiver.
func (s Set[K]) With(key K) (Set[K], error) {
	trie, err := s.trie.With(key, struct{}{})
	if err != nil {
		return s, err
	}
	return Set[K]{trie: trie}, nil
}

// WithDeleted returns a copy of the set with key removed, or ErrNoElement
// if key is not an element. The receiver is untouched either way.
func (s Set[K]) WithDeleted(key K) (Set[K], error) {
	trie, found, err := s.trie.WithDeleted(key)
	if err != nil {
		return s, err
	}
	if !found {
		return s, fmt.Errorf("%w: %v", ErrNoElement, key)
	}
	return Set[K]{trie: trie}, nil
}

// Discard returns a copy of the set with key removed; removing an absent
// element is a no-op, not an error.
func (s Set[K]) Discard(key K) (Set[K], error) {
	trie, _, err := s.trie.WithDeleted(key)
	if err != nil {
		return s, err
	}
	return Set[K]{trie: trie}, nil
}

// Each walks all elements until the visitor returns false.
func (s Set[K]) Each(visit func(key K) bool) {
	s.trie.Each(func(key K, _ struct{}) bool {
		return visit(key)
	})
}

// Iterator returns a lazy, one-shot iterator over the elements. It holds a
// private snapshot of the set; the set itself is untouched by iteration.
type Iterator[K any] struct {
	inner *hamt.Iterator[K, struct{}]
}

func (s Set[K]) Iterator() *Iterator[K] {
	return &Iterator[K]{inner: s.trie.Iterator()}
}

func (it *Iterator[K]) HasElem() bool { return it.inner.HasElem() }

func (it *Iterator[K]) Elem() K {
	key, _ := it.inner.Elem()
	return key
}

func (it *Iterator[K]) Next() { it.inner.Next() }

// --- Set algebra -----------------------------------------------------------

// Union returns a new set holding the elements of both operands. When the
// other operand is a hash-trie set, the larger operand's trie is reused as
// the base and only the smaller one is iterated.
func (s Set[K]) Union(other SetLike[K]) (Set[K], error) {
	base, extra := s, other
	if o, ok := other.(Set[K]); ok && o.Len() > s.Len() {
		base, extra = o, SetLike[K](s)
	}
	tracer().Debugf("set union: iterating %d elements over base of %d", extra.Len(), base.Len())
	b := base.trie.Builder()
	var err error
	extra.Each(func(key K) bool {
		err = b.Put(key, struct{}{})
		return err == nil
	})
	if err != nil {
		return s, err
	}
	return Set[K]{trie: b.Freeze()}, nil
}

// Intersect returns a new set holding the elements present in both
// operands. The smaller operand is iterated, the larger one probed.
func (s Set[K]) Intersect(other SetLike[K]) (Set[K], error) {
	small, large := SetLike[K](s), other
	if other.Len() < s.Len() {
		small, large = other, SetLike[K](s)
	}
	b := hamt.NewBuilder[K, struct{}](s.trie.Arbiter())
	var err error
	small.Each(func(key K) bool {
		var in bool
		if in, err = large.Contains(key); err != nil {
			return false
		}
		if in {
			err = b.Put(key, struct{}{})
		}
		return err == nil
	})
	if err != nil {
		return s, err
	}
	return Set[K]{trie: b.Freeze()}, nil
}

// Difference returns a new set holding the receiver's elements that are
// not in other. Whichever operand is smaller is the one iterated: either
// other's elements are deleted from a copy of the receiver, or the
// receiver's elements are probed against other.
func (s Set[K]) Difference(other SetLike[K]) (Set[K], error) {
	var err error
	if other.Len() <= s.Len() {
		b := s.trie.Builder()
		other.Each(func(key K) bool {
			_, err = b.Delete(key)
			return err == nil
		})
		if err != nil {
			return s, err
		}
		return Set[K]{trie: b.Freeze()}, nil
	}
	b := hamt.NewBuilder[K, struct{}](s.trie.Arbiter())
	s.Each(func(key K) bool {
		var in bool
		if in, err = other.Contains(key); err != nil {
			return false
		}
		if !in {
			err = b.Put(key, struct{}{})
		}
		return err == nil
	})
	if err != nil {
		return s, err
	}
	return Set[K]{trie: b.Freeze()}, nil
}

// SymmetricDifference returns a new set holding the elements present in
// exactly one of the operands. It starts from the larger operand and, for
// each element of the smaller one, toggles membership: removes it if
// present, adds it if absent.
func (s Set[K]) SymmetricDifference(other SetLike[K]) (Set[K], error) {
	base, toggles := s, other
	if o, ok := other.(Set[K]); ok && o.Len() > s.Len() {
		base, toggles = o, SetLike[K](s)
	}
	b := base.trie.Builder()
	var err error
	toggles.Each(func(key K) bool {
		var present bool
		if present, err = b.Delete(key); err != nil {
			return false
		}
		if !present {
			err = b.Put(key, struct{}{})
		}
		return err == nil
	})
	if err != nil {
		return s, err
	}
	return Set[K]{trie: b.Freeze()}, nil
}

// --- Comparisons -----------------------------------------------------------

// Equal reports whether the set and any set-like collection hold the same
// elements: equal size plus mutual containment.
func (s Set[K]) Equal(other SetLike[K]) (bool, error) {
	if s.Len() != other.Len() {
		return false, nil
	}
	return containsAll(other, s)
}

// SubsetOf reports whether every element of the set is in other.
func (s Set[K]) SubsetOf(other SetLike[K]) (bool, error) {
	if s.Len() > other.Len() {
		return false, nil
	}
	return containsAll(other, s)
}

// ProperSubsetOf reports whether the set is a subset of other and other
// holds at least one element more.
func (s Set[K]) ProperSubsetOf(other SetLike[K]) (bool, error) {
	if s.Len() >= other.Len() {
		return false, nil
	}
	return containsAll(other, s)
}

// SupersetOf reports whether the set contains every element of other.
func (s Set[K]) SupersetOf(other SetLike[K]) (bool, error) {
	if s.Len() < other.Len() {
		return false, nil
	}
	return containsAll(s, other)
}

// ProperSupersetOf reports whether the set contains every element of
// other plus at least one more.
func (s Set[K]) ProperSupersetOf(other SetLike[K]) (bool, error) {
	if s.Len() <= other.Len() {
		return false, nil
	}
	return containsAll(s, other)
}

// ContainsAll reports whether big contains every element of small.
func containsAll[K any](big, small SetLike[K]) (bool, error) {
	all := true
	var err error
	small.Each(func(key K) bool {
		var in bool
		if in, err = big.Contains(key); err != nil {
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

// Hash computes an order-independent hash over the elements: per-element
// hashes are avalanche-mixed, XOR-folded, combined with the element count
// and scrambled, so equal sets hash equally regardless of construction
// order.
func (s Set[K]) Hash() (uint32, error) {
	arb := s.trie.Arbiter()
	var folded uint32
	var err error
	s.Each(func(key K) bool {
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
	return keys.Mix(folded^uint32(s.Len())) * 0x9e3779b1, nil
}

// MarshalJSON emits the elements as a JSON array, in current iteration
// order. The order is not stable across versions.
func (s Set[K]) MarshalJSON() ([]byte, error) {
	elements := make([]interface{}, 0, s.Len())
	for it := s.Iterator(); it.HasElem(); it.Next() {
		elements = append(elements, it.Elem())
	}
	return json.Marshal(elements)
}

func (s Set[K]) String() string {
	b := strings.Builder{}
	b.WriteByte('{')
	first := true
	s.Each(func(key K) bool {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(fmt.Sprintf("%v", key))
		return true
	})
	b.WriteByte('}')
	return b.String()
}
