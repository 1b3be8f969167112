package keys

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrUnhashable flags a value that cannot produce a hash. It surfaces at
// the operation that required hashing (insertion, membership test, hashing
// a whole collection) and is never silently swallowed.
var ErrUnhashable = errors.New("value is not hashable")

// Arbiter decides hashing and equality for key type K. Collections are
// generic over any arbiter, so hashing/equality policy stays with the
// caller, not with the collection.
//
// Two keys that compare equal must report the same hash; this consistency
// is an obligation of the arbiter, not checked by the collections.
type Arbiter[K any] interface {
	// Hash returns the hash for a key, or ErrUnhashable.
	Hash(key K) (uint32, error)
	// Equal reports whether two keys are equal. An error from a deferred
	// host comparator propagates as-is.
	Equal(a, b K) (bool, error)
}

// --- Foreign keys ----------------------------------------------------------

// EqualFunc is a deferred equality test supplied by a host binding.
type EqualFunc func(a, b interface{}) (bool, error)

// Foreign wraps an opaque host value with a hash that was computed once at
// wrap time and an equality callback deferring to the host. Equality
// between two foreign keys always invokes the callback, never structural
// pointer identity, because two distinct host objects can be equal.
type Foreign struct {
	hash  uint32
	value interface{}
	eq    EqualFunc
}

// Wrap packages a host value with its precomputed hash and a deferred
// equality test. Hashing may be expensive or defined at the host level, so
// it happens exactly once, here.
func Wrap(value interface{}, hash uint32, eq EqualFunc) Foreign {
	return Foreign{hash: hash, value: value, eq: eq}
}

// Value returns the wrapped host value.
func (f Foreign) Value() interface{} {
	return f.value
}

// Hash returns the hash cached at wrap time.
func (f Foreign) Hash() uint32 {
	return f.hash
}

// ForeignArbiter is the Arbiter for foreign keys. It is stateless: the
// hash lives in the key, the equality test in the key's callback.
type ForeignArbiter struct{}

// Hash returns the hash cached in the foreign key; it cannot fail.
func (ForeignArbiter) Hash(key Foreign) (uint32, error) {
	return key.hash, nil
}

// Equal delegates to the deferred host comparator. A failing comparator
// propagates its error unmasked; no retry happens.
func (ForeignArbiter) Equal(a, b Foreign) (bool, error) {
	switch {
	case a.eq != nil:
		return a.eq(a.value, b.value)
	case b.eq != nil:
		return b.eq(b.value, a.value)
	}
	return false, fmt.Errorf("foreign keys %v, %v carry no equality test", a.value, b.value)
}

// --- Hash mixing -----------------------------------------------------------

// Mix applies a murmur-style avalanche finalizer to a hash value. The
// collections apply it per entry before XOR-folding entry hashes, so that
// entries sharing partial hash bits do not cancel out.
func Mix(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

// PairHash folds a key hash and a value hash into a single entry hash.
func PairHash(kh, vh uint32) uint32 {
	return Mix(kh ^ bits.RotateLeft32(vh, 15))
}
