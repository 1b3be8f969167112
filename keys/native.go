package keys

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/spaolacci/murmur3"
)

// Native wraps a plain Go value as a foreign key, standing in for a host
// binding: the hash is computed here, once, and equality is `==` on the
// wrapped values. Values without a hashable representation (slices, maps,
// functions, …) yield ErrUnhashable.
func Native(value interface{}) (Foreign, error) {
	h, err := nativeHash(value)
	if err != nil {
		return Foreign{}, err
	}
	return Wrap(value, h, nativeEqual), nil
}

func nativeEqual(a, b interface{}) (bool, error) {
	return a == b, nil
}

func nativeHash(value interface{}) (uint32, error) {
	switch v := value.(type) {
	case string:
		return murmur3.Sum32([]byte(v)), nil
	case []byte:
		// byte slices are mutable and therefore unhashable, like in the
		// original host language
		return 0, fmt.Errorf("%w: %T", ErrUnhashable, value)
	case bool:
		if v {
			return Mix(1), nil
		}
		return Mix(0), nil
	case int:
		return hashUint64(uint64(v)), nil
	case int8:
		return hashUint64(uint64(v)), nil
	case int16:
		return hashUint64(uint64(v)), nil
	case int32:
		return hashUint64(uint64(v)), nil
	case int64:
		return hashUint64(uint64(v)), nil
	case uint:
		return hashUint64(uint64(v)), nil
	case uint8:
		return hashUint64(uint64(v)), nil
	case uint16:
		return hashUint64(uint64(v)), nil
	case uint32:
		return hashUint64(uint64(v)), nil
	case uint64:
		return hashUint64(v), nil
	case uintptr:
		return hashUint64(uint64(v)), nil
	case float32:
		return hashUint64(math.Float64bits(float64(v))), nil
	case float64:
		return hashUint64(math.Float64bits(v)), nil
	}
	return 0, fmt.Errorf("%w: %T", ErrUnhashable, value)
}

func hashUint64(u uint64) uint32 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], u)
	return murmur3.Sum32(buf[:])
}

// --- Infallible arbiters for plain Go keys ---------------------------------

// Strings is an Arbiter[string] hashing with 32-bit murmur. It never fails.
type Strings struct{}

func (Strings) Hash(key string) (uint32, error) {
	return murmur3.Sum32([]byte(key)), nil
}

func (Strings) Equal(a, b string) (bool, error) {
	return a == b, nil
}

// Bytes is an Arbiter[[]byte]. Callers must not mutate slices used as keys
// while they are stored in a collection.
type Bytes struct{}

func (Bytes) Hash(key []byte) (uint32, error) {
	return murmur3.Sum32(key), nil
}

func (Bytes) Equal(a, b []byte) (bool, error) {
	if len(a) != len(b) {
		return false, nil
	}
	for i := range a {
		if a[i] != b[i] {
			return false, nil
		}
	}
	return true, nil
}

// Ints is an Arbiter[int]. It never fails.
type Ints struct{}

func (Ints) Hash(key int) (uint32, error) {
	return hashUint64(uint64(key)), nil
}

func (Ints) Equal(a, b int) (bool, error) {
	return a == b, nil
}
