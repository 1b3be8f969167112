package list

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/pds/keys"
	"github.com/npillmayer/pds/maybe"
)

// ErrEmpty flags reading the first element or tail of an empty list.
var ErrEmpty = errors.New("list is empty")

// cell is a cons cell. A nil *cell is the empty list. Cells are never
// mutated once created; lists derived by Push share their tail cells by
// reference.
type cell[T any] struct {
	value T
	next  *cell[T]
}

// List is a persistent singly-linked list. List values are immutable
// handles and safe to share between goroutines. Create lists with
// Immutable or FromSlice; the arbiter is used for element-wise equality
// and hashing of whole lists and may be nil if those are never needed.
type List[T any] struct {
	arb    keys.Arbiter[T]
	head   *cell[T]
	length int
}

// Immutable creates an empty persistent list over the given arbiter.
func Immutable[T any](arb keys.Arbiter[T]) List[T] {
	return List[T]{arb: arb}
}

// FromSlice creates a list holding the elements of a slice in the slice's
// order. The input is consumed in reverse, prepending each element.
func FromSlice[T any](arb keys.Arbiter[T], elements []T) List[T] {
	l := List[T]{arb: arb}
	for i := len(elements) - 1; i >= 0; i-- {
		l = l.Push(elements[i])
	}
	return l
}

// Len returns the number of elements; cached, O(1).
func (l List[T]) Len() int {
	return l.length
}

// IsEmpty reports whether the list has no elements.
func (l List[T]) IsEmpty() bool {
	return l.length == 0
}

// First returns the first element, or ErrEmpty.
func (l List[T]) First() (T, error) {
	if l.head == nil {
		var none T
		return none, ErrEmpty
	}
	return l.head.value, nil
}

// Head returns the first element as an option.
func (l List[T]) Head() maybe.Maybe[T] {
	if l.head == nil {
		return maybe.Nothing[T]()
	}
	return maybe.Just(l.head.value)
}

// DropFirst returns the list without its first element, or ErrEmpty. The
// returned list is the shared tail of the receiver, not a copy.
func (l List[T]) DropFirst() (List[T], error) {
	if l.head == nil {
		return l, ErrEmpty
	}
	return List[T]{arb: l.arb, head: l.head.next, length: l.length - 1}, nil
}

// Push returns a list with value prepended. O(1): one new cell, tail
// shared with the receiver.
func (l List[T]) Push(value T) List[T] {
	return List[T]{arb: l.arb, head: &cell[T]{value: value, next: l.head}, length: l.length + 1}
}

// Reverse returns a list with the elements in reverse order, built by
// relinking in O(n).
func (l List[T]) Reverse() List[T] {
	var head *cell[T]
	for c := l.head; c != nil; c = c.next {
		head = &cell[T]{value: c.value, next: head}
	}
	return List[T]{arb: l.arb, head: head, length: l.length}
}

// Each walks the elements in list order until the visitor returns false.
func (l List[T]) Each(visit func(value T) bool) {
	for c := l.head; c != nil; c = c.next {
		if !visit(c.value) {
			return
		}
	}
}

// Iterator is a one-shot iterator over the list in list order.
type Iterator[T any] struct {
	cursor *cell[T]
}

func (l List[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{cursor: l.head}
}

func (it *Iterator[T]) HasElem() bool { return it.cursor != nil }
func (it *Iterator[T]) Next()         { it.cursor = it.cursor.next }

func (it *Iterator[T]) Elem() T {
	return it.cursor.value
}

// Slice exports the elements in list order.
func (l List[T]) Slice() []T {
	elements := make([]T, 0, l.length)
	for c := l.head; c != nil; c = c.next {
		elements = append(elements, c.value)
	}
	return elements
}

// Equal reports element-wise equality, short-circuiting on differing
// length.
func (l List[T]) Equal(other List[T]) (bool, error) {
	if l.arb == nil {
		return false, fmt.Errorf("list carries no arbiter for its element type")
	}
	if l.length != other.length {
		return false, nil
	}
	a, b := l.head, other.head
	for a != nil {
		eq, err := l.arb.Equal(a.value, b.value)
		if err != nil || !eq {
			return false, err
		}
		a, b = a.next, b.next
	}
	return true, nil
}

// Hash computes an order-sensitive combination of the per-element hashes:
// equal lists hash equally, reordered ones do not.
func (l List[T]) Hash() (uint32, error) {
	if l.arb == nil {
		return 0, fmt.Errorf("list carries no arbiter for its element type")
	}
	var h uint32 = 0x811c9dc5
	for c := l.head; c != nil; c = c.next {
		eh, err := l.arb.Hash(c.value)
		if err != nil {
			return 0, err
		}
		h = keys.Mix(h*31 + eh)
	}
	return keys.Mix(h ^ uint32(l.length)), nil
}

// MarshalJSON emits the elements as a JSON array in list order.
func (l List[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Slice())
}

func (l List[T]) String() string {
	b := strings.Builder{}
	b.WriteByte('[')
	for c := l.head; c != nil; c = c.next {
		if c != l.head {
			b.WriteString(", ")
		}
		b.WriteString(fmt.Sprintf("%v", c.value))
	}
	b.WriteByte(']')
	return b.String()
}
