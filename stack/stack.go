package stack

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/pds/keys"
	"github.com/npillmayer/pds/maybe"
)

// ErrEmpty flags peeking at or popping an empty stack.
var ErrEmpty = errors.New("stack is empty")

type cell[T any] struct {
	value T
	below *cell[T]
}

// Stack is a persistent stack. Stack values are immutable handles: Push
// and Pop return new handles sharing the untouched cells with the
// receiver. The arbiter is used for equality and hashing of whole stacks
// and may be nil if those are never needed.
type Stack[T any] struct {
	arb    keys.Arbiter[T]
	top    *cell[T]
	length int
}

// Immutable creates an empty persistent stack over the given arbiter.
func Immutable[T any](arb keys.Arbiter[T]) Stack[T] {
	return Stack[T]{arb: arb}
}

// FromSlice creates a stack by pushing the slice's elements in order, so
// the last element of the slice ends up on top.
func FromSlice[T any](arb keys.Arbiter[T], elements []T) Stack[T] {
	s := Stack[T]{arb: arb}
	for _, el := range elements {
		s = s.Push(el)
	}
	return s
}

// Len returns the number of elements; cached, O(1).
func (s Stack[T]) Len() int {
	return s.length
}

// IsEmpty reports whether the stack has no elements.
func (s Stack[T]) IsEmpty() bool {
	return s.length == 0
}

// Peek returns the top element, or ErrEmpty.
func (s Stack[T]) Peek() (T, error) {
	if s.top == nil {
		var none T
		return none, ErrEmpty
	}
	return s.top.value, nil
}

// Top returns the top element as an option.
func (s Stack[T]) Top() maybe.Maybe[T] {
	if s.top == nil {
		return maybe.Nothing[T]()
	}
	return maybe.Just(s.top.value)
}

// Push returns a stack with value on top. O(1), cells shared.
func (s Stack[T]) Push(value T) Stack[T] {
	return Stack[T]{arb: s.arb, top: &cell[T]{value: value, below: s.top}, length: s.length + 1}
}

// Pop returns the stack below the top element, or ErrEmpty. The receiver
// is untouched.
func (s Stack[T]) Pop() (Stack[T], error) {
	if s.top == nil {
		return s, ErrEmpty
	}
	return Stack[T]{arb: s.arb, top: s.top.below, length: s.length - 1}, nil
}

// Each walks the elements top-down (last-pushed-first) until the visitor
// returns false.
func (s Stack[T]) Each(visit func(value T) bool) {
	for c := s.top; c != nil; c = c.below {
		if !visit(c.value) {
			return
		}
	}
}

// Iterator is a one-shot iterator over the stack in pop order.
type Iterator[T any] struct {
	cursor *cell[T]
}

func (s Stack[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{cursor: s.top}
}

func (it *Iterator[T]) HasElem() bool { return it.cursor != nil }
func (it *Iterator[T]) Next()         { it.cursor = it.cursor.below }

func (it *Iterator[T]) Elem() T {
	return it.cursor.value
}

// Slice exports the elements in pop order (top first).
func (s Stack[T]) Slice() []T {
	elements := make([]T, 0, s.length)
	for c := s.top; c != nil; c = c.below {
		elements = append(elements, c.value)
	}
	return elements
}

// Equal reports element-wise equality in iteration (push) order,
// short-circuiting on differing length.
func (s Stack[T]) Equal(other Stack[T]) (bool, error) {
	if s.arb == nil {
		return false, fmt.Errorf("stack carries no arbiter for its element type")
	}
	if s.length != other.length {
		return false, nil
	}
	a, b := s.top, other.top
	for a != nil {
		eq, err := s.arb.Equal(a.value, b.value)
		if err != nil || !eq {
			return false, err
		}
		a, b = a.below, b.below
	}
	return true, nil
}

// Hash computes an order-sensitive combination of the per-element hashes.
func (s Stack[T]) Hash() (uint32, error) {
	if s.arb == nil {
		return 0, fmt.Errorf("stack carries no arbiter for its element type")
	}
	var h uint32 = 0x811c9dc5
	for c := s.top; c != nil; c = c.below {
		eh, err := s.arb.Hash(c.value)
		if err != nil {
			return 0, err
		}
		h = keys.Mix(h*31 + eh)
	}
	return keys.Mix(h ^ uint32(s.length)), nil
}

// MarshalJSON emits the elements as a JSON array in pop order.
func (s Stack[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

func (s Stack[T]) String() string {
	b := strings.Builder{}
	b.WriteString("Stack[")
	for c := s.top; c != nil; c = c.below {
		if c != s.top {
			b.WriteString(", ")
		}
		b.WriteString(fmt.Sprintf("%v", c.value))
	}
	b.WriteByte(']')
	return b.String()
}
