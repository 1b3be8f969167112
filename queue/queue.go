package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/pds/keys"
	"github.com/npillmayer/pds/maybe"
)

// ErrEmpty flags peeking at or dequeuing from an empty queue.
var ErrEmpty = errors.New("queue is empty")

type cell[T any] struct {
	value T
	next  *cell[T]
}

// Queue is a persistent FIFO queue. Queue values are immutable handles:
// Enqueue and Dequeue return new handles and leave the receiver valid,
// including its amortized cost bounds when the receiver is reused. The
// arbiter is used for equality and hashing of whole queues and may be nil
// if those are never needed.
type Queue[T any] struct {
	arb   keys.Arbiter[T]
	lenf  int
	front *cell[T]
	rot   rotation[T] // nil while no rotation is in flight
	lenb  int
	back  *cell[T]
}

// Immutable creates an empty persistent queue over the given arbiter.
func Immutable[T any](arb keys.Arbiter[T]) Queue[T] {
	return Queue[T]{arb: arb}
}

// FromSlice creates a queue holding the slice's elements, enqueued in
// their original order (index 0 dequeues first).
func FromSlice[T any](arb keys.Arbiter[T], elements []T) Queue[T] {
	q := Queue[T]{arb: arb}
	for _, el := range elements {
		q = q.Enqueue(el)
	}
	return q
}

// Len returns the number of elements; cached, O(1).
func (q Queue[T]) Len() int {
	return q.lenf + q.lenb
}

// IsEmpty reports whether the queue has no elements.
func (q Queue[T]) IsEmpty() bool {
	return q.Len() == 0
}

// Peek returns the front element without removing it, or ErrEmpty.
func (q Queue[T]) Peek() (T, error) {
	if q.IsEmpty() {
		var none T
		return none, ErrEmpty
	}
	assertThat(q.front != nil, "non-empty queue has no materialized front")
	return q.front.value, nil
}

// Front returns the front element as an option.
func (q Queue[T]) Front() maybe.Maybe[T] {
	if q.IsEmpty() {
		return maybe.Nothing[T]()
	}
	return maybe.Just(q.front.value)
}

// Enqueue returns a queue with value appended at the back. O(1): one new
// cell plus a bounded number of rotation steps.
func (q Queue[T]) Enqueue(value T) Queue[T] {
	q.back = &cell[T]{value: value, next: q.back}
	q.lenb++
	return q.check()
}

// Dequeue returns the queue without its front element, or ErrEmpty. An
// old handle may be dequeued again later and still yields its own front
// element at the same bounded cost.
func (q Queue[T]) Dequeue() (Queue[T], error) {
	if q.IsEmpty() {
		return q, ErrEmpty
	}
	assertThat(q.front != nil, "non-empty queue has no materialized front")
	q.front = q.front.next
	q.lenf--
	if q.rot != nil {
		q.rot = q.rot.invalidate()
	}
	return q.check(), nil
}

// check starts a rotation as soon as the back list outgrows the front
// list, and advances any in-flight rotation by two steps. Two steps per
// operation suffice for the rotation to finish before the old front list
// runs dry.
func (q Queue[T]) check() Queue[T] {
	if q.lenb > q.lenf {
		tracer().Debugf("starting queue rotation: front=%d back=%d", q.lenf, q.lenb)
		assertThat(q.rot == nil, "rotation started while previous rotation in flight")
		q.rot = reversing[T]{f: q.front, b: q.back}
		q.lenf += q.lenb
		q.lenb = 0
		q.back = nil
	}
	return q.exec2()
}

func (q Queue[T]) exec2() Queue[T] {
	if q.rot == nil {
		return q
	}
	q.rot = q.rot.step().step()
	if d, finished := q.rot.(done[T]); finished {
		q.front = d.r
		q.rot = nil
	}
	return q
}

// Each walks the elements in FIFO order until the visitor returns false.
// It drains a private handle; the receiver is untouched.
func (q Queue[T]) Each(visit func(value T) bool) {
	for it := q.Iterator(); it.HasElem(); it.Next() {
		if !visit(it.Elem()) {
			return
		}
	}
}

// Iterator is a lazy, one-shot iterator over the queue in FIFO order. It
// holds a private queue handle and dequeues from it step by step.
type Iterator[T any] struct {
	q Queue[T]
}

func (q Queue[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{q: q}
}

func (it *Iterator[T]) HasElem() bool { return !it.q.IsEmpty() }

func (it *Iterator[T]) Elem() T {
	front, err := it.q.Peek()
	assertThat(err == nil, "attempt to read exhausted iterator")
	return front
}

func (it *Iterator[T]) Next() {
	q, err := it.q.Dequeue()
	assertThat(err == nil, "attempt to advance exhausted iterator")
	it.q = q
}

// Slice exports the elements in FIFO order.
func (q Queue[T]) Slice() []T {
	elements := make([]T, 0, q.Len())
	q.Each(func(value T) bool {
		elements = append(elements, value)
		return true
	})
	return elements
}

// Equal reports element-wise equality in FIFO order, short-circuiting on
// differing length.
func (q Queue[T]) Equal(other Queue[T]) (bool, error) {
	if q.arb == nil {
		return false, fmt.Errorf("queue carries no arbiter for its element type")
	}
	if q.Len() != other.Len() {
		return false, nil
	}
	a, b := q.Iterator(), other.Iterator()
	for a.HasElem() {
		eq, err := q.arb.Equal(a.Elem(), b.Elem())
		if err != nil || !eq {
			return false, err
		}
		a.Next()
		b.Next()
	}
	return true, nil
}

// Hash computes an order-sensitive combination of the per-element hashes
// in FIFO order.
func (q Queue[T]) Hash() (uint32, error) {
	if q.arb == nil {
		return 0, fmt.Errorf("queue carries no arbiter for its element type")
	}
	var h uint32 = 0x811c9dc5
	var err error
	q.Each(func(value T) bool {
		var eh uint32
		if eh, err = q.arb.Hash(value); err != nil {
			return false
		}
		h = keys.Mix(h*31 + eh)
		return true
	})
	if err != nil {
		return 0, err
	}
	return keys.Mix(h ^ uint32(q.Len())), nil
}

// MarshalJSON emits the elements as a JSON array in FIFO order.
func (q Queue[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.Slice())
}

func (q Queue[T]) String() string {
	b := strings.Builder{}
	b.WriteString("Queue[")
	first := true
	q.Each(func(value T) bool {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(fmt.Sprintf("%v", value))
		return true
	})
	b.WriteByte(']')
	return b.String()
}

// ---------------------------------------------------------------------------

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("queue: "+msg, msgargs...)
		panic(msg)
	}
}
