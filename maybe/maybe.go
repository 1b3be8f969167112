// Package maybe provides an option type for values that may be absent.
//
// The persistent collections use it for their non-raising accessors: a
// lookup that misses returns Nothing instead of an error, and callers
// pick a fallback with WithDefault.
package maybe

// Maybe holds either a value of type T ("just") or nothing.
type Maybe[T any] struct {
	value T
	tag   bool
}

// Just wraps a present value.
func Just[T any](x T) Maybe[T] {
	return Maybe[T]{value: x, tag: true}
}

// Nothing is the absent value.
func Nothing[T any]() Maybe[T] {
	return Maybe[T]{}
}

// IsJust reports whether a value is present.
func (m Maybe[T]) IsJust() bool {
	return m.tag
}

// Value returns the wrapped value together with a presence flag.
func (m Maybe[T]) Value() (T, bool) {
	return m.value, m.tag
}

// WithDefault returns the wrapped value, or def if nothing is present.
func (m Maybe[T]) WithDefault(def T) T {
	if m.tag {
		return m.value
	}
	return def
}

// Map applies f to a present value and passes nothing through.
func (m Maybe[T]) Map(f func(T) T) Maybe[T] {
	if m.tag {
		return Just(f(m.value))
	}
	return m
}

// AndThen chains a computation that may itself come up empty.
func AndThen[T, S any](f func(T) Maybe[S], x Maybe[T]) Maybe[S] {
	if v, ok := x.Value(); ok {
		return f(v)
	}
	return Nothing[S]()
}

// Map applies f to a present value and passes nothing through, possibly
// changing the value's type.
func Map[T, S any](f func(T) S, x Maybe[T]) Maybe[S] {
	if v, ok := x.Value(); ok {
		return Just(f(v))
	}
	return Nothing[S]()
}
