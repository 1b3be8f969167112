package queue

// The incremental rotation moves the queue's back list, reversed, behind
// the front list without ever doing more than a bounded number of steps
// at a time. Rotation states are immutable values: advancing a rotation
// creates a new state, so old queue handles replay identical steps.
//
// A rotation runs through two phases. First both lists are reversed cell
// by cell (reversing): the front onto fr, the back onto br. Then the
// reversed front is appended, again cell by cell, onto the reversed back
// (appending), restoring the original front order in r. The ok counter
// tracks how many cells of fr are still valid; dequeues during the
// rotation invalidate one cell each, since the element they removed had
// already been copied.

type rotation[T any] interface {
	// step advances the rotation by one unit of work.
	step() rotation[T]
	// invalidate accounts for one element dequeued from the old front
	// while the rotation is in flight.
	invalidate() rotation[T]
}

// reversing is the first phase: f and b are the unconsumed remainders of
// the old front and back lists, fr and br their reversed prefixes.
type reversing[T any] struct {
	ok    int
	f, fr *cell[T]
	b, br *cell[T]
}

// appending is the second phase: the first ok cells of fr still need to be
// moved onto r.
type appending[T any] struct {
	ok int
	fr *cell[T]
	r  *cell[T]
}

// done carries the finished new front list.
type done[T any] struct {
	r *cell[T]
}

func (s reversing[T]) step() rotation[T] {
	if s.f != nil {
		// the back list starts one element longer than the front, so b
		// outlasts f by exactly one cell
		assertThat(s.b != nil, "back list exhausted before front list during rotation")
		return reversing[T]{
			ok: s.ok + 1,
			f:  s.f.next, fr: &cell[T]{value: s.f.value, next: s.fr},
			b: s.b.next, br: &cell[T]{value: s.b.value, next: s.br},
		}
	}
	assertThat(s.b != nil && s.b.next == nil, "back list length off by more than one during rotation")
	return appending[T]{ok: s.ok, fr: s.fr, r: &cell[T]{value: s.b.value, next: s.br}}
}

func (s reversing[T]) invalidate() rotation[T] {
	s.ok--
	return s
}

func (s appending[T]) step() rotation[T] {
	if s.ok == 0 {
		return done[T]{r: s.r}
	}
	return appending[T]{ok: s.ok - 1, fr: s.fr.next, r: &cell[T]{value: s.fr.value, next: s.r}}
}

func (s appending[T]) invalidate() rotation[T] {
	if s.ok == 0 {
		// the element at the head of r is the one that was dequeued
		return done[T]{r: s.r.next}
	}
	return appending[T]{ok: s.ok - 1, fr: s.fr, r: s.r}
}

func (s done[T]) step() rotation[T]       { return s }
func (s done[T]) invalidate() rotation[T] { return s }
