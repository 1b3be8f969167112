/*
Package queue implements a persistent (immutable) FIFO queue with worst
case O(1) operations that survive arbitrary reuse of old handles.

A naive persistent queue keeps a front list (in dequeue order) and a back
list (newest first) and reverses the back list into the front when the
front runs out. That design is amortized O(1) only if every handle is used
at most once: replaying dequeues from an old handle repeats the O(n)
reversal arbitrarily often, breaking the amortized argument.

This queue instead performs its reversals incrementally, in the style of
Hood and Melville: when the back list grows longer than the front, a
rotation is started which carries an explicit, immutable state machine
(reversing, then appending) inside the queue value. Every enqueue and
dequeue advances the rotation by a bounded number of steps, so the
rotation completes before the front list is exhausted and no single
operation, on any handle and replayed any number of times, ever pays more
than a constant amount of reversal work. The rotation state is itself a
persistent value: replaying an old handle replays precomputed steps
instead of re-reversing.

The invariant throughout: the front list concatenated with the reversed
back list is the full FIFO order.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package queue

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pds.queue'.
func tracer() tracing.Trace {
	return tracing.Select("pds.queue")
}
