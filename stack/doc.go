/*
Package stack implements a persistent (immutable) stack.

A stack has the same cons-cell shape as a persistent list but speaks
push/pop/peek: Push puts an element on top in O(1), Pop returns the stack
below the top, Peek reads the top. Iteration order is last-pushed-first.
All derived stacks share their cells; no cell is ever mutated.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package stack
