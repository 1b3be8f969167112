/*
Package list implements a persistent (immutable) singly-linked list.

A list is a chain of cons cells. Pushing an element to the front creates a
single new cell whose tail pointer shares the entire old chain, so any
number of lists derived by push-front share structure: the tail is shared
by reference, never copied. First, DropFirst and Push are O(1), Reverse is
O(n); the length is cached in the handle and costs O(1).

Construction from a slice preserves the slice's original order, despite
the structure only supporting O(1) prepend, by consuming the input in
reverse.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package list
