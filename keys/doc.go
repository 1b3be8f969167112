/*
Package keys decides hashing and equality on behalf of the persistent
collections in this module.

The collections never derive a hashing or equality policy themselves.
Instead, every collection handle carries an Arbiter for its key or element
type. An arbiter is a narrow capability: it can hash a key and it can test
two keys for equality, and either operation may fail (a value may not be
hashable, or a host-supplied comparator may itself fail).

For keys originating outside of Go (host-language objects handed across a
binding layer), the Foreign type wraps an opaque value together with a hash
that was computed once, at wrap time, and an equality callback that defers
to the host. Hash equality is necessary but not sufficient for key
equality: collections compare hashes first and fall back to the real
equality test on collision.

For plain Go keys the package ships infallible arbiters (Strings, Bytes,
Ints) built on 32-bit murmur hashing.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package keys
