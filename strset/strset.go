// Package strset implements the incremental string-dedup hash set the
// lexer uses to assign small integer ids to repeated string literals and
// identifier names. Keys are logical (offset, length) spans into a
// caller-owned byte arena rather than copies: growing the arena never
// invalidates an id, only the bytes an id refers to, and the set always
// re-reads the arena to compare keys.
package strset

import "bytes"

// span identifies a key's bytes within the caller's arena.
type span struct {
	offset int
	length int
}

// Set maps byte strings to small integer ids, assigning a fresh id on each
// new key and returning the existing id when a key repeats.
type Set struct {
	arena   func() []byte
	buckets map[uint64][]entry
}

type entry struct {
	span span
	id   int
}

// New returns an empty Set. arena is called on every lookup to fetch the
// current contents of the byte arena backing inserted keys; it must
// reflect growth (e.g. return buf.Bytes() from a *bytebuf.Buffer) since the
// set never copies key bytes itself.
func New(arena func() []byte) *Set {
	return &Set{arena: arena, buckets: make(map[uint64][]entry)}
}

// Insert looks up key (a span already written into the arena at the given
// offset/length). If an equal key was inserted before, it returns that
// key's id and false (the next-available counter is not consumed). If this
// is the first occurrence, it returns nextID and true, and records the
// mapping.
func (s *Set) Insert(offset, length int, nextID int) (id int, isNew bool) {
	h := fnv1a(s.arena()[offset : offset+length])
	for _, e := range s.buckets[h] {
		if e.span.length == length && bytes.Equal(s.arena()[e.span.offset:e.span.offset+length], s.arena()[offset:offset+length]) {
			return e.id, false
		}
	}
	s.buckets[h] = append(s.buckets[h], entry{span: span{offset, length}, id: nextID})
	return nextID, true
}

// fnv1a is a byte-wise hash with good avalanche behavior on short strings,
// sufficient for a dedup index keyed by arbitrary source-text spans.
func fnv1a(b []byte) uint64 {
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211
	h := uint64(offset64)
	for _, c := range b {
		h ^= uint64(c)
		h *= prime64
	}
	return h
}
