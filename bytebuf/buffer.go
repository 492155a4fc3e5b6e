// Package bytebuf implements an append-only byte buffer with stepped
// growth, used by the lexer for the L-code output stream, the string
// literal arena, and the identifier arena.
package bytebuf

// Buffer is an append-only byte slice that grows in steps of a
// per-call-site increment (2^incLog2 bytes, or more when a single append
// needs more), rather than by the exact amount requested each time, to
// amortize the cost of repeated small appends.
type Buffer struct {
	data []byte
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the buffer's contents. The returned slice aliases the
// buffer's storage and is invalidated by subsequent writes.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Truncate discards bytes beyond n, rolling back a tentative append. It is
// a no-op if n >= Len().
func (b *Buffer) Truncate(n int) {
	if n < len(b.data) {
		b.data = b.data[:n]
	}
}

// PushByte appends a single byte. incLog2 controls the growth granularity
// at this call site: capacity grows in multiples of 2^incLog2.
func (b *Buffer) PushByte(incLog2 uint, v byte) {
	b.grow(incLog2, 1)
	b.data = append(b.data, v)
}

// PushBytes appends bytes. incLog2 controls the growth granularity at this
// call site, matching PushByte.
func (b *Buffer) PushBytes(incLog2 uint, v []byte) {
	b.grow(incLog2, len(v))
	b.data = append(b.data, v...)
}

// grow ensures capacity for n additional bytes, expanding by
// max(2^incLog2, n) rounded up to a multiple of 2^incLog2, matching the
// growth policy of the original arena allocator.
func (b *Buffer) grow(incLog2 uint, n int) {
	need := len(b.data) + n
	if need <= cap(b.data) {
		return
	}
	inc := 1 << incLog2
	extra := need - cap(b.data)
	if extra < inc {
		extra = inc
	}
	newCap := cap(b.data) + extra
	newCap = (newCap + inc - 1) &^ (inc - 1)

	grown := make([]byte, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
}

// PadToCapacity zero-fills the buffer from Len() up to Cap(), so downstream
// readers can read lookahead bytes past the logical end of the token
// stream without a bounds check.
func (b *Buffer) PadToCapacity() {
	pad := cap(b.data) - len(b.data)
	for i := 0; i < pad; i++ {
		b.data = append(b.data, 0)
	}
}

// Cap returns the buffer's current capacity.
func (b *Buffer) Cap() int {
	return cap(b.data)
}
