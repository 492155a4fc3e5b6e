package lexer

import (
	"encoding/binary"
	"math"

	"github.com/rill-lang/rill/bytebuf"
)

// payloadWidth is the width, in bytes, of every fixed-width L-code payload
// (identifier ids, string ids, integer literals, float literals): one
// machine word, fixed at 8 bytes since Go offers no configurable host
// integer width.
const payloadWidth = 8

// Options tunes the lexer's buffer growth policy and dedup cutoff.
// DefaultOptions returns the built-in defaults; config.Config loads
// overrides for these from a TOML file.
type Options struct {
	// LCodeIncLog2, StringIncLog2, IdentIncLog2 are the growth
	// granularities (as a power of two) per arena, tuned independently.
	LCodeIncLog2  uint
	StringIncLog2 uint
	IdentIncLog2  uint

	// StringDedupCutoff is the decoded string length, in bytes, at or
	// above which a string is not deduplicated; only shorter strings are.
	StringDedupCutoff int
}

// DefaultOptions returns the built-in defaults: 64-byte L-code growth
// steps, 16-byte string-arena steps, 32-byte identifier-arena steps, and
// a 256-byte dedup cutoff.
func DefaultOptions() Options {
	return Options{
		LCodeIncLog2:      6,
		StringIncLog2:     4,
		IdentIncLog2:      5,
		StringDedupCutoff: 256,
	}
}

// Output is the lex output record: the three owned byte buffers the
// caller (a parser) reads the L-code stream, string arena, and identifier
// arena from, plus their unique-entry counts and the final line number.
type Output struct {
	LCode      []byte
	StringData []byte
	IdentData  []byte
	StringCnt  int
	IdentCnt   int
	FinalLine  int
}

// encoder accumulates the three arenas and the token stream during a lex
// call. It owns all buffers until finish hands them over on success; on
// failure they are simply dropped.
type encoder struct {
	lcode *bytebuf.Buffer
	str   *bytebuf.Buffer
	ident *bytebuf.Buffer
	opts  Options
}

func newEncoder(opts Options) *encoder {
	return &encoder{lcode: bytebuf.New(), str: bytebuf.New(), ident: bytebuf.New(), opts: opts}
}

func (e *encoder) emitTag(t Tag) {
	e.lcode.PushByte(e.opts.LCodeIncLog2, byte(t))
}

func (e *encoder) emitTagWithID(t Tag, id int) {
	var buf [1 + payloadWidth]byte
	buf[0] = byte(t)
	binary.LittleEndian.PutUint64(buf[1:], uint64(int64(id)))
	e.lcode.PushBytes(e.opts.LCodeIncLog2, buf[:])
}

func (e *encoder) emitInt(v int64) {
	var buf [1 + payloadWidth]byte
	buf[0] = byte(TagInt)
	binary.LittleEndian.PutUint64(buf[1:], uint64(v))
	e.lcode.PushBytes(e.opts.LCodeIncLog2, buf[:])
}

func (e *encoder) emitFloat(v float64) {
	var buf [1 + payloadWidth]byte
	buf[0] = byte(TagFloat)
	binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(v))
	e.lcode.PushBytes(e.opts.LCodeIncLog2, buf[:])
}

// finish zero-pads the L-code buffer to its current capacity and returns
// the completed output record.
func (e *encoder) finish(strCnt, identCnt, finalLine int) *Output {
	e.lcode.PadToCapacity()
	return &Output{
		LCode:      e.lcode.Bytes(),
		StringData: e.str.Bytes(),
		IdentData:  e.ident.Bytes(),
		StringCnt:  strCnt,
		IdentCnt:   identCnt,
		FinalLine:  finalLine,
	}
}
