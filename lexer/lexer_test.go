package lexer_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rill-lang/rill/lexer"
)

type sliceSource struct {
	b   []byte
	pos int
}

func src(s string) *sliceSource { return &sliceSource{b: []byte(s)} }

func (s *sliceSource) ReadByte() (byte, bool) {
	if s.pos >= len(s.b) {
		return 0, false
	}
	b := s.b[s.pos]
	s.pos++
	return b, true
}

// tok is one decoded L-code record: a tag plus, for tags that carry a
// payload, its 8-byte little-endian value reinterpreted as requested.
type tok struct {
	Tag     lexer.Tag
	Int     int64
	HasInt  bool
}

func hasPayload(t lexer.Tag) bool {
	switch t {
	case lexer.TagIdent, lexer.TagInt, lexer.TagFloat, lexer.TagString:
		return true
	default:
		return false
	}
}

func decode(lcode []byte) []tok {
	var toks []tok
	i := 0
	for i < len(lcode) {
		tag := lexer.Tag(lcode[i])
		i++
		if tag == lexer.TagEnd {
			toks = append(toks, tok{Tag: tag})
			break
		}
		if hasPayload(tag) {
			v := int64(binary.LittleEndian.Uint64(lcode[i : i+8]))
			i += 8
			toks = append(toks, tok{Tag: tag, Int: v, HasInt: true})
		} else {
			toks = append(toks, tok{Tag: tag})
		}
	}
	return toks
}

func TestScenarioAssignment(t *testing.T) {
	out, err := lexer.Lex(src("a = 1 + 2\n"))
	require.NoError(t, err)

	toks := decode(out.LCode)
	want := []lexer.Tag{lexer.TagIdent, lexer.TagSet, lexer.TagInt, lexer.TagAdd, lexer.TagInt, lexer.TagNewline, lexer.TagEnd}
	require.Len(t, toks, len(want))
	for i, w := range want {
		assert.Equal(t, w, toks[i].Tag, "token %d", i)
	}
	assert.Equal(t, int64(0), toks[0].Int)
	assert.Equal(t, 1, out.IdentCnt)
	assert.Equal(t, "a\x00", string(out.IdentData))
	assert.Equal(t, 2, out.FinalLine)
}

func TestScenarioNumericBases(t *testing.T) {
	out, err := lexer.Lex(src("0xFF + 0b10 + 0o17 + 1.5e2"))
	require.NoError(t, err)
	toks := decode(out.LCode)

	require.True(t, len(toks) >= 7)
	assert.Equal(t, lexer.TagInt, toks[0].Tag)
	assert.Equal(t, int64(255), toks[0].Int)
	assert.Equal(t, lexer.TagInt, toks[2].Tag)
	assert.Equal(t, int64(2), toks[2].Int)
	assert.Equal(t, lexer.TagInt, toks[4].Tag)
	assert.Equal(t, int64(15), toks[4].Int)
	assert.Equal(t, lexer.TagFloat, toks[6].Tag)
	assert.Equal(t, 150.0, math.Float64frombits(uint64(toks[6].Int)))
}

func TestScenarioStringDedup(t *testing.T) {
	out, err := lexer.Lex(src(`"foo" "foo" "bar"`))
	require.NoError(t, err)
	toks := decode(out.LCode)

	require.Len(t, toks, 4)
	assert.Equal(t, lexer.TagString, toks[0].Tag)
	assert.Equal(t, lexer.TagString, toks[1].Tag)
	assert.Equal(t, toks[0].Int, toks[1].Int)
	assert.Equal(t, lexer.TagString, toks[2].Tag)
	assert.NotEqual(t, toks[0].Int, toks[2].Int)
	assert.Equal(t, 2, out.StringCnt)
	assert.Equal(t, "foo\x00bar\x00", string(out.StringData))
}

func TestScenarioElseifSplit(t *testing.T) {
	out, err := lexer.Lex(src("elseif x then\n"))
	require.NoError(t, err)
	toks := decode(out.LCode)

	want := []lexer.Tag{lexer.TagElse, lexer.TagIf, lexer.TagIdent, lexer.TagThen, lexer.TagNewline, lexer.TagEnd}
	require.Len(t, toks, len(want))
	for i, w := range want {
		assert.Equal(t, w, toks[i].Tag, "token %d", i)
	}
}

func TestScenarioUnicodeEscape(t *testing.T) {
	out, err := lexer.Lex(src(`"\` + `u00E9"`))
	require.NoError(t, err)
	toks := decode(out.LCode)

	require.Len(t, toks, 2)
	assert.Equal(t, lexer.TagString, toks[0].Tag)
	assert.Equal(t, []byte{0xC3, 0xA9, 0x00}, out.StringData)
}

func TestScenarioUnterminatedString(t *testing.T) {
	_, err := lexer.Lex(src(`"unterminated`))
	require.Error(t, err)
	var lerr *lexer.Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, lexer.ErrUnterminatedString, lerr.Kind)
}

func TestScenarioInvalidEncoding(t *testing.T) {
	_, err := lexer.Lex(src("\xC0\x20"))
	require.Error(t, err)
	var lerr *lexer.Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, lexer.ErrInvalidEncoding, lerr.Kind)
}

func TestIdentifierDedupCountsOccurrencesNotEntries(t *testing.T) {
	out, err := lexer.Lex(src("x + x + x"))
	require.NoError(t, err)
	toks := decode(out.LCode)

	idents := 0
	for _, tk := range toks {
		if tk.Tag == lexer.TagIdent {
			idents++
			assert.Equal(t, int64(0), tk.Int)
		}
	}
	assert.Equal(t, 3, idents)
	assert.Equal(t, 1, out.IdentCnt)
}

func TestRoundTripEscapeFreeStringByteEqualsSource(t *testing.T) {
	s := "hello world, this has no escapes at all"
	out, err := lexer.Lex(src(`"` + s + `"`))
	require.NoError(t, err)
	assert.Equal(t, s+"\x00", string(out.StringData))
}

func TestBareCarriageReturnIsSyntaxError(t *testing.T) {
	_, err := lexer.Lex(src("a\rb"))
	require.Error(t, err)
	var lerr *lexer.Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, lexer.ErrSyntax, lerr.Kind)
}

func TestWindowsLineEndingEmitsOneNewline(t *testing.T) {
	out, err := lexer.Lex(src("a\r\nb"))
	require.NoError(t, err)
	toks := decode(out.LCode)

	newlines := 0
	for _, tk := range toks {
		if tk.Tag == lexer.TagNewline {
			newlines++
		}
	}
	assert.Equal(t, 1, newlines)
	assert.Equal(t, 2, out.FinalLine)
}

func TestBlockComment(t *testing.T) {
	out, err := lexer.Lex(src("a #< this is\nignored ># b"))
	require.NoError(t, err)
	toks := decode(out.LCode)

	want := []lexer.Tag{lexer.TagIdent, lexer.TagIdent, lexer.TagEnd}
	require.Len(t, toks, len(want))
}

func TestLineCommentStopsAtNewline(t *testing.T) {
	out, err := lexer.Lex(src("a # trailing comment\nb"))
	require.NoError(t, err)
	toks := decode(out.LCode)

	want := []lexer.Tag{lexer.TagIdent, lexer.TagNewline, lexer.TagIdent, lexer.TagEnd}
	require.Len(t, toks, len(want))
}

func TestBangAloneIsSyntaxError(t *testing.T) {
	_, err := lexer.Lex(src("!x"))
	require.Error(t, err)
	var lerr *lexer.Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, lexer.ErrSyntax, lerr.Kind)
}

func TestMultiCharOperatorsKeepLookaheadWhenNotExtending(t *testing.T) {
	out, err := lexer.Lex(src("a != b <= c -> d . e"))
	require.NoError(t, err)
	toks := decode(out.LCode)

	want := []lexer.Tag{
		lexer.TagIdent, lexer.TagNe, lexer.TagIdent, lexer.TagLe, lexer.TagIdent,
		lexer.TagArrow, lexer.TagIdent, lexer.TagDot, lexer.TagIdent, lexer.TagEnd,
	}
	require.Len(t, toks, len(want))
	for i, w := range want {
		assert.Equal(t, w, toks[i].Tag, "token %d", i)
	}
}
