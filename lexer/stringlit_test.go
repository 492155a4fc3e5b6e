package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rill-lang/rill/lexer"
)

func TestBadEscapeSequence(t *testing.T) {
	_, err := lexer.Lex(src(`"\q"`))
	require.Error(t, err)
	var lerr *lexer.Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, lexer.ErrBadEscape, lerr.Kind)
}

func TestBadUnicodeEscapeNonHex(t *testing.T) {
	_, err := lexer.Lex(src(`"\xZZ"`))
	require.Error(t, err)
	var lerr *lexer.Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, lexer.ErrBadUnicodeEscape, lerr.Kind)
}

func TestBadUnicodeEscapeOutOfRange(t *testing.T) {
	_, err := lexer.Lex(src(`"\U00110000"`))
	require.Error(t, err)
	var lerr *lexer.Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, lexer.ErrBadUnicodeEscape, lerr.Kind)
}

func TestNulEscapeUsesModifiedUTF8(t *testing.T) {
	out, err := lexer.Lex(src(`"a\0b"`))
	require.NoError(t, err)
	assert.Equal(t, []byte{'a', 0xC0, 0x80, 'b', 0x00}, out.StringData)
}

func TestLineContinuationConsumesNewlineSilently(t *testing.T) {
	out, err := lexer.Lex(src("\"a\\\nb\""))
	require.NoError(t, err)
	assert.Equal(t, "ab\x00", string(out.StringData))
}

func TestLongStringNeverDeduplicated(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	s := string(long)
	out, err := lexer.Lex(src(`"` + s + `" "` + s + `"`))
	require.NoError(t, err)
	toks := decode(out.LCode)
	require.Len(t, toks, 3)
	assert.NotEqual(t, toks[0].Int, toks[1].Int, "strings at or above the dedup cutoff always get a fresh id")
}
