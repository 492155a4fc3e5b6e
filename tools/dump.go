// Package tools renders an L-code output record as human-readable text,
// turning a machine-oriented artifact into something a developer can
// read on a terminal.
package tools

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/rill-lang/rill/lexer"
)

// DumpOptions controls DumpLCode's rendering.
type DumpOptions struct {
	// ShowOffsets prefixes each line with the tag's byte offset in the
	// L-code stream.
	ShowOffsets bool
}

// DefaultDumpOptions returns the default rendering: one line per token,
// no offsets.
func DefaultDumpOptions() DumpOptions {
	return DumpOptions{}
}

var tagNames = map[lexer.Tag]string{
	lexer.TagEnd:       "end",
	lexer.TagNewline:   "newline",
	lexer.TagSep:       "sep",
	lexer.TagAnd:       "and",
	lexer.TagBreak:     "break",
	lexer.TagCatch:     "catch",
	lexer.TagContinue:  "continue",
	lexer.TagDelete:    "delete",
	lexer.TagDo:        "do",
	lexer.TagElse:      "else",
	lexer.TagEnd_:      "end-kw",
	lexer.TagFalse:     "false",
	lexer.TagFor:       "for",
	lexer.TagFunction:  "function",
	lexer.TagIf:        "if",
	lexer.TagNot:       "not",
	lexer.TagNull:      "null",
	lexer.TagOr:        "or",
	lexer.TagPublic:    "public",
	lexer.TagReturn:    "return",
	lexer.TagThen:      "then",
	lexer.TagTrue:      "true",
	lexer.TagTry:       "try",
	lexer.TagWhile:     "while",
	lexer.TagWith:      "with",
	lexer.TagIdent:     "ident",
	lexer.TagInt:       "int",
	lexer.TagFloat:     "float",
	lexer.TagString:    "string",
	lexer.TagNe:        "!=",
	lexer.TagMod:       "%",
	lexer.TagAmp:       "&",
	lexer.TagLParen:    "(",
	lexer.TagRParen:    ")",
	lexer.TagMul:       "*",
	lexer.TagAdd:       "+",
	lexer.TagComma:     ",",
	lexer.TagSub:       "-",
	lexer.TagArrow:     "->",
	lexer.TagDot:       ".",
	lexer.TagDotQue:    ".?",
	lexer.TagEllipsis:  "...",
	lexer.TagDiv:       "/",
	lexer.TagIdiv:      "//",
	lexer.TagColon:     ":",
	lexer.TagLt:        "<",
	lexer.TagLe:        "<=",
	lexer.TagLshift:    "<<",
	lexer.TagSet:       "=",
	lexer.TagEq:        "==",
	lexer.TagGt:        ">",
	lexer.TagGe:        ">=",
	lexer.TagRshift:    ">>",
	lexer.TagQueQue:    "??",
	lexer.TagLBracket:  "[",
	lexer.TagRBracket:  "]",
	lexer.TagCaret:     "^",
	lexer.TagLBrace:    "{",
	lexer.TagPipe:      "|",
	lexer.TagRBrace:    "}",
	lexer.TagTilde:     "~",
}

func tagName(t lexer.Tag) string {
	if n, ok := tagNames[t]; ok {
		return n
	}
	return fmt.Sprintf("tag(%d)", t)
}

func hasPayload(t lexer.Tag) bool {
	switch t {
	case lexer.TagIdent, lexer.TagInt, lexer.TagFloat, lexer.TagString:
		return true
	default:
		return false
	}
}

// TagName returns the human-readable name DumpLCode prints for t, for
// callers outside this package (lexsvc's token-stream encoding) that need
// the same naming without duplicating the tag table.
func TagName(t lexer.Tag) string {
	return tagName(t)
}

// HasPayload reports whether t is followed by an 8-byte payload word in
// the L-code stream.
func HasPayload(t lexer.Tag) bool {
	return hasPayload(t)
}

// DumpLCode renders out's token stream as one line per token, "tag" or
// "tag payload" depending on whether the tag carries one. Integer and
// string/identifier ids are printed as decimal, float payloads as their
// decoded value.
func DumpLCode(out *lexer.Output, opts DumpOptions) string {
	var b strings.Builder
	offset := 0
	i := 0
	for i < len(out.LCode) {
		tag := lexer.Tag(out.LCode[i])
		tagOffset := offset
		i++
		offset++

		if opts.ShowOffsets {
			fmt.Fprintf(&b, "%6d  ", tagOffset)
		}

		if !hasPayload(tag) {
			b.WriteString(tagName(tag))
			b.WriteByte('\n')
			if tag == lexer.TagEnd {
				break
			}
			continue
		}

		raw := binary.LittleEndian.Uint64(out.LCode[i : i+8])
		i += 8
		offset += 8

		switch tag {
		case lexer.TagFloat:
			fmt.Fprintf(&b, "%s %g\n", tagName(tag), math.Float64frombits(raw))
		default:
			fmt.Fprintf(&b, "%s %d\n", tagName(tag), int64(raw))
		}
	}
	return b.String()
}

// Summary is a compact statistical view of a lex output record, suitable
// for a JSON response or a one-line CLI report.
type Summary struct {
	TokenCount int `json:"token_count"`
	StringCnt  int `json:"string_count"`
	IdentCnt   int `json:"ident_count"`
	FinalLine  int `json:"final_line"`
}

// Summarize counts the tokens in out and packages the arena counts and
// final line number alongside them.
func Summarize(out *lexer.Output) Summary {
	count := 0
	i := 0
	for i < len(out.LCode) {
		tag := lexer.Tag(out.LCode[i])
		i++
		count++
		if tag == lexer.TagEnd {
			break
		}
		if hasPayload(tag) {
			i += 8
		}
	}
	return Summary{
		TokenCount: count,
		StringCnt:  out.StringCnt,
		IdentCnt:   out.IdentCnt,
		FinalLine:  out.FinalLine,
	}
}
