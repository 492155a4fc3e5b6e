// Package lexer turns a stream of source bytes into L-code: a compact
// binary token stream plus deduplicated string-literal and identifier
// arenas. It validates UTF-8 as it reads, parses numeric literals in four
// bases with overflow-aware integer-to-float promotion, handles string
// escapes including arbitrary Unicode code points, and recognizes
// keywords via a hand-coded trie.
package lexer

import (
	"github.com/rill-lang/rill/bytebuf"
	"github.com/rill-lang/rill/strset"
	"github.com/rill-lang/rill/utf8stream"
)

// Source is a pull-based byte source. ReadByte returns the next byte, or
// ok=false at end of input. Lex wraps any Source in a UTF-8 validating
// filter before handing it to the state machine.
type Source = utf8stream.Source

// Lexer is the lexer state machine, driven one byte of lookahead at a
// time: every production either dispatches on the current lookahead byte
// or advances past it to inspect the next one, never buffering more than
// a single byte. Use Lex to run it to completion.
type Lexer struct {
	src  *utf8stream.Filter
	ch   byte
	eof  bool
	line int

	enc      *encoder
	identBuf *bytebuf.Buffer
	strBuf   *bytebuf.Buffer
	identSet *strset.Set
	strSet   *strset.Set

	identCount int
	strCount   int

	opts Options
}

func newLexer(src Source, opts Options) *Lexer {
	enc := newEncoder(opts)
	l := &Lexer{
		src:      utf8stream.NewFilter(src),
		line:     1,
		enc:      enc,
		identBuf: enc.ident,
		strBuf:   enc.str,
		opts:     opts,
	}
	l.identSet = strset.New(func() []byte { return l.identBuf.Bytes() })
	l.strSet = strset.New(func() []byte { return l.strBuf.Bytes() })
	l.advance()
	return l
}

// advance reads the next byte into l.ch, setting l.eof once the source is
// exhausted.
func (l *Lexer) advance() {
	b, ok := l.src.ReadByte()
	if !ok {
		l.eof = true
		l.ch = 0
		return
	}
	l.ch = b
}

func (l *Lexer) syntaxError() error {
	return l.errorAt(ErrSyntax)
}

func (l *Lexer) errorAt(kind ErrorKind) error {
	return newError(kind, l.line)
}

// Lex runs the lexer to completion over src, returning the completed
// Output on success. On any error all owned buffers are discarded and
// nothing is returned: a partial token stream is never handed back. The
// UTF-8 filter's validity is checked first, since a mid-stream encoding
// violation takes precedence over whatever the state machine made of the
// truncated byte sequence it saw.
func Lex(src Source) (*Output, error) {
	return LexWithOptions(src, DefaultOptions())
}

// LexWithOptions runs the lexer with explicit buffer-growth and dedup
// tuning, for callers that load config.Config overrides.
func LexWithOptions(src Source, opts Options) (*Output, error) {
	l := newLexer(src, opts)
	err := l.run()
	if l.src.Invalid() {
		return nil, newError(ErrInvalidEncoding, l.line)
	}
	if err != nil {
		return nil, err
	}
	return l.enc.finish(l.strCount, l.identCount, l.line), nil
}

func (l *Lexer) run() error {
	for {
		switch {
		case l.eof:
			l.enc.emitTag(TagEnd)
			return nil
		case l.ch == '\n':
			l.enc.emitTag(TagNewline)
			l.line++
			l.advance()
		case l.ch == '\r':
			l.advance()
			if l.ch != '\n' {
				return l.syntaxError()
			}
			// do not advance past the '\n' here: the next loop
			// iteration observes it and emits the newline token itself,
			// so a Windows line ending produces exactly one token.
		case isSpace(l.ch):
			l.advance()
		case l.ch == '#':
			l.skipComment()
		case isDigit(l.ch):
			if err := l.lexNumber(false); err != nil {
				return err
			}
		case l.ch == '"':
			l.advance()
			if err := l.lexString(); err != nil {
				return err
			}
		case isIdentStart(l.ch):
			l.lexIdentOrKeyword()
		default:
			if err := l.lexPunct(); err != nil {
				return err
			}
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\v' || c == '\f'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

// skipComment consumes a '#' line comment (up to the next newline) or a
// '#<' block comment (terminated by the first '>#'). l.ch is '#' on entry;
// neither comment shape produces a token.
// A block comment still counts the newlines it swallows, so line numbers
// reported for code after it stay accurate even though the comment itself
// produces no newline token.
func (l *Lexer) skipComment() {
	l.advance()
	if l.ch == '<' {
		l.advance()
		for !l.eof {
			for !l.eof && l.ch != '>' {
				if l.ch == '\n' {
					l.line++
				}
				l.advance()
			}
			if l.eof {
				break
			}
			l.advance()
			if l.ch == '#' {
				l.advance()
				break
			}
		}
		return
	}
	for !l.eof && l.ch != '\n' {
		l.advance()
	}
}

// lexIdentOrKeyword reads the maximal run of identifier characters,
// checks the elseif special case and the keyword trie, and otherwise
// deduplicates and emits an identifier reference.
func (l *Lexer) lexIdentOrKeyword() {
	mark := l.identBuf.Len()
	for isIdentChar(l.ch) {
		l.identBuf.PushByte(l.opts.IdentIncLog2, l.ch)
		l.advance()
	}
	l.identBuf.PushByte(l.opts.IdentIncLog2, 0)
	word := string(l.identBuf.Bytes()[mark : l.identBuf.Len()-1])

	if word == "elseif" {
		l.identBuf.Truncate(mark)
		l.enc.emitTag(TagElse)
		l.enc.emitTag(TagIf)
		return
	}

	if tag, ok := matchKeyword(word); ok {
		l.identBuf.Truncate(mark)
		l.enc.emitTag(tag)
		return
	}

	length := len(word)
	id, isNew := l.identSet.Insert(mark, length, l.identCount)
	if isNew {
		l.identCount++
	} else {
		l.identBuf.Truncate(mark)
	}
	l.enc.emitTagWithID(TagIdent, id)
}
