package lexer

// lexString parses a string literal; l.ch must be the character following
// the opening quote. It appends the decoded bytes (plus a trailing NUL) to
// the string arena, deduplicates if short enough, and emits the
// string-literal L-code record.
func (l *Lexer) lexString() error {
	mark := l.strBuf.Len()

loop:
	for {
		switch {
		case l.eof || l.ch == '\n' || l.ch == '\r':
			l.strBuf.Truncate(mark)
			return l.errorAt(ErrUnterminatedString)
		case l.ch == '"':
			l.advance()
			break loop
		case l.ch == '\\':
			if err := l.lexEscape(); err != nil {
				l.strBuf.Truncate(mark)
				return err
			}
		default:
			l.strBuf.PushByte(l.opts.StringIncLog2, l.ch)
			l.advance()
		}
	}

	l.strBuf.PushByte(l.opts.StringIncLog2, 0)
	length := l.strBuf.Len() - mark - 1

	var id int
	if length < l.opts.StringDedupCutoff {
		var isNew bool
		id, isNew = l.strSet.Insert(mark, length, l.strCount)
		if isNew {
			l.strCount++
		} else {
			l.strBuf.Truncate(mark)
		}
	} else {
		id = l.strCount
		l.strCount++
	}

	l.enc.emitTagWithID(TagString, id)
	return nil
}

// lexEscape parses one escape sequence; l.ch is the backslash. On success
// it appends the decoded byte(s) to the string arena and advances past the
// escape.
func (l *Lexer) lexEscape() error {
	l.advance() // consume '\'
	if l.eof {
		return l.errorAt(ErrUnterminatedString)
	}

	switch l.ch {
	case '\\', '"':
		l.strBuf.PushByte(l.opts.StringIncLog2, l.ch)
		l.advance()
	case '0':
		// Modified-UTF-8 "no embedded NUL" convention: encode as the two
		// bytes 0xC0 0x80 rather than a literal 0x00.
		l.strBuf.PushByte(l.opts.StringIncLog2, 0xC0)
		l.strBuf.PushByte(l.opts.StringIncLog2, 0x80)
		l.advance()
	case 'b':
		l.strBuf.PushByte(l.opts.StringIncLog2, '\b')
		l.advance()
	case 'f':
		l.strBuf.PushByte(l.opts.StringIncLog2, '\f')
		l.advance()
	case 'n':
		l.strBuf.PushByte(l.opts.StringIncLog2, '\n')
		l.advance()
	case 'r':
		l.strBuf.PushByte(l.opts.StringIncLog2, '\r')
		l.advance()
	case 't':
		l.strBuf.PushByte(l.opts.StringIncLog2, '\t')
		l.advance()
	case 'x':
		return l.lexUnicodeEscape(2)
	case 'u':
		return l.lexUnicodeEscape(4)
	case 'U':
		return l.lexUnicodeEscape(8)
	case '\n':
		// line continuation: consume and emit nothing
		l.advance()
	case '\r':
		l.advance()
		if l.ch != '\n' {
			return l.errorAt(ErrBadEscape)
		}
		l.advance()
	default:
		return l.errorAt(ErrBadEscape)
	}
	return nil
}

// lexUnicodeEscape parses exactly n hex digits after \x, \u, or \U and
// appends the resulting code point's UTF-8 encoding to the string arena.
func (l *Lexer) lexUnicodeEscape(n int) error {
	l.advance() // consume the x/u/U
	var v rune
	for i := 0; i < n; i++ {
		if !isHexDigit(l.ch) {
			return l.errorAt(ErrBadUnicodeEscape)
		}
		v = v<<4 | rune(hexDigitValue(l.ch))
		l.advance()
	}
	if v >= 0x110000 {
		return l.errorAt(ErrBadUnicodeEscape)
	}
	l.appendUTF8(v)
	return nil
}

func hexDigitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return 10 + int(c-'a')
	default:
		return 10 + int(c-'A')
	}
}

// appendUTF8 encodes v per the canonical UTF-8 scheme (1-4 bytes) and
// appends it to the string arena. Unlike encoding/utf8, this accepts the
// full 0..0x10FFFF range the lexer already validated, including
// surrogate-range values a stricter encoder might reject.
func (l *Lexer) appendUTF8(v rune) {
	switch {
	case v < 0x80:
		l.strBuf.PushByte(l.opts.StringIncLog2, byte(v))
	case v < 0x800:
		l.strBuf.PushByte(l.opts.StringIncLog2, byte(0xC0|(v>>6)))
		l.strBuf.PushByte(l.opts.StringIncLog2, byte(0x80|(v&0x3F)))
	case v < 0x10000:
		l.strBuf.PushByte(l.opts.StringIncLog2, byte(0xE0|(v>>12)))
		l.strBuf.PushByte(l.opts.StringIncLog2, byte(0x80|((v>>6)&0x3F)))
		l.strBuf.PushByte(l.opts.StringIncLog2, byte(0x80|(v&0x3F)))
	default:
		l.strBuf.PushByte(l.opts.StringIncLog2, byte(0xF0|(v>>18)))
		l.strBuf.PushByte(l.opts.StringIncLog2, byte(0x80|((v>>12)&0x3F)))
		l.strBuf.PushByte(l.opts.StringIncLog2, byte(0x80|((v>>6)&0x3F)))
		l.strBuf.PushByte(l.opts.StringIncLog2, byte(0x80|(v&0x3F)))
	}
}
