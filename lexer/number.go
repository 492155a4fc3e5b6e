package lexer

import "github.com/rill-lang/rill/arith"

// lexNumber parses a numeric literal starting at the lexer's current
// lookahead byte, which must already be a digit, or (if leadingDot is set)
// a digit immediately following a consumed '.'. It emits an int or float
// L-code record and returns any syntax error.
func (l *Lexer) lexNumber(leadingDot bool) error {
	isFloat := leadingDot
	base := 10
	var ival int64
	var fval float64

	if !isFloat {
		if l.ch == '0' {
			l.advance()
			switch l.ch {
			case 'x', 'X':
				base = 16
				l.advance()
				if !isHexDigit(l.ch) {
					return l.syntaxError()
				}
			case 'o', 'O':
				base = 8
				l.advance()
				if !isOctalDigit(l.ch) {
					return l.syntaxError()
				}
			case 'b', 'B':
				base = 2
				l.advance()
				if !isBinaryDigit(l.ch) {
					return l.syntaxError()
				}
			}
		}

		for isDigitBase(l.ch, base) {
			d := int64(digitValue(l.ch, base))
			b := int64(base)
			if arith.MulOverflows(ival, b) || arith.AddOverflows(ival*b, d) {
				// Overflow detected: snapshot the accumulator into a float
				// at the instant of overflow and continue accumulating the
				// rest of the integer part in float.
				fval = float64(ival)
				for isDigitBase(l.ch, base) {
					fval = fval*float64(base) + float64(digitValue(l.ch, base))
					l.advance()
				}
				isFloat = true
				break
			}
			ival = ival*b + d
			l.advance()
		}
	}

	// The '.' check runs whether isFloat became true here or was already
	// set by overflow promotion above, so a fractional part after an
	// overflowed integer part (e.g. "99999999999999999999.5") is still
	// consumed instead of being left for the next token.
	if l.ch == '.' {
		if base != 10 {
			return l.syntaxError()
		}
		if !isFloat {
			isFloat = true
			fval = float64(ival)
		}
		l.advance()
	} else if !isFloat && (l.ch == 'e' || l.ch == 'E') {
		isFloat = true
		fval = float64(ival)
	}

	if isFloat {
		var off int64
		for isDigit(l.ch) {
			fval = fval*10 + float64(l.ch-'0')
			l.advance()
			off--
		}

		if l.ch == 'e' || l.ch == 'E' {
			l.advance()
			neg := false
			if l.ch == '+' {
				l.advance()
			} else if l.ch == '-' {
				neg = true
				l.advance()
			}
			if !isDigit(l.ch) {
				return l.syntaxError()
			}
			var exp int64
			overflowed := false
			for isDigit(l.ch) {
				d := int64(l.ch - '0')
				next := exp*10 + d
				if next < exp {
					overflowed = true
				} else {
					exp = next
				}
				l.advance()
			}
			if overflowed {
				if neg {
					exp = minInt64
				} else {
					exp = maxInt64
				}
			} else if neg {
				exp = -exp
			}
			off = addExpSaturating(off, exp)
		}
		fval = arith.AdjustExp10(fval, off)
		l.enc.emitFloat(fval)
		return nil
	}

	l.enc.emitInt(ival)
	return nil
}

const (
	minInt64 = -1 << 63
	maxInt64 = 1<<63 - 1
)

// addExpSaturating adds two exponent offsets, saturating to
// [minInt64, maxInt64] on overflow, matching add_exp in the reference
// lexer.
func addExpSaturating(a, b int64) int64 {
	if b > 0 && a+b < a {
		return maxInt64
	}
	if b < 0 && a+b > a {
		return minInt64
	}
	return a + b
}

func isDigit(c byte) bool        { return c >= '0' && c <= '9' }
func isHexDigit(c byte) bool     { return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }
func isOctalDigit(c byte) bool   { return c >= '0' && c <= '7' }
func isBinaryDigit(c byte) bool  { return c == '0' || c == '1' }

func isDigitBase(c byte, base int) bool {
	switch base {
	case 2:
		return isBinaryDigit(c)
	case 8:
		return isOctalDigit(c)
	case 16:
		return isHexDigit(c)
	default:
		return isDigit(c)
	}
}

func digitValue(c byte, base int) int {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a':
		v = 10 + int(c-'a')
	case c >= 'A':
		v = 10 + int(c-'A')
	}
	return v
}
