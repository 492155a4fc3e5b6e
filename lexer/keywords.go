package lexer

// matchKeyword recognizes a keyword spelling via a hand-coded trie, one
// case branch per first letter and nested branches for shared prefixes,
// rather than a generic map lookup.
func matchKeyword(s string) (Tag, bool) {
	if len(s) == 0 {
		return 0, false
	}
	switch s[0] {
	case 'a':
		if s[1:] == "nd" {
			return TagAnd, true
		}
	case 'b':
		if s[1:] == "reak" {
			return TagBreak, true
		}
	case 'c':
		if len(s) < 2 {
			return 0, false
		}
		switch s[1] {
		case 'a':
			if s[2:] == "tch" {
				return TagCatch, true
			}
		case 'o':
			if s[2:] == "ntinue" {
				return TagContinue, true
			}
		}
	case 'd':
		if len(s) < 2 {
			return 0, false
		}
		switch s[1] {
		case 'e':
			if s[2:] == "lete" {
				return TagDelete, true
			}
		case 'o':
			if s[2:] == "" {
				return TagDo, true
			}
		}
	case 'e':
		if len(s) < 2 {
			return 0, false
		}
		switch s[1] {
		case 'l':
			if s[2:] == "se" {
				return TagElse, true
			}
		case 'n':
			if s[2:] == "d" {
				return TagEnd_, true
			}
		}
	case 'f':
		if len(s) < 2 {
			return 0, false
		}
		switch s[1] {
		case 'a':
			if s[2:] == "lse" {
				return TagFalse, true
			}
		case 'o':
			if s[2:] == "r" {
				return TagFor, true
			}
		case 'u':
			if s[2:] == "nction" {
				return TagFunction, true
			}
		}
	case 'i':
		if s[1:] == "f" {
			return TagIf, true
		}
	case 'n':
		if len(s) < 2 {
			return 0, false
		}
		switch s[1] {
		case 'o':
			if s[2:] == "t" {
				return TagNot, true
			}
		case 'u':
			if s[2:] == "ll" {
				return TagNull, true
			}
		}
	case 'o':
		if s[1:] == "r" {
			return TagOr, true
		}
	case 'p':
		if s[1:] == "ublic" {
			return TagPublic, true
		}
	case 'r':
		if s[1:] == "eturn" {
			return TagReturn, true
		}
	case 't':
		if len(s) < 2 {
			return 0, false
		}
		switch s[1] {
		case 'h':
			if s[2:] == "en" {
				return TagThen, true
			}
		case 'r':
			if len(s) < 3 {
				return 0, false
			}
			switch s[2] {
			case 'u':
				if s[3:] == "e" {
					return TagTrue, true
				}
			case 'y':
				if s[3:] == "" {
					return TagTry, true
				}
			}
		}
	case 'w':
		if len(s) < 2 {
			return 0, false
		}
		switch s[1] {
		case 'h':
			if s[2:] == "ile" {
				return TagWhile, true
			}
		case 'i':
			if s[2:] == "th" {
				return TagWith, true
			}
		}
	}
	return 0, false
}
