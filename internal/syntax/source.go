package syntax

import "unicode/utf8"

// ErrorHandler is called for each lexical error with the 1-based line and
// column of the offending character.
type ErrorHandler func(line, col int, msg string)

// source is a character reader with position tracking.
// It decodes UTF-8 and provides one rune of lookahead beyond the current one.
type source struct {
	buf []byte

	// Position of ch
	line int // 1-based
	col  int // 1-based, counted in runes

	ch   rune // current character, -1 at EOF
	offs int  // byte offset of ch
	next int  // byte offset just past ch

	errh ErrorHandler
}

// newSource creates a reader over src and primes the first character.
func newSource(src []byte, errh ErrorHandler) *source {
	s := &source{
		buf:  src,
		line: 1,
		col:  0, // incremented to 1 by the first nextch
		ch:   -1,
		errh: errh,
	}
	s.nextch()
	return s
}

// nextch advances to the next character.
//
// (line, col) always refers to the position of s.ch after nextch returns.
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	s.offs = s.next
	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}

	r, width := utf8.DecodeRune(s.buf[s.offs:])
	s.ch = r
	s.next = s.offs + width
}

// peekNext returns the character after s.ch without consuming anything.
func (s *source) peekNext() rune {
	if s.next >= len(s.buf) {
		return -1
	}
	r, _ := utf8.DecodeRune(s.buf[s.next:])
	return r
}

// errorAt reports a lexical error at the given position.
func (s *source) errorAt(line, col int, msg string) {
	if s.errh != nil {
		s.errh(line, col, msg)
	}
}

// Character classification helpers

// isLetter reports whether r may start an identifier (a-z, A-Z, or _).
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

// isDigit reports whether r is a decimal digit.
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isWhitespace reports whether r is skipped between tokens.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}
