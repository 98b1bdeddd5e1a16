package syntax

import "strconv"

// Scanner performs lexical analysis on Lox source code.
type Scanner struct {
	source // embedded character reader

	// Start of the token being scanned
	start     int
	startLine int
	startCol  int
}

// NewScanner creates a Scanner for src.
// The errh function is called for each lexical error; if nil, errors are silently ignored.
func NewScanner(src []byte, errh ErrorHandler) *Scanner {
	return &Scanner{source: *newSource(src, errh)}
}

// Scan converts src into tokens. The result always ends with exactly one
// EOF token; lexical errors are reported through errh and scanning continues.
func Scan(src string, errh ErrorHandler) []Token {
	s := NewScanner([]byte(src), errh)
	var toks []Token
	for {
		tok := s.Next()
		toks = append(toks, tok)
		if tok.Kind == _EOF {
			return toks
		}
	}
}

// Next scans and returns the next token. Once the input is exhausted it
// returns EOF on every call.
func (s *Scanner) Next() Token {
redo:
	s.skipWhitespace()

	s.start = s.offs
	s.startLine = s.line
	s.startCol = s.col

	switch {
	case s.ch < 0:
		return Token{Kind: _EOF, Line: s.line, Col: s.col}

	case isLetter(s.ch):
		return s.scanIdent()

	case isDigit(s.ch):
		return s.scanNumber()

	case s.ch == '"':
		if tok, ok := s.scanString(); ok {
			return tok
		}
		goto redo
	}

	if tok, ok := s.scanOperator(); ok {
		return tok
	}
	goto redo
}

// skipWhitespace skips spaces, tabs, carriage returns and newlines.
func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

// token builds a token spanning from the recorded start to the current offset.
func (s *Scanner) token(kind Kind, lit any) Token {
	return Token{
		Kind:    kind,
		Lexeme:  string(s.buf[s.start:s.offs]),
		Literal: lit,
		Line:    s.startLine,
		Col:     s.startCol,
	}
}

// scanIdent scans an identifier or keyword.
func (s *Scanner) scanIdent() Token {
	for isLetter(s.ch) || isDigit(s.ch) {
		s.nextch()
	}
	lexeme := string(s.buf[s.start:s.offs])
	return s.token(LookupKeyword(lexeme), nil)
}

// scanNumber scans a number literal. A '.' is part of the number only when a
// digit follows it, so "1.foo" scans as NUMBER DOT IDENTIFIER.
func (s *Scanner) scanNumber() Token {
	for isDigit(s.ch) {
		s.nextch()
	}
	if s.ch == '.' && isDigit(s.peekNext()) {
		s.nextch() // consume '.'
		for isDigit(s.ch) {
			s.nextch()
		}
	}

	// Out-of-range literals are not an error: ParseFloat returns +Inf.
	v, _ := strconv.ParseFloat(string(s.buf[s.start:s.offs]), 64)
	return s.token(_Number, v)
}

// scanString scans a string literal. Strings may span lines and have no
// escape sequences. It returns false when the input ends before the closing
// quote.
func (s *Scanner) scanString() (Token, bool) {
	s.nextch() // skip opening "

	for s.ch != '"' && s.ch >= 0 {
		s.nextch()
	}

	if s.ch < 0 {
		s.errorAt(s.startLine, s.startCol, "Unterminated string.")
		return Token{}, false
	}

	s.nextch() // skip closing "
	value := string(s.buf[s.start+1 : s.offs-1])
	return s.token(_String, value), true
}

// scanOperator scans punctuation and operators.
// It returns false when nothing was produced: a comment was skipped or the
// character was not recognized.
func (s *Scanner) scanOperator() (Token, bool) {
	ch := s.ch
	s.nextch()

	switch ch {
	case '(':
		return s.token(_Lparen, nil), true
	case ')':
		return s.token(_Rparen, nil), true
	case '{':
		return s.token(_Lbrace, nil), true
	case '}':
		return s.token(_Rbrace, nil), true
	case ',':
		return s.token(_Comma, nil), true
	case '.':
		return s.token(_Dot, nil), true
	case '-':
		return s.token(_Minus, nil), true
	case '+':
		return s.token(_Plus, nil), true
	case ';':
		return s.token(_Semi, nil), true
	case '*':
		return s.token(_Star, nil), true

	case '/':
		if s.ch == '/' {
			s.skipLineComment()
			return Token{}, false
		}
		return s.token(_Slash, nil), true

	case '!':
		return s.token(s.pick('=', _BangEqual, _Bang), nil), true
	case '=':
		return s.token(s.pick('=', _EqualEqual, _Equal), nil), true
	case '<':
		return s.token(s.pick('=', _LessEqual, _Less), nil), true
	case '>':
		return s.token(s.pick('=', _GreaterEqual, _Greater), nil), true
	}

	s.errorAt(s.startLine, s.startCol, "Unexpected character.")
	return Token{}, false
}

// pick consumes next and returns yes if the current character is next,
// otherwise it returns no.
func (s *Scanner) pick(next rune, yes, no Kind) Kind {
	if s.ch == next {
		s.nextch()
		return yes
	}
	return no
}

// skipLineComment skips a line comment (from // to end of line).
func (s *Scanner) skipLineComment() {
	// Already consumed the first /
	s.nextch()
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}
