// Package syntax implements lexical and syntactic analysis for the Lox programming language.
package syntax

import (
	"fmt"
	"strconv"
)

// Kind represents the type of a lexical token.
type Kind uint

const (
	// Special tokens
	_EOF Kind = iota // end of file

	// Single-character tokens
	_Lparen // (
	_Rparen // )
	_Lbrace // {
	_Rbrace // }
	_Comma  // ,
	_Dot    // .
	_Minus  // -
	_Plus   // +
	_Semi   // ;
	_Slash  // /
	_Star   // *

	// One or two character tokens
	_Bang         // !
	_BangEqual    // !=
	_Equal        // =
	_EqualEqual   // ==
	_Greater      // >
	_GreaterEqual // >=
	_Less         // <
	_LessEqual    // <=

	// Literals
	_Identifier // foo, Bar, _baz
	_String     // "text"
	_Number     // 12, 3.5

	// Keywords
	_And
	_Class
	_Else
	_False
	_Fun
	_For
	_If
	_Nil
	_Or
	_Print
	_Return
	_Super
	_This
	_True
	_Var
	_While

	kindCount
)

// kindNames maps kinds to their canonical names.
var kindNames = [...]string{
	_EOF: "EOF",

	_Lparen: "LEFT_PAREN",
	_Rparen: "RIGHT_PAREN",
	_Lbrace: "LEFT_BRACE",
	_Rbrace: "RIGHT_BRACE",
	_Comma:  "COMMA",
	_Dot:    "DOT",
	_Minus:  "MINUS",
	_Plus:   "PLUS",
	_Semi:   "SEMICOLON",
	_Slash:  "SLASH",
	_Star:   "STAR",

	_Bang:         "BANG",
	_BangEqual:    "BANG_EQUAL",
	_Equal:        "EQUAL",
	_EqualEqual:   "EQUAL_EQUAL",
	_Greater:      "GREATER",
	_GreaterEqual: "GREATER_EQUAL",
	_Less:         "LESS",
	_LessEqual:    "LESS_EQUAL",

	_Identifier: "IDENTIFIER",
	_String:     "STRING",
	_Number:     "NUMBER",

	_And:    "AND",
	_Class:  "CLASS",
	_Else:   "ELSE",
	_False:  "FALSE",
	_Fun:    "FUN",
	_For:    "FOR",
	_If:     "IF",
	_Nil:    "NIL",
	_Or:     "OR",
	_Print:  "PRINT",
	_Return: "RETURN",
	_Super:  "SUPER",
	_This:   "THIS",
	_True:   "TRUE",
	_Var:    "VAR",
	_While:  "WHILE",
}

// String returns the canonical name of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Precedence returns the binding power of k as an infix operator.
// Returns 0 for non-operators.
// Precedence levels (higher = binds tighter):
//
//	1: or
//	2: and
//	3: == !=
//	4: < <= > >=
//	5: + -
//	6: * /
func (k Kind) Precedence() int {
	switch k {
	case _Or:
		return 1
	case _And:
		return 2
	case _EqualEqual, _BangEqual:
		return 3
	case _Less, _LessEqual, _Greater, _GreaterEqual:
		return 4
	case _Plus, _Minus:
		return 5
	case _Star, _Slash:
		return 6
	}
	return 0
}

// IsLogical reports whether k is a short-circuit operator.
func (k Kind) IsLogical() bool {
	return k == _And || k == _Or
}

// IsEOF reports whether k is the EOF kind.
func (k Kind) IsEOF() bool {
	return k == _EOF
}

// Exported kinds for the resolver, interpreter and driver.
const (
	EOF          Kind = _EOF
	LeftParen    Kind = _Lparen
	RightParen   Kind = _Rparen
	LeftBrace    Kind = _Lbrace
	RightBrace   Kind = _Rbrace
	Minus        Kind = _Minus
	Plus         Kind = _Plus
	Slash        Kind = _Slash
	Star         Kind = _Star
	Bang         Kind = _Bang
	BangEqual    Kind = _BangEqual
	EqualEqual   Kind = _EqualEqual
	Greater      Kind = _Greater
	GreaterEqual Kind = _GreaterEqual
	Less         Kind = _Less
	LessEqual    Kind = _LessEqual
	And          Kind = _And
	Or           Kind = _Or
	Identifier   Kind = _Identifier
	Number       Kind = _Number
	String       Kind = _String
)

// Token is a single lexical unit. Tokens are values and are never mutated
// after the scanner produces them.
type Token struct {
	Kind    Kind
	Lexeme  string // exact source text
	Literal any    // float64 for NUMBER, string for STRING, nil otherwise
	Line    int    // 1-based line where the token starts
	Col     int    // 1-based column, in runes, where the token starts
}

// String renders the token as "KIND lexeme literal".
func (t Token) String() string {
	return fmt.Sprintf("%s %s %s", t.Kind, t.Lexeme, literalString(t.Literal))
}

func literalString(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	}
	return fmt.Sprint(v)
}

// keywords maps reserved words to their kinds.
var keywords = map[string]Kind{
	"and":    _And,
	"class":  _Class,
	"else":   _Else,
	"false":  _False,
	"for":    _For,
	"fun":    _Fun,
	"if":     _If,
	"nil":    _Nil,
	"or":     _Or,
	"print":  _Print,
	"return": _Return,
	"super":  _Super,
	"this":   _This,
	"true":   _True,
	"var":    _Var,
	"while":  _While,
}

// LookupKeyword returns the keyword kind for ident, or IDENTIFIER if ident
// is not reserved.
func LookupKeyword(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return _Identifier
}
