package resolve

import (
	"fmt"

	"github.com/you-not-fish/golox/internal/syntax"
)

// Error represents a static resolution error.
type Error struct {
	Tok syntax.Token
	Msg string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Tok.Kind == syntax.EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Tok.Line, e.Msg)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Tok.Line, e.Tok.Lexeme, e.Msg)
}

// ErrorHandler is a function called for each static error.
type ErrorHandler func(tok syntax.Token, msg string)

// error reports a static error at tok.
func (r *Resolver) error(tok syntax.Token, msg string) {
	if r.errors == 0 {
		r.first = &Error{Tok: tok, Msg: msg}
	}
	r.errors++

	if r.conf.Error != nil {
		r.conf.Error(tok, msg)
	}
}
