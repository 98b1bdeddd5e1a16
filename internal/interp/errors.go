package interp

import (
	"fmt"

	"github.com/you-not-fish/golox/internal/syntax"
)

// Frame is one active call at the time a runtime error was raised.
type Frame struct {
	Name string // callee name
	Line int    // line of the call site
}

// String returns the frame as "at name (line L)".
func (f Frame) String() string {
	return fmt.Sprintf("at %s (line %d)", f.Name, f.Line)
}

// RuntimeError is an error raised while executing a program. It aborts the
// statement list being executed.
type RuntimeError struct {
	Token  syntax.Token // token the error is reported at
	Msg    string
	Frames []Frame // innermost call first
}

// Error returns the error in the user-visible form "msg\n[line L]".
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Msg, e.Token.Line)
}

// runtimeErrorf builds a RuntimeError at tok.
func runtimeErrorf(tok syntax.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Msg: fmt.Sprintf(format, args...)}
}
