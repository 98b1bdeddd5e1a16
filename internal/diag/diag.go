// Package diag collects the diagnostics produced while running Lox source.
//
// A Reporter replaces process-wide error flags: each pipeline run owns one,
// every phase reports into it, and the driver asks it whether to halt and
// which exit status to use.
package diag

import (
	"fmt"

	"github.com/you-not-fish/golox/internal/syntax"
)

// Kind classifies a diagnostic by the phase that produced it.
type Kind int

const (
	Lexical Kind = iota // scanner
	Syntax              // parser
	Static              // resolver
	Runtime             // interpreter
)

var kindNames = [...]string{
	Lexical: "lexical",
	Syntax:  "syntax",
	Static:  "static",
	Runtime: "runtime",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsStatic reports whether k is detected before execution.
func (k Kind) IsStatic() bool {
	return k != Runtime
}

// Exit statuses, following sysexits.h.
const (
	ExitOK      = 0
	ExitUsage   = 64 // EX_USAGE
	ExitStatic  = 65 // EX_DATAERR
	ExitRuntime = 70 // EX_SOFTWARE
)

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Kind   Kind
	Line   int
	Col    int    // 0 when unknown
	Lexeme string // offending token text (Syntax and Static only)
	AtEnd  bool   // the offending token is EOF
	Msg    string
}

// String formats the diagnostic in the user-visible form:
//
//	[line 3] Error: Unexpected character.
//	[line 3] Error at 'x': Expect ';' after value.
//	[line 3] Error at end: Expect '}' after block.
//	Operands must be numbers.
//	[line 3]
func (d Diagnostic) String() string {
	switch {
	case d.Kind == Runtime:
		return fmt.Sprintf("%s\n[line %d]", d.Msg, d.Line)
	case d.Kind == Lexical:
		return fmt.Sprintf("[line %d] Error: %s", d.Line, d.Msg)
	case d.AtEnd:
		return fmt.Sprintf("[line %d] Error at end: %s", d.Line, d.Msg)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", d.Line, d.Lexeme, d.Msg)
}

// Pos returns the source position of the diagnostic.
func (d Diagnostic) Pos() syntax.Pos {
	return syntax.Pos{Line: d.Line, Col: d.Col}
}

// Handler is called for each diagnostic as it is reported.
type Handler func(d Diagnostic)

// Reporter accumulates diagnostics and tracks the static and runtime error
// flags for one session.
type Reporter struct {
	handler Handler
	diags   []Diagnostic

	hadError        bool // lexical, syntax or static error since the last Reset
	hadRuntimeError bool
}

// NewReporter returns a Reporter that forwards each diagnostic to h.
// h may be nil.
func NewReporter(h Handler) *Reporter {
	return &Reporter{handler: h}
}

func (r *Reporter) report(d Diagnostic) {
	if d.Kind.IsStatic() {
		r.hadError = true
	} else {
		r.hadRuntimeError = true
	}
	r.diags = append(r.diags, d)

	if r.handler != nil {
		r.handler(d)
	}
}

// ScanError reports a lexical error. It has the syntax.ErrorHandler
// signature.
func (r *Reporter) ScanError(line, col int, msg string) {
	r.report(Diagnostic{Kind: Lexical, Line: line, Col: col, Msg: msg})
}

// TokenError reports a syntax error at tok. It has the
// syntax.TokenErrorHandler signature.
func (r *Reporter) TokenError(tok syntax.Token, msg string) {
	r.report(tokenDiag(Syntax, tok, msg))
}

// StaticError reports a resolver error at tok.
func (r *Reporter) StaticError(tok syntax.Token, msg string) {
	r.report(tokenDiag(Static, tok, msg))
}

// RuntimeError reports a runtime error at the given position.
func (r *Reporter) RuntimeError(line, col int, msg string) {
	r.report(Diagnostic{Kind: Runtime, Line: line, Col: col, Msg: msg})
}

func tokenDiag(k Kind, tok syntax.Token, msg string) Diagnostic {
	return Diagnostic{
		Kind:   k,
		Line:   tok.Line,
		Col:    tok.Col,
		Lexeme: tok.Lexeme,
		AtEnd:  tok.Kind.IsEOF(),
		Msg:    msg,
	}
}

// HadError reports whether a lexical, syntax or static error was reported
// since the last Reset.
func (r *Reporter) HadError() bool {
	return r.hadError
}

// HadRuntimeError reports whether a runtime error was reported since the
// last ResetRuntime.
func (r *Reporter) HadRuntimeError() bool {
	return r.hadRuntimeError
}

// ShouldHalt reports whether execution must not start: any static error
// blocks it.
func (r *Reporter) ShouldHalt() bool {
	return r.HadError()
}

// Count returns the number of diagnostics of kind k.
func (r *Reporter) Count(k Kind) int {
	n := 0
	for _, d := range r.diags {
		if d.Kind == k {
			n++
		}
	}
	return n
}

// Reset clears the static error flag and drops collected static
// diagnostics. The runtime flag is kept.
func (r *Reporter) Reset() {
	r.hadError = false
	kept := r.diags[:0]
	for _, d := range r.diags {
		if !d.Kind.IsStatic() {
			kept = append(kept, d)
		}
	}
	r.diags = kept
}

// ResetRuntime clears the runtime error flag and drops collected runtime
// diagnostics.
func (r *Reporter) ResetRuntime() {
	r.hadRuntimeError = false
	kept := r.diags[:0]
	for _, d := range r.diags {
		if d.Kind != Runtime {
			kept = append(kept, d)
		}
	}
	r.diags = kept
}

// ExitCode returns the process exit status implied by the reported
// diagnostics. Static errors take precedence.
func (r *Reporter) ExitCode() int {
	switch {
	case r.HadError():
		return ExitStatic
	case r.HadRuntimeError():
		return ExitRuntime
	}
	return ExitOK
}
