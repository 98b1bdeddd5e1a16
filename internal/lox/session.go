// Package lox drives the Lox pipeline: scan, parse, resolve and interpret.
//
// A Session owns the diagnostics collector and the interpreter, so the
// globals defined by one Run are visible to the next. The driver halts
// before resolving when scanning or parsing reported an error, and before
// interpreting when resolving did.
package lox

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/you-not-fish/golox/internal/diag"
	"github.com/you-not-fish/golox/internal/interp"
	"github.com/you-not-fish/golox/internal/resolve"
	"github.com/you-not-fish/golox/internal/syntax"
)

// Option configures a Session.
type Option func(*Session)

// WithStdout sends the output of print statements to w.
func WithStdout(w io.Writer) Option {
	return func(s *Session) { s.stdout = w }
}

// WithDiagnostics calls h for every diagnostic as it is reported.
func WithDiagnostics(h diag.Handler) Option {
	return func(s *Session) { s.handler = h }
}

// WithClock replaces the clock behind the clock() native.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithMaxDepth limits nested calls.
func WithMaxDepth(n int) Option {
	return func(s *Session) { s.maxDepth = n }
}

// WithTrace logs the duration of each phase to l.
func WithTrace(l *log.Logger) Option {
	return func(s *Session) { s.trace = l }
}

// Session runs Lox source against one persistent global environment.
type Session struct {
	stdout   io.Writer
	handler  diag.Handler
	now      func() time.Time
	maxDepth int
	trace    *log.Logger

	reporter *diag.Reporter
	in       *interp.Interpreter
}

// NewSession creates a session with a fresh global environment.
func NewSession(opts ...Option) *Session {
	s := &Session{stdout: os.Stdout}
	for _, opt := range opts {
		opt(s)
	}

	s.reporter = diag.NewReporter(s.handler)
	s.in = interp.New(&interp.Config{
		Stdout:   s.stdout,
		Now:      s.now,
		MaxDepth: s.maxDepth,
	})
	return s
}

// Reporter returns the diagnostics collector of the session.
func (s *Session) Reporter() *diag.Reporter {
	return s.reporter
}

// Result summarises one Run.
type Result struct {
	Static  bool // a lexical, syntax or static error was reported
	Runtime bool // execution stopped with a runtime error

	// Err is the runtime error, if any.
	Err *interp.RuntimeError
}

// ExitCode returns the process exit status for r. Static errors take
// precedence over runtime errors.
func (r Result) ExitCode() int {
	switch {
	case r.Static:
		return diag.ExitStatic
	case r.Runtime:
		return diag.ExitRuntime
	}
	return diag.ExitOK
}

// Run executes src through the whole pipeline.
//
// Static errors are sticky until ResetErrors: a session that already holds
// one does not execute further input.
func (s *Session) Run(src string) Result {
	stmts, err := s.ParseSource(src)
	if err != nil || s.reporter.ShouldHalt() {
		return Result{Static: true}
	}

	start := time.Now()
	info, err := resolve.Resolve(stmts, &resolve.Config{Error: s.reporter.StaticError})
	s.tracef("resolve: %d locals, %d errors in %v",
		len(info.Locals), s.reporter.Count(diag.Static), time.Since(start))
	if err != nil {
		return Result{Static: true}
	}

	start = time.Now()
	err = s.in.Interpret(stmts, info)
	s.tracef("interpret: %v", time.Since(start))
	if err == nil {
		return Result{}
	}

	var rerr *interp.RuntimeError
	if !errors.As(err, &rerr) {
		rerr = &interp.RuntimeError{Msg: err.Error()}
	}
	s.reporter.RuntimeError(rerr.Token.Line, rerr.Token.Col, rerr.Msg)
	return Result{Runtime: true, Err: rerr}
}

// RunFile reads the file at path and runs it. The error is non-nil only
// when the file cannot be read.
func (s *Session) RunFile(path string) (Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read script: %w", err)
	}
	return s.Run(string(src)), nil
}

// ResetErrors clears the static and runtime error flags between REPL
// inputs. The global environment is kept.
func (s *Session) ResetErrors() {
	s.reporter.Reset()
	s.reporter.ResetRuntime()
}

// Tokens scans src, reporting lexical errors to the session.
func (s *Session) Tokens(src string) []syntax.Token {
	start := time.Now()
	toks := syntax.Scan(src, s.reporter.ScanError)
	s.tracef("scan: %d tokens in %v", len(toks), time.Since(start))
	return toks
}

// ParseSource scans and parses src, reporting lexical and syntax errors to
// the session. Statements that failed to parse are omitted; the error is
// the first syntax error.
func (s *Session) ParseSource(src string) ([]syntax.Stmt, error) {
	toks := s.Tokens(src)

	start := time.Now()
	stmts, err := syntax.Parse(toks, s.reporter.TokenError)
	if s.trace != nil {
		elapsed := time.Since(start)
		nodes := 0
		for _, st := range stmts {
			syntax.Inspect(st, func(syntax.Node) bool {
				nodes++
				return true
			})
		}
		s.tracef("parse: %d statements, %d nodes, %d errors in %v",
			len(stmts), nodes, s.reporter.Count(diag.Syntax), elapsed)
	}
	return stmts, err
}

func (s *Session) tracef(format string, args ...any) {
	if s.trace != nil {
		s.trace.Printf(format, args...)
	}
}
