// Package interp implements a tree-walking interpreter for resolved Lox
// programs.
package interp

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/you-not-fish/golox/internal/resolve"
	"github.com/you-not-fish/golox/internal/syntax"
)

// DefaultMaxDepth is the default limit on nested calls.
const DefaultMaxDepth = 1024

// Config specifies the configuration for an Interpreter.
type Config struct {
	// Stdout receives the output of print statements.
	// If nil, os.Stdout is used.
	Stdout io.Writer

	// Now is the clock behind the clock() native.
	// If nil, time.Now is used.
	Now func() time.Time

	// MaxDepth limits nested calls; exceeding it is a runtime error.
	// If zero, DefaultMaxDepth is used.
	MaxDepth int
}

// Interpreter executes resolved programs. Globals persist across calls to
// Interpret, so one Interpreter serves a whole REPL session.
type Interpreter struct {
	conf *Config

	globals *Environment
	env     *Environment // current frame

	// Resolution table merged from every Interpret call. Nodes are never
	// reused between programs, so entries do not collide.
	locals map[syntax.Expr]int

	depth  int     // active calls
	frames []Frame // active calls, outermost first
}

// New creates an Interpreter with the built-in functions defined.
func New(conf *Config) *Interpreter {
	c := Config{}
	if conf != nil {
		c = *conf
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}

	globals := NewEnvironment(nil)
	in := &Interpreter{
		conf:    &c,
		globals: globals,
		env:     globals,
		locals:  make(map[syntax.Expr]int),
	}
	in.defineBuiltins()
	return in
}

func (in *Interpreter) now() time.Time {
	return in.conf.Now()
}

// flow is the control result of executing a statement. A return statement
// sets returning and the enclosing function call consumes it.
type flow struct {
	returning bool
	value     any
}

// Interpret executes stmts in order using the resolution table from info.
// It stops at the first runtime error and returns it as a *RuntimeError;
// globals defined before the error remain defined.
func (in *Interpreter) Interpret(stmts []syntax.Stmt, info *resolve.Info) error {
	if info != nil {
		for x, d := range info.Locals {
			in.locals[x] = d
		}
	}

	// A previous run may have stopped mid-call.
	in.env = in.globals
	in.depth = 0
	in.frames = in.frames[:0]

	for _, s := range stmts {
		if _, err := in.execute(s); err != nil {
			var rerr *RuntimeError
			if errors.As(err, &rerr) {
				return rerr
			}
			return err
		}
	}
	return nil
}

// executeBlock runs stmts in env and restores the current frame afterwards,
// also when a statement fails.
func (in *Interpreter) executeBlock(stmts []syntax.Stmt, env *Environment) (flow, error) {
	prev := in.env
	in.env = env
	defer func() { in.env = prev }()

	for _, s := range stmts {
		fl, err := in.execute(s)
		if err != nil || fl.returning {
			return fl, err
		}
	}
	return flow{}, nil
}

// lookUpVariable reads name for x, from its resolved frame or the globals.
func (in *Interpreter) lookUpVariable(name syntax.Token, x syntax.Expr) (any, error) {
	if d, ok := in.locals[x]; ok {
		return in.env.GetAt(d, name.Lexeme), nil
	}
	return in.globals.Get(name)
}

// call invokes callee with args after checking the argument count and the
// call depth. paren locates errors.
func (in *Interpreter) call(callee any, args []any, paren syntax.Token) (any, error) {
	fn, ok := callee.(Callable)
	if !ok {
		return nil, runtimeErrorf(paren, "Can only call functions and classes.")
	}

	if len(args) != fn.Arity() {
		return nil, runtimeErrorf(paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}

	if in.depth >= in.conf.MaxDepth {
		return nil, runtimeErrorf(paren, "Stack overflow.")
	}
	in.depth++
	in.frames = append(in.frames, Frame{Name: calleeName(callee), Line: paren.Line})
	defer func() {
		in.depth--
		in.frames = in.frames[:len(in.frames)-1]
	}()

	v, err := fn.Call(in, args)
	if err != nil {
		var rerr *RuntimeError
		if errors.As(err, &rerr) && rerr.Frames == nil {
			rerr.Frames = in.stack()
		}
		return nil, err
	}
	return v, nil
}

// maxTraceFrames bounds the frames kept on a RuntimeError.
const maxTraceFrames = 32

// stack returns the innermost active calls, innermost first.
func (in *Interpreter) stack() []Frame {
	n := min(len(in.frames), maxTraceFrames)
	frames := make([]Frame, n)
	for i := range frames {
		frames[i] = in.frames[len(in.frames)-1-i]
	}
	return frames
}

func calleeName(v any) string {
	switch v := v.(type) {
	case *Function:
		return v.Name()
	case *Native:
		return v.Name()
	case *Class:
		return v.Name
	}
	return "?"
}
