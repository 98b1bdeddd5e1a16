package interp

import (
	"fmt"

	"github.com/you-not-fish/golox/internal/syntax"
)

// Callable is implemented by values that can be called: functions, natives
// and classes.
type Callable interface {
	// Arity returns the exact number of arguments the callable takes.
	Arity() int

	// Call invokes the callable. The interpreter has already checked the
	// argument count.
	Call(in *Interpreter, args []any) (any, error)
}

// Function is a user-defined function or method together with the frame it
// closes over.
type Function struct {
	decl    *syntax.Function
	closure *Environment
	isInit  bool // class initializer: calls return this
}

// NewFunction creates a function value for decl closing over closure.
func NewFunction(decl *syntax.Function, closure *Environment, isInit bool) *Function {
	return &Function{decl: decl, closure: closure, isInit: isInit}
}

// Name returns the declared name of the function.
func (f *Function) Name() string {
	return f.decl.Name.Lexeme
}

// Arity implements Callable.
func (f *Function) Arity() int {
	return len(f.decl.Params)
}

// Call implements Callable. Parameters are bound in a fresh frame nested in
// the closure, so recursive and concurrent activations never share locals.
func (f *Function) Call(in *Interpreter, args []any) (any, error) {
	env := NewEnvironment(f.closure)
	for i, p := range f.decl.Params {
		env.Define(p.Lexeme, args[i])
	}

	fl, err := in.executeBlock(f.decl.Body, env)
	if err != nil {
		return nil, err
	}

	if f.isInit {
		return f.closure.GetAt(0, "this"), nil
	}
	if fl.returning {
		return fl.value, nil
	}
	return nil, nil
}

// Bind returns a copy of f whose closure has "this" bound to inst.
func (f *Function) Bind(inst *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", inst)
	return &Function{decl: f.decl, closure: env, isInit: f.isInit}
}

func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.decl.Name.Lexeme)
}

// Native is a function implemented in Go.
type Native struct {
	name  string
	arity int
	fn    func(in *Interpreter, args []any) (any, error)
}

// NewNative creates a native function.
func NewNative(name string, arity int, fn func(in *Interpreter, args []any) (any, error)) *Native {
	return &Native{name: name, arity: arity, fn: fn}
}

// Name returns the global name the native is installed under.
func (n *Native) Name() string {
	return n.name
}

// Arity implements Callable.
func (n *Native) Arity() int {
	return n.arity
}

// Call implements Callable.
func (n *Native) Call(in *Interpreter, args []any) (any, error) {
	return n.fn(in, args)
}

func (n *Native) String() string {
	return "<native fn>"
}
