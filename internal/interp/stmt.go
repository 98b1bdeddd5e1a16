package interp

import (
	"fmt"

	"github.com/you-not-fish/golox/internal/syntax"
)

// execute runs a single statement.
func (in *Interpreter) execute(s syntax.Stmt) (flow, error) {
	switch s := s.(type) {
	case *syntax.ExprStmt:
		_, err := in.evaluate(s.X)
		return flow{}, err

	case *syntax.Print:
		v, err := in.evaluate(s.X)
		if err != nil {
			return flow{}, err
		}
		_, err = fmt.Fprintln(in.conf.Stdout, Stringify(v))
		return flow{}, err

	case *syntax.Var:
		var v any
		if s.Init != nil {
			var err error
			if v, err = in.evaluate(s.Init); err != nil {
				return flow{}, err
			}
		}
		in.env.Define(s.Name.Lexeme, v)
		return flow{}, nil

	case *syntax.Block:
		return in.executeBlock(s.Stmts, NewEnvironment(in.env))

	case *syntax.If:
		cond, err := in.evaluate(s.Cond)
		if err != nil {
			return flow{}, err
		}
		if IsTruthy(cond) {
			return in.execute(s.Then)
		}
		if s.Else != nil {
			return in.execute(s.Else)
		}
		return flow{}, nil

	case *syntax.While:
		return in.whileStmt(s)

	case *syntax.Function:
		in.env.Define(s.Name.Lexeme, NewFunction(s, in.env, false))
		return flow{}, nil

	case *syntax.Return:
		var v any
		if s.Value != nil {
			var err error
			if v, err = in.evaluate(s.Value); err != nil {
				return flow{}, err
			}
		}
		return flow{returning: true, value: v}, nil

	case *syntax.Class:
		return flow{}, in.classDecl(s)
	}

	return flow{}, fmt.Errorf("interp: unexpected statement %T", s)
}

// whileStmt runs a loop until its condition is falsey or the body returns.
func (in *Interpreter) whileStmt(s *syntax.While) (flow, error) {
	for {
		cond, err := in.evaluate(s.Cond)
		if err != nil {
			return flow{}, err
		}
		if !IsTruthy(cond) {
			return flow{}, nil
		}

		fl, err := in.execute(s.Body)
		if err != nil || fl.returning {
			return fl, err
		}
	}
}

// classDecl creates a class value and binds it to its name.
func (in *Interpreter) classDecl(s *syntax.Class) error {
	var super *Class
	if s.Superclass != nil {
		v, err := in.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		var ok bool
		if super, ok = v.(*Class); !ok {
			return runtimeErrorf(s.Superclass.Name, "Superclass must be a class.")
		}
	}

	// Defined first so methods can refer to the class by name.
	in.env.Define(s.Name.Lexeme, nil)

	env := in.env
	if super != nil {
		env = NewEnvironment(env)
		env.Define("super", super)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = NewFunction(m, env, m.Name.Lexeme == "init")
	}

	class := NewClass(s.Name.Lexeme, super, methods)
	in.env.Define(s.Name.Lexeme, class)
	return nil
}
