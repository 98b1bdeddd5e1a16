package interp

import (
	"fmt"

	"github.com/you-not-fish/golox/internal/syntax"
)

// evaluate computes the value of x.
func (in *Interpreter) evaluate(x syntax.Expr) (any, error) {
	switch x := x.(type) {
	case *syntax.Literal:
		return x.Value, nil

	case *syntax.Grouping:
		return in.evaluate(x.X)

	case *syntax.Unary:
		return in.unary(x)

	case *syntax.Binary:
		return in.binary(x)

	case *syntax.Logical:
		left, err := in.evaluate(x.X)
		if err != nil {
			return nil, err
		}
		if x.Op.Kind == syntax.Or {
			if IsTruthy(left) {
				return left, nil
			}
		} else if !IsTruthy(left) {
			return left, nil
		}
		return in.evaluate(x.Y)

	case *syntax.Variable:
		return in.lookUpVariable(x.Name, x)

	case *syntax.Assign:
		v, err := in.evaluate(x.Value)
		if err != nil {
			return nil, err
		}
		if err := in.assignVariable(x, v); err != nil {
			return nil, err
		}
		return v, nil

	case *syntax.Call:
		callee, err := in.evaluate(x.Callee)
		if err != nil {
			return nil, err
		}
		args := make([]any, 0, len(x.Args))
		for _, a := range x.Args {
			v, err := in.evaluate(a)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		return in.call(callee, args, x.Paren)

	case *syntax.Get:
		obj, err := in.evaluate(x.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, runtimeErrorf(x.Name, "Only instances have properties.")
		}
		return inst.Get(x.Name)

	case *syntax.Set:
		obj, err := in.evaluate(x.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, runtimeErrorf(x.Name, "Only instances have fields.")
		}
		v, err := in.evaluate(x.Value)
		if err != nil {
			return nil, err
		}
		inst.Set(x.Name, v)
		return v, nil

	case *syntax.This:
		return in.lookUpVariable(x.Keyword, x)

	case *syntax.Super:
		return in.super(x)
	}

	return nil, fmt.Errorf("interp: unexpected expression %T", x)
}

// assignVariable stores v into the variable x names.
func (in *Interpreter) assignVariable(x *syntax.Assign, v any) error {
	if d, ok := in.locals[x]; ok {
		in.env.AssignAt(d, x.Name, v)
		return nil
	}
	return in.globals.Assign(x.Name, v)
}

func (in *Interpreter) unary(x *syntax.Unary) (any, error) {
	right, err := in.evaluate(x.X)
	if err != nil {
		return nil, err
	}

	switch x.Op.Kind {
	case syntax.Bang:
		return !IsTruthy(right), nil
	case syntax.Minus:
		n, ok := right.(float64)
		if !ok {
			return nil, runtimeErrorf(x.Op, "Operand must be a number.")
		}
		return -n, nil
	}
	return nil, runtimeErrorf(x.Op, "Unknown unary operator '%s'.", x.Op.Lexeme)
}

func (in *Interpreter) binary(x *syntax.Binary) (any, error) {
	left, err := in.evaluate(x.X)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(x.Y)
	if err != nil {
		return nil, err
	}

	switch x.Op.Kind {
	case syntax.EqualEqual:
		return IsEqual(left, right), nil
	case syntax.BangEqual:
		return !IsEqual(left, right), nil
	case syntax.Plus:
		switch l := left.(type) {
		case float64:
			if r, ok := right.(float64); ok {
				return l + r, nil
			}
		case string:
			if r, ok := right.(string); ok {
				return l + r, nil
			}
		}
		return nil, runtimeErrorf(x.Op, "Operands must be two numbers or two strings.")
	}

	l, lok := left.(float64)
	r, rok := right.(float64)
	if !lok || !rok {
		return nil, runtimeErrorf(x.Op, "Operands must be numbers.")
	}

	switch x.Op.Kind {
	case syntax.Minus:
		return l - r, nil
	case syntax.Star:
		return l * r, nil
	case syntax.Slash:
		return l / r, nil
	case syntax.Greater:
		return l > r, nil
	case syntax.GreaterEqual:
		return l >= r, nil
	case syntax.Less:
		return l < r, nil
	case syntax.LessEqual:
		return l <= r, nil
	}
	return nil, runtimeErrorf(x.Op, "Unknown binary operator '%s'.", x.Op.Lexeme)
}

// super looks a method up starting at the superclass of the class whose
// method contains x, and binds it to the current this.
func (in *Interpreter) super(x *syntax.Super) (any, error) {
	d := in.locals[x]
	superclass, ok := in.env.GetAt(d, "super").(*Class)
	if !ok {
		return nil, runtimeErrorf(x.Keyword, "Superclass must be a class.")
	}
	// "this" lives in the frame just inside the one holding "super".
	inst, ok := in.env.GetAt(d-1, "this").(*Instance)
	if !ok {
		return nil, runtimeErrorf(x.Keyword, "Can't use 'super' outside of a class.")
	}

	m := superclass.FindMethod(x.Method.Lexeme)
	if m == nil {
		return nil, runtimeErrorf(x.Method, "Undefined property '%s'.", x.Method.Lexeme)
	}
	return m.Bind(inst), nil
}
