package interp

import (
	"fmt"

	"github.com/you-not-fish/golox/internal/syntax"
)

// Class is a runtime class value. Calling it constructs an Instance.
type Class struct {
	Name       string
	Superclass *Class // nil if none
	methods    map[string]*Function
}

// NewClass creates a class with the given methods.
func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	if methods == nil {
		methods = make(map[string]*Function)
	}
	return &Class{Name: name, Superclass: superclass, methods: methods}
}

// FindMethod looks name up in the class and then along the superclass
// chain. It returns nil if no class in the chain defines it.
func (c *Class) FindMethod(name string) *Function {
	for cls := c; cls != nil; cls = cls.Superclass {
		if m, ok := cls.methods[name]; ok {
			return m
		}
	}
	return nil
}

// Arity implements Callable: the arity of init, or 0 without one.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call implements Callable. It creates an instance and runs init on it.
// The value returned by init is discarded.
func (c *Class) Call(in *Interpreter, args []any) (any, error) {
	inst := NewInstance(c)
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(inst).Call(in, args); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

func (c *Class) String() string {
	return c.Name
}

// Instance is an object created by calling a class.
type Instance struct {
	class  *Class
	fields map[string]any
}

// NewInstance creates an instance of class with no fields.
func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: make(map[string]any)}
}

// Class returns the class the instance was created from.
func (i *Instance) Class() *Class {
	return i.class
}

// Get returns the property name: a field if one is set, otherwise a method
// bound to i. Each method access produces a new bound function.
func (i *Instance) Get(name syntax.Token) (any, error) {
	if v, ok := i.fields[name.Lexeme]; ok {
		return v, nil
	}
	if m := i.class.FindMethod(name.Lexeme); m != nil {
		return m.Bind(i), nil
	}
	return nil, runtimeErrorf(name, "Undefined property '%s' on %s instance.", name.Lexeme, i.class.Name)
}

// Set writes the field name, creating it if needed.
func (i *Instance) Set(name syntax.Token, v any) {
	i.fields[name.Lexeme] = v
}

func (i *Instance) String() string {
	return fmt.Sprintf("%s instance", i.class.Name)
}
