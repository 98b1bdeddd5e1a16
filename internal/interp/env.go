package interp

import "github.com/you-not-fish/golox/internal/syntax"

// Environment is one frame of variable bindings. Frames form a chain
// through their enclosing frame; the outermost frame holds the globals.
//
// A frame stays alive as long as an active call or a closure refers to it.
type Environment struct {
	values    map[string]any
	enclosing *Environment
}

// NewEnvironment creates a frame nested in enclosing, which may be nil.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[string]any),
		enclosing: enclosing,
	}
}

// Define binds name in this frame, replacing any previous binding.
func (e *Environment) Define(name string, v any) {
	e.values[name] = v
}

// Get looks name up in this frame and then outward.
func (e *Environment) Get(name syntax.Token) (any, error) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values[name.Lexeme]; ok {
			return v, nil
		}
	}
	return nil, runtimeErrorf(name, "Undefined variable '%s'.", name.Lexeme)
}

// Assign rebinds an existing name in this frame or the nearest enclosing
// frame that has it.
func (e *Environment) Assign(name syntax.Token, v any) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = v
			return nil
		}
	}
	return runtimeErrorf(name, "Undefined variable '%s'.", name.Lexeme)
}

// Ancestor returns the frame distance hops out from e.
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt returns name from the frame distance hops out. The resolver
// guarantees the binding exists.
func (e *Environment) GetAt(distance int, name string) any {
	return e.Ancestor(distance).values[name]
}

// AssignAt rebinds name in the frame distance hops out.
func (e *Environment) AssignAt(distance int, name syntax.Token, v any) {
	e.Ancestor(distance).values[name.Lexeme] = v
}
