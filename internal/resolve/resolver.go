package resolve

import "github.com/you-not-fish/golox/internal/syntax"

// funcKind is the kind of function body being resolved.
type funcKind int

const (
	funcNone funcKind = iota
	funcFunction
	funcMethod
	funcInitializer
)

// classKind is the kind of class body being resolved.
type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// Resolver resolves local variable references.
type Resolver struct {
	conf *Config
	info *Info

	scope *Scope // innermost local scope; nil at top level

	// Enclosing context
	fn  funcKind
	cls classKind

	// Error tracking
	errors int    // error count
	first  *Error // first error
}

// openScope pushes a new innermost scope.
func (r *Resolver) openScope(comment string) {
	r.scope = NewScope(r.scope, comment)
}

// closeScope pops the innermost scope.
func (r *Resolver) closeScope() {
	r.scope = r.scope.Parent()
}

// declare adds name to the innermost scope as not yet usable.
// Globals are not tracked.
func (r *Resolver) declare(name syntax.Token) {
	if r.scope == nil {
		return
	}
	if !r.scope.Declare(name.Lexeme) {
		r.error(name, "Already a variable with this name in this scope.")
	}
}

// define marks name as usable in the innermost scope.
func (r *Resolver) define(name syntax.Token) {
	if r.scope == nil {
		return
	}
	r.scope.Define(name.Lexeme)
}

// local records the scope distance of x if name resolves to a local.
func (r *Resolver) local(x syntax.Expr, name syntax.Token) {
	if r.scope == nil {
		return
	}
	if depth := r.scope.LookupParent(name.Lexeme); depth >= 0 {
		r.info.Locals[x] = depth
	}
}

// ----------------------------------------------------------------------------
// Statements

// stmts resolves a list of statements.
func (r *Resolver) stmts(list []syntax.Stmt) {
	for _, s := range list {
		r.stmt(s)
	}
}

// stmt resolves a single statement.
func (r *Resolver) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.ExprStmt:
		r.expr(s.X)

	case *syntax.Print:
		r.expr(s.X)

	case *syntax.Var:
		r.declare(s.Name)
		if s.Init != nil {
			r.expr(s.Init)
		}
		r.define(s.Name)

	case *syntax.Block:
		r.openScope("block")
		r.stmts(s.Stmts)
		r.closeScope()

	case *syntax.If:
		r.expr(s.Cond)
		r.stmt(s.Then)
		if s.Else != nil {
			r.stmt(s.Else)
		}

	case *syntax.While:
		r.expr(s.Cond)
		r.stmt(s.Body)

	case *syntax.Function:
		// Defined before the body so the function can refer to itself.
		r.declare(s.Name)
		r.define(s.Name)
		r.function(s, funcFunction)

	case *syntax.Return:
		r.returnStmt(s)

	case *syntax.Class:
		r.classDecl(s)
	}
}

// returnStmt resolves a return statement.
func (r *Resolver) returnStmt(s *syntax.Return) {
	if r.fn == funcNone {
		r.error(s.Keyword, "Can't return from top-level code.")
	}

	if s.Value != nil {
		if r.fn == funcInitializer {
			r.error(s.Keyword, "Can't return a value from an initializer.")
		}
		r.expr(s.Value)
	}
}

// function resolves a function body in its own scope.
func (r *Resolver) function(f *syntax.Function, kind funcKind) {
	enclosing := r.fn
	r.fn = kind
	defer func() { r.fn = enclosing }()

	r.openScope("function " + f.Name.Lexeme)
	for _, p := range f.Params {
		r.declare(p)
		r.define(p)
	}
	r.stmts(f.Body)
	r.closeScope()
}

// classDecl resolves a class declaration. Methods see "super" (for
// subclasses) in one scope and "this" in a scope nested inside it.
func (r *Resolver) classDecl(s *syntax.Class) {
	enclosing := r.cls
	r.cls = classClass
	defer func() { r.cls = enclosing }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.error(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.cls = classSubclass
		r.expr(s.Superclass)

		r.openScope("super " + s.Name.Lexeme)
		r.scope.Define("super")
	}

	r.openScope("class " + s.Name.Lexeme)
	r.scope.Define("this")

	for _, m := range s.Methods {
		kind := funcMethod
		if m.Name.Lexeme == "init" {
			kind = funcInitializer
		}
		r.function(m, kind)
	}

	r.closeScope()

	if s.Superclass != nil {
		r.closeScope()
	}
}

// ----------------------------------------------------------------------------
// Expressions

// expr resolves an expression.
func (r *Resolver) expr(x syntax.Expr) {
	switch x := x.(type) {
	case *syntax.Literal:
		// Nothing to resolve

	case *syntax.Grouping:
		r.expr(x.X)

	case *syntax.Unary:
		r.expr(x.X)

	case *syntax.Binary:
		r.expr(x.X)
		r.expr(x.Y)

	case *syntax.Logical:
		r.expr(x.X)
		r.expr(x.Y)

	case *syntax.Variable:
		if r.scope != nil {
			if defined, ok := r.scope.Lookup(x.Name.Lexeme); ok && !defined {
				r.error(x.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.local(x, x.Name)

	case *syntax.Assign:
		r.expr(x.Value)
		r.local(x, x.Name)

	case *syntax.Call:
		r.expr(x.Callee)
		for _, a := range x.Args {
			r.expr(a)
		}

	case *syntax.Get:
		// Properties are looked up dynamically.
		r.expr(x.Object)

	case *syntax.Set:
		r.expr(x.Value)
		r.expr(x.Object)

	case *syntax.This:
		if r.cls == classNone {
			r.error(x.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.local(x, x.Keyword)

	case *syntax.Super:
		switch r.cls {
		case classNone:
			r.error(x.Keyword, "Can't use 'super' outside of a class.")
			return
		case classClass:
			r.error(x.Keyword, "Can't use 'super' in a class with no superclass.")
			return
		}
		r.local(x, x.Keyword)
	}
}
