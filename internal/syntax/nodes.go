package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 2 classes of nodes: Expressions and Statements. Both sets are
// closed: the marker methods are unexported, so only this package can add
// node kinds, and every consumer switches over the full list below.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Line() int // source line the node starts on
	aNode()    // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	line int
}

func (n *node) Line() int { return n.line }
func (n *node) aNode()    {}

// expr is embedded in all expression nodes.
type expr struct{ node }

func (*expr) aExpr() {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// ----------------------------------------------------------------------------
// Expressions

// Literal represents a constant: number, string, true, false or nil.
type Literal struct {
	expr
	Value any // float64, string, bool or nil
}

// Grouping represents a parenthesized expression: (X)
type Grouping struct {
	expr
	X Expr
}

// Unary represents a prefix operation: -X or !X
type Unary struct {
	expr
	Op Token
	X  Expr
}

// Binary represents an arithmetic, comparison or equality operation.
type Binary struct {
	expr
	X  Expr
	Op Token
	Y  Expr
}

// Logical represents a short-circuit "and" / "or" operation.
type Logical struct {
	expr
	X  Expr
	Op Token
	Y  Expr
}

// Variable represents a read of a named variable.
type Variable struct {
	expr
	Name Token
}

// Assign represents an assignment to a named variable: Name = Value
type Assign struct {
	expr
	Name  Token
	Value Expr
}

// Call represents a call: Callee(Args...)
type Call struct {
	expr
	Callee Expr
	Paren  Token // closing parenthesis, used for error locations
	Args   []Expr
}

// Get represents a property read: Object.Name
type Get struct {
	expr
	Object Expr
	Name   Token
}

// Set represents a property write: Object.Name = Value
type Set struct {
	expr
	Object Expr
	Name   Token
	Value  Expr
}

// This represents the "this" keyword inside a method.
type This struct {
	expr
	Keyword Token
}

// Super represents a superclass method access: super.Method
type Super struct {
	expr
	Keyword Token
	Method  Token
}

// ----------------------------------------------------------------------------
// Statements

// ExprStmt represents an expression evaluated for its side effects.
type ExprStmt struct {
	stmt
	X Expr
}

// Print represents a print statement: print X;
type Print struct {
	stmt
	X Expr
}

// Var represents a variable declaration: var Name = Init;
type Var struct {
	stmt
	Name Token
	Init Expr // nil if absent
}

// Block represents a braced statement list that opens a new scope.
type Block struct {
	stmt
	Stmts []Stmt
}

// If represents a conditional: if (Cond) Then else Else
type If struct {
	stmt
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
}

// While represents a loop: while (Cond) Body
// "for" loops are desugared into While by the parser.
type While struct {
	stmt
	Cond Expr
	Body Stmt
}

// Function represents a function or method declaration.
type Function struct {
	stmt
	Name   Token
	Params []Token
	Body   []Stmt
}

// Return represents a return statement: return Value;
type Return struct {
	stmt
	Keyword Token
	Value   Expr // nil for a bare return
}

// Class represents a class declaration.
type Class struct {
	stmt
	Name       Token
	Superclass *Variable // nil if the class has no superclass
	Methods    []*Function
}
