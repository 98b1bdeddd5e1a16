package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	// Statements
	case *ExprStmt:
		Walk(n.X, v)

	case *Print:
		Walk(n.X, v)

	case *Var:
		if n.Init != nil {
			Walk(n.Init, v)
		}

	case *Block:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *If:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		if n.Else != nil {
			Walk(n.Else, v)
		}

	case *While:
		Walk(n.Cond, v)
		Walk(n.Body, v)

	case *Function:
		for _, s := range n.Body {
			Walk(s, v)
		}

	case *Return:
		if n.Value != nil {
			Walk(n.Value, v)
		}

	case *Class:
		if n.Superclass != nil {
			Walk(n.Superclass, v)
		}
		for _, m := range n.Methods {
			Walk(m, v)
		}

	// Expressions
	case *Grouping:
		Walk(n.X, v)

	case *Unary:
		Walk(n.X, v)

	case *Binary:
		Walk(n.X, v)
		Walk(n.Y, v)

	case *Logical:
		Walk(n.X, v)
		Walk(n.Y, v)

	case *Assign:
		Walk(n.Value, v)

	case *Call:
		Walk(n.Callee, v)
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *Get:
		Walk(n.Object, v)

	case *Set:
		Walk(n.Object, v)
		Walk(n.Value, v)

	// Leaf nodes: Literal, Variable, This, Super
	// No children to visit
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}
