package syntax

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes an indented textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

// FprintAll writes each statement of a program with Fprint.
func FprintAll(w io.Writer, stmts []Stmt) {
	for _, s := range stmts {
		Fprint(w, s)
	}
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// child prints node one level deeper under a label.
func (p *printer) child(label string, node Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(node)
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	// Statements
	case *ExprStmt:
		p.printf("ExprStmt %d\n", n.line)
		p.indent++
		p.print(n.X)
		p.indent--

	case *Print:
		p.printf("Print %d\n", n.line)
		p.indent++
		p.print(n.X)
		p.indent--

	case *Var:
		p.printf("Var %d %s\n", n.line, n.Name.Lexeme)
		if n.Init != nil {
			p.indent++
			p.child("Init", n.Init)
			p.indent--
		}

	case *Block:
		p.printf("Block %d\n", n.line)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *If:
		p.printf("If %d\n", n.line)
		p.indent++
		p.child("Cond", n.Cond)
		p.child("Then", n.Then)
		if n.Else != nil {
			p.child("Else", n.Else)
		}
		p.indent--

	case *While:
		p.printf("While %d\n", n.line)
		p.indent++
		p.child("Cond", n.Cond)
		p.child("Body", n.Body)
		p.indent--

	case *Function:
		p.printf("Function %d %s(%s)\n", n.line, n.Name.Lexeme, paramList(n.Params))
		p.indent++
		for _, s := range n.Body {
			p.print(s)
		}
		p.indent--

	case *Return:
		p.printf("Return %d\n", n.line)
		if n.Value != nil {
			p.indent++
			p.print(n.Value)
			p.indent--
		}

	case *Class:
		if n.Superclass != nil {
			p.printf("Class %d %s < %s\n", n.line, n.Name.Lexeme, n.Superclass.Name.Lexeme)
		} else {
			p.printf("Class %d %s\n", n.line, n.Name.Lexeme)
		}
		p.indent++
		for _, m := range n.Methods {
			p.print(m)
		}
		p.indent--

	// Expressions
	case *Literal:
		p.printf("Literal %d %s\n", n.line, literalText(n.Value))

	case *Grouping:
		p.printf("Grouping %d\n", n.line)
		p.indent++
		p.print(n.X)
		p.indent--

	case *Unary:
		p.printf("Unary %d %s\n", n.line, n.Op.Lexeme)
		p.indent++
		p.print(n.X)
		p.indent--

	case *Binary:
		p.printf("Binary %d %s\n", n.line, n.Op.Lexeme)
		p.indent++
		p.child("X", n.X)
		p.child("Y", n.Y)
		p.indent--

	case *Logical:
		p.printf("Logical %d %s\n", n.line, n.Op.Lexeme)
		p.indent++
		p.child("X", n.X)
		p.child("Y", n.Y)
		p.indent--

	case *Variable:
		p.printf("Variable %d %s\n", n.line, n.Name.Lexeme)

	case *Assign:
		p.printf("Assign %d %s\n", n.line, n.Name.Lexeme)
		p.indent++
		p.print(n.Value)
		p.indent--

	case *Call:
		p.printf("Call %d\n", n.line)
		p.indent++
		p.child("Callee", n.Callee)
		if len(n.Args) > 0 {
			p.printf("Args:\n")
			p.indent++
			for _, a := range n.Args {
				p.print(a)
			}
			p.indent--
		}
		p.indent--

	case *Get:
		p.printf("Get %d %s\n", n.line, n.Name.Lexeme)
		p.indent++
		p.print(n.Object)
		p.indent--

	case *Set:
		p.printf("Set %d %s\n", n.line, n.Name.Lexeme)
		p.indent++
		p.child("Object", n.Object)
		p.child("Value", n.Value)
		p.indent--

	case *This:
		p.printf("This %d\n", n.line)

	case *Super:
		p.printf("Super %d %s\n", n.line, n.Method.Lexeme)

	default:
		p.printf("<%T>\n", node)
	}
}

// Sprint returns the parenthesized prefix form of an expression, e.g.
// "(* (- 123) (group 45.67))".
func Sprint(x Expr) string {
	var b strings.Builder
	sprint(&b, x)
	return b.String()
}

func sprint(b *strings.Builder, x Expr) {
	switch n := x.(type) {
	case nil:
		b.WriteString("nil")
	case *Literal:
		b.WriteString(literalText(n.Value))
	case *Grouping:
		parenthesize(b, "group", n.X)
	case *Unary:
		parenthesize(b, n.Op.Lexeme, n.X)
	case *Binary:
		parenthesize(b, n.Op.Lexeme, n.X, n.Y)
	case *Logical:
		parenthesize(b, n.Op.Lexeme, n.X, n.Y)
	case *Variable:
		b.WriteString(n.Name.Lexeme)
	case *Assign:
		parenthesize(b, "= "+n.Name.Lexeme, n.Value)
	case *Call:
		parenthesize(b, "call", append([]Expr{n.Callee}, n.Args...)...)
	case *Get:
		parenthesize(b, "."+n.Name.Lexeme, n.Object)
	case *Set:
		parenthesize(b, "=."+n.Name.Lexeme, n.Object, n.Value)
	case *This:
		b.WriteString("this")
	case *Super:
		b.WriteString("super." + n.Method.Lexeme)
	default:
		fmt.Fprintf(b, "<%T>", x)
	}
}

func parenthesize(b *strings.Builder, name string, xs ...Expr) {
	b.WriteByte('(')
	b.WriteString(name)
	for _, x := range xs {
		b.WriteByte(' ')
		sprint(b, x)
	}
	b.WriteByte(')')
}

// literalText renders a literal value as it would appear in source.
func literalText(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strconv.Quote(v)
	}
	return fmt.Sprint(v)
}

func paramList(params []Token) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Lexeme
	}
	return strings.Join(names, ", ")
}

// SprintStmt returns the parenthesized prefix form of a statement, e.g.
// "(var x 1)" or "(while (< i 3) (block (print i)))".
func SprintStmt(s Stmt) string {
	var b strings.Builder
	sprintStmt(&b, s)
	return b.String()
}

func sprintStmt(b *strings.Builder, s Stmt) {
	switch n := s.(type) {
	case nil:
		b.WriteString("nil")
	case *ExprStmt:
		parenthesize(b, ";", n.X)
	case *Print:
		parenthesize(b, "print", n.X)
	case *Var:
		if n.Init == nil {
			fmt.Fprintf(b, "(var %s)", n.Name.Lexeme)
			return
		}
		parenthesize(b, "var "+n.Name.Lexeme, n.Init)
	case *Block:
		b.WriteString("(block")
		for _, st := range n.Stmts {
			b.WriteByte(' ')
			sprintStmt(b, st)
		}
		b.WriteByte(')')
	case *If:
		b.WriteString("(if ")
		sprint(b, n.Cond)
		b.WriteByte(' ')
		sprintStmt(b, n.Then)
		if n.Else != nil {
			b.WriteByte(' ')
			sprintStmt(b, n.Else)
		}
		b.WriteByte(')')
	case *While:
		b.WriteString("(while ")
		sprint(b, n.Cond)
		b.WriteByte(' ')
		sprintStmt(b, n.Body)
		b.WriteByte(')')
	case *Function:
		fmt.Fprintf(b, "(fun %s (%s)", n.Name.Lexeme, strings.ReplaceAll(paramList(n.Params), ",", ""))
		for _, st := range n.Body {
			b.WriteByte(' ')
			sprintStmt(b, st)
		}
		b.WriteByte(')')
	case *Return:
		if n.Value == nil {
			b.WriteString("(return)")
			return
		}
		parenthesize(b, "return", n.Value)
	case *Class:
		b.WriteString("(class " + n.Name.Lexeme)
		if n.Superclass != nil {
			b.WriteString(" < " + n.Superclass.Name.Lexeme)
		}
		for _, m := range n.Methods {
			b.WriteByte(' ')
			sprintStmt(b, m)
		}
		b.WriteByte(')')
	default:
		fmt.Fprintf(b, "<%T>", s)
	}
}
