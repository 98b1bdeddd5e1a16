package syntax

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// FprintJSON writes a JSON representation of the program to w.
func FprintJSON(w io.Writer, stmts []Stmt) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toMaps(stmts))
}

// FprintYAML writes a YAML representation of the program to w.
// The document has the same shape as the FprintJSON output.
func FprintYAML(w io.Writer, stmts []Stmt) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toMaps(stmts)); err != nil {
		return err
	}
	return enc.Close()
}

// toMap converts a node into generic maps and slices that both encoders
// understand. Absent optional children are omitted.
func toMap(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	// Statements
	case *ExprStmt:
		return map[string]interface{}{
			"type": "ExprStmt",
			"line": n.line,
			"x":    toMap(n.X),
		}

	case *Print:
		return map[string]interface{}{
			"type": "Print",
			"line": n.line,
			"x":    toMap(n.X),
		}

	case *Var:
		m := map[string]interface{}{
			"type": "Var",
			"line": n.line,
			"name": n.Name.Lexeme,
		}
		if n.Init != nil {
			m["init"] = toMap(n.Init)
		}
		return m

	case *Block:
		return map[string]interface{}{
			"type":  "Block",
			"line":  n.line,
			"stmts": toMaps(n.Stmts),
		}

	case *If:
		m := map[string]interface{}{
			"type": "If",
			"line": n.line,
			"cond": toMap(n.Cond),
			"then": toMap(n.Then),
		}
		if n.Else != nil {
			m["else"] = toMap(n.Else)
		}
		return m

	case *While:
		return map[string]interface{}{
			"type": "While",
			"line": n.line,
			"cond": toMap(n.Cond),
			"body": toMap(n.Body),
		}

	case *Function:
		params := make([]interface{}, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Lexeme
		}
		return map[string]interface{}{
			"type":   "Function",
			"line":   n.line,
			"name":   n.Name.Lexeme,
			"params": params,
			"body":   toMaps(n.Body),
		}

	case *Return:
		m := map[string]interface{}{
			"type": "Return",
			"line": n.line,
		}
		if n.Value != nil {
			m["value"] = toMap(n.Value)
		}
		return m

	case *Class:
		m := map[string]interface{}{
			"type":    "Class",
			"line":    n.line,
			"name":    n.Name.Lexeme,
			"methods": toMaps(n.Methods),
		}
		if n.Superclass != nil {
			m["superclass"] = n.Superclass.Name.Lexeme
		}
		return m

	// Expressions
	case *Literal:
		return map[string]interface{}{
			"type":  "Literal",
			"line":  n.line,
			"value": n.Value,
		}

	case *Grouping:
		return map[string]interface{}{
			"type": "Grouping",
			"line": n.line,
			"x":    toMap(n.X),
		}

	case *Unary:
		return map[string]interface{}{
			"type": "Unary",
			"line": n.line,
			"op":   n.Op.Lexeme,
			"x":    toMap(n.X),
		}

	case *Binary:
		return map[string]interface{}{
			"type": "Binary",
			"line": n.line,
			"op":   n.Op.Lexeme,
			"x":    toMap(n.X),
			"y":    toMap(n.Y),
		}

	case *Logical:
		return map[string]interface{}{
			"type": "Logical",
			"line": n.line,
			"op":   n.Op.Lexeme,
			"x":    toMap(n.X),
			"y":    toMap(n.Y),
		}

	case *Variable:
		return map[string]interface{}{
			"type": "Variable",
			"line": n.line,
			"name": n.Name.Lexeme,
		}

	case *Assign:
		return map[string]interface{}{
			"type":  "Assign",
			"line":  n.line,
			"name":  n.Name.Lexeme,
			"value": toMap(n.Value),
		}

	case *Call:
		return map[string]interface{}{
			"type":   "Call",
			"line":   n.line,
			"callee": toMap(n.Callee),
			"args":   toMaps(n.Args),
		}

	case *Get:
		return map[string]interface{}{
			"type":   "Get",
			"line":   n.line,
			"object": toMap(n.Object),
			"name":   n.Name.Lexeme,
		}

	case *Set:
		return map[string]interface{}{
			"type":   "Set",
			"line":   n.line,
			"object": toMap(n.Object),
			"name":   n.Name.Lexeme,
			"value":  toMap(n.Value),
		}

	case *This:
		return map[string]interface{}{
			"type": "This",
			"line": n.line,
		}

	case *Super:
		return map[string]interface{}{
			"type":   "Super",
			"line":   n.line,
			"method": n.Method.Lexeme,
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
		}
	}
}

// toMaps converts each node of s with toMap.
func toMaps[T Node](s []T) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = toMap(v)
	}
	return result
}
