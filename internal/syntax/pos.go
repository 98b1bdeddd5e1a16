package syntax

import "fmt"

// Pos represents a position in Lox source.
// The zero value is an invalid position.
type Pos struct {
	Line int // 1-based line number
	Col  int // 1-based column number, counted in runes
}

// String returns the position as "line:col", or "line" when the column is
// unknown.
func (p Pos) String() string {
	if p.Col > 0 {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%d", p.Line)
}

// IsValid reports whether the position is valid.
// A position is valid if line > 0.
func (p Pos) IsValid() bool {
	return p.Line > 0
}
