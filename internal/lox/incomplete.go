package lox

import "github.com/you-not-fish/golox/internal/syntax"

// Incomplete reports whether src stops inside an unclosed '{' or '(' or an
// unterminated string, so an interactive reader should ask for more input.
func Incomplete(src string) bool {
	open := false
	toks := syntax.Scan(src, func(_, _ int, msg string) {
		if msg == "Unterminated string." {
			open = true
		}
	})
	if open {
		return true
	}

	depth := 0
	for _, tok := range toks {
		switch tok.Kind {
		case syntax.LeftParen, syntax.LeftBrace:
			depth++
		case syntax.RightParen, syntax.RightBrace:
			depth--
		}
	}
	return depth > 0
}
