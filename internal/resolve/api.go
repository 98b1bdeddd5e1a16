// Package resolve implements static resolution of Lox variable references.
//
// The resolver walks a parsed program once, before it runs, and records for
// every local variable reference how many scopes separate the use from the
// declaration. References it does not record are globals. Along the way it
// reports the static errors that do not need a running program to detect.
package resolve

import "github.com/you-not-fish/golox/internal/syntax"

// Config specifies the configuration for resolution.
type Config struct {
	// Error is called for each static error.
	// If nil, errors are silently ignored.
	Error ErrorHandler
}

// Info holds the results of resolution.
type Info struct {
	// Locals maps each resolved local reference to its scope distance:
	// 0 is the innermost enclosing scope. Keys are *syntax.Variable,
	// *syntax.Assign, *syntax.This and *syntax.Super nodes, compared by
	// identity. Global references have no entry.
	Locals map[syntax.Expr]int
}

// Resolve resolves a parsed program.
// It returns the resolution table and the first error encountered, if any.
// The table is complete for all statements even when errors are reported.
func Resolve(stmts []syntax.Stmt, conf *Config) (*Info, error) {
	if conf == nil {
		conf = &Config{}
	}

	r := &Resolver{
		conf: conf,
		info: &Info{Locals: make(map[syntax.Expr]int)},
	}

	r.stmts(stmts)

	if r.errors > 0 {
		return r.info, r.first
	}
	return r.info, nil
}
