package resolve

import (
	"fmt"
	"sort"
	"strings"
)

// Scope is a local lexical scope. Scopes form a chain through their
// parents; the global scope is not represented.
//
// Each name maps to whether its initializer has finished resolving:
// false between declare and define, true afterwards.
type Scope struct {
	parent  *Scope
	elems   map[string]bool
	comment string // debugging comment (e.g., "function foo", "block")
}

// NewScope creates a new scope with the given parent.
func NewScope(parent *Scope, comment string) *Scope {
	return &Scope{
		parent:  parent,
		elems:   make(map[string]bool),
		comment: comment,
	}
}

// Parent returns the enclosing scope, or nil for an outermost local scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Lookup reports whether name is declared in this scope (parents are not
// searched) and whether it is already defined.
func (s *Scope) Lookup(name string) (defined, ok bool) {
	defined, ok = s.elems[name]
	return
}

// LookupParent searches from s outward and returns the number of scopes
// between s and the one declaring name, or -1 if no local scope does.
func (s *Scope) LookupParent(name string) int {
	depth := 0
	for scope := s; scope != nil; scope = scope.parent {
		if _, ok := scope.elems[name]; ok {
			return depth
		}
		depth++
	}
	return -1
}

// Declare adds name to the scope as not yet defined.
// It reports false if the name was already present.
func (s *Scope) Declare(name string) bool {
	if _, ok := s.elems[name]; ok {
		return false
	}
	s.elems[name] = false
	return true
}

// Define marks name as fully initialized, adding it if needed.
func (s *Scope) Define(name string) {
	s.elems[name] = true
}

// Names returns the names in the scope, sorted alphabetically.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.elems))
	for name := range s.elems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String returns a string representation of the scope chain for debugging.
func (s *Scope) String() string {
	var b strings.Builder
	depth := 0
	for scope := s; scope != nil; scope = scope.parent {
		fmt.Fprintf(&b, "%s%s {%s}\n", strings.Repeat("  ", depth), scope.comment, strings.Join(scope.Names(), ", "))
		depth++
	}
	return b.String()
}
