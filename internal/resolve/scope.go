package resolve

import "github.com/carbon-run/carbon/internal/ast"

// scope is one entry in the lexical scope stack. The
// top-level scope is shared by every top-level declaration regardless of
// declaration order; every other scope (function body, block, struct
// body, choice body, match clause) is created fresh as the deep pass
// enters it and discarded when the pass leaves it, mirroring funxy's own
// scope-stack idiom (internal/symbols/symbol_table_core.go's
// ScopePrelude/ScopeGlobal/ScopeFunction/ScopeBlock chain) minus module
// and trait scopes, which Carbon's Non-goals exclude.
type scope struct {
	parent *scope
	names  map[string]ast.Node
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, names: make(map[string]ast.Node)}
}

// lookup walks the scope chain outward, returning the declaration node
// bound to name, if any.
func (s *scope) lookup(name string) (ast.Node, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if n, ok := sc.names[name]; ok {
			return n, true
		}
	}
	return nil, false
}

// declareHere binds name to node in s itself (not an ancestor), reporting
// whether name was already bound in this exact scope.
func (s *scope) declareHere(name string, node ast.Node) (existing ast.Node, dup bool) {
	if existing, ok := s.names[name]; ok {
		return existing, true
	}
	s.names[name] = node
	return nil, false
}
