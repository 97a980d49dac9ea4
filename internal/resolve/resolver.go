// Package resolve implements NameResolution: a single
// pass that binds every use-site identifier to its unique declaration,
// allowing forward references at top level and block-scoped shadowing
// everywhere else. It is grounded in funxy's own two-pass discovery
// shape (internal/analyzer/naming.go discovers names before the deep
// walk resolves uses against them) and its scope-stack idiom
// (internal/symbols/symbol_table_core.go), simplified: Carbon has no
// modules, traits, or generics to track.
package resolve

import (
	"github.com/carbon-run/carbon/internal/ast"
	"github.com/carbon-run/carbon/internal/diag"
	"github.com/carbon-run/carbon/internal/source"
)

// Table is the output of name resolution.
type Table struct {
	// Definition maps a use-site Identifier to the declaration it
	// denotes: *ast.FunctionDefinition, *ast.StructDefinition,
	// *ast.ChoiceDefinition, or *ast.SimpleBinding; inside a struct or
	// choice body, a name of a sibling member or alternative maps to its
	// *ast.Member or *ast.Alternative.
	Definition map[*ast.Identifier]ast.Node
	// Globals is the set of SimpleBinding identities bound at top-level
	// scope, used by the interpreter to drive per-binding lazy global
	// initialization.
	Globals map[*ast.SimpleBinding]bool
}

func newTable() *Table {
	return &Table{
		Definition: make(map[*ast.Identifier]ast.Node),
		Globals:    make(map[*ast.SimpleBinding]bool),
	}
}

type resolver struct {
	table *Table
	log   *diag.Log
}

// Resolve runs name resolution over prog, accumulating every error it
// finds; it never stops at the first one.
func Resolve(prog *ast.Program) (*Table, *diag.Log) {
	r := &resolver{table: newTable(), log: &diag.Log{}}
	global := newScope(nil)

	r.registerTopLevel(prog, global)
	r.checkMain(global)

	for _, decl := range prog.Declarations {
		r.walkTopLevel(decl, global)
	}

	return r.table, r.log
}

// registerTopLevel is the "top-level pass" of : it
// introduces every top-level name before any use-site is resolved, so
// forward references work regardless of declaration order.
func (r *resolver) registerTopLevel(prog *ast.Program, global *scope) {
	for _, decl := range prog.Declarations {
		switch d := decl.(type) {
		case *ast.FunctionDefinition:
			r.declare(global, d.Name, d, d.Region)
		case *ast.StructDefinition:
			r.declare(global, d.Name, d, d.Region)
		case *ast.ChoiceDefinition:
			r.declare(global, d.Name, d, d.Region)
		case *ast.Initialization:
			for _, b := range ast.Bindings(d.Pattern) {
				r.declare(global, b.Name, b, b.Region)
				r.table.Globals[b] = true
			}
		}
	}
}

// declare binds name to node in s, reporting a duplicate-definition
// error (and keeping the first binding) if name is already bound there.
func (r *resolver) declare(s *scope, name string, node ast.Node, region source.Region) {
	if _, dup := s.declareHere(name, node); dup {
		r.log.Addf(region, "'%s' already defined", name)
	}
}

// checkMain verifies the distinguished `main` function exists and is
// nullary. Its return type (must be Int) is checked by the type checker,
// since verifying that requires computing main's signature type.
func (r *resolver) checkMain(global *scope) {
	n, ok := global.lookup("main")
	if !ok {
		r.log.Addf(source.Empty, "missing 'main' function")
		return
	}
	fn, ok := n.(*ast.FunctionDefinition)
	if !ok {
		r.log.Addf(n.Site(), "'main' must be a function")
		return
	}
	if len(fn.Parameters.Fields) != 0 {
		r.log.Addf(fn.Region, "'main' must take no parameters")
	}
}
