// Package program builds the ExecutableProgram: an immutable bundle of
// the AST plus every auxiliary index name resolution and type checking
// computed, ready to hand to the interpreter. It corresponds to
// funxy's own "compile, then execute" split (internal/modules bundling
// a parsed, analyzed module before internal/evaluator runs it)
// collapsed down to Carbon's single-file, no-modules world.
package program

import (
	"github.com/carbon-run/carbon/internal/ast"
	"github.com/carbon-run/carbon/internal/check"
	"github.com/carbon-run/carbon/internal/diag"
	"github.com/carbon-run/carbon/internal/resolve"
)

// ExecutableProgram is immutable once built: nothing downstream mutates
// the AST, the resolution table, or the type-checking result.
type ExecutableProgram struct {
	AST     *ast.Program
	Names   *resolve.Table
	Types   *check.Result
}

// Compile runs NameResolution then TypeChecker in sequence, honoring
// the all-or-nothing rule between passes: type checking never runs
// over a program that failed to resolve. Compile passes a nil
// check.Evaluator, restricting compile-time type expressions to the
// literal subset; full compile-time Call evaluation is deferred (see
// DESIGN.md).
func Compile(prog *ast.Program) (*ExecutableProgram, *diag.Log) {
	table, resolveLog := resolve.Resolve(prog)
	if resolveLog.HasErrors() {
		return nil, resolveLog
	}

	result, checkLog := check.Check(prog, table, nil)
	if checkLog.HasErrors() {
		return nil, checkLog
	}

	return &ExecutableProgram{AST: prog, Names: table, Types: result}, checkLog
}
