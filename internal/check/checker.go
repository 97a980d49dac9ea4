// Package check implements the TypeChecker: a memoizing,
// demand-driven pass that computes the static type of every expression
// and pattern, evaluates compile-time type expressions (the literal
// type-syntax subset directly, anything else only through an optional
// Evaluator), and deduces `auto` binding types from initializers. It mirrors funxy's own analyzer shape (a driver struct
// holding accumulated state plus a set of mutually recursive `type of`
// methods, internal/analyzer/analyzer.go) but drops funxy's
// Hindley-Milner inference context (internal/analyzer/inference.go):
// Carbon has no generics to infer over, so every type is computed, not
// unified.
package check

import (
	"fmt"

	"github.com/carbon-run/carbon/internal/ast"
	"github.com/carbon-run/carbon/internal/diag"
	"github.com/carbon-run/carbon/internal/resolve"
	"github.com/carbon-run/carbon/internal/types"
)

// nameState is the three-state memoization marker typeOfName uses:
// absent (no entry), beingComputed (cycle guard), final (cached
// result).
type nameState int

const (
	final nameState = iota
	beingComputed
)

type memoEntry struct {
	state nameState
	typ   types.Type
}

// Result is the output of a successful (or partially successful, but
// still fully populated) type-checking pass.
type Result struct {
	// StaticType maps every expression the checker visited to its type.
	StaticType map[ast.Expression]types.Type
	// AlternativePayload maps each choice alternative to its payload
	// tuple type.
	AlternativePayload map[*ast.Alternative]types.TupleType
	// EnclosingChoice maps each alternative back to its defining
	// choice, built during the parentage-registration step.
	EnclosingChoice map[*ast.Alternative]*ast.ChoiceDefinition
	// EnclosingInitialization maps a bound SimpleBinding to the
	// Initialization that introduces it.
	EnclosingInitialization map[*ast.SimpleBinding]*ast.Initialization
	// BindingType is the final memoized type of every SimpleBinding
	// (pattern variables and parameters); struct members are recorded
	// in MemberType instead.
	BindingType map[*ast.SimpleBinding]types.Type
	// MemberType is the final memoized type of every struct member.
	MemberType map[*ast.Member]types.Type
}

// Evaluator is the compile-time evaluation capability the checker needs
// from the interpreter to resolve type expressions that are more than
// literal type syntax. It is a narrow interface, not a direct package
// import, to keep the checker/interpreter dependency one-directional
// in the Go import graph.
type Evaluator interface {
	// EvaluateType evaluates e, which must be statically typed TypeT,
	// returning the compile-time type Value it denotes.
	EvaluateType(e ast.Expression, tc *Checker) (types.Type, error)
}

// Checker drives the checking sequence run by Check and memoizes
// per-declaration types with cycle detection.
type Checker struct {
	table *resolve.Table
	eval  Evaluator
	log   *diag.Log

	names   map[ast.Node]*memoEntry
	members map[*ast.Member]*memoEntry

	result *Result
}

// New builds a Checker over a resolved program. eval supplies
// compile-time evaluation of type expressions; pass nil
// to restrict the checker to the literal-type-syntax subset only.
func New(table *resolve.Table, eval Evaluator) *Checker {
	return &Checker{
		table:   table,
		eval:    eval,
		log:     &diag.Log{},
		names:   make(map[ast.Node]*memoEntry),
		members: make(map[*ast.Member]*memoEntry),
		result: &Result{
			StaticType:              make(map[ast.Expression]types.Type),
			AlternativePayload:      make(map[*ast.Alternative]types.TupleType),
			EnclosingChoice:         make(map[*ast.Alternative]*ast.ChoiceDefinition),
			EnclosingInitialization: make(map[*ast.SimpleBinding]*ast.Initialization),
			BindingType:             make(map[*ast.SimpleBinding]types.Type),
			MemberType:              make(map[*ast.Member]types.Type),
		},
	}
}

// Check runs the full driver sequence over prog.
func Check(prog *ast.Program, table *resolve.Table, eval Evaluator) (*Result, *diag.Log) {
	c := New(table, eval)

	c.registerParentage(prog)
	c.checkNominalBodies(prog)
	for _, decl := range prog.Declarations {
		if fn, ok := decl.(*ast.FunctionDefinition); ok {
			c.typeOfName(fn)
		}
	}
	c.checkMainSignature(prog)
	for _, decl := range prog.Declarations {
		if init, ok := decl.(*ast.Initialization); ok {
			c.checkInitialization(init)
		}
	}
	for _, decl := range prog.Declarations {
		if fn, ok := decl.(*ast.FunctionDefinition); ok {
			c.checkFunctionBody(fn)
		}
	}

	return c.result, c.log
}

// checkMainSignature verifies main returns Int; its return value is the
// program's exit code. Existence and arity were already checked during
// resolution, so only the return type is verified here (it requires
// computing main's signature, which resolution cannot do).
func (c *Checker) checkMainSignature(prog *ast.Program) {
	for _, decl := range prog.Declarations {
		fn, ok := decl.(*ast.FunctionDefinition)
		if !ok || fn.Name != "main" {
			continue
		}
		sig, ok := c.typeOfName(fn).(types.FunctionType)
		if !ok {
			return
		}
		if !types.IsError(sig.ReturnType) && !types.Equal(sig.ReturnType, types.IntType{}) {
			c.log.Addf(fn.Region, "'main' must return Int, not %s", sig.ReturnType.String())
		}
		return
	}
}

// registerParentage is the first driver step. It also walks
// into function bodies to register local `var` Initializations, since
// Initialization is used both at top level and, unwrapped, as a local
// statement.
func (c *Checker) registerParentage(prog *ast.Program) {
	for _, decl := range prog.Declarations {
		switch d := decl.(type) {
		case *ast.ChoiceDefinition:
			for _, alt := range d.Alternatives {
				c.result.EnclosingChoice[alt] = d
			}
		case *ast.Initialization:
			c.registerInitialization(d)
		case *ast.FunctionDefinition:
			if d.Body != nil {
				c.registerBlockInitializations(d.Body)
			}
		}
	}
}

func (c *Checker) registerInitialization(init *ast.Initialization) {
	for _, b := range ast.Bindings(init.Pattern) {
		c.result.EnclosingInitialization[b] = init
	}
}

func (c *Checker) registerBlockInitializations(b *ast.Block) {
	for _, stmt := range b.Stmts {
		c.registerStmtInitializations(stmt)
	}
}

func (c *Checker) registerStmtInitializations(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Initialization:
		c.registerInitialization(s)
	case *ast.If:
		c.registerBlockInitializations(s.Then)
		if s.Else != nil {
			c.registerStmtInitializations(s.Else)
		}
	case *ast.While:
		c.registerBlockInitializations(s.Body)
	case *ast.Block:
		c.registerBlockInitializations(s)
	case *ast.Match:
		for _, clause := range s.Clauses {
			c.registerBlockInitializations(clause.Action)
		}
	}
}

// checkNominalBodies is step 2: every struct/choice member's declared
// type expression is computed and cached up front, so later uses of the
// struct/choice never recompute it.
func (c *Checker) checkNominalBodies(prog *ast.Program) {
	for _, decl := range prog.Declarations {
		switch d := decl.(type) {
		case *ast.StructDefinition:
			for _, m := range d.Members {
				c.typeOfMember(m)
			}
		case *ast.ChoiceDefinition:
			for _, alt := range d.Alternatives {
				fields := make([]types.TupleField, len(alt.Payload.Fields))
				for i, f := range alt.Payload.Fields {
					fields[i] = types.TupleField{ID: f.ID, Type: c.evalTypeExpr(f.Value)}
				}
				c.result.AlternativePayload[alt] = types.TupleType{Fields: fields}
			}
		}
	}
}

// typeOfMember computes and memoizes a struct member's declared type.
func (c *Checker) typeOfMember(m *ast.Member) types.Type {
	if e, ok := c.members[m]; ok {
		if e.state == beingComputed {
			c.log.Addf(m.Region, "type dependency loop")
			return types.ErrorType{}
		}
		return e.typ
	}
	c.members[m] = &memoEntry{state: beingComputed}
	t := c.evalTypeExpr(m.Type)
	c.members[m] = &memoEntry{state: final, typ: t}
	c.result.MemberType[m] = t
	return t
}

// typeOfName memoizes the type of a named declaration, generalized
// over every Declaration identity plus *ast.SimpleBinding: the two share one
// cycle-detection table because a binding's type can depend on a
// function's signature and vice versa (`fn f() => g(); fn g() => f();`).
func (c *Checker) typeOfName(n ast.Node) types.Type {
	// SimpleBinding carries its own memoization (variablePatternType),
	// shared with patternType so a binding typed once from its pattern's
	// rhs and again via a later Name reference agree; routing it through
	// the generic path below would re-enter with a spurious
	// beingComputed marker already set for the same key.
	if b, ok := n.(*ast.SimpleBinding); ok {
		return c.variablePatternType(b, nil)
	}

	if e, ok := c.names[n]; ok {
		if e.state == beingComputed {
			c.log.Addf(n.Site(), "type dependency loop")
			return types.ErrorType{}
		}
		return e.typ
	}
	c.names[n] = &memoEntry{state: beingComputed}
	t := c.computeNameType(n)
	c.names[n] = &memoEntry{state: final, typ: t}
	return t
}

func (c *Checker) computeNameType(n ast.Node) types.Type {
	switch d := n.(type) {
	case *ast.FunctionDefinition:
		return c.functionSignature(d)
	case *ast.StructDefinition:
		return types.TypeTType{}
	case *ast.ChoiceDefinition:
		return types.TypeTType{}
	default:
		c.log.Addf(n.Site(), "internal: typeOfName on unsupported node")
		return types.ErrorType{}
	}
}

// functionSignature computes a FunctionDefinition's Function type. Auto
// return types are deduced from the body: a `=> expr;` body types its
// expression directly; a `{ ... }` body takes the type of its first
// `return` statement (unit when it has none), and any later return of
// a different type is reported at checkFunctionBody time.
func (c *Checker) functionSignature(fn *ast.FunctionDefinition) types.Type {
	params := make([]types.TupleField, len(fn.Parameters.Fields))
	for i, f := range fn.Parameters.Fields {
		params[i] = types.TupleField{ID: f.ID, Type: c.patternType(f.Value, nil)}
	}
	paramsType := types.TupleType{Fields: params}

	var ret types.Type
	switch {
	case !fn.ReturnType.IsAuto():
		ret = c.evalTypeExpr(fn.ReturnType.Expr)
	case fn.ReturnBody != nil:
		ret = c.typeOf(fn.ReturnBody)
	default:
		// auto return type with a block body: deduced here from the
		// body's first return statement.
		ret = c.deduceBlockReturnType(fn.Body)
	}
	return types.FunctionType{Params: paramsType, ReturnType: ret}
}

// deduceBlockReturnType scans a block body's return statements (not
// descending into nested function definitions, which cannot occur) to
// deduce an auto return type, per note that body-typechecking
// detail is partly left to the implementation.
func (c *Checker) deduceBlockReturnType(body *ast.Block) types.Type {
	if body == nil {
		return types.TupleType{}
	}
	if t, ok := c.firstReturnType(body); ok {
		return t
	}
	return types.TupleType{}
}

func (c *Checker) firstReturnType(b *ast.Block) (types.Type, bool) {
	for _, stmt := range b.Stmts {
		switch s := stmt.(type) {
		case *ast.Return:
			if s.Value == nil {
				return types.TupleType{}, true
			}
			return c.typeOf(s.Value), true
		case *ast.If:
			if t, ok := c.firstReturnType(s.Then); ok {
				return t, ok
			}
			if blk, ok := s.Else.(*ast.Block); ok {
				if t, ok := c.firstReturnType(blk); ok {
					return t, ok
				}
			}
		case *ast.While:
			if t, ok := c.firstReturnType(s.Body); ok {
				return t, ok
			}
		case *ast.Block:
			if t, ok := c.firstReturnType(s); ok {
				return t, ok
			}
		case *ast.Match:
			for _, clause := range s.Clauses {
				if t, ok := c.firstReturnType(clause.Action); ok {
					return t, ok
				}
			}
		}
	}
	return nil, false
}

// evalTypeExpr type-checks e, requires its type to be TypeT, and
// evaluates it to a compile-time Type value (
// "type-expression evaluation").
func (c *Checker) evalTypeExpr(e ast.Expression) types.Type {
	t := c.typeOf(e)
	if types.IsError(t) {
		return types.ErrorType{}
	}
	if _, ok := t.(types.TypeTType); !ok {
		c.log.Addf(e.Site(), "Not a type expression (value has type %s)", t.String())
		return types.ErrorType{}
	}
	v, err := c.evaluateLiteralType(e)
	if err == nil {
		return v
	}
	if c.eval == nil {
		c.log.Addf(e.Site(), "%s", err.Error())
		return types.ErrorType{}
	}
	v, err = c.eval.EvaluateType(e, c)
	if err != nil {
		c.log.Addf(e.Site(), "%s", err.Error())
		return types.ErrorType{}
	}
	return v
}

// evaluateLiteralType handles the purely-syntactic subset of type
// expressions directly, without invoking the interpreter: literal type
// syntax, Name of a type declaration, and FunctionType/Tuple of types
// (compile-time and runtime interpreter sharing via a small,
// pure evaluator for the type-expression subset").
func (c *Checker) evaluateLiteralType(e ast.Expression) (types.Type, error) {
	switch e := e.(type) {
	case *ast.IntTypeExpr:
		return types.IntType{}, nil
	case *ast.BoolTypeExpr:
		return types.BoolType{}, nil
	case *ast.TypeTypeExpr:
		return types.TypeTType{}, nil
	case *ast.Identifier:
		n := c.table.Definition[e]
		switch d := n.(type) {
		case *ast.StructDefinition:
			return types.StructType{Id: d}, nil
		case *ast.ChoiceDefinition:
			return types.ChoiceType{Id: d}, nil
		}
		return nil, fmt.Errorf("requires evaluating a non-literal binding")
	case *ast.TupleLit:
		fields := make([]types.TupleField, len(e.Tuple.Fields))
		for i, f := range e.Tuple.Fields {
			ft, err := c.evaluateLiteralType(f.Value)
			if err != nil {
				return nil, err
			}
			fields[i] = types.TupleField{ID: f.ID, Type: ft}
		}
		return types.TupleType{Fields: fields}, nil
	case *ast.FunctionTypeExpr:
		params := make([]types.TupleField, len(e.Params.Fields))
		for i, f := range e.Params.Fields {
			pt, err := c.literalPatternType(f.Value)
			if err != nil {
				return nil, err
			}
			params[i] = types.TupleField{ID: f.ID, Type: pt}
		}
		rt, err := c.literalPatternType(e.ReturnType)
		if err != nil {
			return nil, err
		}
		return types.FunctionType{Params: types.TupleType{Fields: params}, ReturnType: rt}, nil
	default:
		return nil, fmt.Errorf("requires evaluating a computed expression")
	}
}

func (c *Checker) literalPatternType(p ast.Pattern) (types.Type, error) {
	a, ok := p.(*ast.AtomPattern)
	if !ok {
		return nil, fmt.Errorf("requires evaluating a non-literal pattern")
	}
	return c.evaluateLiteralType(a.Expr)
}

func (c *Checker) checkInitialization(init *ast.Initialization) {
	rhs := c.typeOf(init.Value)
	lhs := c.patternType(init.Pattern, rhs)
	if !types.IsError(lhs) && !types.IsError(rhs) && !types.Equal(lhs, rhs) {
		c.log.Addf(init.Region, "Pattern type %s does not match initializer type %s", lhs.String(), rhs.String())
	}
}
