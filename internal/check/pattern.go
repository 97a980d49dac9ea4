package check

import (
	"github.com/carbon-run/carbon/internal/ast"
	"github.com/carbon-run/carbon/internal/types"
)

// patternType is `patternType(p, rhs?)`: rhs is the
// statically-known type the pattern is being matched/initialized
// against, or nil when none is available (e.g. a function parameter
// pattern, which must carry an explicit type).
func (c *Checker) patternType(p ast.Pattern, rhs types.Type) types.Type {
	switch p := p.(type) {
	case *ast.AtomPattern:
		return c.typeOf(p.Expr)

	case *ast.VariablePattern:
		return c.variablePatternType(p.Binding, rhs)

	case *ast.TuplePattern:
		return c.tuplePatternType(p, rhs)

	case *ast.CallPattern:
		return c.callPatternType(p)

	case *ast.FunctionTypePattern:
		for _, f := range p.Params.Fields {
			c.metatypePatternType(f.Value)
		}
		c.metatypePatternType(p.ReturnType)
		return types.TypeTType{}

	default:
		c.log.Addf(p.Site(), "internal: unsupported pattern kind")
		return types.ErrorType{}
	}
}

// variablePatternType resolves and memoizes a single binding's type,
// shared between patternType (called with a known rhs) and typeOfName
// (called with rhs == nil from a later Name reference to the same
// binding) so both agree on the same cached result.
func (c *Checker) variablePatternType(b *ast.SimpleBinding, rhs types.Type) types.Type {
	if e, ok := c.names[b]; ok {
		if e.state == beingComputed {
			c.log.Addf(b.Region, "type dependency loop")
			return types.ErrorType{}
		}
		return e.typ
	}
	c.names[b] = &memoEntry{state: beingComputed}

	var t types.Type
	switch {
	case !b.Type.IsAuto():
		t = c.evalTypeExpr(b.Type.Expr)
	case rhs != nil:
		t = rhs
	default:
		if init, ok := c.result.EnclosingInitialization[b]; ok {
			t = c.typeOf(init.Value)
		} else {
			c.log.Addf(b.Region, "No initializer available to deduce type for auto")
			t = types.ErrorType{}
		}
	}

	c.names[b] = &memoEntry{state: final, typ: t}
	c.result.BindingType[b] = t
	return t
}

func (c *Checker) tuplePatternType(p *ast.TuplePattern, rhs types.Type) types.Type {
	rhsTuple, haveRhs := rhs.(types.TupleType)
	if rhs != nil && !haveRhs && !types.IsError(rhs) {
		c.log.Addf(p.Region, "instance of type %s is not callable", rhs.String())
	}
	fields := make([]types.TupleField, len(p.Tuple.Fields))
	for i, f := range p.Tuple.Fields {
		var sub types.Type
		if haveRhs {
			sub, _ = rhsTuple.ByID(f.ID)
		}
		fields[i] = types.TupleField{ID: f.ID, Type: c.patternType(f.Value, sub)}
	}
	return types.TupleType{Fields: fields}
}

// callPatternType handles `Callee(args...)` used as a pattern, e.g.
// `Ints.One(n: auto)` matching a choice alternative, or a struct
// payload pattern (unimplemented).
func (c *Checker) callPatternType(p *ast.CallPattern) types.Type {
	calleeType := c.typeOf(p.Callee)

	switch ct := calleeType.(type) {
	case types.AlternativeType:
		for i, f := range p.Args.Fields {
			var sub types.Type
			if i < len(ct.Payload.Fields) {
				sub, _ = ct.Payload.ByID(f.ID)
			}
			c.patternType(f.Value, sub)
		}
		if !congruentPatternArgs(p.Args, ct.Payload) {
			c.log.Addf(p.Region, "argument types do not match alternative payload type %s", ct.Payload.String())
		}
		return types.ChoiceType{Id: ct.Parent}

	case types.TypeTType:
		v, err := c.evaluateLiteralOrCompute(p.Callee)
		if err != nil {
			c.log.Addf(p.Region, "%s", err.Error())
			return types.ErrorType{}
		}
		st, ok := v.(types.StructType)
		if !ok {
			c.log.Addf(p.Region, "Called type must be a struct, not '%s'", v.String())
			return types.ErrorType{}
		}
		// Struct payload patterns are unimplemented, but member-typed
		// sub-patterns still get checked so later passes see consistent
		// types.
		for _, f := range p.Args.Fields {
			c.patternType(f.Value, nil)
		}
		return st

	default:
		if types.IsError(calleeType) {
			return types.ErrorType{}
		}
		c.log.Addf(p.Region, "instance of type %s is not callable", calleeType.String())
		return types.ErrorType{}
	}
}

func congruentPatternArgs(args ast.Tuple[ast.Pattern], payload types.TupleType) bool {
	if len(args.Fields) != len(payload.Fields) {
		return false
	}
	want := make(map[ast.FieldID]bool, len(payload.Fields))
	for _, f := range payload.Fields {
		want[f.ID] = true
	}
	for _, f := range args.Fields {
		if !want[f.ID] {
			return false
		}
	}
	return true
}

// metatypePatternType requires p to be metatype-typed: its elements must
// match values of type TypeT (FunctionType pattern rule).
func (c *Checker) metatypePatternType(p ast.Pattern) types.Type {
	t := c.patternType(p, types.TypeTType{})
	if !types.IsError(t) && !types.Equal(t, types.TypeTType{}) {
		if a, ok := p.(*ast.AtomPattern); ok {
			c.log.Addf(a.Region, "Pattern in this context must match type values, not %s values", t.String())
		} else {
			c.log.Addf(p.Site(), "Pattern in this context must match type values, not %s values", t.String())
		}
	}
	return t
}
