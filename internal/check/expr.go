package check

import (
	"github.com/carbon-run/carbon/internal/ast"
	"github.com/carbon-run/carbon/internal/types"
)

// typeOf is demand-driven: it memoizes into StaticType so repeated
// visits to the same expression (e.g. a name used twice) never
// recompute, and so every checked expression ends up with a type
// recorded once checking finishes.
func (c *Checker) typeOf(e ast.Expression) types.Type {
	if t, ok := c.result.StaticType[e]; ok {
		return t
	}
	t := c.computeType(e)
	c.result.StaticType[e] = t
	return t
}

func (c *Checker) computeType(e ast.Expression) types.Type {
	switch e := e.(type) {
	case *ast.Identifier:
		n, ok := c.table.Definition[e]
		if !ok {
			// Name resolution already reported the undeclared-name error;
			// don't cascade a second diagnostic.
			return types.ErrorType{}
		}
		return c.typeOfName(n)

	case *ast.IntLit:
		return types.IntType{}
	case *ast.BoolLit:
		return types.BoolType{}
	case *ast.IntTypeExpr, *ast.BoolTypeExpr, *ast.TypeTypeExpr:
		return types.TypeTType{}

	case *ast.TupleLit:
		if !e.Tuple.WellFormed() {
			c.log.Addf(e.Region, "duplicate field label in tuple literal")
		}
		fields := make([]types.TupleField, len(e.Tuple.Fields))
		for i, f := range e.Tuple.Fields {
			fields[i] = types.TupleField{ID: f.ID, Type: c.typeOf(f.Value)}
		}
		return types.TupleType{Fields: fields}

	case *ast.UnaryOp:
		return c.unaryOpType(e)
	case *ast.BinaryOp:
		return c.binaryOpType(e)
	case *ast.IndexExpr:
		return c.indexType(e)
	case *ast.MemberAccess:
		return c.memberAccessType(e)
	case *ast.Call:
		return c.callType(e)
	case *ast.FunctionTypeExpr:
		return c.functionTypeExprType(e)

	default:
		c.log.Addf(e.Site(), "internal: unsupported expression kind")
		return types.ErrorType{}
	}
}

func (c *Checker) unaryOpType(e *ast.UnaryOp) types.Type {
	operand := c.typeOf(e.Operand)
	switch e.Op {
	case "-":
		if !types.IsError(operand) && !types.Equal(operand, types.IntType{}) {
			c.log.Addf(e.Region, "Expected expression of type Int, not %s", operand.String())
			return types.ErrorType{}
		}
		return types.IntType{}
	case "not":
		if !types.IsError(operand) && !types.Equal(operand, types.BoolType{}) {
			c.log.Addf(e.Region, "Expected expression of type Bool, not %s", operand.String())
			return types.ErrorType{}
		}
		return types.BoolType{}
	default:
		c.log.Addf(e.Region, "internal: unknown unary operator %q", e.Op)
		return types.ErrorType{}
	}
}

func (c *Checker) binaryOpType(e *ast.BinaryOp) types.Type {
	lhs := c.typeOf(e.Lhs)
	rhs := c.typeOf(e.Rhs)
	switch e.Op {
	case "==":
		if !types.IsError(lhs) && !types.IsError(rhs) && !types.Equal(lhs, rhs) {
			c.log.Addf(e.Region, "Expected expression of type %s, not %s", lhs.String(), rhs.String())
		}
		return types.BoolType{}
	case "+", "-":
		c.requireType(e.Lhs, lhs, types.IntType{})
		c.requireType(e.Rhs, rhs, types.IntType{})
		return types.IntType{}
	case "and", "or":
		c.requireType(e.Lhs, lhs, types.BoolType{})
		c.requireType(e.Rhs, rhs, types.BoolType{})
		return types.BoolType{}
	default:
		c.log.Addf(e.Region, "internal: unknown binary operator %q", e.Op)
		return types.ErrorType{}
	}
}

// requireType reports a standard type-mismatch diagnostic unless got is
// already Error (avoiding cascades) or matches want.
func (c *Checker) requireType(at ast.Node, got, want types.Type) {
	if types.IsError(got) || types.Equal(got, want) {
		return
	}
	c.log.Addf(at.Site(), "Expected expression of type %s, not %s", want.String(), got.String())
}

func (c *Checker) indexType(e *ast.IndexExpr) types.Type {
	base := c.typeOf(e.Target)
	off := c.typeOf(e.Offset)
	c.requireType(e.Offset, off, types.IntType{})
	tt, ok := base.(types.TupleType)
	if !ok {
		if !types.IsError(base) {
			c.log.Addf(e.Region, "Expected expression of type Tuple, not %s", base.String())
		}
		return types.ErrorType{}
	}
	lit, ok := e.Offset.(*ast.IntLit)
	if !ok {
		// Non-literal offsets cannot be resolved to a fieldID at compile
		// time in this MVP; treat the field set as unknown.
		return types.ErrorType{}
	}
	ft, ok := tt.ByID(ast.Pos(int(lit.Value)))
	if !ok {
		c.log.Addf(e.Region, "Tuple type %s has no value at position %d", tt.String(), lit.Value)
		return types.ErrorType{}
	}
	return ft
}

func (c *Checker) memberAccessType(e *ast.MemberAccess) types.Type {
	base := c.typeOf(e.Base)
	switch base := base.(type) {
	case types.TupleType:
		ft, ok := base.ByID(ast.Label(e.Member))
		if !ok {
			c.log.Addf(e.Region, "tuple type %s has no field '%s'", base.String(), e.Member)
			return types.ErrorType{}
		}
		return ft
	case types.StructType:
		m, ok := base.Id.FindMember(e.Member)
		if !ok {
			c.log.Addf(e.Region, "struct %s has no member '%s'", base.Id.Name, e.Member)
			return types.ErrorType{}
		}
		return c.typeOfMember(m)
	case types.TypeTType:
		v, err := c.evaluateLiteralOrCompute(e.Base)
		if err != nil {
			c.log.Addf(e.Region, "%s", err.Error())
			return types.ErrorType{}
		}
		ct, ok := v.(types.ChoiceType)
		if !ok {
			c.log.Addf(e.Region, "expression of type %s does not have named members", v.String())
			return types.ErrorType{}
		}
		alt, ok := ct.Id.FindAlternative(e.Member)
		if !ok {
			c.log.Addf(e.Region, "choice %s has no alternative '%s'", ct.Id.Name, e.Member)
			return types.ErrorType{}
		}
		payload := c.result.AlternativePayload[alt]
		return types.AlternativeType{Parent: ct.Id, Alt: alt, Payload: payload}
	default:
		if types.IsError(base) {
			return types.ErrorType{}
		}
		c.log.Addf(e.Region, "expression of type %s does not have named members", base.String())
		return types.ErrorType{}
	}
}

// evaluateLiteralOrCompute evaluates a TypeT-typed expression via the
// literal subset, falling back to the injected Evaluator for computed
// cases, the same two-tier strategy as evalTypeExpr, exposed for
// callers (like MemberAccess on a choice) that already know e is TypeT.
func (c *Checker) evaluateLiteralOrCompute(e ast.Expression) (types.Type, error) {
	v, err := c.evaluateLiteralType(e)
	if err == nil {
		return v, nil
	}
	if c.eval == nil {
		return nil, err
	}
	return c.eval.EvaluateType(e, c)
}

func (c *Checker) callType(e *ast.Call) types.Type {
	calleeType := c.typeOf(e.Callee)
	argFields := make([]types.TupleField, len(e.Args.Fields))
	for i, f := range e.Args.Fields {
		argFields[i] = types.TupleField{ID: f.ID, Type: c.typeOf(f.Value)}
	}
	argType := types.TupleType{Fields: argFields}

	switch ct := calleeType.(type) {
	case types.FunctionType:
		if !types.Equal(argType, ct.Params) {
			c.log.Addf(e.Region, "argument types %s do not match parameter types %s", argType.String(), ct.Params.String())
		}
		return ct.ReturnType

	case types.AlternativeType:
		if !types.Equal(argType, ct.Payload) {
			c.log.Addf(e.Region, "argument types %s do not match payload type %s", argType.String(), ct.Payload.String())
		}
		return types.ChoiceType{Id: ct.Parent}

	case types.TypeTType:
		v, err := c.evaluateLiteralOrCompute(e.Callee)
		if err != nil {
			c.log.Addf(e.Region, "%s", err.Error())
			return types.ErrorType{}
		}
		st, ok := v.(types.StructType)
		if !ok {
			c.log.Addf(e.Region, "type %s is not callable.", v.String())
			return types.ErrorType{}
		}
		want := c.initializerParameters(st.Id)
		if !types.Equal(argType, want) {
			c.log.Addf(e.Region, "argument types %s do not match parameter types %s", argType.String(), want.String())
		}
		return st

	default:
		if types.IsError(calleeType) {
			return types.ErrorType{}
		}
		c.log.Addf(e.Region, "value of type %s is not callable.", calleeType.String())
		return types.ErrorType{}
	}
}

// initializerParameters is a struct's implicit initializer signature:
// one labeled parameter per member, in declaration order (
// "initializerParameters(S)").
func (c *Checker) initializerParameters(s *ast.StructDefinition) types.TupleType {
	fields := make([]types.TupleField, len(s.Members))
	for i, m := range s.Members {
		fields[i] = types.TupleField{ID: ast.Label(m.Name), Type: c.typeOfMember(m)}
	}
	return types.TupleType{Fields: fields}
}

func (c *Checker) functionTypeExprType(e *ast.FunctionTypeExpr) types.Type {
	for _, f := range e.Params.Fields {
		c.metatypePatternType(f.Value)
	}
	c.metatypePatternType(e.ReturnType)
	return types.TypeTType{}
}
