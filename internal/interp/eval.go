package interp

import (
	"github.com/carbon-run/carbon/internal/ast"
	"github.com/carbon-run/carbon/internal/types"
)

// evalExprValue evaluates e into a fresh ephemeral address, reads the
// result back, and registers the address for deallocation at the end
// of the current statement. Most sub-expression evaluation goes
// through this; only an Initialization's value and a Match's subject
// are evaluated directly into their own already-allocated, longer-lived
// address via evalExpr.
func (it *Interpreter) evalExprValue(frame *Frame, e ast.Expression) Value {
	addr := it.mem.Allocate(it.staticType(e))
	frame.ephemeral = append(frame.ephemeral, addr)
	it.evalExpr(frame, e, addr)
	return it.mem.Read(addr)
}

// evalExpr evaluates e and writes its result into dest, an address the
// caller has already allocated with e's static type.
func (it *Interpreter) evalExpr(frame *Frame, e ast.Expression, dest Address) {
	switch e := e.(type) {
	case *ast.Identifier:
		it.evalIdentifier(frame, e, dest)

	case *ast.IntLit:
		it.mem.Write(dest, IntValue{V: e.Value})
	case *ast.BoolLit:
		it.mem.Write(dest, BoolValue{V: e.Value})
	case *ast.IntTypeExpr:
		it.mem.Write(dest, TypeValue{V: types.IntType{}})
	case *ast.BoolTypeExpr:
		it.mem.Write(dest, TypeValue{V: types.BoolType{}})
	case *ast.TypeTypeExpr:
		it.mem.Write(dest, TypeValue{V: types.TypeTType{}})

	case *ast.TupleLit:
		t := it.staticType(e).(types.TupleType)
		fields := make([]Value, len(e.Tuple.Fields))
		for i, f := range e.Tuple.Fields {
			fields[i] = it.evalExprValue(frame, f.Value)
		}
		it.mem.Write(dest, TupleValue{T: t, Fields: fields})

	case *ast.UnaryOp:
		it.evalUnaryOp(frame, e, dest)
	case *ast.BinaryOp:
		it.evalBinaryOp(frame, e, dest)
	case *ast.IndexExpr:
		it.evalIndex(frame, e, dest)
	case *ast.MemberAccess:
		it.evalMemberAccess(frame, e, dest)
	case *ast.Call:
		it.evalCall(frame, e, dest)
	case *ast.FunctionTypeExpr:
		it.evalFunctionTypeExpr(frame, e, dest)

	default:
		panic(&RuntimeError{Message: "internal: unsupported expression kind"})
	}
}

// evalIdentifier copies the value currently held at n's bound address
// into dest, driving global lazy initialization first when n denotes a
// global. A name denoting a FunctionDefinition/StructDefinition/ChoiceDefinition
// has no address of its own; it evaluates to a first-class value built on
// the spot from its static type.
func (it *Interpreter) evalIdentifier(frame *Frame, e *ast.Identifier, dest Address) {
	n := it.prog.Names.Definition[e]
	switch n := n.(type) {
	case *ast.SimpleBinding:
		addr := it.bindingAddress(frame, n)
		it.mem.Write(dest, it.mem.Read(addr))

	case *ast.FunctionDefinition:
		ft := it.staticType(e).(types.FunctionType)
		it.mem.Write(dest, FunctionValue{Def: n, T: ft})

	case *ast.StructDefinition:
		it.mem.Write(dest, TypeValue{V: types.StructType{Id: n}})

	case *ast.ChoiceDefinition:
		it.mem.Write(dest, TypeValue{V: types.ChoiceType{Id: n}})

	default:
		panic(&RuntimeError{Message: "internal: unresolved identifier reached the interpreter"})
	}
}

func (it *Interpreter) evalUnaryOp(frame *Frame, e *ast.UnaryOp, dest Address) {
	v := it.evalExprValue(frame, e.Operand)
	switch e.Op {
	case "-":
		it.mem.Write(dest, IntValue{V: -v.(IntValue).V})
	case "not":
		it.mem.Write(dest, BoolValue{V: !v.(BoolValue).V})
	default:
		panic(&RuntimeError{Message: "internal: unknown unary operator"})
	}
}

// evalBinaryOp implements operator rules, including
// short-circuit evaluation of `and`/`or` (the right operand is never
// evaluated, so it never acquires an ephemeral allocation, when the left
// operand already determines the result).
func (it *Interpreter) evalBinaryOp(frame *Frame, e *ast.BinaryOp, dest Address) {
	lhs := it.evalExprValue(frame, e.Lhs)
	switch e.Op {
	case "and":
		if !lhs.(BoolValue).V {
			it.mem.Write(dest, BoolValue{V: false})
			return
		}
		it.mem.Write(dest, it.evalExprValue(frame, e.Rhs))
	case "or":
		if lhs.(BoolValue).V {
			it.mem.Write(dest, BoolValue{V: true})
			return
		}
		it.mem.Write(dest, it.evalExprValue(frame, e.Rhs))
	case "==":
		rhs := it.evalExprValue(frame, e.Rhs)
		it.mem.Write(dest, BoolValue{V: Equal(lhs, rhs)})
	case "+":
		rhs := it.evalExprValue(frame, e.Rhs)
		it.mem.Write(dest, IntValue{V: lhs.(IntValue).V + rhs.(IntValue).V})
	case "-":
		rhs := it.evalExprValue(frame, e.Rhs)
		it.mem.Write(dest, IntValue{V: lhs.(IntValue).V - rhs.(IntValue).V})
	default:
		panic(&RuntimeError{Message: "internal: unknown binary operator"})
	}
}

func (it *Interpreter) evalIndex(frame *Frame, e *ast.IndexExpr, dest Address) {
	v := it.evalExprValue(frame, e.Target).(TupleValue)
	idx := it.evalExprValue(frame, e.Offset).(IntValue)
	it.mem.Write(dest, v.Fields[idx.V])
}

func (it *Interpreter) evalMemberAccess(frame *Frame, e *ast.MemberAccess, dest Address) {
	switch bt := it.staticType(e.Base).(type) {
	case types.TupleType:
		v := it.evalExprValue(frame, e.Base).(TupleValue)
		i := fieldIndex(bt, ast.Label(e.Member))
		it.mem.Write(dest, v.Fields[i])

	case types.StructType:
		v := it.evalExprValue(frame, e.Base).(StructValue)
		m, _ := bt.Id.FindMember(e.Member)
		i := memberIndex(bt.Id, m)
		it.mem.Write(dest, v.Payload.Fields[i])

	case types.TypeTType:
		v := it.evalExprValue(frame, e.Base).(TypeValue)
		ct := v.V.(types.ChoiceType)
		alt, _ := ct.Id.FindAlternative(e.Member)
		at := it.staticType(e).(types.AlternativeType)
		it.mem.Write(dest, AlternativeValue{Parent: ct.Id, Alt: alt, T: at})

	default:
		panic(&RuntimeError{Message: "internal: unsupported member access base"})
	}
}

// evalCall dispatches on the callee's static type to decide whether this
// is a function call, a choice-alternative construction, or a struct
// initializer call.
func (it *Interpreter) evalCall(frame *Frame, e *ast.Call, dest Address) {
	switch ct := it.staticType(e.Callee).(type) {
	case types.FunctionType:
		callee := it.evalExprValue(frame, e.Callee).(FunctionValue)
		args := it.evalArgs(frame, e.Args, ct.Params)
		it.mem.Write(dest, it.callFunction(callee.Def, args))

	case types.AlternativeType:
		callee := it.evalExprValue(frame, e.Callee).(AlternativeValue)
		args := it.evalArgs(frame, e.Args, ct.Payload)
		it.mem.Write(dest, ChoiceValue{Id: callee.Parent, Alt: callee.Alt, Payload: args})

	case types.TypeTType:
		callee := it.evalExprValue(frame, e.Callee).(TypeValue)
		st := callee.V.(types.StructType)
		params := it.structInitParams(st.Id)
		args := it.evalArgs(frame, e.Args, params)
		it.mem.Write(dest, StructValue{Id: st.Id, Payload: args})

	default:
		panic(&RuntimeError{Message: "internal: uncallable callee reached the interpreter"})
	}
}

// evalArgs evaluates each argument in source order (left-to-right) but
// stores the results by fieldID against want's field order, so labeled
// arguments written out of declaration order still land in the right
// slots.
func (it *Interpreter) evalArgs(frame *Frame, args ast.Tuple[ast.Expression], want types.TupleType) TupleValue {
	fields := make([]Value, len(want.Fields))
	for _, f := range args.Fields {
		v := it.evalExprValue(frame, f.Value)
		if idx := indexOfID(want, f.ID); idx >= 0 {
			fields[idx] = v
		}
	}
	return TupleValue{T: want, Fields: fields}
}

// structInitParams is the runtime counterpart of the type checker's
// member-typing pass: one field per member, typed from the already
// fully-checked program.
func (it *Interpreter) structInitParams(s *ast.StructDefinition) types.TupleType {
	fields := make([]types.TupleField, len(s.Members))
	for i, m := range s.Members {
		fields[i] = types.TupleField{ID: ast.Label(m.Name), Type: it.prog.Types.MemberType[m]}
	}
	return types.TupleType{Fields: fields}
}

// evalFunctionTypeExpr evaluates a `fnty(...) -> ...` expression to the
// TypeValue it denotes: function types are themselves values. Each parameter/return sub-pattern is expected to be an
// AtomPattern wrapping a type expression, or (for an as-yet-unbound
// pattern variable) a binding whose own type was already deduced by the
// checker.
func (it *Interpreter) evalFunctionTypeExpr(frame *Frame, e *ast.FunctionTypeExpr, dest Address) {
	fields := make([]types.TupleField, len(e.Params.Fields))
	for i, f := range e.Params.Fields {
		fields[i] = types.TupleField{ID: f.ID, Type: it.evalTypePattern(frame, f.Value)}
	}
	ret := it.evalTypePattern(frame, e.ReturnType)
	it.mem.Write(dest, TypeValue{V: types.FunctionType{Params: types.TupleType{Fields: fields}, ReturnType: ret}})
}

func (it *Interpreter) evalTypePattern(frame *Frame, p ast.Pattern) types.Type {
	switch p := p.(type) {
	case *ast.AtomPattern:
		return it.evalExprValue(frame, p.Expr).(TypeValue).V
	case *ast.VariablePattern:
		if t, ok := it.prog.Types.BindingType[p.Binding]; ok {
			return t
		}
		return types.ErrorType{}
	default:
		panic(&RuntimeError{Message: "internal: unsupported type pattern kind in function type expression"})
	}
}
