package interp

import (
	"fmt"

	"github.com/carbon-run/carbon/internal/ast"
	"github.com/carbon-run/carbon/internal/types"
)

// matchPattern implements match(p, ofType t, atAddress addr):
// it attempts to match the value stored at addr (of static type t) against
// p, binding any VariablePatterns it contains into frame.locals (addresses
// it allocates are pushed onto frame's persistent stack, so they live as
// long as the enclosing scope that matched them). Returns false without
// side effects beyond already-made sub-allocations if p does not match;
// callers that require a match (function-call binding, `var`) turn a false
// result into a RuntimeError; a match statement trying several clauses
// just moves on to the next one.
func (it *Interpreter) matchPattern(frame *Frame, p ast.Pattern, t types.Type, addr Address) bool {
	switch p := p.(type) {
	case *ast.AtomPattern:
		want := it.evalExprValue(frame, p.Expr)
		got := it.mem.Read(addr)
		return Equal(want, got)

	case *ast.VariablePattern:
		frame.locals[p.Binding] = addr
		return true

	case *ast.TuplePattern:
		tt, ok := t.(types.TupleType)
		if !ok {
			return false
		}
		v := it.mem.Read(addr).(TupleValue)
		for _, f := range p.Tuple.Fields {
			idx := indexOfID(tt, f.ID)
			if idx < 0 {
				return false
			}
			fieldType := tt.Fields[idx].Type
			sub := it.mem.Allocate(fieldType)
			frame.pushPersistent(sub)
			it.mem.Write(sub, v.Fields[idx])
			if !it.matchPattern(frame, f.Value, fieldType, sub) {
				return false
			}
		}
		return true

	case *ast.CallPattern:
		return it.matchCallPattern(frame, p, t, addr)

	case *ast.FunctionTypePattern:
		return it.matchFunctionTypePattern(frame, p, addr)

	default:
		panic(&RuntimeError{Message: "internal: unsupported pattern kind"})
	}
}

func (it *Interpreter) matchCallPattern(frame *Frame, p *ast.CallPattern, t types.Type, addr Address) bool {
	calleeType := it.staticType(p.Callee)
	switch ct := calleeType.(type) {
	case types.AlternativeType:
		if _, ok := t.(types.ChoiceType); !ok {
			return false
		}
		v := it.mem.Read(addr).(ChoiceValue)
		if v.Alt != ct.Alt {
			return false
		}
		for _, f := range p.Args.Fields {
			idx := indexOfID(ct.Payload, f.ID)
			if idx < 0 {
				return false
			}
			fieldType := ct.Payload.Fields[idx].Type
			sub := it.mem.Allocate(fieldType)
			frame.pushPersistent(sub)
			it.mem.Write(sub, v.Payload.Fields[idx])
			if !it.matchPattern(frame, f.Value, fieldType, sub) {
				return false
			}
		}
		return true

	default:
		// Struct payload patterns are unimplemented and never reach this
		// point in a successfully checked program unless one is actually
		// written and evaluated at runtime.
		panic(&RuntimeError{Message: fmt.Sprintf("%s: struct payload patterns are not implemented", p.Site())})
	}
}

func (it *Interpreter) matchFunctionTypePattern(frame *Frame, p *ast.FunctionTypePattern, addr Address) bool {
	v := it.mem.Read(addr).(TypeValue)
	ft, ok := v.V.(types.FunctionType)
	if !ok {
		return false
	}
	if len(p.Params.Fields) != len(ft.Params.Fields) {
		return false
	}
	for _, f := range p.Params.Fields {
		idx := indexOfID(ft.Params, f.ID)
		if idx < 0 {
			return false
		}
		sub := it.mem.Allocate(types.TypeTType{})
		frame.pushPersistent(sub)
		it.mem.Write(sub, TypeValue{V: ft.Params.Fields[idx].Type})
		if !it.matchPattern(frame, f.Value, types.TypeTType{}, sub) {
			return false
		}
	}
	retSub := it.mem.Allocate(types.TypeTType{})
	frame.pushPersistent(retSub)
	it.mem.Write(retSub, TypeValue{V: ft.ReturnType})
	return it.matchPattern(frame, p.ReturnType, types.TypeTType{}, retSub)
}

func indexOfID(t types.TupleType, id ast.FieldID) int {
	for i, f := range t.Fields {
		if f.ID == id {
			return i
		}
	}
	return -1
}
