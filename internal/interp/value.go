// Package interp implements the Interpreter: a
// single-threaded, address-based tree-walking evaluator over the same
// AST the resolver and checker consumed. Its shape is grounded in
// funxy's own evaluator.go type-switch dispatch over an Object
// interface (internal/evaluator/evaluator.go, object.go) and its
// Environment scope-chain (internal/evaluator/environment.go), adapted
// from funxy's dynamically-typed, GC'd object model to Carbon's
// explicit-allocation, statically-typed Memory: values
// here live at addresses with bound types and initialization state
// rather than as free-floating garbage-collected Objects.
package interp

import (
	"fmt"

	"github.com/carbon-run/carbon/internal/ast"
	"github.com/carbon-run/carbon/internal/types"
)

// Value is the dynamic runtime value variant. Every
// Value carries its own dynamic Type so equality and pattern matching
// never need a side table to ask "what type is this".
type Value interface {
	Type() types.Type
	fmt.Stringer
	isValue()
}

// IntValue, BoolValue and TypeValue are the atomic variants.
type (
	IntValue  struct{ V int64 }
	BoolValue struct{ V bool }
	// TypeValue is a type used as a first-class value: a type *is* a
	// value, with dynamic type TypeT.
	TypeValue struct{ V types.Type }
)

func (IntValue) isValue()  {}
func (BoolValue) isValue() {}
func (TypeValue) isValue() {}

func (v IntValue) Type() types.Type  { return types.IntType{} }
func (v BoolValue) Type() types.Type { return types.BoolType{} }
func (v TypeValue) Type() types.Type { return types.TypeTType{} }

func (v IntValue) String() string  { return fmt.Sprintf("%d", v.V) }
func (v BoolValue) String() string { return fmt.Sprintf("%t", v.V) }
func (v TypeValue) String() string { return v.V.String() }

// TupleValue is a tuple value: one Value per field, addressed by the
// same FieldIDs its static TupleType uses.
type TupleValue struct {
	T      types.TupleType
	Fields []Value // parallel to T.Fields, by position
}

func (TupleValue) isValue()         {}
func (v TupleValue) Type() types.Type { return v.T }
func (v TupleValue) String() string {
	s := "("
	for i, f := range v.Fields {
		if i > 0 {
			s += ", "
		}
		if v.T.Fields[i].ID.IsLabel {
			s += "." + v.T.Fields[i].ID.Label + " = "
		}
		if f != nil {
			s += f.String()
		} else {
			s += "<uninit>"
		}
	}
	return s + ")"
}

// FunctionValue is a function value: a handle to its defining node plus
// its (already-computed) static type.
type FunctionValue struct {
	Def *ast.FunctionDefinition
	T   types.FunctionType
}

func (FunctionValue) isValue()         {}
func (v FunctionValue) Type() types.Type { return v.T }
func (v FunctionValue) String() string   { return "fn " + v.Def.Name }

// StructValue is an instance of a nominal struct type.
type StructValue struct {
	Id      *ast.StructDefinition
	Payload TupleValue
}

func (StructValue) isValue()         {}
func (v StructValue) Type() types.Type { return types.StructType{Id: v.Id} }
func (v StructValue) String() string   { return v.Id.Name + v.Payload.String() }

// ChoiceValue is an instance of a nominal choice (sum) type: a fixed
// discriminator (the chosen Alternative) plus its payload.
type ChoiceValue struct {
	Id      *ast.ChoiceDefinition
	Alt     *ast.Alternative
	Payload TupleValue
}

func (ChoiceValue) isValue()         {}
func (v ChoiceValue) Type() types.Type { return types.ChoiceType{Id: v.Id} }
func (v ChoiceValue) String() string {
	if len(v.Payload.Fields) == 0 {
		return v.Id.Name + "." + v.Alt.Name
	}
	return v.Id.Name + "." + v.Alt.Name + v.Payload.String()
}

// AlternativeValue is a bare (uncalled) alternative reference, used only
// as a callee.
type AlternativeValue struct {
	Parent *ast.ChoiceDefinition
	Alt    *ast.Alternative
	T      types.AlternativeType
}

func (AlternativeValue) isValue()         {}
func (v AlternativeValue) Type() types.Type { return v.T }
func (v AlternativeValue) String() string   { return v.Parent.Name + "." + v.Alt.Name }

// Equal is the `==` relation: primitives compare by
// value; tuples by congruence plus recursive equality; choices by
// discriminator then payload; types structurally; otherwise (function
// and bare alternative values) values of matching dynamic type are
// equal and values of differing dynamic type are unequal, which keeps
// the relation reflexive.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case IntValue:
		bv, ok := b.(IntValue)
		return ok && a.V == bv.V
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && a.V == bv.V
	case TypeValue:
		bv, ok := b.(TypeValue)
		return ok && types.Equal(a.V, bv.V)
	case TupleValue:
		bv, ok := b.(TupleValue)
		if !ok || len(a.Fields) != len(bv.Fields) {
			return false
		}
		// Congruence plus recursive equality: fields pair up by fieldID,
		// not position, so label-reordered tuples of the same tuple type
		// compare equal.
		for i, f := range a.T.Fields {
			j := -1
			for k, bf := range bv.T.Fields {
				if bf.ID == f.ID {
					j = k
					break
				}
			}
			if j < 0 || !Equal(a.Fields[i], bv.Fields[j]) {
				return false
			}
		}
		return true
	case StructValue:
		bv, ok := b.(StructValue)
		return ok && a.Id == bv.Id && Equal(a.Payload, bv.Payload)
	case ChoiceValue:
		bv, ok := b.(ChoiceValue)
		return ok && a.Id == bv.Id && a.Alt == bv.Alt && Equal(a.Payload, bv.Payload)
	default:
		return a != nil && b != nil && types.Equal(a.Type(), b.Type())
	}
}
