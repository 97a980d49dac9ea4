// Package types defines the Carbon static Type variant.
// It mirrors the shape of funxy's internal/typesystem package (a Type
// interface with a String() method, implemented by one struct per
// variant) but drops funxy's unification/type-variable machinery:
// Carbon has no generics, so there is nothing to unify: every type is
// fully concrete once computed.
package types

import (
	"fmt"
	"strings"

	"github.com/carbon-run/carbon/internal/ast"
)

// Type is the interface every type variant implements.
type Type interface {
	String() string
	isType()
}

// Int, Bool and TypeT are the three atomic types.
type (
	IntType  struct{}
	BoolType struct{}
	// TypeTType is the type of type-valued expressions: "Type" is itself
	// a first-class value whose type is TypeTType.
	TypeTType struct{}
	// ErrorType stands in for "could not be determined"; it is never a
	// valid final type for a successfully checked expression, but lets
	// every pass keep going after an
	// error instead of aborting.
	ErrorType struct{}
)

func (IntType) isType()    {}
func (BoolType) isType()   {}
func (TypeTType) isType()  {}
func (ErrorType) isType()  {}
func (IntType) String() string   { return "Int" }
func (BoolType) String() string  { return "Bool" }
func (TypeTType) String() string { return "Type" }
func (ErrorType) String() string { return "<error>" }

// TupleField is one field of a TupleType.
type TupleField struct {
	ID   ast.FieldID
	Type Type
}

// TupleType is the type of a tuple value.
type TupleType struct {
	Fields []TupleField
}

func (TupleType) isType() {}
func (t TupleType) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		if f.ID.IsLabel {
			parts[i] = fmt.Sprintf(".%s = %s", f.ID.Label, f.Type.String())
		} else {
			parts[i] = f.Type.String()
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ByID returns the field type for id, if present.
func (t TupleType) ByID(id ast.FieldID) (Type, bool) {
	for _, f := range t.Fields {
		if f.ID == id {
			return f.Type, true
		}
	}
	return nil, false
}

// IDs returns the set of field IDs, in order.
func (t TupleType) IDs() []ast.FieldID {
	ids := make([]ast.FieldID, len(t.Fields))
	for i, f := range t.Fields {
		ids[i] = f.ID
	}
	return ids
}

// FunctionType is the type of a function value.
type FunctionType struct {
	Params     TupleType
	ReturnType Type
}

func (FunctionType) isType() {}
func (t FunctionType) String() string {
	return fmt.Sprintf("fn%s -> %s", t.Params.String(), t.ReturnType.String())
}

// StructType names a struct by the identity of its defining AST node:
// an AST-identity handle into the program, not a by-value copy of the
// definition.
type StructType struct {
	Id *ast.StructDefinition
}

func (StructType) isType()          {}
func (t StructType) String() string { return t.Id.Name }

// ChoiceType names a choice type by the identity of its defining node.
type ChoiceType struct {
	Id *ast.ChoiceDefinition
}

func (ChoiceType) isType()          {}
func (t ChoiceType) String() string { return t.Id.Name }

// AlternativeType is the type of a bare (uncalled) alternative reference,
// e.g. the type of `Ints.One` used as a callee.
type AlternativeType struct {
	Parent  *ast.ChoiceDefinition
	Alt     *ast.Alternative
	Payload TupleType
}

func (AlternativeType) isType() {}
func (t AlternativeType) String() string {
	return fmt.Sprintf("%s.%s", t.Parent.Name, t.Alt.Name)
}

// Equal reports structural equality between two types. Struct/Choice
// types compare by AST identity (their defining node's pointer); every
// other variant compares structurally.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case IntType:
		_, ok := b.(IntType)
		return ok
	case BoolType:
		_, ok := b.(BoolType)
		return ok
	case TypeTType:
		_, ok := b.(TypeTType)
		return ok
	case ErrorType:
		return false // Error is never equal to anything, including itself
	case TupleType:
		bt, ok := b.(TupleType)
		if !ok || len(a.Fields) != len(bt.Fields) {
			return false
		}
		for _, f := range a.Fields {
			bf, ok := bt.ByID(f.ID)
			if !ok || !Equal(f.Type, bf) {
				return false
			}
		}
		return true
	case FunctionType:
		bt, ok := b.(FunctionType)
		if !ok {
			return false
		}
		return Equal(a.Params, bt.Params) && Equal(a.ReturnType, bt.ReturnType)
	case StructType:
		bt, ok := b.(StructType)
		return ok && a.Id == bt.Id
	case ChoiceType:
		bt, ok := b.(ChoiceType)
		return ok && a.Id == bt.Id
	case AlternativeType:
		bt, ok := b.(AlternativeType)
		return ok && a.Alt == bt.Alt
	default:
		return false
	}
}

// IsError reports whether t is the Error type.
func IsError(t Type) bool {
	_, ok := t.(ErrorType)
	return ok
}
