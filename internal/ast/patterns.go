package ast

import "github.com/carbon-run/carbon/internal/source"

// DeclaredType is the declared type of a SimpleBinding: either an
// explicit type expression or `auto`, to be deduced from an initializer
//.
type DeclaredType struct {
	Expr       Expression    // non-nil when the binding has an explicit type
	AutoRegion source.Region // non-empty when the binding uses `auto`
}

func (d DeclaredType) IsAuto() bool { return d.Expr == nil }

// SimpleBinding is a name paired with its declared type. It is itself a
// declaration site: its identity (its pointer) is the memoization key
// the type checker uses for typeOfName, and the key name resolution uses
// to record enclosingInitialization.
type SimpleBinding struct {
	Region source.Region
	Name   string
	Type   DeclaredType
}

func (b *SimpleBinding) Site() source.Region { return b.Region }

// AtomPattern wraps an Expression used as a pattern: matching compares
// the subject to the expression's value.
type AtomPattern struct {
	Region source.Region
	Expr   Expression
}

func (n *AtomPattern) Site() source.Region { return n.Region }
func (*AtomPattern) patternNode()          {}

// VariablePattern introduces a new binding.
type VariablePattern struct {
	Region  source.Region
	Binding *SimpleBinding
}

func (n *VariablePattern) Site() source.Region { return n.Region }
func (*VariablePattern) patternNode()          {}

// TuplePattern destructures a tuple.
type TuplePattern struct {
	Region source.Region
	Tuple  Tuple[Pattern]
}

func (n *TuplePattern) Site() source.Region { return n.Region }
func (*TuplePattern) patternNode()          {}

// CallPattern matches a struct initializer or choice alternative,
// binding its payload via sub-patterns, e.g. `Ints.One(n: auto)`.
type CallPattern struct {
	Region source.Region
	Callee Expression
	Args   Tuple[Pattern]
}

func (n *CallPattern) Site() source.Region { return n.Region }
func (*CallPattern) patternNode()          {}

// FunctionTypePattern is a pattern that matches type values, used in
// parameter lists whose declared type is itself a function type.
type FunctionTypePattern struct {
	Region     source.Region
	Params     Tuple[Pattern]
	ReturnType Pattern
}

func (n *FunctionTypePattern) Site() source.Region { return n.Region }
func (*FunctionTypePattern) patternNode()          {}
