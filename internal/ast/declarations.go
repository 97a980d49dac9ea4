package ast

import "github.com/carbon-run/carbon/internal/source"

// ReturnTypeForm is a function's declared return type: either an
// explicit type expression or `auto`, deduced the same way a binding's
// auto type is.
type ReturnTypeForm struct {
	Expr       Expression
	AutoRegion source.Region
}

func (r ReturnTypeForm) IsAuto() bool { return r.Expr == nil }

// FunctionDefinition is a top-level `fn` declaration.
type FunctionDefinition struct {
	Region     source.Region
	Name       string
	Parameters Tuple[Pattern]
	ReturnType ReturnTypeForm
	Body       *Block    // set when the body is `{ ... }`
	ReturnBody Expression // set when the body is `=> expr;`
}

func (n *FunctionDefinition) Site() source.Region   { return n.Region }
func (*FunctionDefinition) statementNode()          {}
func (n *FunctionDefinition) DeclaredName() string  { return n.Name }

// Member is one `name: type-expression` pair of a struct. It implements
// Node so the resolver can declare it into a struct-body scope alongside
// its sibling members.
type Member struct {
	Region source.Region
	Name   string
	Type   Expression
}

func (n *Member) Site() source.Region { return n.Region }

// StructDefinition is a top-level `struct` declaration.
type StructDefinition struct {
	Region  source.Region
	Name    string
	Members []*Member
}

func (n *StructDefinition) Site() source.Region  { return n.Region }
func (*StructDefinition) statementNode()         {}
func (n *StructDefinition) DeclaredName() string { return n.Name }

// FindMember returns the member named name, if any.
func (n *StructDefinition) FindMember(name string) (*Member, bool) {
	for _, m := range n.Members {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Alternative is one named case of a Choice, with its own identity (used
// as a map key for alternativePayload / enclosingChoice).
// Its identity is its pointer, not its region, since it has no source
// region of its own distinct from the name token in the simplest
// encoding; pointer identity still makes it a usable map key.
type Alternative struct {
	Region  source.Region
	Name    string
	Payload Tuple[Expression] // type expressions for the payload fields
}

func (n *Alternative) Site() source.Region { return n.Region }

// ChoiceDefinition is a top-level `choice` declaration.
type ChoiceDefinition struct {
	Region       source.Region
	Name         string
	Alternatives []*Alternative
}

func (n *ChoiceDefinition) Site() source.Region  { return n.Region }
func (*ChoiceDefinition) statementNode()         {}
func (n *ChoiceDefinition) DeclaredName() string { return n.Name }

// FindAlternative returns the alternative named name, if any.
func (n *ChoiceDefinition) FindAlternative(name string) (*Alternative, bool) {
	for _, a := range n.Alternatives {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Initialization lowers `var p = e;`, used both as a top-level
// declaration and, unwrapped, as a local statement inside a Block
//. A top-level Initialization can bind more than one name when its
// pattern is a TuplePattern; DeclaredName returns the first for
// indexing purposes and top-level registration walks all bindings in
// the pattern, not just this one name.
type Initialization struct {
	Region  source.Region
	Pattern Pattern
	Value   Expression
}

func (n *Initialization) Site() source.Region { return n.Region }
func (*Initialization) statementNode()        {}
func (n *Initialization) DeclaredName() string {
	if names := BindingNames(n.Pattern); len(names) > 0 {
		return names[0]
	}
	return ""
}

// BindingNames collects every SimpleBinding name introduced by a pattern,
// in left-to-right order, recursing through tuple/call sub-patterns.
func BindingNames(p Pattern) []string {
	var names []string
	for _, b := range Bindings(p) {
		names = append(names, b.Name)
	}
	return names
}

// Bindings collects every SimpleBinding introduced by a pattern.
func Bindings(p Pattern) []*SimpleBinding {
	switch p := p.(type) {
	case *VariablePattern:
		return []*SimpleBinding{p.Binding}
	case *TuplePattern:
		var out []*SimpleBinding
		for _, f := range p.Tuple.Fields {
			out = append(out, Bindings(f.Value)...)
		}
		return out
	case *CallPattern:
		var out []*SimpleBinding
		for _, f := range p.Args.Fields {
			out = append(out, Bindings(f.Value)...)
		}
		return out
	case *FunctionTypePattern:
		var out []*SimpleBinding
		for _, f := range p.Params.Fields {
			out = append(out, Bindings(f.Value)...)
		}
		out = append(out, Bindings(p.ReturnType)...)
		return out
	default:
		return nil
	}
}

// Program is the root of a single compiled source file: a sequence of
// top-level declarations. Declaration order is irrelevant
// at top level.
type Program struct {
	File         string
	Declarations []Statement // each is *FunctionDefinition, *StructDefinition, *ChoiceDefinition, or *Initialization
}
