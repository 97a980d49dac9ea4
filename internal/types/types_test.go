package types

import (
	"testing"

	"github.com/carbon-run/carbon/internal/ast"
)

func TestEqualAtomic(t *testing.T) {
	cases := []struct {
		name string
		a, b Type
		want bool
	}{
		{"int/int", IntType{}, IntType{}, true},
		{"bool/bool", BoolType{}, BoolType{}, true},
		{"type/type", TypeTType{}, TypeTType{}, true},
		{"int/bool", IntType{}, BoolType{}, false},
		{"error/error", ErrorType{}, ErrorType{}, false},
		{"error/int", ErrorType{}, IntType{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Equal(c.a, c.b); got != c.want {
				t.Errorf("Equal(%s, %s) = %t, want %t", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestEqualTuple(t *testing.T) {
	a := TupleType{Fields: []TupleField{
		{ID: ast.Pos(0), Type: IntType{}},
		{ID: ast.Label("x"), Type: BoolType{}},
	}}
	// Same fieldID set, different declaration order: congruent, equal.
	b := TupleType{Fields: []TupleField{
		{ID: ast.Label("x"), Type: BoolType{}},
		{ID: ast.Pos(0), Type: IntType{}},
	}}
	if !Equal(a, b) {
		t.Error("congruent tuples with reordered labels must be equal")
	}

	c := TupleType{Fields: []TupleField{
		{ID: ast.Pos(0), Type: IntType{}},
		{ID: ast.Label("y"), Type: BoolType{}},
	}}
	if Equal(a, c) {
		t.Error("tuples with different labels must not be equal")
	}

	d := TupleType{Fields: []TupleField{
		{ID: ast.Pos(0), Type: IntType{}},
		{ID: ast.Label("x"), Type: IntType{}},
	}}
	if Equal(a, d) {
		t.Error("same fieldIDs with different element types must not be equal")
	}
}

func TestEqualFunction(t *testing.T) {
	f := FunctionType{
		Params:     TupleType{Fields: []TupleField{{ID: ast.Pos(0), Type: IntType{}}}},
		ReturnType: BoolType{},
	}
	g := FunctionType{
		Params:     TupleType{Fields: []TupleField{{ID: ast.Pos(0), Type: IntType{}}}},
		ReturnType: BoolType{},
	}
	if !Equal(f, g) {
		t.Error("structurally identical function types must be equal")
	}
	h := FunctionType{Params: g.Params, ReturnType: IntType{}}
	if Equal(f, h) {
		t.Error("function types with different return types must not be equal")
	}
}

func TestEqualNominal(t *testing.T) {
	s1 := &ast.StructDefinition{Name: "S"}
	s2 := &ast.StructDefinition{Name: "S"}
	if !Equal(StructType{Id: s1}, StructType{Id: s1}) {
		t.Error("struct type must equal itself")
	}
	if Equal(StructType{Id: s1}, StructType{Id: s2}) {
		t.Error("struct types compare by AST identity, not name")
	}

	c := &ast.ChoiceDefinition{Name: "C"}
	if !Equal(ChoiceType{Id: c}, ChoiceType{Id: c}) {
		t.Error("choice type must equal itself")
	}
	if Equal(StructType{Id: s1}, ChoiceType{Id: c}) {
		t.Error("struct and choice types must not be equal")
	}
}

func TestString(t *testing.T) {
	tup := TupleType{Fields: []TupleField{
		{ID: ast.Pos(0), Type: IntType{}},
		{ID: ast.Label("a"), Type: BoolType{}},
	}}
	if got := tup.String(); got != "(Int, .a = Bool)" {
		t.Errorf("tuple String() = %q", got)
	}

	f := FunctionType{
		Params:     TupleType{Fields: []TupleField{{ID: ast.Pos(0), Type: IntType{}}}},
		ReturnType: BoolType{},
	}
	if got := f.String(); got != "fn(Int) -> Bool" {
		t.Errorf("function String() = %q", got)
	}

	if got := (TupleType{}).String(); got != "()" {
		t.Errorf("empty tuple String() = %q", got)
	}
}
