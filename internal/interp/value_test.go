package interp

import (
	"testing"

	"github.com/carbon-run/carbon/internal/ast"
	"github.com/carbon-run/carbon/internal/types"
)

func TestEqualPrimitives(t *testing.T) {
	cases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"equal ints", IntValue{V: 3}, IntValue{V: 3}, true},
		{"unequal ints", IntValue{V: 3}, IntValue{V: 4}, false},
		{"equal bools", BoolValue{V: true}, BoolValue{V: true}, true},
		{"int vs bool", IntValue{V: 1}, BoolValue{V: true}, false},
		{"equal type values", TypeValue{V: types.IntType{}}, TypeValue{V: types.IntType{}}, true},
		{"unequal type values", TypeValue{V: types.IntType{}}, TypeValue{V: types.BoolType{}}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Equal(c.a, c.b); got != c.want {
				t.Errorf("Equal(%s, %s) = %t, want %t", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestEqualTupleByFieldID(t *testing.T) {
	ta := types.TupleType{Fields: []types.TupleField{
		{ID: ast.Label("a"), Type: types.IntType{}},
		{ID: ast.Label("b"), Type: types.IntType{}},
	}}
	tb := types.TupleType{Fields: []types.TupleField{
		{ID: ast.Label("b"), Type: types.IntType{}},
		{ID: ast.Label("a"), Type: types.IntType{}},
	}}

	u := TupleValue{T: ta, Fields: []Value{IntValue{V: 1}, IntValue{V: 2}}}
	v := TupleValue{T: tb, Fields: []Value{IntValue{V: 2}, IntValue{V: 1}}}
	if !Equal(u, v) {
		t.Error("congruent tuples with reordered fields must compare equal by fieldID")
	}

	w := TupleValue{T: tb, Fields: []Value{IntValue{V: 1}, IntValue{V: 2}}}
	if Equal(u, w) {
		t.Error("same shape with different field values must not be equal")
	}
}

func TestEqualNominal(t *testing.T) {
	sd := &ast.StructDefinition{Name: "P"}
	pt := types.TupleType{Fields: []types.TupleField{{ID: ast.Label("x"), Type: types.IntType{}}}}
	p1 := StructValue{Id: sd, Payload: TupleValue{T: pt, Fields: []Value{IntValue{V: 1}}}}
	p2 := StructValue{Id: sd, Payload: TupleValue{T: pt, Fields: []Value{IntValue{V: 1}}}}
	p3 := StructValue{Id: sd, Payload: TupleValue{T: pt, Fields: []Value{IntValue{V: 9}}}}
	if !Equal(p1, p2) {
		t.Error("struct values with equal payloads must be equal")
	}
	if Equal(p1, p3) {
		t.Error("struct values with different payloads must not be equal")
	}

	cd := &ast.ChoiceDefinition{Name: "C"}
	one := &ast.Alternative{Name: "One"}
	two := &ast.Alternative{Name: "Two"}
	payload := TupleValue{T: types.TupleType{Fields: []types.TupleField{{ID: ast.Pos(0), Type: types.IntType{}}}}, Fields: []Value{IntValue{V: 5}}}
	c1 := ChoiceValue{Id: cd, Alt: one, Payload: payload}
	c2 := ChoiceValue{Id: cd, Alt: one, Payload: payload}
	c3 := ChoiceValue{Id: cd, Alt: two, Payload: payload}
	if !Equal(c1, c2) {
		t.Error("choice values with the same discriminator and payload must be equal")
	}
	if Equal(c1, c3) {
		t.Error("choice values with different discriminators must not be equal")
	}
}

// Matching a value against itself is reflexive for every variant the
// language can construct.
func TestEqualReflexive(t *testing.T) {
	sd := &ast.StructDefinition{Name: "P"}
	vals := []Value{
		IntValue{V: -4},
		BoolValue{V: false},
		TypeValue{V: types.StructType{Id: sd}},
		TupleValue{T: types.TupleType{}},
	}
	for _, v := range vals {
		if !Equal(v, v) {
			t.Errorf("Equal(%s, %s) must be true", v, v)
		}
	}
}
