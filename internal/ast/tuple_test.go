package ast

import "testing"

func TestNewPositionalTuple(t *testing.T) {
	tup := NewPositionalTuple([]int{10, 20, 30})
	for i, f := range tup.Fields {
		if f.ID != Pos(i) {
			t.Errorf("field %d has ID %v, want %v", i, f.ID, Pos(i))
		}
	}
	if !tup.WellFormed() {
		t.Error("positional tuple must be well-formed")
	}
}

func TestWellFormed(t *testing.T) {
	dup := Tuple[int]{Fields: []Field[int]{
		{ID: Label("a"), Value: 1},
		{ID: Label("a"), Value: 2},
	}}
	if dup.WellFormed() {
		t.Error("duplicate labels must not be well-formed")
	}

	mixed := Tuple[int]{Fields: []Field[int]{
		{ID: Pos(0), Value: 1},
		{ID: Label("a"), Value: 2},
		{ID: Label("b"), Value: 3},
	}}
	if !mixed.WellFormed() {
		t.Error("distinct labels after positional fields must be well-formed")
	}
}

func TestCongruent(t *testing.T) {
	a := Tuple[int]{Fields: []Field[int]{
		{ID: Pos(0), Value: 1},
		{ID: Label("x"), Value: 2},
	}}
	b := Tuple[string]{Fields: []Field[string]{
		{ID: Label("x"), Value: "s"},
		{ID: Pos(0), Value: "t"},
	}}
	if !Congruent(a, b) {
		t.Error("same fieldID sets must be congruent regardless of order or element type")
	}

	c := Tuple[int]{Fields: []Field[int]{{ID: Pos(0), Value: 1}}}
	if Congruent(a, c) {
		t.Error("different fieldID sets must not be congruent")
	}
	d := Tuple[int]{Fields: []Field[int]{
		{ID: Pos(0), Value: 1},
		{ID: Label("y"), Value: 2},
	}}
	if Congruent(a, d) {
		t.Error("same arity with different labels must not be congruent")
	}
}

func TestByID(t *testing.T) {
	tup := Tuple[int]{Fields: []Field[int]{
		{ID: Pos(0), Value: 7},
		{ID: Label("a"), Value: 8},
	}}
	if v, ok := tup.ByID(Pos(0)); !ok || v != 7 {
		t.Errorf("ByID(0) = %d, %t", v, ok)
	}
	if v, ok := tup.ByID(Label("a")); !ok || v != 8 {
		t.Errorf("ByID(.a) = %d, %t", v, ok)
	}
	if _, ok := tup.ByID(Label("b")); ok {
		t.Error("ByID on a missing label must report absence")
	}
}

func TestMapTuple(t *testing.T) {
	tup := NewPositionalTuple([]int{1, 2})
	doubled := MapTuple(tup, func(_ FieldID, v int) int { return v * 2 })
	if v, _ := doubled.ByID(Pos(1)); v != 4 {
		t.Errorf("mapped field = %d, want 4", v)
	}
	if !Congruent(tup, doubled) {
		t.Error("MapTuple must preserve fieldIDs")
	}
}
