package ast

import (
	"testing"

	"github.com/carbon-run/carbon/internal/source"
)

func regionAt(offset int) source.Region {
	p := source.Position{Line: 1, Column: offset + 1, Offset: offset}
	return source.Region{File: "x.carbon", Start: p, End: p}
}

// Node identity is (kind, site): two nodes of the same kind at the
// same region are the same node; a different kind at the same region is
// a different node.
func TestIdentityOf(t *testing.T) {
	r := regionAt(5)
	a := &IntLit{Region: r, Value: 1}
	b := &IntLit{Region: r, Value: 1}
	if IdentityOf(a) != IdentityOf(b) {
		t.Error("same kind at same site must share identity")
	}

	c := &BoolLit{Region: r, Value: true}
	if IdentityOf(a) == IdentityOf(c) {
		t.Error("different kinds at the same site must not share identity")
	}

	d := &IntLit{Region: regionAt(9), Value: 1}
	if IdentityOf(a) == IdentityOf(d) {
		t.Error("same kind at different sites must not share identity")
	}
}

func TestBindings(t *testing.T) {
	x := &SimpleBinding{Region: regionAt(1), Name: "x"}
	y := &SimpleBinding{Region: regionAt(4), Name: "y"}
	p := &TuplePattern{
		Region: regionAt(0),
		Tuple: Tuple[Pattern]{Fields: []Field[Pattern]{
			{ID: Pos(0), Value: &VariablePattern{Region: x.Region, Binding: x}},
			{ID: Pos(1), Value: &CallPattern{
				Region: regionAt(3),
				Callee: &Identifier{Region: regionAt(3), Value: "One"},
				Args: Tuple[Pattern]{Fields: []Field[Pattern]{
					{ID: Pos(0), Value: &VariablePattern{Region: y.Region, Binding: y}},
				}},
			}},
		}},
	}

	got := Bindings(p)
	if len(got) != 2 || got[0] != x || got[1] != y {
		t.Errorf("Bindings = %v, want [x y] in source order", got)
	}
	if names := BindingNames(p); len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Errorf("BindingNames = %v", names)
	}

	atom := &AtomPattern{Region: regionAt(7), Expr: &IntLit{Region: regionAt(7), Value: 3}}
	if got := Bindings(atom); got != nil {
		t.Errorf("atom pattern binds nothing, got %v", got)
	}
}
