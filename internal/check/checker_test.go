package check_test

import (
	"strings"
	"testing"

	"github.com/carbon-run/carbon/internal/ast"
	"github.com/carbon-run/carbon/internal/check"
	"github.com/carbon-run/carbon/internal/diag"
	"github.com/carbon-run/carbon/internal/parser"
	"github.com/carbon-run/carbon/internal/resolve"
	"github.com/carbon-run/carbon/internal/types"
)

func checkSource(t *testing.T, src string) (*ast.Program, *check.Result, *diag.Log) {
	t.Helper()
	p, err := parser.New()
	if err != nil {
		t.Fatalf("parser.New() error = %v", err)
	}
	prog, err := p.ParseString("test.carbon", src)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	table, rlog := resolve.Resolve(prog)
	if rlog.HasErrors() {
		t.Fatalf("resolution errors: %v", rlog.Errors)
	}
	result, log := check.Check(prog, table, nil)
	return prog, result, log
}

func TestCheckErrors(t *testing.T) {
	cases := []struct {
		name    string
		source  string
		wantSub string
	}{
		{
			name:    "index out of range",
			source:  `fn main() -> Int { var t: auto = (1, 2); return t[5]; }`,
			wantSub: "has no value at position 5",
		},
		{
			name:    "no such struct member",
			source:  `struct X { var a: Int; } fn main() -> Int { var v: X = X(.a = 1); return v.b; }`,
			wantSub: "struct X has no member 'b'",
		},
		{
			name:    "no such tuple field",
			source:  `fn main() -> Int { var t: auto = (.a = 1); return t.b; }`,
			wantSub: "has no field 'b'",
		},
		{
			name:    "no such choice alternative",
			source:  `choice C { A } fn main() -> Int { var v: auto = C.B(); return 0; }`,
			wantSub: "choice C has no alternative 'B'",
		},
		{
			name:    "value not callable",
			source:  `fn main() -> Int { var x: Int = 3; return x(1); }`,
			wantSub: "value of type Int is not callable.",
		},
		{
			name:    "argument type mismatch",
			source:  `fn f(n: Int) -> Int { return n; } fn main() -> Int { return f(true); }`,
			wantSub: "argument types (Bool) do not match parameter types (Int)",
		},
		{
			name:    "alternative payload mismatch",
			source:  `choice C { One(Int) } fn main() -> Int { var v: auto = C.One(true); return 0; }`,
			wantSub: "do not match payload type",
		},
		{
			name:    "auto parameter without initializer",
			source:  `fn f(n: auto) -> Int { return 0; } fn main() -> Int { return 0; }`,
			wantSub: "No initializer available to deduce type for auto",
		},
		{
			name:    "pattern type does not match initializer",
			source:  `fn main() -> Int { var x: Bool = 3; return 0; }`,
			wantSub: "Pattern type Bool does not match initializer type Int",
		},
		{
			name:    "break outside loop",
			source:  `fn main() -> Int { break; return 0; }`,
			wantSub: "invalid outside loop body",
		},
		{
			name:    "type dependency loop through auto globals",
			source:  `var a: auto = b; var b: auto = a; fn main() -> Int { return 0; }`,
			wantSub: "type dependency loop",
		},
		{
			name:    "function type pattern requires metatypes",
			source:  `fn main() -> Int { var x: fnty(3) -> Int = 0; return 0; }`,
			wantSub: "must match type values, not Int values",
		},
		{
			name:    "equality across types",
			source:  `fn main() -> Int { if (1 == true) { return 1; } return 0; }`,
			wantSub: "Expected expression of type Int, not Bool",
		},
		{
			name:    "unary minus on bool",
			source:  `fn main() -> Int { var x: Int = -true; return x; }`,
			wantSub: "Expected expression of type Int, not Bool",
		},
		{
			name:    "main must return Int",
			source:  `fn main() -> Bool { return true; }`,
			wantSub: "'main' must return Int, not Bool",
		},
		{
			name:    "if condition must be bool",
			source:  `fn main() -> Int { if (1) { return 1; } return 0; }`,
			wantSub: "Expected expression of type Bool, not Int",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, log := checkSource(t, c.source)
			if !log.HasErrors() {
				t.Fatal("expected type errors, got none")
			}
			for _, e := range log.Errors {
				if strings.Contains(e.Message, c.wantSub) {
					return
				}
			}
			t.Errorf("expected an error containing %q, got: %v", c.wantSub, log.Errors)
		})
	}
}

// auto deduced from the RHS must produce the same type as the RHS's
// static type, and the memoized binding type must agree.
func TestAutoDeduction(t *testing.T) {
	prog, result, log := checkSource(t, `var x: auto = 3 + 4; fn main() -> Int { return x; }`)
	if log.HasErrors() {
		t.Fatalf("unexpected errors: %v", log.Errors)
	}

	init := prog.Declarations[0].(*ast.Initialization)
	bindings := ast.Bindings(init.Pattern)
	if len(bindings) != 1 {
		t.Fatalf("got %d bindings, want 1", len(bindings))
	}

	bt, ok := result.BindingType[bindings[0]]
	if !ok {
		t.Fatal("binding has no memoized type")
	}
	rhs := result.StaticType[init.Value]
	if !types.Equal(bt, rhs) {
		t.Errorf("binding type %s != initializer type %s", bt, rhs)
	}
	if !types.Equal(bt, types.IntType{}) {
		t.Errorf("deduced type %s, want Int", bt)
	}
}

// In a successfully checked program, every visited expression has a
// static type and it is never Error.
func TestStaticTypeNeverError(t *testing.T) {
	_, result, log := checkSource(t, `
		choice Shape { Dot, Line(Int) }
		struct P { var x: Int; var y: Int; }
		fn dist(p: P) -> Int { return p.x + p.y; }
		fn main() -> Int {
			var p: P = P(.x = 3, .y = 4);
			var s: auto = Shape.Line(dist(p));
			match (s) {
				case Shape.Line(n: auto) => return n;
				default => return 0;
			}
		}
	`)
	if log.HasErrors() {
		t.Fatalf("unexpected errors: %v", log.Errors)
	}
	if len(result.StaticType) == 0 {
		t.Fatal("static type map is empty")
	}
	for e, typ := range result.StaticType {
		if types.IsError(typ) {
			t.Errorf("expression at %s has Error type", e.Site())
		}
	}
}

// The alternative payload index and parentage tables are fully
// populated for every alternative of every choice.
func TestChoiceIndices(t *testing.T) {
	prog, result, log := checkSource(t, `
		choice C { None, One(Int), Two(Int, Bool) }
		fn main() -> Int { return 0; }
	`)
	if log.HasErrors() {
		t.Fatalf("unexpected errors: %v", log.Errors)
	}

	cd := prog.Declarations[0].(*ast.ChoiceDefinition)
	wantArity := map[string]int{"None": 0, "One": 1, "Two": 2}
	for _, alt := range cd.Alternatives {
		payload, ok := result.AlternativePayload[alt]
		if !ok {
			t.Errorf("alternative %s has no payload entry", alt.Name)
			continue
		}
		if got := len(payload.Fields); got != wantArity[alt.Name] {
			t.Errorf("alternative %s payload arity = %d, want %d", alt.Name, got, wantArity[alt.Name])
		}
		if result.EnclosingChoice[alt] != cd {
			t.Errorf("alternative %s not linked to its choice", alt.Name)
		}
	}
}

// A function with an auto return type and an expression body gets its
// signature from the body's type.
func TestAutoReturnType(t *testing.T) {
	prog, result, log := checkSource(t, `fn seven() => 3 + 4; fn main() -> Int { return seven(); }`)
	if log.HasErrors() {
		t.Fatalf("unexpected errors: %v", log.Errors)
	}
	fn := prog.Declarations[0].(*ast.FunctionDefinition)
	ft := result.StaticType[fn.ReturnBody]
	if !types.Equal(ft, types.IntType{}) {
		t.Errorf("arrow body type %s, want Int", ft)
	}
}
