package resolve_test

import (
	"strings"
	"testing"

	"github.com/carbon-run/carbon/internal/ast"
	"github.com/carbon-run/carbon/internal/parser"
	"github.com/carbon-run/carbon/internal/resolve"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p, err := parser.New()
	if err != nil {
		t.Fatalf("parser.New() error = %v", err)
	}
	prog, err := p.ParseString("test.carbon", src)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	return prog
}

func TestResolveErrors(t *testing.T) {
	cases := []struct {
		name    string
		source  string
		wantSub string
	}{
		{
			name:    "duplicate function",
			source:  `fn f() -> Int { return 0; } fn f() -> Int { return 1; } fn main() -> Int { return 0; }`,
			wantSub: "'f' already defined",
		},
		{
			name:    "undeclared name",
			source:  `fn main() -> Int { return y; }`,
			wantSub: "Un-declared name 'y'",
		},
		{
			name:    "missing main",
			source:  `fn f() -> Int { return 0; }`,
			wantSub: "missing 'main' function",
		},
		{
			name:    "main with parameters",
			source:  `fn main(n: Int) -> Int { return 0; }`,
			wantSub: "'main' must take no parameters",
		},
		{
			name:    "main is not a function",
			source:  `var main: Int = 3;`,
			wantSub: "'main' must be a function",
		},
		{
			name:    "duplicate struct member",
			source:  `struct X { var a: Int; var a: Int; } fn main() -> Int { return 0; }`,
			wantSub: "'a' already defined",
		},
		{
			name:    "duplicate choice alternative",
			source:  `choice C { A, A } fn main() -> Int { return 0; }`,
			wantSub: "'A' already defined",
		},
		{
			name:    "block-scoped name does not leak",
			source:  `fn main() -> Int { { var y: Int = 1; } return y; }`,
			wantSub: "Un-declared name 'y'",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, log := resolve.Resolve(parse(t, c.source))
			if !log.HasErrors() {
				t.Fatal("expected resolution errors, got none")
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

func TestResolveAccepts(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{
			name:   "forward reference at top level",
			source: `fn main() -> Int { return f(); } fn f() -> Int { return 0; }`,
		},
		{
			name:   "struct referring to itself in a member type",
			source: `struct S { var next: S; } fn main() -> Int { return 0; }`,
		},
		{
			name:   "local shadowing a global",
			source: `var x: Int = 1; fn main() -> Int { var x: Int = 2; return x; }`,
		},
		{
			name:   "match clause bindings scoped to the clause",
			source: `choice C { One(Int) } fn main() -> Int { var v: auto = C.One(1); match (v) { case C.One(n: auto) => return n; default => return 0; } }`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, log := resolve.Resolve(parse(t, c.source))
			if log.HasErrors() {
				t.Errorf("unexpected errors: %v", log.Errors)
			}
		})
	}
}

// Top-level var bindings land in the globals set; locals never do.
func TestGlobals(t *testing.T) {
	prog := parse(t, `var x: Int = 1; fn main() -> Int { var y: Int = 2; return x + y; }`)
	table, log := resolve.Resolve(prog)
	if log.HasErrors() {
		t.Fatalf("unexpected errors: %v", log.Errors)
	}
	if len(table.Globals) != 1 {
		t.Fatalf("got %d globals, want 1", len(table.Globals))
	}
	for b := range table.Globals {
		if b.Name != "x" {
			t.Errorf("global binding %q, want x", b.Name)
		}
	}
}

// Every use-site identifier in a resolved program has a definition.
func TestDefinitionTotality(t *testing.T) {
	prog := parse(t, `
		struct P { var a: Int; }
		fn get(p: P) -> Int { return p.a; }
		fn main() -> Int { var v: P = P(.a = 5); return get(v); }
	`)
	table, log := resolve.Resolve(prog)
	if log.HasErrors() {
		t.Fatalf("unexpected errors: %v", log.Errors)
	}
	// get, p, P (three times), v: all resolved. The member name `a` is
	// not an identifier node; it resolves through the struct's type.
	if len(table.Definition) == 0 {
		t.Fatal("definition table is empty")
	}
	for id, n := range table.Definition {
		if n == nil {
			t.Errorf("identifier %q resolved to nil", id.Value)
		}
	}
}
