package program_test

import (
	"strings"
	"testing"

	"github.com/carbon-run/carbon/internal/interp"
	"github.com/carbon-run/carbon/internal/parser"
	"github.com/carbon-run/carbon/internal/program"
)

// TestEndToEnd runs the literal in/out scenarios, parsing real source
// text through the actual lexer/parser pipeline, compiling, and
// executing — the same shape as funxy's own tests/functional_test.go
// table of "source in, value out" cases.
func TestEndToEnd(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   int64
	}{
		{
			name:   "return literal",
			source: `fn main() -> Int { return 0; }`,
			want:   0,
		},
		{
			name:   "assignment and arithmetic",
			source: `fn main() -> Int { var x: Int = 3; x = x + 4; return x; }`,
			want:   7,
		},
		{
			name: "choice and match",
			source: `choice Ints { None, One(Int) }
			fn main() -> Int {
				var y: auto = Ints.One(42);
				match (y) {
					case Ints.One(n: auto) => return n;
					default => return -1;
				}
			}`,
			want: 42,
		},
		{
			name: "struct literal and member access",
			source: `struct X { var a: Int; var b: Int; }
			fn main() -> Int { var v: X = X(.a = 3, .b = 4); return v.a + v.b; }`,
			want: 7,
		},
	}

	p, err := parser.New()
	if err != nil {
		t.Fatalf("parser.New() error = %v", err)
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ast, err := p.ParseString("test.carbon", c.source)
			if err != nil {
				t.Fatalf("ParseString() error = %v", err)
			}
			prog, log := program.Compile(ast)
			if log.HasErrors() {
				t.Fatalf("Compile() errors: %v", log.Errors)
			}
			got, err := interp.Run(prog)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got != c.want {
				t.Errorf("got %d, want %d", got, c.want)
			}
		})
	}
}

// TestCompileErrors covers the scenarios that are expected to fail
// name resolution or type checking rather than run to completion.
func TestCompileErrors(t *testing.T) {
	cases := []struct {
		name     string
		source   string
		wantSub  string
	}{
		{
			name:    "mutually recursive auto return types",
			source:  `fn f() => g(); fn g() => f(); fn main() -> Int { return 0; }`,
			wantSub: "type dependency loop",
		},
		{
			name:    "member type is not a type expression",
			source:  `struct X { var y: 42; } fn main() -> Int { return 0; }`,
			wantSub: "Not a type expression",
		},
		{
			name:    "operator type mismatch",
			source:  `fn f(a: Bool, b: Int) { not b; } fn main() -> Int { return 0; }`,
			wantSub: "Bool",
		},
	}

	p, err := parser.New()
	if err != nil {
		t.Fatalf("parser.New() error = %v", err)
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ast, err := p.ParseString("test.carbon", c.source)
			if err != nil {
				t.Fatalf("ParseString() error = %v", err)
			}
			_, log := program.Compile(ast)
			if !log.HasErrors() {
				t.Fatalf("expected compile errors, got none")
			}
			found := false
			for _, e := range log.Errors {
				if strings.Contains(e.Message, c.wantSub) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected an error containing %q, got: %v", c.wantSub, log.Errors)
			}
		})
	}
}
