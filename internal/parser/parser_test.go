package parser

import "testing"

// Mirrors gaarutyunov/guix's own parser_test.go: a table of source
// strings, asserting only that parsing succeeds or fails as expected.
// Deeper semantic checks belong to internal/program's end-to-end tests.
func TestParseString(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "return literal",
			input: `fn main() -> Int { return 0; }`,
		},
		{
			name:  "assignment and arithmetic",
			input: `fn main() -> Int { var x: Int = 3; x = x + 4; return x; }`,
		},
		{
			name: "choice and match",
			input: `choice Ints { None, One(Int) }
			fn main() -> Int {
				var y: auto = Ints.One(42);
				match (y) {
					case Ints.One(n: auto) => return n;
					default => return -1;
				}
			}`,
		},
		{
			name: "struct literal and member access",
			input: `struct X { var a: Int; var b: Int; }
			fn main() -> Int { var v: X = X(.a = 3, .b = 4); return v.a + v.b; }`,
		},
		{
			name:  "mutually recursive auto functions",
			input: `fn f() => g(); fn g() => f();`,
		},
		{
			name:  "member type is not a type expression",
			input: `struct X { var y: 42; }`,
		},
		{
			name:  "function with no declared return type",
			input: `fn f(a: Bool, b: Int) { not b; }`,
		},
		{
			name: "nested if/else and while loop",
			input: `fn count(n: Int) -> Int {
				var total: Int = 0;
				while (n == n) {
					if (n == 0) {
						break;
					} else {
						total = total + 1;
					}
					return total;
				}
				return total;
			}`,
		},
		{
			name:  "function type pattern parameter",
			input: `fn apply(f: fnty(n: Int) -> Int, n: Int) => f(n);`,
		},
		{
			name:    "missing closing brace",
			input:   `fn main() -> Int { return 0;`,
			wantErr: true,
		},
		{
			name:    "bare statement at top level",
			input:   `return 0;`,
			wantErr: true,
		},
	}

	p, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			prog, err := p.ParseString("test.carbon", c.input)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected parse error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseString() error = %v", err)
			}
			if prog == nil || len(prog.Declarations) == 0 {
				t.Fatalf("expected at least one top-level declaration")
			}
		})
	}
}
