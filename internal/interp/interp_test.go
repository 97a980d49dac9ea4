package interp_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/carbon-run/carbon/internal/interp"
	"github.com/carbon-run/carbon/internal/parser"
	"github.com/carbon-run/carbon/internal/program"
)

func run(t *testing.T, src string) (int64, error) {
	t.Helper()
	p, err := parser.New()
	if err != nil {
		t.Fatalf("parser.New() error = %v", err)
	}
	ast, err := p.ParseString("test.carbon", src)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	prog, log := program.Compile(ast)
	if log.HasErrors() {
		t.Fatalf("Compile() errors: %v", log.Errors)
	}
	return interp.Run(prog)
}

func mustRun(t *testing.T, src string) int64 {
	t.Helper()
	got, err := run(t, src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return got
}

func TestRun(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   int64
	}{
		{
			name: "while with break and continue",
			source: `fn main() -> Int {
				var i: Int = 0;
				var sum: Int = 0;
				while (not (i == 10)) {
					i = i + 1;
					if (i == 3) { continue; }
					if (i == 8) { break; }
					sum = sum + i;
				}
				return sum;
			}`,
			want: 25, // 1+2+4+5+6+7
		},
		{
			name: "short-circuit and/or skip the right operand",
			source: `var hits: Int = 0;
			fn bump() -> Bool { hits = hits + 1; return true; }
			fn main() -> Int {
				var a: Bool = false and bump();
				var b: Bool = true or bump();
				if (a or not b) { return -1; }
				return hits;
			}`,
			want: 0,
		},
		{
			name: "global initialization is lazy, order-independent",
			source: `fn main() -> Int { return a; }
			var a: Int = b + 1;
			var b: Int = 2;`,
			want: 3,
		},
		{
			name: "labeled struct arguments bind by label, not position",
			source: `struct X { var a: Int; var b: Int; }
			fn main() -> Int {
				var v: X = X(.b = 1, .a = 10);
				return v.a - v.b;
			}`,
			want: 9,
		},
		{
			name: "tuple index and labeled field access",
			source: `fn main() -> Int {
				var t: auto = (7, 8, .c = 9);
				return t[1] + t.c;
			}`,
			want: 17,
		},
		{
			name: "tuple equality pairs fields by label",
			source: `fn main() -> Int {
				var t: auto = (.a = 1, .b = 2);
				var u: auto = (.b = 2, .a = 1);
				if (t == u) { return 1; }
				return 0;
			}`,
			want: 1,
		},
		{
			name: "choice values compare discriminator then payload",
			source: `choice C { One(Int), Two(Int) }
			fn main() -> Int {
				var a: auto = C.One(5);
				var b: auto = C.One(5);
				var c: auto = C.Two(5);
				if (not (a == b)) { return 1; }
				if (a == c) { return 2; }
				return 0;
			}`,
			want: 0,
		},
		{
			name:   "parenthesized grouping is not a tuple",
			source: `fn main() -> Int { return (1 + 2) - 3; }`,
			want:   0,
		},
		{
			name: "one-tuple needs a trailing comma",
			source: `fn main() -> Int {
				var t: auto = (5,);
				return t[0];
			}`,
			want: 5,
		},
		{
			name: "nullary function returns unit",
			source: `fn unit() {}
			fn main() -> Int { unit(); return 0; }`,
			want: 0,
		},
		{
			name: "functions are first-class values",
			source: `fn inc(n: Int) -> Int { return n + 1; }
			fn apply(f: fnty(Int) -> Int, x: Int) -> Int { return f(x); }
			fn main() -> Int { return apply(inc, 41); }`,
			want: 42,
		},
		{
			name: "struct member assignment writes through a projection",
			source: `struct P { var x: Int; var y: Int; }
			fn main() -> Int {
				var p: P = P(.x = 1, .y = 2);
				p.x = 10;
				return p.x + p.y;
			}`,
			want: 12,
		},
		{
			name: "match falls through to default",
			source: `choice Ints { None, One(Int) }
			fn main() -> Int {
				var y: auto = Ints.None();
				match (y) {
					case Ints.One(n: auto) => return n;
					default => return 7;
				}
			}`,
			want: 7,
		},
		{
			name: "refutable parameter pattern accepts the literal",
			source: `fn f(0) -> Int { return 1; }
			fn main() -> Int { return f(0); }`,
			want: 1,
		},
		{
			name: "block scoping shadows and restores",
			source: `fn main() -> Int {
				var x: Int = 1;
				{
					var x: Int = 100;
					x = x + 1;
				}
				return x;
			}`,
			want: 1,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := mustRun(t, c.source); got != c.want {
				t.Errorf("got %d, want %d", got, c.want)
			}
		})
	}
}

func TestRuntimeErrors(t *testing.T) {
	cases := []struct {
		name    string
		source  string
		wantSub string
	}{
		{
			name: "no clause matches",
			source: `choice C { A, B }
			fn main() -> Int {
				var v: auto = C.A();
				match (v) {
					case C.B => return 1;
				}
			}`,
			wantSub: "no pattern matched in match",
		},
		{
			name: "refutable parameter pattern rejects at the call site",
			source: `fn f(0) -> Int { return 1; }
			fn main() -> Int { return f(2); }`,
			wantSub: "arguments failed to bind",
		},
		{
			name: "global initialization cycle",
			source: `var a: Int = b;
			var b: Int = a;
			fn main() -> Int { return a; }`,
			wantSub: "global initialization cycle",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := run(t, c.source)
			if err == nil {
				t.Fatal("expected a runtime error, got none")
			}
			if !strings.Contains(err.Error(), c.wantSub) {
				t.Errorf("error %q does not contain %q", err.Error(), c.wantSub)
			}
		})
	}
}

// The tracer emits one line per executed statement, all stamped with
// the same run ID.
func TestTracer(t *testing.T) {
	p, err := parser.New()
	if err != nil {
		t.Fatalf("parser.New() error = %v", err)
	}
	ast, err := p.ParseString("test.carbon", `fn main() -> Int { var x: Int = 1; return x; }`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	prog, log := program.Compile(ast)
	if log.HasErrors() {
		t.Fatalf("Compile() errors: %v", log.Errors)
	}

	var buf bytes.Buffer
	it := interp.New(prog)
	tr := interp.NewTracer(&buf)
	it.SetTrace(tr)
	if _, err := it.RunMain(); err != nil {
		t.Fatalf("RunMain() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 { // Initialization, Return
		t.Fatalf("got %d trace lines, want 2:\n%s", len(lines), buf.String())
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, tr.RunID.String()) {
			t.Errorf("trace line %q not stamped with run ID %s", line, tr.RunID)
		}
	}
}
