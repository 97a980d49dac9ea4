// Command carbon is the reference host for the Carbon interpreter
// core: it loads a source file, drives the lexer/parser, compiles the
// result (name resolution + type checking), and, if that succeeds,
// runs it to completion. The interpreter core itself exposes no CLI;
// it is meant to be embedded by a host, and this command is one such
// host. Its shape mirrors funxy's own cmd/funxy/main.go: flag parsing
// up front, color detection via go-isatty, then a single dispatch to
// the library code that does the real work.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/carbon-run/carbon/internal/diag"
	"github.com/carbon-run/carbon/internal/hostconfig"
	"github.com/carbon-run/carbon/internal/interp"
	"github.com/carbon-run/carbon/internal/parser"
	"github.com/carbon-run/carbon/internal/program"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		configPath string
		tracePath  string
		file       string
	)

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-config":
			i++
			if i >= len(args) {
				fmt.Fprintln(os.Stderr, "carbon: -config requires a path")
				return 2
			}
			configPath = args[i]
		case "-trace":
			i++
			if i >= len(args) {
				fmt.Fprintln(os.Stderr, "carbon: -trace requires a path")
				return 2
			}
			tracePath = args[i]
		default:
			if file != "" {
				fmt.Fprintln(os.Stderr, "carbon: exactly one source file may be given")
				return 2
			}
			file = args[i]
		}
	}

	if file == "" {
		fmt.Fprintln(os.Stderr, "usage: carbon [-config carbon.yaml] [-trace trace.log] <file.carbon>")
		return 2
	}

	cfg := &hostconfig.Config{Color: "auto"}
	if configPath != "" {
		loaded, err := hostconfig.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "carbon: %v\n", err)
			return 2
		}
		cfg = loaded
	}
	if tracePath != "" {
		cfg.Trace = tracePath
	}

	source, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "carbon: %v\n", err)
		return 2
	}

	p, err := parser.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "carbon: internal: building parser: %v\n", err)
		return 2
	}
	ast, err := p.ParseBytes(file, source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}

	prog, log := program.Compile(ast)
	if log.HasErrors() {
		printDiagnostics(os.Stderr, log, wantColor(cfg.Color))
		return 1
	}

	it := interp.New(prog)
	if cfg.Trace != "" {
		tf, err := os.Create(cfg.Trace)
		if err != nil {
			fmt.Fprintf(os.Stderr, "carbon: opening trace file: %v\n", err)
			return 2
		}
		defer tf.Close()
		it.SetTrace(interp.NewTracer(tf))
	}

	code, err := it.RunMain()
	if err != nil {
		fmt.Fprintf(os.Stderr, "carbon: %v\n", err)
		return 1
	}
	return int(code)
}

// wantColor resolves the "auto"/"always"/"never" color setting against
// the process's actual stderr terminal, following the same
// NO_COLOR-then-isatty order funxy's own color detector uses
// (internal/evaluator/builtins_term.go's detectColorLevel).
func wantColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

func printDiagnostics(w *os.File, log *diag.Log, color bool) {
	const (
		red   = "\x1b[31m"
		dim   = "\x1b[2m"
		reset = "\x1b[0m"
	)
	for _, e := range log.Errors {
		if color {
			fmt.Fprintf(w, "%s%s%s: %serror:%s %s\n", dim, e.Region, reset, red, reset, e.Message)
		} else {
			fmt.Fprintf(w, "%s: error: %s\n", e.Region, e.Message)
		}
		for _, n := range e.Notes {
			fmt.Fprintf(w, "  %s: note: %s\n", n.Region, n.Message)
		}
	}
}
