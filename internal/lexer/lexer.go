// Package lexer defines the token stream Carbon's parser consumes. It is
// a collaborator, not part of the core: the core only cares
// about the ast.Program the parser produces from these tokens. It is
// built on participle's stateful lexer
// (github.com/alecthomas/participle/v2/lexer), the same construction
// gaarutyunov/guix uses for its own single-state grammar
// (pkg/parser/parser.go's guixLexer), minus guix's template-string push
// state: Carbon has no string interpolation to lex.
package lexer

import "github.com/alecthomas/participle/v2/lexer"

// Rules is the token grammar shared by every Carbon source file.
// Keywords are matched before Ident so e.g. "struct" never lexes as an
// identifier; longer operators are listed before their prefixes (e.g.
// "->" before "-") so the regex alternation prefers the longest match.
var Rules = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `//[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Keyword", Pattern: `\b(fn|struct|choice|var|if|else|while|match|case|default|break|continue|return|true|false|not|and|or|auto|Int|Bool|Type|fnty)\b`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Int", Pattern: `[0-9]+`},
		{Name: "Op", Pattern: `(->|=>|==|[+\-=.,;:(){}\[\]])`},
	},
})

// Definition exposes Rules under the name participle.Lexer expects.
var Definition = Rules
