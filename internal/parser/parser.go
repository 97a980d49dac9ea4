package parser

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"

	carbonlexer "github.com/carbon-run/carbon/internal/lexer"
	"github.com/carbon-run/carbon/internal/ast"
)

// Parser turns Carbon source text into an ast.Program. It wraps a single
// participle.Parser built once at New and reused across files, the same
// shape as guix's own Parser (pkg/parser/parser.go).
type Parser struct {
	parser *participle.Parser[programSyn]
}

// New builds a Parser, compiling the grammar once.
func New() (*Parser, error) {
	p, err := participle.Build[programSyn](
		participle.Lexer(carbonlexer.Definition),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(4),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return &Parser{parser: p}, nil
}

// Parse reads and parses a Carbon source file from r.
func (p *Parser) Parse(filename string, r io.Reader) (*ast.Program, error) {
	syn, err := p.parser.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return convertProgram(filename, syn), nil
}

// ParseString parses Carbon source held in a string.
func (p *Parser) ParseString(filename, source string) (*ast.Program, error) {
	syn, err := p.parser.ParseString(filename, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return convertProgram(filename, syn), nil
}

// ParseBytes parses Carbon source held in a byte slice.
func (p *Parser) ParseBytes(filename string, source []byte) (*ast.Program, error) {
	syn, err := p.parser.ParseBytes(filename, source)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", filename, err)
	}
	return convertProgram(filename, syn), nil
}
