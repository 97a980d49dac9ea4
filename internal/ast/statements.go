package ast

import "github.com/carbon-run/carbon/internal/source"

// ExprStmt evaluates an expression for effect and discards its result.
type ExprStmt struct {
	Region source.Region
	Expr   Expression
}

func (n *ExprStmt) Site() source.Region { return n.Region }
func (*ExprStmt) statementNode()        {}

// Assign is `target = source;`.
type Assign struct {
	Region source.Region
	Target Expression
	Source Expression
}

func (n *Assign) Site() source.Region { return n.Region }
func (*Assign) statementNode()        {}

// If is `if (cond) then [else else_]`.
type If struct {
	Region source.Region
	Cond   Expression
	Then   *Block
	Else   Statement // *Block or *If, nil if no else clause
}

func (n *If) Site() source.Region { return n.Region }
func (*If) statementNode()        {}

// While is `while (cond) body`.
type While struct {
	Region source.Region
	Cond   Expression
	Body   *Block
}

func (n *While) Site() source.Region { return n.Region }
func (*While) statementNode()        {}

// MatchClause is one `case pattern => action` or `default => action`.
type MatchClause struct {
	Region  source.Region
	Pattern Pattern // nil for the default clause
	Action  *Block
}

// Match is `match (subject) { clauses... }`.
type Match struct {
	Region  source.Region
	Subject Expression
	Clauses []MatchClause
}

func (n *Match) Site() source.Region { return n.Region }
func (*Match) statementNode()        {}

// Break exits the innermost enclosing loop.
type Break struct{ Region source.Region }

func (n *Break) Site() source.Region { return n.Region }
func (*Break) statementNode()        {}

// Continue restarts the innermost enclosing loop's condition check.
type Continue struct{ Region source.Region }

func (n *Continue) Site() source.Region { return n.Region }
func (*Continue) statementNode()        {}

// Return returns from the enclosing function, optionally with a value.
type Return struct {
	Region source.Region
	Value  Expression // nil for a bare `return;`
}

func (n *Return) Site() source.Region { return n.Region }
func (*Return) statementNode()        {}

// Block is `{ stmts... }`; it introduces its own lexical scope,
// including when it is the body of an if/while (the grammar requires
// braces there, so every such body is a *Block).
type Block struct {
	Region source.Region
	Stmts  []Statement
}

func (n *Block) Site() source.Region { return n.Region }
func (*Block) statementNode()        {}
