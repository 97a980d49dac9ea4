package parser

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/carbon-run/carbon/internal/ast"
	"github.com/carbon-run/carbon/internal/source"
)

// region builds a zero-width source.Region from a single captured
// lexer.Position. Like gaarutyunov/guix's own AST (pkg/ast/ast.go),
// every grammar production here captures only its starting Pos, never
// an end position, so a leaf node's region collapses start and end to
// the same point; composite expression nodes take the source.Union of
// their parts' regions. Nodes of different kinds can share a start
// position; the core's tables key on node pointers, not on regions.
func region(filename string, pos lexer.Position) source.Region {
	p := source.Position{Line: pos.Line, Column: pos.Column, Offset: pos.Offset}
	return source.Region{File: filename, Start: p, End: p}
}

func convertProgram(filename string, syn *programSyn) *ast.Program {
	prog := &ast.Program{File: filename}
	for _, d := range syn.Decls {
		prog.Declarations = append(prog.Declarations, convertDecl(filename, d))
	}
	return prog
}

func convertDecl(filename string, d *declSyn) ast.Statement {
	switch {
	case d.Func != nil:
		return convertFuncDecl(filename, d.Func)
	case d.Struct != nil:
		return convertStructDecl(filename, d.Struct)
	case d.Choice != nil:
		return convertChoiceDecl(filename, d.Choice)
	case d.Var != nil:
		return convertVarDecl(filename, d.Var)
	default:
		panic("parser: declSyn with no alternative set")
	}
}

func convertFuncDecl(filename string, d *funcDeclSyn) *ast.FunctionDefinition {
	params := make([]ast.Pattern, len(d.Params))
	for i, p := range d.Params {
		params[i] = convertPattern(filename, p)
	}

	// A function with no "-> type" clause deduces its return type the
	// same way an explicit `-> auto` does: from the `=> expr` body, or
	// from the block body's return statements (none means `()`), so
	// `fn f() => g(); fn g() => f();` still trips the signature cycle
	// detector.
	ret := ast.ReturnTypeForm{}
	switch {
	case d.ReturnType == nil:
		ret.AutoRegion = region(filename, d.Pos)
	case d.ReturnType.Auto:
		ret.AutoRegion = region(filename, d.ReturnType.Pos)
	default:
		ret.Expr = convertExpr(filename, d.ReturnType.Type)
	}

	fn := &ast.FunctionDefinition{
		Region:     region(filename, d.Pos),
		Name:       d.Name,
		Parameters: ast.NewPositionalTuple(params),
		ReturnType: ret,
	}
	if d.Block != nil {
		fn.Body = convertBlock(filename, d.Block)
	} else {
		fn.ReturnBody = convertExpr(filename, d.ArrowBody)
	}
	return fn
}

func convertStructDecl(filename string, d *structDeclSyn) *ast.StructDefinition {
	members := make([]*ast.Member, len(d.Members))
	for i, m := range d.Members {
		members[i] = &ast.Member{
			Region: region(filename, m.Pos),
			Name:   m.Name,
			Type:   convertExpr(filename, m.Type),
		}
	}
	return &ast.StructDefinition{
		Region:  region(filename, d.Pos),
		Name:    d.Name,
		Members: members,
	}
}

func convertChoiceDecl(filename string, d *choiceDeclSyn) *ast.ChoiceDefinition {
	alts := make([]*ast.Alternative, len(d.Alts))
	for i, a := range d.Alts {
		payload := make([]ast.Expression, len(a.Payload))
		for j, p := range a.Payload {
			payload[j] = convertExpr(filename, p)
		}
		alts[i] = &ast.Alternative{
			Region:  region(filename, a.Pos),
			Name:    a.Name,
			Payload: ast.NewPositionalTuple(payload),
		}
	}
	return &ast.ChoiceDefinition{
		Region:       region(filename, d.Pos),
		Name:         d.Name,
		Alternatives: alts,
	}
}

func convertVarDecl(filename string, d *varDeclSyn) *ast.Initialization {
	return &ast.Initialization{
		Region:  region(filename, d.Pos),
		Pattern: convertPattern(filename, d.Pattern),
		Value:   convertExpr(filename, d.Value),
	}
}

// ---- statements ----

func convertBlock(filename string, b *blockSyn) *ast.Block {
	stmts := make([]ast.Statement, len(b.Stmts))
	for i, s := range b.Stmts {
		stmts[i] = convertStmt(filename, s)
	}
	return &ast.Block{Region: region(filename, b.Pos), Stmts: stmts}
}

func convertStmt(filename string, s *stmtSyn) ast.Statement {
	switch {
	case s.Var != nil:
		return convertVarDecl(filename, s.Var)
	case s.If != nil:
		return convertIf(filename, s.If)
	case s.While != nil:
		return convertWhile(filename, s.While)
	case s.Match != nil:
		return convertMatch(filename, s.Match)
	case s.Keyword != nil:
		r := region(filename, s.Keyword.Pos)
		if s.Keyword.Keyword == "break" {
			return &ast.Break{Region: r}
		}
		return &ast.Continue{Region: r}
	case s.Return != nil:
		ret := &ast.Return{Region: region(filename, s.Return.Pos)}
		if s.Return.Value != nil {
			ret.Value = convertExpr(filename, s.Return.Value)
		}
		return ret
	case s.Block != nil:
		return convertBlock(filename, s.Block)
	case s.Simple != nil:
		return convertSimpleStmt(filename, s.Simple)
	default:
		panic("parser: stmtSyn with no alternative set")
	}
}

func convertSimpleStmt(filename string, s *simpleStmtSyn) ast.Statement {
	target := convertExpr(filename, s.Expr)
	if s.Assign != nil {
		return &ast.Assign{
			Region: region(filename, s.Pos),
			Target: target,
			Source: convertExpr(filename, s.Assign),
		}
	}
	return &ast.ExprStmt{Region: region(filename, s.Pos), Expr: target}
}

func convertIf(filename string, i *ifSyn) *ast.If {
	n := &ast.If{
		Region: region(filename, i.Pos),
		Cond:   convertExpr(filename, i.Cond),
		Then:   convertBlock(filename, i.Then),
	}
	if i.Else != nil {
		if i.Else.If != nil {
			n.Else = convertIf(filename, i.Else.If)
		} else {
			n.Else = convertBlock(filename, i.Else.Block)
		}
	}
	return n
}

func convertWhile(filename string, w *whileSyn) *ast.While {
	return &ast.While{
		Region: region(filename, w.Pos),
		Cond:   convertExpr(filename, w.Cond),
		Body:   convertBlock(filename, w.Body),
	}
}

func convertMatch(filename string, m *matchSyn) *ast.Match {
	clauses := make([]ast.MatchClause, len(m.Clauses))
	for i, c := range m.Clauses {
		clause := ast.MatchClause{Region: region(filename, c.Pos)}
		if !c.IsDefault {
			clause.Pattern = convertPattern(filename, c.Pattern)
		}
		clause.Action = actionBlock(filename, c.Action)
		clauses[i] = clause
	}
	return &ast.Match{
		Region:  region(filename, m.Pos),
		Subject: convertExpr(filename, m.Subject),
		Clauses: clauses,
	}
}

// actionBlock normalizes a match clause's action to a *ast.Block: a
// bare single statement is wrapped so ast.MatchClause.Action is always
// a block, so every clause body opens its own scope.
func actionBlock(filename string, s *stmtSyn) *ast.Block {
	if s.Block != nil {
		return convertBlock(filename, s.Block)
	}
	stmt := convertStmt(filename, s)
	return &ast.Block{Region: stmt.Site(), Stmts: []ast.Statement{stmt}}
}

// ---- expressions ----

func convertExpr(filename string, e *exprSyn) ast.Expression {
	left := convertAndExpr(filename, e.Left)
	for _, op := range e.Rest {
		right := convertAndExpr(filename, op.Right)
		left = &ast.BinaryOp{
			Region: source.Union(left.Site(), right.Site()),
			Op:     "or",
			Lhs:    left,
			Rhs:    right,
		}
	}
	return left
}

func convertAndExpr(filename string, e *andExprSyn) ast.Expression {
	left := convertEqExpr(filename, e.Left)
	for _, op := range e.Rest {
		right := convertEqExpr(filename, op.Right)
		left = &ast.BinaryOp{
			Region: source.Union(left.Site(), right.Site()),
			Op:     "and",
			Lhs:    left,
			Rhs:    right,
		}
	}
	return left
}

func convertEqExpr(filename string, e *eqExprSyn) ast.Expression {
	left := convertAddExpr(filename, e.Left)
	if e.Right == nil {
		return left
	}
	right := convertAddExpr(filename, e.Right)
	return &ast.BinaryOp{
		Region: source.Union(left.Site(), right.Site()),
		Op:     "==",
		Lhs:    left,
		Rhs:    right,
	}
}

func convertAddExpr(filename string, e *addExprSyn) ast.Expression {
	left := convertUnaryExpr(filename, e.Left)
	for _, op := range e.Rest {
		right := convertUnaryExpr(filename, op.Right)
		left = &ast.BinaryOp{
			Region: source.Union(left.Site(), right.Site()),
			Op:     op.Op,
			Lhs:    left,
			Rhs:    right,
		}
	}
	return left
}

func convertUnaryExpr(filename string, e *unaryExprSyn) ast.Expression {
	operand := convertPostfixExpr(filename, e.Operand)
	if e.Op == "" {
		return operand
	}
	return &ast.UnaryOp{
		Region:  source.Union(region(filename, e.Pos), operand.Site()),
		Op:      e.Op,
		Operand: operand,
	}
}

func convertPostfixExpr(filename string, e *postfixExprSyn) ast.Expression {
	base := convertPrimaryExpr(filename, e.Base)
	for _, t := range e.Trailers {
		base = convertTrailer(filename, base, t)
	}
	return base
}

func convertTrailer(filename string, base ast.Expression, t *trailerSyn) ast.Expression {
	switch {
	case t.Member != "":
		return &ast.MemberAccess{
			Region: source.Union(base.Site(), region(filename, t.Pos)),
			Base:   base,
			Member: t.Member,
		}
	case t.Index != nil:
		offset := convertExpr(filename, t.Index)
		return &ast.IndexExpr{
			Region: source.Union(base.Site(), offset.Site()),
			Target: base,
			Offset: offset,
		}
	case t.Args != nil:
		args := convertArgTuple(filename, t.Args.Fields)
		return &ast.Call{
			Region: source.Union(base.Site(), region(filename, t.Pos)),
			Callee: base,
			Args:   args,
		}
	default:
		panic("parser: trailerSyn with no alternative set")
	}
}

func convertPrimaryExpr(filename string, e *primaryExprSyn) ast.Expression {
	r := region(filename, e.Pos)
	switch {
	case e.Int != nil:
		return &ast.IntLit{Region: r, Value: *e.Int}
	case e.Bool != "":
		return &ast.BoolLit{Region: r, Value: e.Bool == "true"}
	case e.IntType:
		return &ast.IntTypeExpr{Region: r}
	case e.BoolType:
		return &ast.BoolTypeExpr{Region: r}
	case e.TypeType:
		return &ast.TypeTypeExpr{Region: r}
	case e.FnType != nil:
		return convertFnTypeAsExpr(filename, e.FnType)
	case e.Tuple != nil:
		return convertTupleLit(filename, e.Tuple)
	case e.Name != "":
		return &ast.Identifier{Region: r, Value: e.Name}
	default:
		panic("parser: primaryExprSyn with no alternative set")
	}
}

func convertFnTypeAsExpr(filename string, f *fnTypeSyn) *ast.FunctionTypeExpr {
	params := make([]ast.Pattern, len(f.Params))
	for i, p := range f.Params {
		params[i] = convertPattern(filename, p)
	}
	return &ast.FunctionTypeExpr{
		Region:     region(filename, f.Pos),
		Params:     ast.NewPositionalTuple(params),
		ReturnType: convertPattern(filename, f.Return),
	}
}

func convertFnTypeAsPattern(filename string, f *fnTypeSyn) *ast.FunctionTypePattern {
	params := make([]ast.Pattern, len(f.Params))
	for i, p := range f.Params {
		params[i] = convertPattern(filename, p)
	}
	return &ast.FunctionTypePattern{
		Region:     region(filename, f.Pos),
		Params:     ast.NewPositionalTuple(params),
		ReturnType: convertPattern(filename, f.Return),
	}
}

// convertTupleLit distinguishes grouping from tuple construction:
// `(x)` is the expression x, `(x,)` and `()` and `(x, y)` are tuples.
func convertTupleLit(filename string, t *tupleLitSyn) ast.Expression {
	if len(t.Fields) == 1 && t.Fields[0].Label == "" && !t.TrailingComma {
		return convertExpr(filename, t.Fields[0].Value)
	}
	return &ast.TupleLit{
		Region: region(filename, t.Pos),
		Tuple:  convertArgTuple(filename, t.Fields),
	}
}

// convertArgTuple builds a Tuple[Expression] from a parsed argument
// list, placing every unlabeled field first (assigned sequential
// positions in source order) and every labeled field after, so
// positional fields always occupy the lowest indices.
func convertArgTuple(filename string, fields []*argSyn) ast.Tuple[ast.Expression] {
	var positional, labeled []ast.Field[ast.Expression]
	pos := 0
	for _, f := range fields {
		v := convertExpr(filename, f.Value)
		if f.Label == "" {
			positional = append(positional, ast.Field[ast.Expression]{ID: ast.Pos(pos), Value: v})
			pos++
		} else {
			labeled = append(labeled, ast.Field[ast.Expression]{ID: ast.Label(f.Label), Value: v})
		}
	}
	return ast.Tuple[ast.Expression]{Fields: append(positional, labeled...)}
}

// ---- patterns ----

func convertPattern(filename string, p *patternSyn) ast.Pattern {
	switch {
	case p.Tuple != nil:
		return convertTuplePattern(filename, p.Tuple)
	case p.FnType != nil:
		return convertFnTypeAsPattern(filename, p.FnType)
	case p.Named != nil:
		return convertNamedPattern(filename, p.Named)
	case p.Atom != nil:
		return &ast.AtomPattern{
			Region: region(filename, p.Atom.Pos),
			Expr:   convertUnaryExpr(filename, p.Atom.Expr),
		}
	default:
		panic("parser: patternSyn with no alternative set")
	}
}

func convertTuplePattern(filename string, t *tuplePatternSyn) *ast.TuplePattern {
	return &ast.TuplePattern{
		Region: region(filename, t.Pos),
		Tuple:  convertPatternFieldTuple(filename, t.Fields),
	}
}

// convertNamedPattern resolves the three shapes namedPatternSyn covers
// (VariablePattern / CallPattern): a plain `name : type`
// binding, a call pattern `Name.Qualifier(...)`, and a bare (possibly
// dotted) reference to a zero-payload alternative, e.g. `case None =>`.
// A bare name with no colon, no call arguments and no dotted suffix is
// treated as a nullary CallPattern rather than a binding, since a
// VariablePattern always carries a declared type (see DESIGN.md).
func convertNamedPattern(filename string, n *namedPatternSyn) ast.Pattern {
	r := region(filename, n.Pos)
	if n.Colon != nil && len(n.Dotted) == 0 {
		return &ast.VariablePattern{
			Region: r,
			Binding: &ast.SimpleBinding{
				Region: r,
				Name:   n.Name,
				Type:   convertPatternType(filename, n.Colon),
			},
		}
	}

	var callee ast.Expression = &ast.Identifier{Region: r, Value: n.Name}
	for _, member := range n.Dotted {
		callee = &ast.MemberAccess{Region: r, Base: callee, Member: member}
	}

	args := ast.Tuple[ast.Pattern]{}
	if n.Args != nil {
		args = convertPatternFieldTuple(filename, n.Args)
	}
	return &ast.CallPattern{Region: r, Callee: callee, Args: args}
}

func convertPatternType(filename string, pt *patternTypeSyn) ast.DeclaredType {
	if pt.Auto {
		return ast.DeclaredType{AutoRegion: region(filename, pt.Pos)}
	}
	return ast.DeclaredType{Expr: convertExpr(filename, pt.Type)}
}

// convertPatternFieldTuple mirrors convertArgTuple's positional/labeled
// ordering rule for pattern fields.
func convertPatternFieldTuple(filename string, fields []*patternFieldSyn) ast.Tuple[ast.Pattern] {
	var positional, labeled []ast.Field[ast.Pattern]
	pos := 0
	for _, f := range fields {
		v := convertPattern(filename, f.Value)
		if f.Label == "" {
			positional = append(positional, ast.Field[ast.Pattern]{ID: ast.Pos(pos), Value: v})
			pos++
		} else {
			labeled = append(labeled, ast.Field[ast.Pattern]{ID: ast.Label(f.Label), Value: v})
		}
	}
	return ast.Tuple[ast.Pattern]{Fields: append(positional, labeled...)}
}
