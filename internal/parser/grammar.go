// Package parser builds an ast.Program from Carbon source text. It is a
// collaborator, not part of the core: the core consumes
// only the ast.Program this package produces. It is grounded in
// gaarutyunov/guix's own parser package (pkg/parser/parser.go), the one
// repo in the retrieval pack built on
// github.com/alecthomas/participle/v2: a layered, struct-tag grammar
// (guix's Expr/Primary/BinaryOp split) is a natural fit for Carbon-lite,
// whose surface syntax is much smaller than guix's own. Precedence is
// encoded the classical recursive-descent way: one grammar layer per
// precedence level (guix flattens this into a single untyped BinOps
// list since it never needed precedence between operators; Carbon's
// `and`/`or`/`==`/`+`/`-` do, so this repo adds the layers guix didn't
// need).
package parser

import "github.com/alecthomas/participle/v2/lexer"

// programSyn is the root production: a sequence of top-level
// declarations.
type programSyn struct {
	Pos   lexer.Position
	Decls []*declSyn `@@*`
}

type declSyn struct {
	Pos    lexer.Position
	Func   *funcDeclSyn   `  @@`
	Struct *structDeclSyn `| @@`
	Choice *choiceDeclSyn `| @@`
	Var    *varDeclSyn    `| @@`
}

type funcDeclSyn struct {
	Pos        lexer.Position
	Name       string         `"fn" @Ident`
	Params     []*patternSyn  `"(" (@@ ("," @@)*)? ")"`
	ReturnType *returnTypeSyn `("->" @@)?`
	Block      *blockSyn      `(  @@`
	ArrowBody  *exprSyn       `|  "=>" @@ ";" )`
}

// returnTypeSyn is a function's declared return type, `auto` or an
// explicit type expression (ReturnTypeForm).
type returnTypeSyn struct {
	Pos  lexer.Position
	Auto bool     `  @"auto"`
	Type *exprSyn `| @@`
}

type structDeclSyn struct {
	Pos     lexer.Position
	Name    string       `"struct" @Ident "{"`
	Members []*memberSyn `@@* "}"`
}

type memberSyn struct {
	Pos  lexer.Position
	Name string  `"var" @Ident ":"`
	Type *exprSyn `@@ ";"`
}

type choiceDeclSyn struct {
	Pos  lexer.Position
	Name string     `"choice" @Ident "{"`
	Alts []*altSyn  `(@@ ("," @@)*)? "}"`
}

type altSyn struct {
	Pos     lexer.Position
	Name    string     `@Ident`
	Payload []*exprSyn `("(" (@@ ("," @@)*)? ")")?`
}

// varDeclSyn lowers `var pattern = expr;`, used both as a top-level
// declaration and, unwrapped, as a local initialization statement.
type varDeclSyn struct {
	Pos     lexer.Position
	Pattern *patternSyn `"var" @@ "="`
	Value   *exprSyn    `@@ ";"`
}

// ---- statements ----

type stmtSyn struct {
	Pos      lexer.Position
	Var      *varDeclSyn    `  @@`
	If       *ifSyn         `| @@`
	While    *whileSyn      `| @@`
	Match    *matchSyn      `| @@`
	Keyword  *keywordStmtSyn `| @@`
	Return   *returnSyn     `| @@`
	Block    *blockSyn      `| @@`
	Simple   *simpleStmtSyn `| @@`
}

type blockSyn struct {
	Pos   lexer.Position
	Stmts []*stmtSyn `"{" @@* "}"`
}

type keywordStmtSyn struct {
	Pos     lexer.Position
	Keyword string `@("break" | "continue") ";"`
}

type returnSyn struct {
	Pos   lexer.Position
	Value *exprSyn `"return" @@? ";"`
}

type ifSyn struct {
	Pos  lexer.Position
	Cond *exprSyn `"if" "(" @@ ")"`
	Then *blockSyn `@@`
	Else *elseSyn  `("else" @@)?`
}

type elseSyn struct {
	Pos   lexer.Position
	If    *ifSyn    `  @@`
	Block *blockSyn `| @@`
}

type whileSyn struct {
	Pos  lexer.Position
	Cond *exprSyn  `"while" "(" @@ ")"`
	Body *blockSyn `@@`
}

type matchSyn struct {
	Pos     lexer.Position
	Subject *exprSyn     `"match" "(" @@ ")" "{"`
	Clauses []*clauseSyn `@@* "}"`
}

type clauseSyn struct {
	Pos       lexer.Position
	Pattern   *patternSyn `(  "case" @@`
	IsDefault bool        `|  @"default" )`
	Action    *stmtSyn    `"=>" @@`
}

// simpleStmtSyn covers both a bare expression statement and an
// assignment, disambiguated after parsing by whether Assign is set
// (ExprStmt / Assign).
type simpleStmtSyn struct {
	Pos    lexer.Position
	Expr   *exprSyn `@@`
	Assign *exprSyn `("=" @@)? ";"`
}

// ---- expressions, layered by precedence (lowest first) ----

type exprSyn struct {
	Pos  lexer.Position
	Left *andExprSyn `@@`
	Rest []*orOpSyn  `@@*`
}

type orOpSyn struct {
	Pos   lexer.Position
	Right *andExprSyn `"or" @@`
}

type andExprSyn struct {
	Pos  lexer.Position
	Left *eqExprSyn  `@@`
	Rest []*andOpSyn `@@*`
}

type andOpSyn struct {
	Pos   lexer.Position
	Right *eqExprSyn `"and" @@`
}

type eqExprSyn struct {
	Pos   lexer.Position
	Left  *addExprSyn `@@`
	Right *addExprSyn `("==" @@)?`
}

type addExprSyn struct {
	Pos  lexer.Position
	Left *unaryExprSyn `@@`
	Rest []*addOpSyn   `@@*`
}

type addOpSyn struct {
	Pos   lexer.Position
	Op    string        `@("+" | "-")`
	Right *unaryExprSyn `@@`
}

type unaryExprSyn struct {
	Pos     lexer.Position
	Op      string          `@("-" | "not")?`
	Operand *postfixExprSyn `@@`
}

type postfixExprSyn struct {
	Pos      lexer.Position
	Base     *primaryExprSyn `@@`
	Trailers []*trailerSyn   `@@*`
}

type trailerSyn struct {
	Pos    lexer.Position
	Member string      `(  "." @Ident`
	Index  *exprSyn    `|  "[" @@ "]"`
	Args   *argListSyn `|  "(" @@ ")" )`
}

type argListSyn struct {
	Pos    lexer.Position
	Fields []*argSyn `(@@ ("," @@)*)?`
}

type argSyn struct {
	Pos   lexer.Position
	Label string   `("." @Ident "=")?`
	Value *exprSyn `@@`
}

type primaryExprSyn struct {
	Pos      lexer.Position
	Int      *int64       `(  @Int`
	Bool     string       `|  @("true" | "false")`
	IntType  bool         `|  @"Int"`
	BoolType bool         `|  @"Bool"`
	TypeType bool         `|  @"Type"`
	FnType   *fnTypeSyn   `|  @@`
	Tuple    *tupleLitSyn `|  @@`
	Name     string       `|  @Ident )`
}

// fnTypeSyn parses `fnty(params) -> returnType`, shared between an
// expression context (FunctionType(Expression)) and a
// pattern context (FunctionType(Pattern)): the concrete syntax is
// identical in both positions, so the two ast variants are built from
// the same parse tree by the two different converters that embed it
// (convertPrimaryExpr, convertPattern).
type fnTypeSyn struct {
	Pos    lexer.Position
	Params []*patternSyn `"fnty" "(" (@@ ("," @@)*)? ")"`
	Return *patternSyn   `"->" @@`
}

// tupleLitSyn parses a parenthesized expression list. A single
// unlabeled element with no trailing comma is grouping, not a 1-tuple;
// `(x,)` is how a 1-tuple is written (see convertTupleLit).
type tupleLitSyn struct {
	Pos           lexer.Position
	Fields        []*argSyn `"(" (@@ ("," @@)*`
	TrailingComma bool      `@","?)? ")"`
}

// ---- patterns ----

type patternSyn struct {
	Pos    lexer.Position
	Tuple  *tuplePatternSyn `  @@`
	FnType *fnTypeSyn       `| @@`
	Named  *namedPatternSyn `| @@`
	Atom   *atomPatternSyn  `| @@`
}

type tuplePatternSyn struct {
	Pos    lexer.Position
	Fields []*patternFieldSyn `"(" (@@ ("," @@)*)? ")"`
}

type patternFieldSyn struct {
	Pos   lexer.Position
	Label string      `("." @Ident "=")?`
	Value *patternSyn `@@`
}

// namedPatternSyn covers a variable pattern (`name : auto|Type`), a
// call pattern whose callee is a (possibly dotted) name
// (`Ints.One(n: auto)`), and a bare dotted alternative reference used
// as a zero-payload pattern (`Ints.None`).
type namedPatternSyn struct {
	Pos    lexer.Position
	Name   string             `@Ident`
	Dotted []string           `("." @Ident)*`
	Colon  *patternTypeSyn    `(  ":" @@`
	Args   []*patternFieldSyn `|  "(" (@@ ("," @@)*)? ")" )?`
}

type patternTypeSyn struct {
	Pos  lexer.Position
	Auto bool     `  @"auto"`
	Type *exprSyn `| @@`
}

// atomPatternSyn wraps a literal or type-literal expression used
// directly as a pattern (Atom(Expression)), e.g. a
// refutable integer-literal parameter pattern or a bare `Int` type
// pattern. It parses one precedence layer below exprSyn (unaryExprSyn)
// since a pattern atom is never itself a compound boolean expression.
type atomPatternSyn struct {
	Pos  lexer.Position
	Expr *unaryExprSyn `@@`
}
