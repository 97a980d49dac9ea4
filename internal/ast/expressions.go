package ast

import "github.com/carbon-run/carbon/internal/source"

// Identifier is a use-site name reference (Name(Identifier)).
// It is never itself resolved as a declaration; name resolution maps it
// to the Declaration/SimpleBinding it denotes.
type Identifier struct {
	Region source.Region
	Value  string
}

func (n *Identifier) Site() source.Region { return n.Region }
func (*Identifier) expressionNode()       {}

// MemberAccess is `base.member`.
type MemberAccess struct {
	Region source.Region
	Base   Expression
	Member string
}

func (n *MemberAccess) Site() source.Region { return n.Region }
func (*MemberAccess) expressionNode()       {}

// IndexExpr is `target[offset]`.
type IndexExpr struct {
	Region source.Region
	Target Expression
	Offset Expression
}

func (n *IndexExpr) Site() source.Region { return n.Region }
func (*IndexExpr) expressionNode()       {}

// IntLit is an integer literal.
type IntLit struct {
	Region source.Region
	Value  int64
}

func (n *IntLit) Site() source.Region { return n.Region }
func (*IntLit) expressionNode()       {}

// BoolLit is a boolean literal.
type BoolLit struct {
	Region source.Region
	Value  bool
}

func (n *BoolLit) Site() source.Region { return n.Region }
func (*BoolLit) expressionNode()       {}

// TupleLit is a tuple literal, e.g. `(1, .b = 2)`.
type TupleLit struct {
	Region source.Region
	Tuple  Tuple[Expression]
}

func (n *TupleLit) Site() source.Region { return n.Region }
func (*TupleLit) expressionNode()       {}

// UnaryOp is `-x` or `not x`.
type UnaryOp struct {
	Region  source.Region
	Op      string // "-" or "not"
	Operand Expression
}

func (n *UnaryOp) Site() source.Region { return n.Region }
func (*UnaryOp) expressionNode()       {}

// BinaryOp is a two-operand operator expression.
type BinaryOp struct {
	Region source.Region
	Op     string // "==", "+", "-", "and", "or"
	Lhs    Expression
	Rhs    Expression
}

func (n *BinaryOp) Site() source.Region { return n.Region }
func (*BinaryOp) expressionNode()       {}

// Call is a function/struct/alternative call `callee(args...)`.
type Call struct {
	Region source.Region
	Callee Expression
	Args   Tuple[Expression]
}

func (n *Call) Site() source.Region { return n.Region }
func (*Call) expressionNode()       {}

// IntTypeExpr is the literal type expression `Int`.
type IntTypeExpr struct{ Region source.Region }

func (n *IntTypeExpr) Site() source.Region { return n.Region }
func (*IntTypeExpr) expressionNode()       {}

// BoolTypeExpr is the literal type expression `Bool`.
type BoolTypeExpr struct{ Region source.Region }

func (n *BoolTypeExpr) Site() source.Region { return n.Region }
func (*BoolTypeExpr) expressionNode()       {}

// TypeTypeExpr is the literal type expression `Type` (the type of types).
type TypeTypeExpr struct{ Region source.Region }

func (n *TypeTypeExpr) Site() source.Region { return n.Region }
func (*TypeTypeExpr) expressionNode()       {}

// FunctionTypeExpr is `fnty(params) -> returnType` used as an expression.
type FunctionTypeExpr struct {
	Region     source.Region
	Params     Tuple[Pattern]
	ReturnType Pattern
}

func (n *FunctionTypeExpr) Site() source.Region { return n.Region }
func (*FunctionTypeExpr) expressionNode()       {}
