// Package ast defines the Carbon abstract syntax tree: a tagged-variant
// tree of nodes, each carrying a source.Region used as its identity tag
//. It intentionally mirrors funxy's own split of
// Node/Statement/Expression interfaces (internal/ast/ast_core.go) but
// drops funxy's Visitor/Accept dispatch in favor of the type-switch style
// funxy's own evaluator actually uses for tree traversal
// (internal/evaluator/evaluator.go's evalCore): for a single, closed
// grammar this is less machinery for the same effect.
package ast

import "github.com/carbon-run/carbon/internal/source"

// Node is the base interface implemented by every AST node.
type Node interface {
	// Site returns the node's source region. Together with the node's
	// dynamic (Go) type this is the node's identity: no two grammar
	// reductions can produce the same Go type at the same region, so
	// (dynamic type, Site()) is unique.
	Site() source.Region
}

// Expression is a Node that evaluates to a Value and has a static Type.
type Expression interface {
	Node
	expressionNode()
}

// Pattern is a Node that, at a binding site, introduces variables, and at
// a match site, tests a value.
type Pattern interface {
	Node
	patternNode()
}

// Statement is a Node that executes for effect.
type Statement interface {
	Node
	statementNode()
}

// Declaration is a top-level Statement that introduces a name visible
// throughout the enclosing Program regardless of declaration order
//.
type Declaration interface {
	Statement
	DeclaredName() string
}

// Identity is the (kind, site) pair that identifies an AST node. Two Identity values compare equal (by ==) iff Kind and Site
// are both equal; Kind is the node's Go type name so that two different
// node kinds occupying the same synthesized Empty region never collide.
type Identity struct {
	Kind string
	Site source.Region
}

// IdentityOf computes n's identity. Use this instead of comparing nodes
// directly with == when a node might be hidden behind different static
// types (e.g. both Expression and Node).
func IdentityOf(n Node) Identity {
	return Identity{Kind: kindName(n), Site: n.Site()}
}

func kindName(n Node) string {
	switch n.(type) {
	case *Identifier:
		return "Identifier"
	case *MemberAccess:
		return "MemberAccess"
	case *IndexExpr:
		return "IndexExpr"
	case *IntLit:
		return "IntLit"
	case *BoolLit:
		return "BoolLit"
	case *TupleLit:
		return "TupleLit"
	case *UnaryOp:
		return "UnaryOp"
	case *BinaryOp:
		return "BinaryOp"
	case *Call:
		return "Call"
	case *IntTypeExpr:
		return "IntTypeExpr"
	case *BoolTypeExpr:
		return "BoolTypeExpr"
	case *TypeTypeExpr:
		return "TypeTypeExpr"
	case *FunctionTypeExpr:
		return "FunctionTypeExpr"
	case *AtomPattern:
		return "AtomPattern"
	case *VariablePattern:
		return "VariablePattern"
	case *TuplePattern:
		return "TuplePattern"
	case *CallPattern:
		return "CallPattern"
	case *FunctionTypePattern:
		return "FunctionTypePattern"
	case *ExprStmt:
		return "ExprStmt"
	case *Assign:
		return "Assign"
	case *Initialization:
		return "Initialization"
	case *If:
		return "If"
	case *While:
		return "While"
	case *Match:
		return "Match"
	case *Break:
		return "Break"
	case *Continue:
		return "Continue"
	case *Return:
		return "Return"
	case *Block:
		return "Block"
	case *FunctionDefinition:
		return "FunctionDefinition"
	case *StructDefinition:
		return "StructDefinition"
	case *ChoiceDefinition:
		return "ChoiceDefinition"
	default:
		return "Unknown"
	}
}
