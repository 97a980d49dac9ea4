package check

import (
	"github.com/carbon-run/carbon/internal/ast"
	"github.com/carbon-run/carbon/internal/types"
)

// checkFunctionBody typechecks a function's body, tracking loop
// nesting to reject Break/Continue outside a loop and the function's
// return type for Return statements.
func (c *Checker) checkFunctionBody(fn *ast.FunctionDefinition) {
	sig, ok := c.typeOfName(fn).(types.FunctionType)
	if !ok {
		return // signature already reported an error
	}
	if fn.ReturnBody != nil {
		c.typeOf(fn.ReturnBody)
		return
	}
	if fn.Body == nil {
		return
	}
	s := &bodyState{checker: c, returnType: sig.ReturnType}
	s.checkBlock(fn.Body)
}

// bodyState threads the ambient loop depth and function return type
// through a single function body's statement walk.
type bodyState struct {
	checker    *Checker
	returnType types.Type
	loopDepth  int
}

func (s *bodyState) checkBlock(b *ast.Block) {
	for _, stmt := range b.Stmts {
		s.checkStmt(stmt)
	}
}

func (s *bodyState) checkStmt(stmt ast.Statement) {
	c := s.checker
	switch st := stmt.(type) {
	case *ast.ExprStmt:
		c.typeOf(st.Expr)

	case *ast.Assign:
		target := c.typeOf(st.Target)
		source := c.typeOf(st.Source)
		if !types.IsError(target) && !types.IsError(source) && !types.Equal(target, source) {
			c.log.Addf(st.Region, "Expected expression of type %s, not %s", target.String(), source.String())
		}

	case *ast.Initialization:
		rhs := c.typeOf(st.Value)
		lhs := c.patternType(st.Pattern, rhs)
		if !types.IsError(lhs) && !types.IsError(rhs) && !types.Equal(lhs, rhs) {
			c.log.Addf(st.Region, "Pattern type %s does not match initializer type %s", lhs.String(), rhs.String())
		}

	case *ast.If:
		c.requireType(st.Cond, c.typeOf(st.Cond), types.BoolType{})
		s.checkBlock(st.Then)
		switch e := st.Else.(type) {
		case nil:
		case *ast.Block:
			s.checkBlock(e)
		case *ast.If:
			s.checkStmt(e)
		}

	case *ast.While:
		c.requireType(st.Cond, c.typeOf(st.Cond), types.BoolType{})
		s.loopDepth++
		s.checkBlock(st.Body)
		s.loopDepth--

	case *ast.Match:
		subject := c.typeOf(st.Subject)
		for _, clause := range st.Clauses {
			if clause.Pattern != nil {
				c.patternType(clause.Pattern, subject)
			}
			s.checkBlock(clause.Action)
		}

	case *ast.Break, *ast.Continue:
		if s.loopDepth == 0 {
			c.log.Addf(stmt.Site(), "invalid outside loop body")
		}

	case *ast.Return:
		if st.Value != nil {
			got := c.typeOf(st.Value)
			c.requireType(st.Value, got, s.returnType)
		} else if !types.IsError(s.returnType) {
			if _, ok := s.returnType.(types.TupleType); !ok {
				c.log.Addf(st.Region, "Expected expression of type %s, not %s", s.returnType.String(), types.TupleType{}.String())
			}
		}

	case *ast.Block:
		s.checkBlock(st)
	}
}
