package resolve

import "github.com/carbon-run/carbon/internal/ast"

// walkTopLevel resolves uses within a single top-level declaration's
// body.
func (r *resolver) walkTopLevel(decl ast.Statement, global *scope) {
	switch d := decl.(type) {
	case *ast.FunctionDefinition:
		r.walkFunction(d, global)
	case *ast.StructDefinition:
		r.walkStruct(d, global)
	case *ast.ChoiceDefinition:
		r.walkChoice(d, global)
	case *ast.Initialization:
		r.walkExpr(d.Value, global)
		// The bindings were already declared into global by
		// registerTopLevel; declare them again only into a throwaway
		// scope so the type expressions still resolve.
		r.pattern(d.Pattern, global, newScope(global))
	}
}

func (r *resolver) walkFunction(fn *ast.FunctionDefinition, outer *scope) {
	fnScope := newScope(outer)
	for _, f := range fn.Parameters.Fields {
		// Parameter declared-type expressions resolve against the
		// enclosing scope (parameters never depend on each other's
		// types); the bound name itself lands in fnScope.
		r.pattern(f.Value, outer, fnScope)
	}
	if !fn.ReturnType.IsAuto() {
		r.walkExpr(fn.ReturnType.Expr, outer)
	}
	if fn.Body != nil {
		r.walkBlockIn(fn.Body, fnScope)
	}
	if fn.ReturnBody != nil {
		r.walkExpr(fn.ReturnBody, fnScope)
	}
}

// walkStruct introduces the struct's members into a fresh scope before
// resolving their type expressions, so a member's type expression may
// refer to the struct itself or to sibling members.
func (r *resolver) walkStruct(sd *ast.StructDefinition, outer *scope) {
	body := newScope(outer)
	for _, m := range sd.Members {
		if _, dup := body.declareHere(m.Name, m); dup {
			r.log.Addf(m.Region, "'%s' already defined", m.Name)
		}
	}
	for _, m := range sd.Members {
		r.walkExpr(m.Type, body)
	}
}

func (r *resolver) walkChoice(cd *ast.ChoiceDefinition, outer *scope) {
	body := newScope(outer)
	for _, a := range cd.Alternatives {
		if _, dup := body.declareHere(a.Name, a); dup {
			r.log.Addf(a.Region, "'%s' already defined", a.Name)
		}
	}
	for _, a := range cd.Alternatives {
		for _, f := range a.Payload.Fields {
			r.walkExpr(f.Value, body)
		}
	}
}

// walkBlockIn resolves a block's statements in a fresh child scope,
// always, so an initializer's bound name never leaks into the enclosing
// scope. The grammar requires braces around every if/while body, so
// each such body is a block and gets its own scope here.
func (r *resolver) walkBlockIn(b *ast.Block, outer *scope) {
	inner := newScope(outer)
	for _, stmt := range b.Stmts {
		r.walkStmt(stmt, inner)
	}
}

func (r *resolver) walkStmt(stmt ast.Statement, s *scope) {
	switch st := stmt.(type) {
	case *ast.ExprStmt:
		r.walkExpr(st.Expr, s)
	case *ast.Assign:
		r.walkExpr(st.Target, s)
		r.walkExpr(st.Source, s)
	case *ast.Initialization:
		r.walkExpr(st.Value, s)
		r.pattern(st.Pattern, s, s)
	case *ast.If:
		r.walkExpr(st.Cond, s)
		r.walkBlockIn(st.Then, s)
		switch e := st.Else.(type) {
		case nil:
		case *ast.Block:
			r.walkBlockIn(e, s)
		case *ast.If:
			r.walkStmt(e, s)
		}
	case *ast.While:
		r.walkExpr(st.Cond, s)
		r.walkBlockIn(st.Body, s)
	case *ast.Match:
		r.walkExpr(st.Subject, s)
		for _, clause := range st.Clauses {
			clauseScope := newScope(s)
			if clause.Pattern != nil {
				r.pattern(clause.Pattern, clauseScope, clauseScope)
			}
			r.walkBlockIn(clause.Action, clauseScope)
		}
	case *ast.Break, *ast.Continue:
		// no names
	case *ast.Return:
		if st.Value != nil {
			r.walkExpr(st.Value, s)
		}
	}
}

// pattern resolves the type-expression parts of p against typeScope and
// declares any SimpleBindings p introduces into bindScope. The two
// scopes differ for function parameters (types resolve in the enclosing
// scope, names land in the function scope), for top-level
// initializations (whose names registerTopLevel already declared), and
// for FunctionType patterns, where parameter bindings must be visible to
// the return-type sub-pattern but not to sibling parameters' own type
// expressions.
func (r *resolver) pattern(p ast.Pattern, typeScope, bindScope *scope) {
	switch p := p.(type) {
	case *ast.AtomPattern:
		r.walkExpr(p.Expr, typeScope)
	case *ast.VariablePattern:
		if !p.Binding.Type.IsAuto() {
			r.walkExpr(p.Binding.Type.Expr, typeScope)
		}
		r.declare(bindScope, p.Binding.Name, p.Binding, p.Binding.Region)
	case *ast.TuplePattern:
		for _, f := range p.Tuple.Fields {
			r.pattern(f.Value, typeScope, bindScope)
		}
	case *ast.CallPattern:
		r.walkExpr(p.Callee, typeScope)
		for _, f := range p.Args.Fields {
			r.pattern(f.Value, typeScope, bindScope)
		}
	case *ast.FunctionTypePattern:
		for _, f := range p.Params.Fields {
			r.pattern(f.Value, typeScope, bindScope)
		}
		r.pattern(p.ReturnType, bindScope, bindScope)
	}
}

func (r *resolver) walkExpr(e ast.Expression, s *scope) {
	switch e := e.(type) {
	case *ast.Identifier:
		n, ok := s.lookup(e.Value)
		if !ok {
			r.log.Addf(e.Region, "Un-declared name '%s'", e.Value)
			return
		}
		r.table.Definition[e] = n
	case *ast.MemberAccess:
		r.walkExpr(e.Base, s)
		// e.Member is resolved against the base's type by the checker,
		// not here: it names a struct field or choice alternative, not
		// a lexically-scoped identifier.
	case *ast.IndexExpr:
		r.walkExpr(e.Target, s)
		r.walkExpr(e.Offset, s)
	case *ast.IntLit, *ast.BoolLit, *ast.IntTypeExpr, *ast.BoolTypeExpr, *ast.TypeTypeExpr:
		// no names
	case *ast.TupleLit:
		for _, f := range e.Tuple.Fields {
			r.walkExpr(f.Value, s)
		}
	case *ast.UnaryOp:
		r.walkExpr(e.Operand, s)
	case *ast.BinaryOp:
		r.walkExpr(e.Lhs, s)
		r.walkExpr(e.Rhs, s)
	case *ast.Call:
		r.walkExpr(e.Callee, s)
		for _, f := range e.Args.Fields {
			r.walkExpr(f.Value, s)
		}
	case *ast.FunctionTypeExpr:
		ft := newScope(s)
		for _, f := range e.Params.Fields {
			r.pattern(f.Value, s, ft)
		}
		r.pattern(e.ReturnType, ft, ft)
	}
}
