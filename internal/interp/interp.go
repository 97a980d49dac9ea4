package interp

import (
	"fmt"

	"github.com/carbon-run/carbon/internal/ast"
	"github.com/carbon-run/carbon/internal/program"
	"github.com/carbon-run/carbon/internal/types"
)

// RuntimeError reports a failure that can only be detected while running
// the program ("Runtime" error kind): no pattern matched in a
// match statement, or a refutable parameter/call-site pattern failed to
// bind.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

type globalState int

const (
	unstarted globalState = iota
	inProgress
	done
)

// Interpreter is a tree-walking evaluator driven by Go's own call stack
// (see ctrl in frame.go); it has no reified step machine and cannot be
// advanced one step at a time. One Interpreter owns exactly one Memory
// and one global-binding namespace. It does not implement
// check.Evaluator, so the type checker never runs it at compile time.
type Interpreter struct {
	prog *program.ExecutableProgram
	mem  *Memory

	globalAddr  map[*ast.SimpleBinding]Address
	globalState map[*ast.SimpleBinding]globalState

	trace *Tracer
}

// New builds an Interpreter ready to Run prog.
func New(prog *program.ExecutableProgram) *Interpreter {
	return &Interpreter{
		prog:        prog,
		mem:         NewMemory(),
		globalAddr:  make(map[*ast.SimpleBinding]Address),
		globalState: make(map[*ast.SimpleBinding]globalState),
	}
}

// Run locates `main` and executes it to completion, returning its Int
// return value as the process exit code.
func Run(prog *program.ExecutableProgram) (int64, error) {
	it := New(prog)
	return it.RunMain()
}

func (it *Interpreter) RunMain() (code int64, err error) {
	defer func() {
		if r := recover(); r != nil {
			if re, ok := r.(*RuntimeError); ok {
				err = re
				return
			}
			panic(r)
		}
	}()

	var mainFn *ast.FunctionDefinition
	for _, decl := range it.prog.AST.Declarations {
		if fn, ok := decl.(*ast.FunctionDefinition); ok && fn.Name == "main" {
			mainFn = fn
			break
		}
	}
	if mainFn == nil {
		return 0, &RuntimeError{Message: "internal: main not found after successful checking"}
	}

	v := it.callFunction(mainFn, TupleValue{T: types.TupleType{}})
	iv, ok := v.(IntValue)
	if !ok {
		return 0, &RuntimeError{Message: "internal: main did not return an Int"}
	}
	return iv.V, nil
}

func (it *Interpreter) staticType(e ast.Expression) types.Type {
	if t, ok := it.prog.Types.StaticType[e]; ok {
		return t
	}
	return types.ErrorType{}
}

// ---- function calls ----

func (it *Interpreter) callFunction(fn *ast.FunctionDefinition, args TupleValue) Value {
	frame := newFrame()

	if fn.Body != nil {
		it.bindParameters(frame, fn.Parameters, args)
		ctl := it.execBlock(frame, fn.Body)
		frame.popPersistent(it.mem, 0)
		if ctl == ctrlReturn {
			return frame.returnValue
		}
		return TupleValue{T: types.TupleType{}}
	}

	it.bindParameters(frame, fn.Parameters, args)
	v := it.evalExprValue(frame, fn.ReturnBody)
	for _, a := range frame.ephemeral {
		it.mem.Deallocate(a)
	}
	frame.ephemeral = nil
	frame.popPersistent(it.mem, 0)
	return v
}

// bindParameters matches each parameter pattern against the
// corresponding argument field, allocating a persistent local address
// per bound name.
func (it *Interpreter) bindParameters(frame *Frame, params ast.Tuple[ast.Pattern], args TupleValue) {
	for i, f := range params.Fields {
		var v Value
		var t types.Type
		if i < len(args.Fields) {
			v = args.Fields[i]
			t = args.T.Fields[i].Type
		}
		addr := it.mem.Allocate(t)
		frame.pushPersistent(addr)
		if v != nil {
			it.mem.Write(addr, v)
		}
		if !it.matchPattern(frame, f.Value, t, addr) {
			panic(&RuntimeError{Message: fmt.Sprintf("%s: arguments failed to bind to parameter pattern", f.Value.Site())})
		}
	}
}

// ---- statements ----

func (it *Interpreter) execBlock(frame *Frame, b *ast.Block) ctrl {
	mark := frame.persistentMark()
	result := ctrlNormal
	for _, stmt := range b.Stmts {
		result = it.execStmt(frame, stmt)
		if result != ctrlNormal {
			break
		}
	}
	frame.popPersistent(it.mem, mark)
	return result
}

func (it *Interpreter) execStmt(frame *Frame, stmt ast.Statement) ctrl {
	it.trace.traceStmt(stmt)
	c := it.execStmtInner(frame, stmt)
	for _, a := range frame.ephemeral {
		it.mem.Deallocate(a)
	}
	frame.ephemeral = nil
	return c
}

func (it *Interpreter) execStmtInner(frame *Frame, stmt ast.Statement) ctrl {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		it.evalExprValue(frame, s.Expr)
		return ctrlNormal

	case *ast.Assign:
		v := it.evalExprValue(frame, s.Source)
		it.assignInto(frame, s.Target, v)
		return ctrlNormal

	case *ast.Initialization:
		it.execInitialization(frame, s)
		return ctrlNormal

	case *ast.If:
		cond := it.evalExprValue(frame, s.Cond).(BoolValue)
		if cond.V {
			return it.execBlock(frame, s.Then)
		}
		switch e := s.Else.(type) {
		case nil:
			return ctrlNormal
		case *ast.Block:
			return it.execBlock(frame, e)
		case *ast.If:
			return it.execStmt(frame, e)
		}
		return ctrlNormal

	case *ast.While:
		return it.execWhile(frame, s)

	case *ast.Match:
		return it.execMatch(frame, s)

	case *ast.Break:
		frame.breakRequested = true
		return ctrlBreak

	case *ast.Continue:
		frame.continueRequested = true
		return ctrlContinue

	case *ast.Return:
		if s.Value != nil {
			frame.returnValue = it.evalExprValue(frame, s.Value)
		} else {
			frame.returnValue = TupleValue{T: types.TupleType{}}
		}
		return ctrlReturn

	case *ast.Block:
		return it.execBlock(frame, s)

	default:
		panic(&RuntimeError{Message: "internal: unsupported statement kind"})
	}
}

func (it *Interpreter) execInitialization(frame *Frame, init *ast.Initialization) {
	t := it.staticType(init.Value)
	addr := it.mem.Allocate(t)
	frame.pushPersistent(addr)
	it.evalExpr(frame, init.Value, addr)
	if !it.matchPattern(frame, init.Pattern, t, addr) {
		panic(&RuntimeError{Message: fmt.Sprintf("%s: no pattern matched", init.Site())})
	}
}

func (it *Interpreter) execWhile(frame *Frame, w *ast.While) ctrl {
	mark := frame.persistentMark()
	for {
		cond := it.evalExprValue(frame, w.Cond).(BoolValue)
		if !cond.V {
			frame.popPersistent(it.mem, mark)
			return ctrlNormal
		}
		c := it.execBlock(frame, w.Body)
		frame.popPersistent(it.mem, mark)
		switch c {
		case ctrlBreak:
			frame.breakRequested = false
			return ctrlNormal
		case ctrlReturn:
			return ctrlReturn
		case ctrlContinue:
			frame.continueRequested = false
			// fall through to re-test condition
		}
	}
}

func (it *Interpreter) execMatch(frame *Frame, m *ast.Match) ctrl {
	t := it.staticType(m.Subject)
	addr := it.mem.Allocate(t)
	frame.pushPersistent(addr)
	it.evalExpr(frame, m.Subject, addr)

	for _, clause := range m.Clauses {
		mark := frame.persistentMark()
		matched := clause.Pattern == nil || it.matchPattern(frame, clause.Pattern, t, addr)
		if !matched {
			frame.popPersistent(it.mem, mark)
			continue
		}
		c := it.execBlock(frame, clause.Action)
		return c
	}
	panic(&RuntimeError{Message: fmt.Sprintf("%s: no pattern matched in match", m.Site())})
}

// pathStepKind distinguishes which composite Value variant a path step
// descends into.
type pathStepKind int

const (
	stepTuple pathStepKind = iota
	stepStruct
)

type pathStep struct {
	kind pathStepKind
	idx  int
}

// assignInto evaluates target as an lvalue and copies v into it by
// resolving its root address and field path, then reassembling the
// composite value at that root with the named field replaced.
// Carbon's tuple/struct/choice values are immutable Go values once
// built, so a field write is read-modify-write of the whole value at
// its root address rather than a write through a separately addressed
// projection; see the note in memory.go).
func (it *Interpreter) assignInto(frame *Frame, target ast.Expression, v Value) {
	root, path := it.resolveLvalue(frame, target)
	if len(path) == 0 {
		it.mem.Write(root, v)
		return
	}
	it.mem.Write(root, setAtPath(it.mem.Read(root), path, v))
}

func setAtPath(val Value, path []pathStep, v Value) Value {
	step := path[0]
	switch step.kind {
	case stepTuple:
		tv := val.(TupleValue)
		fields := append([]Value(nil), tv.Fields...)
		if len(path) == 1 {
			fields[step.idx] = v
		} else {
			fields[step.idx] = setAtPath(fields[step.idx], path[1:], v)
		}
		return TupleValue{T: tv.T, Fields: fields}
	case stepStruct:
		sv := val.(StructValue)
		fields := append([]Value(nil), sv.Payload.Fields...)
		if len(path) == 1 {
			fields[step.idx] = v
		} else {
			fields[step.idx] = setAtPath(fields[step.idx], path[1:], v)
		}
		return StructValue{Id: sv.Id, Payload: TupleValue{T: sv.Payload.T, Fields: fields}}
	default:
		panic("internal: unreachable path step kind")
	}
}

// resolveLvalue walks target down to its root binding address and the
// field-index path from that root to the named sub-part, without
// allocating any new storage: assignment must not create ephemerals.
func (it *Interpreter) resolveLvalue(frame *Frame, e ast.Expression) (Address, []pathStep) {
	switch e := e.(type) {
	case *ast.Identifier:
		n := it.prog.Names.Definition[e]
		b, ok := n.(*ast.SimpleBinding)
		if !ok {
			panic(&RuntimeError{Message: fmt.Sprintf("%s: internal: assignment target is not a binding", e.Site())})
		}
		return it.bindingAddress(frame, b), nil

	case *ast.IndexExpr:
		root, path := it.resolveLvalue(frame, e.Target)
		idx := it.evalExprValue(frame, e.Offset).(IntValue)
		return root, append(path, pathStep{kind: stepTuple, idx: int(idx.V)})

	case *ast.MemberAccess:
		root, path := it.resolveLvalue(frame, e.Base)
		switch bt := it.staticType(e.Base).(type) {
		case types.TupleType:
			i := fieldIndex(bt, ast.Label(e.Member))
			return root, append(path, pathStep{kind: stepTuple, idx: i})
		case types.StructType:
			m, _ := bt.Id.FindMember(e.Member)
			i := memberIndex(bt.Id, m)
			return root, append(path, pathStep{kind: stepStruct, idx: i})
		default:
			panic(&RuntimeError{Message: fmt.Sprintf("%s: internal: unsupported lvalue member base", e.Site())})
		}

	default:
		panic(&RuntimeError{Message: fmt.Sprintf("%s: internal: expression is not a valid assignment target", e.Site())})
	}
}

func fieldIndex(t types.TupleType, id ast.FieldID) int {
	for i, f := range t.Fields {
		if f.ID == id {
			return i
		}
	}
	panic(&RuntimeError{Message: "internal: field id not found in tuple type"})
}

func memberIndex(s *ast.StructDefinition, target *ast.Member) int {
	for i, m := range s.Members {
		if m == target {
			return i
		}
	}
	panic(&RuntimeError{Message: "internal: member not found in struct"})
}

// bindingAddress returns the address frame.locals (or the global table)
// holds for b, driving global lazy initialization first if needed.
func (it *Interpreter) bindingAddress(frame *Frame, b *ast.SimpleBinding) Address {
	if it.prog.Names.Globals[b] {
		it.ensureGlobalInitialized(b)
		return it.globalAddr[b]
	}
	addr, ok := frame.locals[b]
	if !ok {
		panic(&RuntimeError{Message: fmt.Sprintf("%s: internal: unbound local %q", b.Region, b.Name)})
	}
	return addr
}

func (it *Interpreter) ensureGlobalInitialized(b *ast.SimpleBinding) {
	switch it.globalState[b] {
	case done:
		return
	case inProgress:
		panic(&RuntimeError{Message: fmt.Sprintf("%s: global initialization cycle involving %q", b.Region, b.Name)})
	}
	it.globalState[b] = inProgress

	init := it.prog.Types.EnclosingInitialization[b]
	t := it.staticType(init.Value)
	addr := it.mem.Allocate(t)

	// The initializer is evaluated in a fresh frame with no locals.
	// matchGlobalPattern then records an address for every binding the
	// Initialization's pattern introduces and marks each of them done,
	// so a later use of a sibling binding from the same `var (a, b) = ...;`
	// does not run the initializer again.
	globalFrame := newFrame()
	globalFrame.locals = nil
	it.evalExpr(globalFrame, init.Value, addr)

	if !it.matchGlobalPattern(init.Pattern, t, addr) {
		panic(&RuntimeError{Message: fmt.Sprintf("%s: no pattern matched", init.Site())})
	}

	it.globalState[b] = done
}

// matchGlobalPattern is matchPattern specialized for top-level bindings:
// every *ast.SimpleBinding it binds is recorded in globalAddr/globalState
// rather than a Frame's locals.
func (it *Interpreter) matchGlobalPattern(p ast.Pattern, t types.Type, addr Address) bool {
	f := newFrame()
	ok := it.matchPattern(f, p, t, addr)
	for b, a := range f.locals {
		it.globalAddr[b] = a
		it.globalState[b] = done
	}
	return ok
}
