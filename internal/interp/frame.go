package interp

import "github.com/carbon-run/carbon/internal/ast"

// ctrl is the control-flow signal a statement's execution produces,
// telling its enclosing block/loop/call whether to keep sequencing
// normally or to unwind (Break/Continue/Return). This is a
// deliberately simplified stand-in for a fully reified
// step/continuation machine: rather than a work-stack of step values,
// this MVP drives execution with Go's own call stack and threads ctrl
// back up through ordinary return values, which is adequate for
// programs whose recursion depth fits in a goroutine stack. See
// DESIGN.md.
type ctrl int

const (
	ctrlNormal ctrl = iota
	ctrlBreak
	ctrlContinue
	ctrlReturn
)

// Frame is one function activation.
type Frame struct {
	// locals maps a binding's identity to the address holding its value.
	locals map[*ast.SimpleBinding]Address

	// persistent is the stack of addresses allocated within the frame
	// whose lifetime extends to their enclosing block's exit. Each
	// Block records its own mark (the stack depth at entry) and
	// reclaims back to it on exit.
	persistent []Address

	// ephemeral is the set of addresses allocated for sub-expression
	// results within the statement currently executing. It is drained
	// after every statement completes (see execStmt), standing in for
	// per-expression ephemeral deletion: the set only needs to be empty
	// at scope entry/exit, which this preserves.
	ephemeral []Address

	// breakRequested/continueRequested are set by execStmt for
	// Break/Continue and cleared by the enclosing While's loop driver,
	// which itself acts on the ctrl value rather than on these flags.
	breakRequested, continueRequested bool

	// returnValue holds the value written by a Return statement, read
	// by the call driver once ctrlReturn propagates to it.
	returnValue Value
}

func newFrame() *Frame {
	return &Frame{locals: make(map[*ast.SimpleBinding]Address)}
}

func (f *Frame) pushPersistent(a Address) {
	f.persistent = append(f.persistent, a)
}

// persistentMark returns the current stack depth, to be passed to
// popPersistent at the matching scope's exit.
func (f *Frame) persistentMark() int { return len(f.persistent) }

// popPersistent deallocates every persistent address above mark, in
// reverse allocation order, and truncates the
// stack back to mark.
func (f *Frame) popPersistent(m *Memory, mark int) {
	for i := len(f.persistent) - 1; i >= mark; i-- {
		m.Deallocate(f.persistent[i])
	}
	f.persistent = f.persistent[:mark]
}
