package interp

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/carbon-run/carbon/internal/ast"
)

// Tracer emits one line per executed statement, tagged with a run ID so
// log lines from concurrent or successive runs (e.g. a host rerunning a
// file in a loop) can be told apart in a shared log stream. It gives a
// host step-by-step observability without a reified step machine: the
// native Go call stack already drives execution, so the tracer rides
// along as a side channel instead of being the driver.
type Tracer struct {
	RunID uuid.UUID
	out   io.Writer
	step  int
}

// NewTracer creates a Tracer writing to w, stamped with a fresh run ID.
func NewTracer(w io.Writer) *Tracer {
	return &Tracer{RunID: uuid.New(), out: w}
}

func (t *Tracer) traceStmt(stmt ast.Statement) {
	if t == nil || t.out == nil {
		return
	}
	t.step++
	id := ast.IdentityOf(stmt)
	fmt.Fprintf(t.out, "%s step=%d %s at %s\n", t.RunID, t.step, id.Kind, id.Site)
}

// SetTrace attaches a Tracer to it; pass nil to disable tracing. It
// must be called before RunMain.
func (it *Interpreter) SetTrace(tr *Tracer) {
	it.trace = tr
}
