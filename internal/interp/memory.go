package interp

import (
	"fmt"

	"github.com/carbon-run/carbon/internal/types"
)

// Address is an opaque handle into Memory. The zero
// Address is never valid; NewMemory's first allocation starts at 1 so a
// stray zero value reads as a bug, not a silent alias to slot 0.
type Address uint64

type initState int

const (
	uninitialized initState = iota
	initialized
)

// slot is one cell of the flat Memory store: a bound Type, an
// initialization-state flag, and, once initialized, a Value.
type slot struct {
	typ   types.Type
	state initState
	value Value

	// root is the slot's own address. Memory never allocates separate
	// projection addresses (see the note above ReadTupleField), so no
	// slot has a base other than itself.
	root Address
}

// Memory is the flat, address-keyed store every runtime value lives
// in. It is the sole mutable resource in the whole system; every other
// component is immutable once built.
type Memory struct {
	slots map[Address]*slot
	next  Address
}

func NewMemory() *Memory {
	return &Memory{slots: make(map[Address]*slot), next: 1}
}

// Allocate reserves a new, uninitialized address bound to typ.
func (m *Memory) Allocate(typ types.Type) Address {
	a := m.next
	m.next++
	m.slots[a] = &slot{typ: typ, state: uninitialized, root: a}
	return a
}

// Deallocate releases a. It does not check a's initialization state:
// an initialized address is released as readily as an uninitialized
// one, and every later use of a panics.
func (m *Memory) Deallocate(a Address) {
	delete(m.slots, a)
}

func (m *Memory) mustSlot(a Address) *slot {
	s, ok := m.slots[a]
	if !ok {
		panic(fmt.Sprintf("internal: use of deallocated or unknown address %d", a))
	}
	return s
}

// Type returns a's bound static type.
func (m *Memory) Type(a Address) types.Type { return m.mustSlot(a).typ }

// IsInitialized reports a's initialization state.
func (m *Memory) IsInitialized(a Address) bool {
	return m.mustSlot(a).state == initialized
}

// Read returns the Value stored at a. Panics (an internal invariant
// violation, "Internal" error kind) if a is uninitialized.
func (m *Memory) Read(a Address) Value {
	s := m.mustSlot(a)
	if s.state != initialized {
		panic(fmt.Sprintf("internal: read of uninitialized address %d", a))
	}
	return s.value
}

// Write stores v at a and marks it initialized. v's dynamic type must
// equal a's bound type; callers are expected to
// have already checked this via the static type map.
func (m *Memory) Write(a Address, v Value) {
	s := m.mustSlot(a)
	s.value = v
	s.state = initialized
}

// Deinitialize clears a's value without deallocating it, so it can be
// re-initialized in place (used for partially-built tuples/structs
// whose projections are filled in one at a time).
func (m *Memory) Deinitialize(a Address) {
	s := m.mustSlot(a)
	s.value = nil
	s.state = uninitialized
}

// AllocateUninitializedTuple reserves one address per field of t plus a
// parent address that stays uninitialized until AssembleTuple composes
// its Value from the fields, returning the parent address and the field
// addresses in order.
func (m *Memory) AllocateUninitializedTuple(t types.TupleType) (Address, []Address) {
	fields := make([]Address, len(t.Fields))
	for i, f := range t.Fields {
		fields[i] = m.Allocate(f.Type)
	}
	parent := m.Allocate(t)
	return parent, fields
}

// AssembleTuple reads every field address and writes the composed tuple
// value into parent, then deallocates the field addresses (they were
// transient scaffolding for the assembly, not independently addressable
// projections once the parent holds a concrete Value).
func (m *Memory) AssembleTuple(parent Address, t types.TupleType, fields []Address) {
	values := make([]Value, len(fields))
	for i, fa := range fields {
		values[i] = m.Read(fa)
		m.Deallocate(fa)
	}
	m.Write(parent, TupleValue{T: t, Fields: values})
}

// Field reads/writes below implement projection (a sub-address naming
// a field of a composite value) as direct
// read-modify-write helpers on the parent address rather than as
// separately allocated addresses: Carbon's tuple/struct/choice values
// are immutable Go values once built, so "projecting" a field for
// assignment is equivalent to reading the parent, replacing one field,
// and writing it back. This keeps Memory's address space exactly the
// set of user-visible bindings and ephemeral temporaries.

// ReadTupleField reads the Value at fieldIdx of the TupleValue stored at
// base.
func (m *Memory) ReadTupleField(base Address, fieldIdx int) Value {
	v := m.Read(base).(TupleValue)
	return v.Fields[fieldIdx]
}

// WriteTupleField writes val into fieldIdx of the TupleValue stored at
// base, reassembling the tuple (tuples are immutable Go values, so a
// field write is read-modify-write of the whole TupleValue).
func (m *Memory) WriteTupleField(base Address, fieldIdx int, val Value) {
	v := m.Read(base).(TupleValue)
	fields := append([]Value(nil), v.Fields...)
	fields[fieldIdx] = val
	m.Write(base, TupleValue{T: v.T, Fields: fields})
}

// ReadStructField reads the member at index idx from the struct stored
// at base.
func (m *Memory) ReadStructField(base Address, idx int) Value {
	v := m.Read(base).(StructValue)
	return v.Payload.Fields[idx]
}

func (m *Memory) WriteStructField(base Address, idx int, val Value) {
	v := m.Read(base).(StructValue)
	fields := append([]Value(nil), v.Payload.Fields...)
	fields[idx] = val
	payload := TupleValue{T: v.Payload.T, Fields: fields}
	m.Write(base, StructValue{Id: v.Id, Payload: payload})
}

func (m *Memory) ReadChoicePayloadField(base Address, idx int) Value {
	v := m.Read(base).(ChoiceValue)
	return v.Payload.Fields[idx]
}

func (m *Memory) WriteChoicePayloadField(base Address, idx int, val Value) {
	v := m.Read(base).(ChoiceValue)
	fields := append([]Value(nil), v.Payload.Fields...)
	fields[idx] = val
	v.Payload = TupleValue{T: v.Payload.T, Fields: fields}
	m.Write(base, v)
}

// Copy copies the value at src into dst. It does not compare the two
// addresses' bound types; like Write, it leaves that to the caller.
func (m *Memory) Copy(dst, src Address) {
	m.Write(dst, m.Read(src))
}
