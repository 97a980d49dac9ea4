package ast

import "fmt"

// FieldID names one field of a Tuple: either a positional integer
// (assigned left-to-right starting at 0 to every field that has no
// label) or a label.
type FieldID struct {
	Label    string
	Position int
	IsLabel  bool
}

func Pos(p int) FieldID          { return FieldID{Position: p} }
func Label(name string) FieldID  { return FieldID{Label: name, IsLabel: true} }
func (f FieldID) String() string {
	if f.IsLabel {
		return "." + f.Label
	}
	return fmt.Sprintf("%d", f.Position)
}

// Field is one element of a Tuple.
type Field[T any] struct {
	ID    FieldID
	Value T
}

// Tuple is an ordered sequence of fields, used for both expression and
// pattern tuples (and, in the type checker, for tuples of Types).
// Positional fields always occupy the fields with the lowest indices and
// carry successive positions starting at 0; any labeled fields follow.
type Tuple[T any] struct {
	Fields []Field[T]
}

// NewPositionalTuple builds a tuple from values with no labels.
func NewPositionalTuple[T any](values []T) Tuple[T] {
	fields := make([]Field[T], len(values))
	for i, v := range values {
		fields[i] = Field[T]{ID: Pos(i), Value: v}
	}
	return Tuple[T]{Fields: fields}
}

// WellFormed reports whether t has no duplicate labels.
// Positional fields can never collide because NewPositionalTuple assigns
// them, and hand-built tuples are expected to respect the same
// discipline; this only guards against duplicate labels.
func (t Tuple[T]) WellFormed() bool {
	seen := make(map[string]bool)
	for _, f := range t.Fields {
		if f.ID.IsLabel {
			if seen[f.ID.Label] {
				return false
			}
			seen[f.ID.Label] = true
		}
	}
	return true
}

// IDs returns the set of FieldIDs in t, in order.
func (t Tuple[T]) IDs() []FieldID {
	ids := make([]FieldID, len(t.Fields))
	for i, f := range t.Fields {
		ids[i] = f.ID
	}
	return ids
}

// Congruent reports whether t and other have the same set of FieldIDs
//, independent of element type or order.
func Congruent[A, B any](t Tuple[A], other Tuple[B]) bool {
	if len(t.Fields) != len(other.Fields) {
		return false
	}
	want := make(map[FieldID]bool, len(t.Fields))
	for _, f := range t.Fields {
		want[f.ID] = true
	}
	for _, f := range other.Fields {
		if !want[f.ID] {
			return false
		}
		delete(want, f.ID)
	}
	return len(want) == 0
}

// ByID returns the field with the given id, if present.
func (t Tuple[T]) ByID(id FieldID) (T, bool) {
	for _, f := range t.Fields {
		if f.ID == id {
			return f.Value, true
		}
	}
	var zero T
	return zero, false
}

// MapTuple applies fn to every field's value, preserving FieldIDs.
func MapTuple[A, B any](t Tuple[A], fn func(FieldID, A) B) Tuple[B] {
	out := Tuple[B]{Fields: make([]Field[B], len(t.Fields))}
	for i, f := range t.Fields {
		out.Fields[i] = Field[B]{ID: f.ID, Value: fn(f.ID, f.Value)}
	}
	return out
}
