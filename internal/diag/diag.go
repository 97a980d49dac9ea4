// Package diag holds the error records produced by every pass
// (resolution, type checking, interpretation). It deliberately stays a
// plain data type with no formatting logic: pretty-printing diagnostics
// to a terminal is a host concern (cmd/carbon), not part of the core,
// mirroring funxy's own error types (internal/typesystem/error.go),
// which are plain structs with an Error() string and nothing else.
package diag

import (
	"fmt"

	"github.com/carbon-run/carbon/internal/source"
)

// Note is a secondary annotation attached to an Error, e.g. pointing at
// a prior declaration in a "already defined" diagnostic.
type Note struct {
	Message string
	Region  source.Region
}

// Error is a single diagnostic. It implements the error interface so it
// can be returned/wrapped using ordinary Go conventions, but callers that
// accumulate many of these (resolver, checker) keep them in a slice
// rather than stopping at the first one: every pass runs to completion
// and reports everything it found.
type Error struct {
	Message string
	Region  source.Region
	Notes   []Note
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Region, e.Message)
}

// New creates an Error with a formatted message.
func New(region source.Region, format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Region: region}
}

// WithNote returns e with an additional note appended. Returns e itself
// (not a copy) so call sites can chain: diag.New(...).WithNote(...).
func (e *Error) WithNote(region source.Region, format string, args ...interface{}) *Error {
	e.Notes = append(e.Notes, Note{Message: fmt.Sprintf(format, args...), Region: region})
	return e
}

// Log accumulates diagnostics across a single pass. It never discards an
// error to short-circuit: every method on Log just appends.
type Log struct {
	Errors []*Error
}

func (l *Log) Add(err *Error) {
	l.Errors = append(l.Errors, err)
}

func (l *Log) Addf(region source.Region, format string, args ...interface{}) {
	l.Add(New(region, format, args...))
}

func (l *Log) HasErrors() bool {
	return len(l.Errors) > 0
}
