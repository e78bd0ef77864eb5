package parsing

import (
	"errors"
	"fmt"
)

// ErrNoRecord is the cause of a StructuralError raised before any record has started.
var ErrNoRecord = errors.New("no current record")

// DateError is returned when a date field holds a numeric date that does not exist,
// such as a thirteenth month. It aborts the whole parse.
type DateError struct {
	Line  string
	Cause error
}

func (e *DateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("wrong date in line %q: %v", e.Line, e.Cause)
	}
	return fmt.Sprintf("wrong date in line %q", e.Line)
}

func (e *DateError) Unwrap() error {
	return e.Cause
}

// StructuralError is returned when an attribute or bullet line has no record
// to attach to. It aborts the whole parse.
type StructuralError struct {
	Line  string
	Cause error
}

func (e *StructuralError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unparsable line %q: %v", e.Line, e.Cause)
	}
	return fmt.Sprintf("unparsable line %q", e.Line)
}

func (e *StructuralError) Unwrap() error {
	return e.Cause
}

// FieldMismatchError reports an attribute that the current record does not have
type FieldMismatchError struct {
	Field  Field
	Record RecordKind
}

func (e *FieldMismatchError) Error() string {
	return fmt.Sprintf("%s does not apply to %s record", e.Field, e.Record)
}
