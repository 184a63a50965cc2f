// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"fmt"
)

// Sentinel errors for failure conditions that carry no per-instance
// detail. Structured conditions (unknown discriminants, integer
// conversions, configuration faults) have their own error types below;
// callers extract them with errors.As.
var (
	// ErrInvalidUTF8 is returned when a decoded string field is not
	// valid UTF-8.
	ErrInvalidUTF8 = errors.New("codec: string is not valid UTF-8")

	// ErrNonZeroPadding is returned when an alignment padding byte
	// is observed as non-zero on read.
	ErrNonZeroPadding = errors.New("codec: non-zero alignment padding byte")

	// ErrLengthMismatch is returned when a length-prefixed sequence's
	// declared byte budget does not land on an element boundary. This
	// is a decode fault reported to the caller, never a panic: the
	// input is attacker-controlled.
	ErrLengthMismatch = errors.New("codec: declared byte length does not match element boundaries")
)

// IntegerConversionError reports a count or discriminant value that
// does not fit the numeric type it must be transmitted or stored as.
type IntegerConversionError struct {
	// Value is the out-of-range value.
	Value uint64
	// Target names the type the value did not fit.
	Target string
}

func (e *IntegerConversionError) Error() string {
	return fmt.Sprintf("codec: value %d does not fit %s", e.Value, e.Target)
}

// UnknownDiscriminantError reports an internal tag that matched no
// variant of a union. Raw carries the value exactly as read so the
// caller can report or route it.
type UnknownDiscriminantError struct {
	// Union is the union's declared name.
	Union string
	// Raw is the discriminant as read from the stream: uint64 for
	// integer discriminants, string for string discriminants.
	Raw any
}

func (e *UnknownDiscriminantError) Error() string {
	return fmt.Sprintf("codec: unknown discriminant %v for union %s", e.Raw, e.Union)
}

// TagConversionError reports a caller-supplied external tag that could
// not be converted to the union's discriminant type.
type TagConversionError struct {
	// Union is the union's declared name.
	Union string
	// Tag is the value that failed to convert.
	Tag any
}

func (e *TagConversionError) Error() string {
	return fmt.Sprintf("codec: cannot convert external tag %v (%T) for union %s", e.Tag, e.Tag, e.Union)
}

// ConfigError reports a structural misconfiguration of an aggregate
// or union: a length prefix referencing a non-existent sibling field,
// a prefix declared after its target, a flexible member that is not
// last. Configuration errors are detectable independent of any input
// data and are reported before a single byte is consumed or produced.
type ConfigError struct {
	// Aggregate is the name of the struct or union definition.
	Aggregate string
	// Message describes the fault.
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("codec: invalid configuration for %s: %s", e.Aggregate, e.Message)
}

// fieldError wraps a field codec failure with the aggregate and field
// name for reporting. The underlying error remains visible to
// errors.Is and errors.As.
func fieldError(aggregate, field string, err error) error {
	return fmt.Errorf("%s.%s: %w", aggregate, field, err)
}
