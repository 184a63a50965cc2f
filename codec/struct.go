// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"

	"github.com/binproto/binproto/bitio"
)

// Field describes one field of an aggregate for ReadStruct and
// WriteStruct. The Read and Write closures bind the destination (a
// struct field of the value being decoded or encoded); the remaining
// members carry the field's declarative configuration.
//
// Fields are processed strictly in slice order on both paths. That
// deterministic order is what makes the cross-field length contract
// hold.
type Field struct {
	// Name is the field's declared name, used in error reporting
	// and as the reference target of LengthOf.
	Name string

	// Bits, when non-zero, declares the field as a bit-field of
	// that width. The field's codec must consult Hints.FieldWidth.
	Bits uint

	// LengthOf, when non-empty, declares this field's value to be
	// the transmitted length of the named later sibling, in
	// LengthKind units. The sibling's codec consumes the recorded
	// descriptor instead of emitting its own prefix.
	LengthOf   string
	LengthKind LengthKind

	// Flexible marks a trailing member read to end of stream. Valid
	// only on the last field.
	Flexible bool

	// Read decodes the field into its destination. Write encodes it.
	// Exactly one of them is called per pass; both receive the
	// aggregate's Hints.
	Read  func(*bitio.Reader, *Settings, *Hints) error
	Write func(*bitio.Writer, *Settings, *Hints) error

	// Length reports the field's runtime value as a length, for
	// fields with LengthOf set. On the read path it is consulted
	// after Read has filled the destination; on the write path
	// after Write.
	Length func() int
}

// ReadStruct decodes an aggregate's fields in declaration order,
// resolving cross-field length prefixes and bit widths through a
// fresh Hints value. The field plan is validated before any bytes are
// consumed; a bad plan returns *ConfigError.
func ReadStruct(r *bitio.Reader, s *Settings, name string, fields []Field) error {
	targets, err := validateFields(name, fields)
	if err != nil {
		return err
	}

	h := NewHints()
	for i, f := range fields {
		if f.Bits > 0 {
			h.SetFieldWidth(f.Bits)
		}
		if err := f.Read(r, s, h); err != nil {
			return fieldError(name, f.Name, err)
		}
		if f.LengthOf != "" {
			h.SetFieldLength(targets[i], f.Length(), f.LengthKind)
		}
		h.NextField()
	}
	return nil
}

// WriteStruct encodes an aggregate's fields in declaration order,
// mirroring ReadStruct exactly. The same field plan must be used on
// both paths for round-trip correctness.
func WriteStruct(w *bitio.Writer, s *Settings, name string, fields []Field) error {
	targets, err := validateFields(name, fields)
	if err != nil {
		return err
	}

	h := NewHints()
	for i, f := range fields {
		if f.Bits > 0 {
			h.SetFieldWidth(f.Bits)
		}
		if err := f.Write(w, s, h); err != nil {
			return fieldError(name, f.Name, err)
		}
		if f.LengthOf != "" {
			h.SetFieldLength(targets[i], f.Length(), f.LengthKind)
		}
		h.NextField()
	}
	return nil
}

// validateFields checks the declarative shape of a field plan and
// resolves LengthOf references to field indices. All faults here are
// configuration errors, independent of input data.
func validateFields(name string, fields []Field) (map[int]int, error) {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return nil, &ConfigError{Aggregate: name, Message: fmt.Sprintf("field %d has no name", i)}
		}
		if _, dup := index[f.Name]; dup {
			return nil, &ConfigError{Aggregate: name, Message: fmt.Sprintf("duplicate field name %q", f.Name)}
		}
		index[f.Name] = i
	}

	targets := make(map[int]int)
	for i, f := range fields {
		if f.Flexible && i != len(fields)-1 {
			return nil, &ConfigError{Aggregate: name, Message: fmt.Sprintf("flexible member %q is not the last field", f.Name)}
		}
		if f.LengthOf == "" {
			continue
		}
		target, ok := index[f.LengthOf]
		if !ok {
			return nil, &ConfigError{Aggregate: name, Message: fmt.Sprintf("field %q is a length prefix of %q, which does not exist", f.Name, f.LengthOf)}
		}
		if target <= i {
			return nil, &ConfigError{Aggregate: name, Message: fmt.Sprintf("field %q must precede its length target %q", f.Name, f.LengthOf)}
		}
		if f.Length == nil {
			return nil, &ConfigError{Aggregate: name, Message: fmt.Sprintf("length prefix field %q has no Length accessor", f.Name)}
		}
		targets[i] = target
	}
	return targets, nil
}
