// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import "github.com/binproto/binproto/bitio"

// ReadOptional reads a one-byte presence flag followed by the value
// only when present. Absent values decode as nil.
func ReadOptional[T any](r *bitio.Reader, s *Settings, elem ReadFunc[T]) (*T, error) {
	present, err := ReadBool(r, s)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	v, err := elem(r, s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// WriteOptional writes a one-byte presence flag followed by the value
// only when v is non-nil.
func WriteOptional[T any](w *bitio.Writer, s *Settings, v *T, elem WriteFunc[T]) error {
	if err := WriteBool(w, s, v != nil); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return elem(w, s, *v)
}

// ReadOptionalField is ReadOptional with the presence flag honoring a
// pending bit-width hint, for optionals inside bit-packed aggregates.
// The inner value itself is never bit-packed by the hint.
func ReadOptionalField[T any](r *bitio.Reader, s *Settings, h *Hints, elem ReadFunc[T]) (*T, error) {
	present, err := ReadBoolField(r, s, h)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	v, err := elem(r, s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// WriteOptionalField is WriteOptional with a bit-width-aware presence
// flag.
func WriteOptionalField[T any](w *bitio.Writer, s *Settings, h *Hints, v *T, elem WriteFunc[T]) error {
	if err := WriteBoolField(w, s, h, v != nil); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return elem(w, s, *v)
}
