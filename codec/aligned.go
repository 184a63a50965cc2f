// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"

	"github.com/binproto/binproto/bitio"
)

// Alignment decorators pad a value's encoding with zero bytes to a
// multiple of an alignment unit. Alignment is computed from the
// value's encoded byte length, never its in-memory size, and the same
// computation runs on both paths: the read side re-encodes the
// decoded value to measure it, then consumes and verifies the pad.

// Padding returns the number of pad bytes needed to bring size up to
// a multiple of align.
func Padding(align, size int) int {
	return (align - size%align) % align
}

// WriteAligned encodes v, then appends zero bytes until the total
// written length is a multiple of align.
func WriteAligned[T any](w *bitio.Writer, s *Settings, align int, v T, write WriteFunc[T]) error {
	if align <= 0 {
		return fmt.Errorf("codec: invalid alignment %d", align)
	}
	raw, err := encode(s, v, write)
	if err != nil {
		return err
	}
	if err := w.WriteBytes(raw); err != nil {
		return err
	}
	pad := Padding(align, len(raw))
	for i := 0; i < pad; i++ {
		if err := w.WriteByte(0); err != nil {
			return err
		}
	}
	return nil
}

// ReadAligned decodes a value, computes the padding its encoded size
// implies, and consumes that many bytes. Any non-zero pad byte fails
// with ErrNonZeroPadding. The write function is required to measure
// the decoded value's encoded size identically to the encode path.
func ReadAligned[T any](r *bitio.Reader, s *Settings, align int, read ReadFunc[T], write WriteFunc[T]) (T, error) {
	var zero T
	if align <= 0 {
		return zero, fmt.Errorf("codec: invalid alignment %d", align)
	}
	v, err := read(r, s)
	if err != nil {
		return zero, err
	}
	raw, err := encode(s, v, write)
	if err != nil {
		return zero, err
	}
	pad := Padding(align, len(raw))
	for i := 0; i < pad; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return zero, err
		}
		if b != 0 {
			return zero, ErrNonZeroPadding
		}
	}
	return v, nil
}
