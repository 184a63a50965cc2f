// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import "github.com/binproto/binproto/bitio"

// ReadPtr reads the pointee and returns a freshly allocated pointer.
// This is the shared-ownership codec: decoding always produces a new
// owned instance, and pointer identity is intentionally not preserved
// across a decode (no deduplication of values that were shared on the
// encode side).
func ReadPtr[T any](r *bitio.Reader, s *Settings, elem ReadFunc[T]) (*T, error) {
	v, err := elem(r, s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// WritePtr writes the pointee. The pointer itself contributes nothing
// to the wire format.
func WritePtr[T any](w *bitio.Writer, s *Settings, v *T, elem WriteFunc[T]) error {
	return elem(w, s, *v)
}

// Range is a half-open interval transmitted as two consecutive values
// with no prefix: start, then end.
type Range[T any] struct {
	Start T
	End   T
}

// ReadRange reads a start value followed by an end value.
func ReadRange[T any](r *bitio.Reader, s *Settings, elem ReadFunc[T]) (Range[T], error) {
	start, err := elem(r, s)
	if err != nil {
		return Range[T]{}, err
	}
	end, err := elem(r, s)
	if err != nil {
		return Range[T]{}, err
	}
	return Range[T]{Start: start, End: end}, nil
}

// WriteRange writes the start value followed by the end value.
func WriteRange[T any](w *bitio.Writer, s *Settings, v Range[T], elem WriteFunc[T]) error {
	if err := elem(w, s, v.Start); err != nil {
		return err
	}
	return elem(w, s, v.End)
}

// ReadIf reads a value only when present is true, returning nil
// otherwise. This is the conditional-presence form: unlike an
// optional there is no flag on the wire; the predicate is computed
// by the caller from fields already processed or from context.
func ReadIf[T any](r *bitio.Reader, s *Settings, present bool, elem ReadFunc[T]) (*T, error) {
	if !present {
		return nil, nil
	}
	v, err := elem(r, s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// WriteIf writes the value only when it is non-nil. The caller's
// predicate must evaluate identically on both paths, or the stream
// will desynchronize.
func WriteIf[T any](w *bitio.Writer, s *Settings, v *T, elem WriteFunc[T]) error {
	if v == nil {
		return nil
	}
	return elem(w, s, *v)
}
