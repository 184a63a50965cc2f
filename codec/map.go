// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"math"

	"github.com/binproto/binproto/bitio"
)

// ReadMap reads a map as a uint32 element count followed by key/value
// pairs. Maps are always self-length-prefixed; the disjoint-prefix
// optimization does not apply to them.
func ReadMap[K comparable, V any](r *bitio.Reader, s *Settings, key ReadFunc[K], val ReadFunc[V]) (map[K]V, error) {
	count, err := ReadUint32(r, s)
	if err != nil {
		return nil, err
	}
	m := make(map[K]V, count)
	for i := uint32(0); i < count; i++ {
		k, err := key(r, s)
		if err != nil {
			return nil, err
		}
		v, err := val(r, s)
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
	return m, nil
}

// WriteMap writes a map as a uint32 element count followed by
// key/value pairs. Pair order is unspecified (Go map iteration
// order); decoding does not depend on it.
func WriteMap[K comparable, V any](w *bitio.Writer, s *Settings, m map[K]V, key WriteFunc[K], val WriteFunc[V]) error {
	if uint64(len(m)) > math.MaxUint32 {
		return &IntegerConversionError{Value: uint64(len(m)), Target: "uint32 length prefix"}
	}
	if err := WriteUint32(w, s, uint32(len(m))); err != nil {
		return err
	}
	for k, v := range m {
		if err := key(w, s, k); err != nil {
			return err
		}
		if err := val(w, s, v); err != nil {
			return err
		}
	}
	return nil
}
