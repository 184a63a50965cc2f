// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/binproto/binproto/bitio"
)

// PrefixInt is the set of unsigned integer types usable as a sequence
// length prefix. The default prefix is uint32.
type PrefixInt interface {
	uint8 | uint16 | uint32 | uint64
}

func prefixSize[S PrefixInt]() int {
	var s S
	switch any(s).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	default:
		return 8
	}
}

func prefixMax[S PrefixInt]() uint64 {
	size := prefixSize[S]()
	if size == 8 {
		return math.MaxUint64
	}
	return uint64(1)<<(8*size) - 1
}

// ReadItems reads exactly count elements with no length prefix. This
// is the fixed-size-array codec: fewer available elements than count
// is a read failure.
func ReadItems[T any](r *bitio.Reader, s *Settings, count int, elem ReadFunc[T]) ([]T, error) {
	if count < 0 {
		return nil, fmt.Errorf("codec: negative element count %d", count)
	}
	items := make([]T, 0, count)
	for i := 0; i < count; i++ {
		v, err := elem(r, s)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

// WriteItems writes all elements with no length prefix.
func WriteItems[T any](w *bitio.Writer, s *Settings, items []T, elem WriteFunc[T]) error {
	for _, v := range items {
		if err := elem(w, s, v); err != nil {
			return err
		}
	}
	return nil
}

// ReadList reads a growable sequence with the default uint32 length
// prefix, unless the aggregate's hints carry a length descriptor for
// this field, in which case the descriptor replaces the embedded
// prefix entirely (the disjoint length prefix form).
func ReadList[T any](r *bitio.Reader, s *Settings, h *Hints, elem ReadFunc[T]) ([]T, error) {
	return ReadListPrefixed[uint32](r, s, h, elem)
}

// WriteList writes a growable sequence with the default uint32 length
// prefix, suppressed when a hints descriptor already transmits the
// length as another field's value.
func WriteList[T any](w *bitio.Writer, s *Settings, h *Hints, items []T, elem WriteFunc[T]) error {
	return WriteListPrefixed[uint32](w, s, h, items, elem)
}

// ReadListPrefixed is ReadList with a custom prefix integer type S.
//
// With a hints descriptor of kind LengthElements, exactly that many
// elements are read. With kind LengthBytes, exactly that many bytes
// are consumed and elements are re-parsed until the budget is
// exhausted; a budget that does not land on an element boundary
// returns ErrLengthMismatch.
func ReadListPrefixed[S PrefixInt, T any](r *bitio.Reader, s *Settings, h *Hints, elem ReadFunc[T]) ([]T, error) {
	if fl, ok := h.CurrentFieldLength(); ok {
		switch fl.Kind {
		case LengthElements:
			return ReadItems(r, s, fl.Length, elem)
		default:
			return readByteBudget(r, s, fl.Length, elem)
		}
	}

	count, err := readUintField(r, s, nil, prefixSize[S]())
	if err != nil {
		return nil, err
	}
	if count > uint64(math.MaxInt) {
		return nil, &IntegerConversionError{Value: count, Target: "int"}
	}
	return ReadItems(r, s, int(count), elem)
}

// WriteListPrefixed is WriteList with a custom prefix integer type S.
func WriteListPrefixed[S PrefixInt, T any](w *bitio.Writer, s *Settings, h *Hints, items []T, elem WriteFunc[T]) error {
	if _, ok := h.CurrentFieldLength(); !ok {
		count := uint64(len(items))
		if count > prefixMax[S]() {
			return &IntegerConversionError{Value: count, Target: fmt.Sprintf("uint%d length prefix", 8*prefixSize[S]())}
		}
		if err := writeUintField(w, s, nil, prefixSize[S](), count, "length prefix"); err != nil {
			return err
		}
	}
	// With a descriptor present the count is already transmitted as
	// another field's value; only the elements go on the wire.
	return WriteItems(w, s, items, elem)
}

// readByteBudget consumes exactly budget bytes and re-parses them as
// a sequence of elements. The element codec's boundaries must tile
// the budget exactly.
func readByteBudget[T any](r *bitio.Reader, s *Settings, budget int, elem ReadFunc[T]) ([]T, error) {
	if budget < 0 {
		return nil, fmt.Errorf("codec: negative byte budget %d", budget)
	}
	raw, err := r.ReadBytes(budget)
	if err != nil {
		return nil, err
	}

	br := bytes.NewReader(raw)
	sub := bitio.NewReader(br, s.ByteOrder)

	var items []T
	for br.Len() > 0 || !sub.Aligned() {
		v, err := elem(sub, s)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: %d byte budget", ErrLengthMismatch, budget)
			}
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}
