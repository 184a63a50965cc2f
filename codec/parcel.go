// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"

	"github.com/binproto/binproto/bitio"
)

// Parcel is the codec contract: a value that can read itself from and
// write itself to a bit stream. Read uses a pointer receiver and fills
// the value in place; a failed Read leaves the value unspecified and
// the caller must not use it.
type Parcel interface {
	Read(r *bitio.Reader, s *Settings) error
	Write(w *bitio.Writer, s *Settings) error
}

// ReadFunc decodes one value of type T from a bit stream. Composite
// codecs (lists, options, unions, alignment) are parameterized by the
// element's ReadFunc rather than requiring T to implement Parcel, so
// primitives compose without wrapper types.
type ReadFunc[T any] func(*bitio.Reader, *Settings) (T, error)

// WriteFunc encodes one value of type T to a bit stream.
type WriteFunc[T any] func(*bitio.Writer, *Settings, T) error

// ParcelPtr constrains PT to be a pointer to T that implements
// Parcel. It lets FromBytes allocate the value itself.
type ParcelPtr[T any] interface {
	*T
	Parcel
}

// FromBytes decodes a T from its raw byte representation. It is one
// of the two external entry points; everything else composes beneath
// Read and Write.
func FromBytes[T any, PT ParcelPtr[T]](data []byte, s *Settings) (T, error) {
	var v T
	r := bitio.NewReader(bytes.NewReader(data), s.ByteOrder)
	if err := PT(&v).Read(r, s); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// ToBytes encodes v, byte-aligns the stream, and returns the
// accumulated buffer.
func ToBytes(v Parcel, s *Settings) ([]byte, error) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, s.ByteOrder)
	if err := v.Write(w, s); err != nil {
		return nil, err
	}
	if err := w.ByteAlign(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Reader returns a bit reader over data at the settings' byte order.
// Useful for callers that decode several values from one buffer.
func (s *Settings) Reader(data []byte) *bitio.Reader {
	return bitio.NewReader(bytes.NewReader(data), s.ByteOrder)
}

// encode runs write through a fresh byte-aligned writer and returns
// the produced bytes. The alignment decorator uses it to measure a
// value's encoded size.
func encode[T any](s *Settings, v T, write WriteFunc[T]) ([]byte, error) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, s.ByteOrder)
	if err := write(w, s, v); err != nil {
		return nil, err
	}
	if err := w.ByteAlign(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
