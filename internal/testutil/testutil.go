// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for binproto
// packages.
//
// [RoundTrip] and [RoundTripParcel] encode a value, decode the
// produced bytes, and require the result to compare deep-equal,
// under both byte orders, since endianness bugs are symmetric and a
// single-order test can pass by accident.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since a failed round-trip leaves nothing worth asserting on.
package testutil

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/binproto/binproto/bitio"
	"github.com/binproto/binproto/codec"
)

// orders is every byte order a round-trip must survive.
var orders = []bitio.Order{bitio.BigEndian, bitio.LittleEndian}

// RoundTrip encodes v with write, decodes the bytes with read, and
// requires deep equality, once per byte order.
func RoundTrip[T any](t *testing.T, v T, read codec.ReadFunc[T], write codec.WriteFunc[T]) {
	t.Helper()
	for _, order := range orders {
		s := &codec.Settings{ByteOrder: order}

		var buf bytes.Buffer
		w := bitio.NewWriter(&buf, order)
		if err := write(w, s, v); err != nil {
			t.Fatalf("%v: encode: %v", order, err)
		}
		if err := w.ByteAlign(); err != nil {
			t.Fatalf("%v: align: %v", order, err)
		}

		r := bitio.NewReader(bytes.NewReader(buf.Bytes()), order)
		got, err := read(r, s)
		if err != nil {
			t.Fatalf("%v: decode of % x: %v", order, buf.Bytes(), err)
		}
		if !reflect.DeepEqual(got, v) {
			t.Fatalf("%v: round-trip mismatch: got %#v, want %#v", order, got, v)
		}
	}
}

// RoundTripParcel round-trips a Parcel value through the FromBytes
// and ToBytes entry points, once per byte order.
func RoundTripParcel[T any, PT codec.ParcelPtr[T]](t *testing.T, v T) {
	t.Helper()
	for _, order := range orders {
		s := &codec.Settings{ByteOrder: order}

		data, err := codec.ToBytes(PT(&v), s)
		if err != nil {
			t.Fatalf("%v: ToBytes: %v", order, err)
		}
		got, err := codec.FromBytes[T, PT](data, s)
		if err != nil {
			t.Fatalf("%v: FromBytes of % x: %v", order, data, err)
		}
		if !reflect.DeepEqual(got, v) {
			t.Fatalf("%v: round-trip mismatch: got %#v, want %#v", order, got, v)
		}
	}
}
