// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package codec_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/binproto/binproto/bitio"
	"github.com/binproto/binproto/codec"
	"github.com/binproto/binproto/internal/testutil"
)

func TestOptionalWireFormat(t *testing.T) {
	s := codec.DefaultSettings()

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, s.ByteOrder)
	v := uint8(5)
	if err := codec.WriteOptional(w, s, &v, codec.WriteUint8); err != nil {
		t.Fatalf("WriteOptional: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{1, 5}) {
		t.Fatalf("present optional = % x, want 01 05", buf.Bytes())
	}

	buf.Reset()
	w = bitio.NewWriter(&buf, s.ByteOrder)
	if err := codec.WriteOptional[uint8](w, s, nil, codec.WriteUint8); err != nil {
		t.Fatalf("WriteOptional(nil): %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0}) {
		t.Fatalf("absent optional = % x, want 00", buf.Bytes())
	}

	r := bitio.NewReader(bytes.NewReader([]byte{1, 5}), s.ByteOrder)
	got, err := codec.ReadOptional(r, s, codec.ReadUint8)
	if err != nil {
		t.Fatalf("ReadOptional: %v", err)
	}
	if got == nil || *got != 5 {
		t.Fatalf("decoded %v, want 5", got)
	}

	r = bitio.NewReader(bytes.NewReader([]byte{0}), s.ByteOrder)
	got, err = codec.ReadOptional(r, s, codec.ReadUint8)
	if err != nil {
		t.Fatalf("ReadOptional: %v", err)
	}
	if got != nil {
		t.Fatalf("decoded %v, want nil", got)
	}
}

func TestOptionalBitFlag(t *testing.T) {
	// Inside a bit-packed aggregate the presence flag can be a
	// single bit.
	s := codec.DefaultSettings()
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, s.ByteOrder)

	h := codec.NewHints()
	h.SetFieldWidth(1)
	v := uint8(0xaa)
	if err := codec.WriteOptionalField(w, s, h, &v, codec.WriteUint8); err != nil {
		t.Fatalf("WriteOptionalField: %v", err)
	}
	if err := w.ByteAlign(); err != nil {
		t.Fatalf("ByteAlign: %v", err)
	}
	// 1 flag bit, then the value byte, then 7 alignment bits.
	r := bitio.NewReader(bytes.NewReader(buf.Bytes()), s.ByteOrder)
	h = codec.NewHints()
	h.SetFieldWidth(1)
	got, err := codec.ReadOptionalField(r, s, h, codec.ReadUint8)
	if err != nil {
		t.Fatalf("ReadOptionalField: %v", err)
	}
	if got == nil || *got != 0xaa {
		t.Fatalf("decoded %v, want aa", got)
	}
}

func TestStringRoundTripAndUTF8(t *testing.T) {
	testutil.RoundTrip(t, "hello world", readStr, writeStr)
	testutil.RoundTrip(t, "", readStr, writeStr)
	testutil.RoundTrip(t, "héllo wörld ☺", readStr, writeStr)

	s := codec.DefaultSettings()
	r := bitio.NewReader(bytes.NewReader([]byte{0, 0, 0, 2, 0xff, 0xfe}), s.ByteOrder)
	_, err := codec.ReadString(r, s, nil)
	if !errors.Is(err, codec.ErrInvalidUTF8) {
		t.Fatalf("err = %v, want ErrInvalidUTF8", err)
	}
}

func TestStringToEOF(t *testing.T) {
	s := codec.DefaultSettings()
	r := bitio.NewReader(bytes.NewReader([]byte("unprefixed")), s.ByteOrder)
	got, err := codec.ReadStringToEOF(r, s)
	if err != nil {
		t.Fatalf("ReadStringToEOF: %v", err)
	}
	if got != "unprefixed" {
		t.Fatalf("decoded %q", got)
	}
}

func TestPtrAllocatesFreshValue(t *testing.T) {
	s := codec.DefaultSettings()
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, s.ByteOrder)

	orig := uint16(0xbeef)
	if err := codec.WritePtr(w, s, &orig, codec.WriteUint16); err != nil {
		t.Fatalf("WritePtr: %v", err)
	}

	r := bitio.NewReader(bytes.NewReader(buf.Bytes()), s.ByteOrder)
	got, err := codec.ReadPtr(r, s, codec.ReadUint16)
	if err != nil {
		t.Fatalf("ReadPtr: %v", err)
	}
	if got == &orig {
		t.Fatal("decode must allocate a fresh instance")
	}
	if *got != orig {
		t.Fatalf("decoded %#x, want %#x", *got, orig)
	}
}

func TestRangeRoundTrip(t *testing.T) {
	readRange := func(r *bitio.Reader, s *codec.Settings) (codec.Range[uint32], error) {
		return codec.ReadRange(r, s, codec.ReadUint32)
	}
	writeRange := func(w *bitio.Writer, s *codec.Settings, v codec.Range[uint32]) error {
		return codec.WriteRange(w, s, v, codec.WriteUint32)
	}
	testutil.RoundTrip(t, codec.Range[uint32]{Start: 10, End: 400}, readRange, writeRange)

	// Two consecutive values, no prefix.
	s := codec.DefaultSettings()
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, s.ByteOrder)
	if err := writeRange(w, s, codec.Range[uint32]{Start: 1, End: 2}); err != nil {
		t.Fatalf("WriteRange: %v", err)
	}
	want := []byte{0, 0, 0, 1, 0, 0, 0, 2}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("encoded % x, want % x", buf.Bytes(), want)
	}
}

func TestUUIDRawBytes(t *testing.T) {
	id := uuid.MustParse("f81d4fae-7dec-11d0-a765-00a0c91e6bf6")
	testutil.RoundTrip(t, id, codec.ReadUUID, codec.WriteUUID)

	s := codec.DefaultSettings()
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, s.ByteOrder)
	if err := codec.WriteUUID(w, s, id); err != nil {
		t.Fatalf("WriteUUID: %v", err)
	}
	// Raw 16-byte representation, no prefix, order-independent.
	if !bytes.Equal(buf.Bytes(), id[:]) {
		t.Fatalf("encoded % x, want % x", buf.Bytes(), id[:])
	}
}

func TestConditionalField(t *testing.T) {
	s := codec.DefaultSettings()
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, s.ByteOrder)

	// Nothing goes on the wire for an absent conditional value.
	if err := codec.WriteIf[uint8](w, s, nil, codec.WriteUint8); err != nil {
		t.Fatalf("WriteIf(nil): %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("absent conditional wrote % x", buf.Bytes())
	}

	v := uint8(7)
	if err := codec.WriteIf(w, s, &v, codec.WriteUint8); err != nil {
		t.Fatalf("WriteIf: %v", err)
	}

	r := bitio.NewReader(bytes.NewReader(buf.Bytes()), s.ByteOrder)
	absent, err := codec.ReadIf(r, s, false, codec.ReadUint8)
	if err != nil {
		t.Fatalf("ReadIf(false): %v", err)
	}
	if absent != nil {
		t.Fatal("ReadIf(false) must not touch the stream")
	}
	present, err := codec.ReadIf(r, s, true, codec.ReadUint8)
	if err != nil {
		t.Fatalf("ReadIf(true): %v", err)
	}
	if present == nil || *present != 7 {
		t.Fatalf("decoded %v, want 7", present)
	}
}
