// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package codec_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/binproto/binproto/bitio"
	"github.com/binproto/binproto/codec"
	"github.com/binproto/binproto/internal/testutil"
)

// payloadPacket is the canonical disjoint-length-prefix shape: the
// count field's value is the payload's transmitted length, so the
// payload carries no prefix of its own.
type payloadPacket struct {
	Count   uint32
	Payload []uint8
}

func (p *payloadPacket) fields() []codec.Field {
	return []codec.Field{
		{
			Name:       "count",
			LengthOf:   "payload",
			LengthKind: codec.LengthElements,
			Read: func(r *bitio.Reader, s *codec.Settings, h *codec.Hints) error {
				v, err := codec.ReadUint32(r, s)
				p.Count = v
				return err
			},
			Write: func(w *bitio.Writer, s *codec.Settings, h *codec.Hints) error {
				return codec.WriteUint32(w, s, p.Count)
			},
			Length: func() int { return int(p.Count) },
		},
		{
			Name: "payload",
			Read: func(r *bitio.Reader, s *codec.Settings, h *codec.Hints) error {
				v, err := codec.ReadList(r, s, h, codec.ReadUint8)
				p.Payload = v
				return err
			},
			Write: func(w *bitio.Writer, s *codec.Settings, h *codec.Hints) error {
				return codec.WriteList(w, s, h, p.Payload, codec.WriteUint8)
			},
		},
	}
}

func (p *payloadPacket) Read(r *bitio.Reader, s *codec.Settings) error {
	return codec.ReadStruct(r, s, "payloadPacket", p.fields())
}

func (p *payloadPacket) Write(w *bitio.Writer, s *codec.Settings) error {
	return codec.WriteStruct(w, s, "payloadPacket", p.fields())
}

func TestDisjointLengthPrefix(t *testing.T) {
	s := codec.DefaultSettings()
	p := &payloadPacket{Count: 3, Payload: []uint8{0xca, 0xfe, 0x42}}
	data, err := codec.ToBytes(p, s)
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	// The count is transmitted once, as the count field's value;
	// the payload contributes exactly len(payload) bytes.
	want := []byte{0, 0, 0, 3, 0xca, 0xfe, 0x42}
	if !bytes.Equal(data, want) {
		t.Fatalf("encoded % x, want % x", data, want)
	}

	got, err := codec.FromBytes[payloadPacket](data, s)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if got.Count != 3 || !bytes.Equal(got.Payload, p.Payload) {
		t.Fatalf("decoded %+v, want %+v", got, *p)
	}
}

func TestDisjointLengthPrefixRoundTrip(t *testing.T) {
	testutil.RoundTripParcel[payloadPacket](t, payloadPacket{
		Count:   5,
		Payload: []uint8{1, 2, 3, 4, 5},
	})
}

// bytePrefixPacket declares its count in bytes rather than elements,
// over uint16 payload entries.
type bytePrefixPacket struct {
	ByteLen uint8
	Values  []uint16
}

func (p *bytePrefixPacket) fields() []codec.Field {
	return []codec.Field{
		{
			Name:       "byte_len",
			LengthOf:   "values",
			LengthKind: codec.LengthBytes,
			Read: func(r *bitio.Reader, s *codec.Settings, h *codec.Hints) error {
				v, err := codec.ReadUint8(r, s)
				p.ByteLen = v
				return err
			},
			Write: func(w *bitio.Writer, s *codec.Settings, h *codec.Hints) error {
				return codec.WriteUint8(w, s, p.ByteLen)
			},
			Length: func() int { return int(p.ByteLen) },
		},
		{
			Name: "values",
			Read: func(r *bitio.Reader, s *codec.Settings, h *codec.Hints) error {
				v, err := codec.ReadList(r, s, h, codec.ReadUint16)
				p.Values = v
				return err
			},
			Write: func(w *bitio.Writer, s *codec.Settings, h *codec.Hints) error {
				return codec.WriteList(w, s, h, p.Values, codec.WriteUint16)
			},
		},
	}
}

func (p *bytePrefixPacket) Read(r *bitio.Reader, s *codec.Settings) error {
	return codec.ReadStruct(r, s, "bytePrefixPacket", p.fields())
}

func (p *bytePrefixPacket) Write(w *bitio.Writer, s *codec.Settings) error {
	return codec.WriteStruct(w, s, "bytePrefixPacket", p.fields())
}

func TestByteKindLengthPrefix(t *testing.T) {
	s := codec.DefaultSettings()
	p := &bytePrefixPacket{ByteLen: 4, Values: []uint16{0x0102, 0x0304}}
	data, err := codec.ToBytes(p, s)
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	want := []byte{4, 0x01, 0x02, 0x03, 0x04}
	if !bytes.Equal(data, want) {
		t.Fatalf("encoded % x, want % x", data, want)
	}

	got, err := codec.FromBytes[bytePrefixPacket](data, s)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if len(got.Values) != 2 || got.Values[0] != 0x0102 {
		t.Fatalf("decoded %+v", got)
	}
}

// flagHeader packs two sub-byte fields into a single byte.
type flagHeader struct {
	Version uint8 // 3 bits
	Flags   uint8 // 5 bits
}

func (p *flagHeader) fields() []codec.Field {
	return []codec.Field{
		{
			Name: "version",
			Bits: 3,
			Read: func(r *bitio.Reader, s *codec.Settings, h *codec.Hints) error {
				v, err := codec.ReadUint8Field(r, s, h)
				p.Version = v
				return err
			},
			Write: func(w *bitio.Writer, s *codec.Settings, h *codec.Hints) error {
				return codec.WriteUint8Field(w, s, h, p.Version)
			},
		},
		{
			Name: "flags",
			Bits: 5,
			Read: func(r *bitio.Reader, s *codec.Settings, h *codec.Hints) error {
				v, err := codec.ReadUint8Field(r, s, h)
				p.Flags = v
				return err
			},
			Write: func(w *bitio.Writer, s *codec.Settings, h *codec.Hints) error {
				return codec.WriteUint8Field(w, s, h, p.Flags)
			},
		},
	}
}

func (p *flagHeader) Read(r *bitio.Reader, s *codec.Settings) error {
	return codec.ReadStruct(r, s, "flagHeader", p.fields())
}

func (p *flagHeader) Write(w *bitio.Writer, s *codec.Settings) error {
	return codec.WriteStruct(w, s, "flagHeader", p.fields())
}

func TestBitPackedStruct(t *testing.T) {
	s := codec.DefaultSettings()
	p := &flagHeader{Version: 5, Flags: 19}
	data, err := codec.ToBytes(p, s)
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	if !bytes.Equal(data, []byte{0b10110011}) {
		t.Fatalf("encoded %08b, want 10110011", data)
	}
	testutil.RoundTripParcel[flagHeader](t, *p)
}

// trailer ends with a flexible string member, read to end of stream
// with no prefix.
type trailer struct {
	Kind    uint8
	Message string
}

func (p *trailer) fields() []codec.Field {
	return []codec.Field{
		{
			Name: "kind",
			Read: func(r *bitio.Reader, s *codec.Settings, h *codec.Hints) error {
				v, err := codec.ReadUint8(r, s)
				p.Kind = v
				return err
			},
			Write: func(w *bitio.Writer, s *codec.Settings, h *codec.Hints) error {
				return codec.WriteUint8(w, s, p.Kind)
			},
		},
		{
			Name:     "message",
			Flexible: true,
			Read: func(r *bitio.Reader, s *codec.Settings, h *codec.Hints) error {
				v, err := codec.ReadStringToEOF(r, s)
				p.Message = v
				return err
			},
			Write: func(w *bitio.Writer, s *codec.Settings, h *codec.Hints) error {
				return codec.WriteStringToEOF(w, s, p.Message)
			},
		},
	}
}

func (p *trailer) Read(r *bitio.Reader, s *codec.Settings) error {
	return codec.ReadStruct(r, s, "trailer", p.fields())
}

func (p *trailer) Write(w *bitio.Writer, s *codec.Settings) error {
	return codec.WriteStruct(w, s, "trailer", p.fields())
}

func TestFlexibleTrailingMember(t *testing.T) {
	s := codec.DefaultSettings()
	p := &trailer{Kind: 9, Message: "to the end"}
	data, err := codec.ToBytes(p, s)
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	// No length prefix anywhere: one kind byte plus the raw string.
	want := append([]byte{9}, []byte("to the end")...)
	if !bytes.Equal(data, want) {
		t.Fatalf("encoded % x, want % x", data, want)
	}
	testutil.RoundTripParcel[trailer](t, *p)
}

func TestStructConfigErrors(t *testing.T) {
	s := codec.DefaultSettings()
	noop := func(*bitio.Reader, *codec.Settings, *codec.Hints) error { return nil }

	tests := []struct {
		name   string
		fields []codec.Field
	}{
		{
			name: "missing sibling",
			fields: []codec.Field{
				{Name: "count", LengthOf: "nosuch", Length: func() int { return 0 }, Read: noop},
			},
		},
		{
			name: "prefix after target",
			fields: []codec.Field{
				{Name: "payload", Read: noop},
				{Name: "count", LengthOf: "payload", Length: func() int { return 0 }, Read: noop},
			},
		},
		{
			name: "flexible member not last",
			fields: []codec.Field{
				{Name: "message", Flexible: true, Read: noop},
				{Name: "kind", Read: noop},
			},
		},
		{
			name: "duplicate field name",
			fields: []codec.Field{
				{Name: "a", Read: noop},
				{Name: "a", Read: noop},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The reader is empty: configuration faults must be
			// detected before any bytes are consumed.
			r := bitio.NewReader(bytes.NewReader(nil), s.ByteOrder)
			err := codec.ReadStruct(r, s, "bad", tt.fields)
			var cfgErr *codec.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("err = %v, want ConfigError", err)
			}
		})
	}
}

func TestFieldErrorNamesField(t *testing.T) {
	s := codec.DefaultSettings()
	// Only two bytes for a uint32 field: the failure must name the
	// aggregate and field.
	_, err := codec.FromBytes[payloadPacket]([]byte{0, 0}, s)
	if err == nil {
		t.Fatal("expected decode failure")
	}
	if got := err.Error(); !bytes.Contains([]byte(got), []byte("payloadPacket.count")) {
		t.Fatalf("error %q does not name the failing field", got)
	}
}
