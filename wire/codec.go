// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/binproto/binproto/codec"
)

// Codec marshals whole packets to and from byte buffers. It is the
// seam between the bit-exact parcel layer and self-describing formats
// that can travel through the same pipeline and framing.
type Codec interface {
	// Name identifies the codec in configuration and log output.
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// ParcelCodec bridges the bit-level parcel contract to the Codec
// interface. Marshal accepts any codec.Parcel; Unmarshal requires a
// pointer whose pointee implements codec.Parcel (the usual shape for
// parcel types, whose Read method has a pointer receiver).
type ParcelCodec struct {
	// Settings applied to every packet. Nil means
	// codec.DefaultSettings().
	Settings *codec.Settings
}

func (c *ParcelCodec) settings() *codec.Settings {
	if c.Settings != nil {
		return c.Settings
	}
	return codec.DefaultSettings()
}

// Name returns "parcel".
func (c *ParcelCodec) Name() string { return "parcel" }

// Marshal serializes a codec.Parcel to its byte-aligned wire form.
func (c *ParcelCodec) Marshal(v any) ([]byte, error) {
	p, ok := v.(codec.Parcel)
	if !ok {
		return nil, fmt.Errorf("parcel codec: %T does not implement codec.Parcel", v)
	}
	return codec.ToBytes(p, c.settings())
}

// Unmarshal deserializes into v, which must be a non-nil pointer to a
// codec.Parcel.
func (c *ParcelCodec) Unmarshal(data []byte, v any) error {
	p, ok := v.(codec.Parcel)
	if !ok {
		return fmt.Errorf("parcel codec: %T does not implement codec.Parcel", v)
	}
	if rv := reflect.ValueOf(v); rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("parcel codec: unmarshal target must be a non-nil pointer, got %T", v)
	}
	s := c.settings()
	return p.Read(s.Reader(data), s)
}

// cborEncMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Same logical data always
// produces identical bytes, which keeps checksummed and encrypted
// packets reproducible.
var cborEncMode cbor.EncMode

// cborDecMode accepts standard CBOR. Unknown fields are silently
// ignored for forward compatibility.
var cborDecMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	cborEncMode, err = encOptions.EncMode()
	if err != nil {
		panic("wire: CBOR encoder initialization failed: " + err.Error())
	}

	cborDecMode, err = cbor.DecOptions{
		// When the decode target is any-typed the decoder must pick a
		// concrete map type. The CBOR default is
		// map[interface{}]interface{}; map[string]any is what the
		// rest of the Go ecosystem expects.
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("wire: CBOR decoder initialization failed: " + err.Error())
	}
}

// CBORCodec marshals packets as deterministic CBOR. It carries
// payloads that have no bit-exact wire contract (telemetry,
// control-plane messages) through the same pipelines and framing as
// parcel packets.
type CBORCodec struct{}

// Name returns "cbor".
func (CBORCodec) Name() string { return "cbor" }

// Marshal encodes v using Core Deterministic Encoding.
func (CBORCodec) Marshal(v any) ([]byte, error) {
	return cborEncMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func (CBORCodec) Unmarshal(data []byte, v any) error {
	return cborDecMode.Unmarshal(data, v)
}
