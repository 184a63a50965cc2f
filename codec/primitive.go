// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"math"

	"github.com/binproto/binproto/bitio"
)

// Whole-byte primitive codecs. Multi-byte values honor the settings'
// byte order; sub-byte bit-fields follow the stream's bit order and
// are provided by the *Field variants below.

// ReadUint8 reads one unsigned byte.
func ReadUint8(r *bitio.Reader, s *Settings) (uint8, error) {
	b, err := r.ReadByte()
	return b, err
}

// WriteUint8 writes one unsigned byte.
func WriteUint8(w *bitio.Writer, s *Settings, v uint8) error {
	return w.WriteByte(v)
}

// ReadUint16 reads a 16-bit unsigned integer.
func ReadUint16(r *bitio.Reader, s *Settings) (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return s.ByteOrder.Binary().Uint16(b), nil
}

// WriteUint16 writes a 16-bit unsigned integer.
func WriteUint16(w *bitio.Writer, s *Settings, v uint16) error {
	var b [2]byte
	s.ByteOrder.Binary().PutUint16(b[:], v)
	return w.WriteBytes(b[:])
}

// ReadUint32 reads a 32-bit unsigned integer.
func ReadUint32(r *bitio.Reader, s *Settings) (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return s.ByteOrder.Binary().Uint32(b), nil
}

// WriteUint32 writes a 32-bit unsigned integer.
func WriteUint32(w *bitio.Writer, s *Settings, v uint32) error {
	var b [4]byte
	s.ByteOrder.Binary().PutUint32(b[:], v)
	return w.WriteBytes(b[:])
}

// ReadUint64 reads a 64-bit unsigned integer.
func ReadUint64(r *bitio.Reader, s *Settings) (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return s.ByteOrder.Binary().Uint64(b), nil
}

// WriteUint64 writes a 64-bit unsigned integer.
func WriteUint64(w *bitio.Writer, s *Settings, v uint64) error {
	var b [8]byte
	s.ByteOrder.Binary().PutUint64(b[:], v)
	return w.WriteBytes(b[:])
}

// ReadInt8 reads an 8-bit signed integer.
func ReadInt8(r *bitio.Reader, s *Settings) (int8, error) {
	v, err := ReadUint8(r, s)
	return int8(v), err
}

// WriteInt8 writes an 8-bit signed integer.
func WriteInt8(w *bitio.Writer, s *Settings, v int8) error {
	return WriteUint8(w, s, uint8(v))
}

// ReadInt16 reads a 16-bit signed integer.
func ReadInt16(r *bitio.Reader, s *Settings) (int16, error) {
	v, err := ReadUint16(r, s)
	return int16(v), err
}

// WriteInt16 writes a 16-bit signed integer.
func WriteInt16(w *bitio.Writer, s *Settings, v int16) error {
	return WriteUint16(w, s, uint16(v))
}

// ReadInt32 reads a 32-bit signed integer.
func ReadInt32(r *bitio.Reader, s *Settings) (int32, error) {
	v, err := ReadUint32(r, s)
	return int32(v), err
}

// WriteInt32 writes a 32-bit signed integer.
func WriteInt32(w *bitio.Writer, s *Settings, v int32) error {
	return WriteUint32(w, s, uint32(v))
}

// ReadInt64 reads a 64-bit signed integer.
func ReadInt64(r *bitio.Reader, s *Settings) (int64, error) {
	v, err := ReadUint64(r, s)
	return int64(v), err
}

// WriteInt64 writes a 64-bit signed integer.
func WriteInt64(w *bitio.Writer, s *Settings, v int64) error {
	return WriteUint64(w, s, uint64(v))
}

// ReadBool reads a boolean encoded as one byte, where any non-zero
// value is true.
func ReadBool(r *bitio.Reader, s *Settings) (bool, error) {
	b, err := r.ReadByte()
	return b != 0, err
}

// WriteBool writes a boolean as a single 0 or 1 byte.
func WriteBool(w *bitio.Writer, s *Settings, v bool) error {
	if v {
		return w.WriteByte(1)
	}
	return w.WriteByte(0)
}

// ReadFloat32 reads an IEEE 754 single-precision float.
func ReadFloat32(r *bitio.Reader, s *Settings) (float32, error) {
	v, err := ReadUint32(r, s)
	return math.Float32frombits(v), err
}

// WriteFloat32 writes an IEEE 754 single-precision float.
func WriteFloat32(w *bitio.Writer, s *Settings, v float32) error {
	return WriteUint32(w, s, math.Float32bits(v))
}

// ReadFloat64 reads an IEEE 754 double-precision float.
func ReadFloat64(r *bitio.Reader, s *Settings) (float64, error) {
	v, err := ReadUint64(r, s)
	return math.Float64frombits(v), err
}

// WriteFloat64 writes an IEEE 754 double-precision float.
func WriteFloat64(w *bitio.Writer, s *Settings, v float64) error {
	return WriteUint64(w, s, math.Float64bits(v))
}

// Bit-field aware variants. When the aggregate's hints declare a bit
// width for the current field, the value is transmitted as exactly
// that many bits; otherwise these delegate to the whole-byte codecs.

func readUintField(r *bitio.Reader, s *Settings, h *Hints, byteSize int) (uint64, error) {
	if bits, ok := h.FieldWidth(); ok {
		return r.ReadBits(bits)
	}
	b, err := r.ReadBytes(byteSize)
	if err != nil {
		return 0, err
	}
	switch byteSize {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(s.ByteOrder.Binary().Uint16(b)), nil
	case 4:
		return uint64(s.ByteOrder.Binary().Uint32(b)), nil
	default:
		return s.ByteOrder.Binary().Uint64(b), nil
	}
}

func writeUintField(w *bitio.Writer, s *Settings, h *Hints, byteSize int, v uint64, target string) error {
	if bits, ok := h.FieldWidth(); ok {
		if bits < 64 && v >= 1<<bits {
			return &IntegerConversionError{Value: v, Target: target}
		}
		return w.WriteBits(v, bits)
	}
	switch byteSize {
	case 1:
		return w.WriteByte(byte(v))
	case 2:
		return WriteUint16(w, s, uint16(v))
	case 4:
		return WriteUint32(w, s, uint32(v))
	default:
		return WriteUint64(w, s, v)
	}
}

// ReadUint8Field reads a uint8, honoring a pending bit-width hint.
func ReadUint8Field(r *bitio.Reader, s *Settings, h *Hints) (uint8, error) {
	v, err := readUintField(r, s, h, 1)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint8 {
		return 0, &IntegerConversionError{Value: v, Target: "uint8"}
	}
	return uint8(v), nil
}

// WriteUint8Field writes a uint8, honoring a pending bit-width hint.
func WriteUint8Field(w *bitio.Writer, s *Settings, h *Hints, v uint8) error {
	return writeUintField(w, s, h, 1, uint64(v), "bit-field")
}

// ReadUint16Field reads a uint16, honoring a pending bit-width hint.
func ReadUint16Field(r *bitio.Reader, s *Settings, h *Hints) (uint16, error) {
	v, err := readUintField(r, s, h, 2)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint16 {
		return 0, &IntegerConversionError{Value: v, Target: "uint16"}
	}
	return uint16(v), nil
}

// WriteUint16Field writes a uint16, honoring a pending bit-width hint.
func WriteUint16Field(w *bitio.Writer, s *Settings, h *Hints, v uint16) error {
	return writeUintField(w, s, h, 2, uint64(v), "bit-field")
}

// ReadUint32Field reads a uint32, honoring a pending bit-width hint.
func ReadUint32Field(r *bitio.Reader, s *Settings, h *Hints) (uint32, error) {
	v, err := readUintField(r, s, h, 4)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, &IntegerConversionError{Value: v, Target: "uint32"}
	}
	return uint32(v), nil
}

// WriteUint32Field writes a uint32, honoring a pending bit-width hint.
func WriteUint32Field(w *bitio.Writer, s *Settings, h *Hints, v uint32) error {
	return writeUintField(w, s, h, 4, uint64(v), "bit-field")
}

// ReadUint64Field reads a uint64, honoring a pending bit-width hint.
func ReadUint64Field(r *bitio.Reader, s *Settings, h *Hints) (uint64, error) {
	return readUintField(r, s, h, 8)
}

// WriteUint64Field writes a uint64, honoring a pending bit-width hint.
func WriteUint64Field(w *bitio.Writer, s *Settings, h *Hints, v uint64) error {
	return writeUintField(w, s, h, 8, v, "bit-field")
}

// ReadBoolField reads a boolean, transmitted as a bit-field of the
// hinted width when one is pending (any non-zero value is true), or
// as a whole byte otherwise.
func ReadBoolField(r *bitio.Reader, s *Settings, h *Hints) (bool, error) {
	if bits, ok := h.FieldWidth(); ok {
		v, err := r.ReadBits(bits)
		return v != 0, err
	}
	return ReadBool(r, s)
}

// WriteBoolField writes a boolean, honoring a pending bit-width hint.
func WriteBoolField(w *bitio.Writer, s *Settings, h *Hints, v bool) error {
	var u uint64
	if v {
		u = 1
	}
	if bits, ok := h.FieldWidth(); ok {
		return w.WriteBits(u, bits)
	}
	return WriteBool(w, s, v)
}
