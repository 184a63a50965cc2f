// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/binproto/binproto/bitio"
)

// ReadString reads a UTF-8 string under the same length rules as
// growable sequences: a uint32 byte-count prefix, unless a hints
// descriptor transmits the length as another field's value. Invalid
// UTF-8 returns ErrInvalidUTF8.
func ReadString(r *bitio.Reader, s *Settings, h *Hints) (string, error) {
	var raw []byte
	if fl, ok := h.CurrentFieldLength(); ok {
		// For strings both descriptor kinds count bytes: the
		// element is the byte itself.
		b, err := r.ReadBytes(fl.Length)
		if err != nil {
			return "", err
		}
		raw = b
	} else {
		count, err := ReadUint32(r, s)
		if err != nil {
			return "", err
		}
		b, err := r.ReadBytes(int(count))
		if err != nil {
			return "", err
		}
		raw = b
	}
	if !utf8.Valid(raw) {
		return "", ErrInvalidUTF8
	}
	return string(raw), nil
}

// WriteString writes a UTF-8 string with a uint32 byte-count prefix,
// suppressed when a hints descriptor already transmits the length.
func WriteString(w *bitio.Writer, s *Settings, h *Hints, v string) error {
	if _, ok := h.CurrentFieldLength(); !ok {
		if err := WriteUint32(w, s, uint32(len(v))); err != nil {
			return err
		}
	}
	return w.WriteBytes([]byte(v))
}

// ReadStringToEOF reads a string with no prefix at all, consuming the
// stream to its end. This is the flexible/trailing member form, valid
// only for the last field of an aggregate.
func ReadStringToEOF(r *bitio.Reader, s *Settings) (string, error) {
	raw, err := readToEOF(r)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", ErrInvalidUTF8
	}
	return string(raw), nil
}

// WriteStringToEOF writes the string bytes with no prefix. The write
// side of a flexible member is plain bytes; only the read side
// differs from a prefixed string.
func WriteStringToEOF(w *bitio.Writer, s *Settings, v string) error {
	return w.WriteBytes([]byte(v))
}

// ReadBytesToEOF reads raw bytes to end of stream, the byte-sequence
// analogue of ReadStringToEOF.
func ReadBytesToEOF(r *bitio.Reader, s *Settings) ([]byte, error) {
	return readToEOF(r)
}

func readToEOF(r *bitio.Reader) ([]byte, error) {
	var out []byte
	for {
		b, err := r.ReadByte()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading to end of stream: %w", err)
		}
		out = append(out, b)
	}
}
