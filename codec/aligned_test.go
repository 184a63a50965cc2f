// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package codec_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/binproto/binproto/bitio"
	"github.com/binproto/binproto/codec"
)

func TestPadding(t *testing.T) {
	tests := []struct {
		align, size, want int
	}{
		{1, 2, 0},
		{2, 2, 0},
		{3, 2, 1},
		{4, 2, 2},
		{3, 5, 1},
		{4, 97, 3},
		{8, 0, 0},
	}
	for _, tt := range tests {
		if got := codec.Padding(tt.align, tt.size); got != tt.want {
			t.Fatalf("Padding(%d, %d) = %d, want %d", tt.align, tt.size, got, tt.want)
		}
	}
}

// writeStr adapts the string codec to a plain WriteFunc for use as an
// aligned inner value.
func writeStr(w *bitio.Writer, s *codec.Settings, v string) error {
	return codec.WriteString(w, s, nil, v)
}

func readStr(r *bitio.Reader, s *codec.Settings) (string, error) {
	return codec.ReadString(r, s, nil)
}

func TestAlignedWritePads(t *testing.T) {
	s := codec.DefaultSettings()
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, s.ByteOrder)

	// "hey" encodes to 4 (prefix) + 3 = 7 bytes; aligned to 4 it
	// needs 1 zero byte of padding.
	if err := codec.WriteAligned(w, s, 4, "hey", writeStr); err != nil {
		t.Fatalf("WriteAligned: %v", err)
	}
	want := []byte{0, 0, 0, 3, 'h', 'e', 'y', 0}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("encoded % x, want % x", buf.Bytes(), want)
	}

	r := bitio.NewReader(bytes.NewReader(buf.Bytes()), s.ByteOrder)
	got, err := codec.ReadAligned(r, s, 4, readStr, writeStr)
	if err != nil {
		t.Fatalf("ReadAligned: %v", err)
	}
	if got != "hey" {
		t.Fatalf("decoded %q, want hey", got)
	}
}

func TestAlignedAlreadyAligned(t *testing.T) {
	s := codec.DefaultSettings()
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf, s.ByteOrder)

	// 8 encoded bytes against an alignment of 4: no padding.
	if err := codec.WriteAligned(w, s, 4, "1234", writeStr); err != nil {
		t.Fatalf("WriteAligned: %v", err)
	}
	if len(buf.Bytes()) != 8 {
		t.Fatalf("encoded %d bytes, want 8", len(buf.Bytes()))
	}
}

func TestAlignedNonZeroPadding(t *testing.T) {
	s := codec.DefaultSettings()
	data := []byte{0, 0, 0, 3, 'h', 'e', 'y', 0xff}
	r := bitio.NewReader(bytes.NewReader(data), s.ByteOrder)
	_, err := codec.ReadAligned(r, s, 4, readStr, writeStr)
	if !errors.Is(err, codec.ErrNonZeroPadding) {
		t.Fatalf("err = %v, want ErrNonZeroPadding", err)
	}
}
