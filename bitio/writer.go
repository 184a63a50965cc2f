// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package bitio

import (
	"fmt"
	"io"
)

// Writer writes bits and bytes to an underlying io.Writer.
//
// Bits accumulate in a single in-progress byte; the byte is flushed
// to the sink when complete or when ByteAlign pads it with zero bits.
// A value must be byte-aligned before the underlying stream is
// usable; callers that finish on a bit boundary must call ByteAlign.
type Writer struct {
	w     io.Writer
	order Order

	// cur is the byte under construction; nbits is how many of its
	// bits are filled. Big-endian fills from the most significant
	// bit down, little-endian from the least significant bit up.
	cur   byte
	nbits uint

	tmp [1]byte
}

// NewWriter creates a bit writer over w with the given order.
func NewWriter(w io.Writer, order Order) *Writer {
	return &Writer{w: w, order: order}
}

// Order returns the endianness the writer was created with.
func (w *Writer) Order() Order {
	return w.order
}

// Aligned reports whether the writer is at a byte boundary.
func (w *Writer) Aligned() bool {
	return w.nbits == 0
}

// WriteBits writes the low n bits of v (at most 64) in the writer's
// bit order. Bits of v above the low n are ignored.
func (w *Writer) WriteBits(v uint64, n uint) error {
	if n > 64 {
		return fmt.Errorf("bitio: cannot write %d bits in one call (max 64)", n)
	}
	if n < 64 {
		v &= 1<<n - 1
	}

	for n > 0 {
		space := 8 - w.nbits
		take := n
		if take > space {
			take = space
		}
		mask := uint64(1<<take - 1)

		if w.order == LittleEndian {
			bits := byte(v & mask)
			v >>= take
			w.cur |= bits << w.nbits
		} else {
			bits := byte((v >> (n - take)) & mask)
			w.cur |= bits << (space - take)
		}
		w.nbits += take
		n -= take

		if w.nbits == 8 {
			if err := w.flush(); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteByte writes a single byte.
func (w *Writer) WriteByte(b byte) error {
	if w.nbits == 0 {
		w.tmp[0] = b
		_, err := w.w.Write(w.tmp[:])
		return err
	}
	return w.WriteBits(uint64(b), 8)
}

// WriteBytes writes all of b. When the writer is byte-aligned this is
// a single Write call; otherwise each byte is threaded through the
// bit stream.
func (w *Writer) WriteBytes(b []byte) error {
	if w.nbits == 0 {
		_, err := w.w.Write(b)
		return err
	}
	for _, x := range b {
		if err := w.WriteBits(uint64(x), 8); err != nil {
			return err
		}
	}
	return nil
}

// ByteAlign pads the stream with zero bits up to the next byte
// boundary and flushes the completed byte. A no-op when already
// aligned.
func (w *Writer) ByteAlign() error {
	if w.nbits == 0 {
		return nil
	}
	// The unfilled positions of cur are already zero.
	return w.flush()
}

func (w *Writer) flush() error {
	w.tmp[0] = w.cur
	w.cur = 0
	w.nbits = 0
	_, err := w.w.Write(w.tmp[:])
	return err
}
