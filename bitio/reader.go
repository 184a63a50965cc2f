// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package bitio

import (
	"fmt"
	"io"
)

// Reader reads bits and bytes from an underlying io.Reader.
//
// The reader buffers at most one partially consumed byte. While a
// partial byte is buffered the reader is unaligned; ReadBytes falls
// back to a bit-shifted path until the next byte boundary is reached.
type Reader struct {
	r     io.Reader
	order Order

	// cur holds the byte currently being consumed; nbits is the
	// number of bits of cur not yet delivered. For big-endian
	// streams the undelivered bits are the low nbits bits of cur
	// with consumption from the top; for little-endian streams cur
	// is shifted right as bits are delivered.
	cur   byte
	nbits uint

	tmp [1]byte
}

// NewReader creates a bit reader over r with the given order.
func NewReader(r io.Reader, order Order) *Reader {
	return &Reader{r: r, order: order}
}

// Order returns the endianness the reader was created with.
func (r *Reader) Order() Order {
	return r.order
}

// Aligned reports whether the reader is at a byte boundary.
func (r *Reader) Aligned() bool {
	return r.nbits == 0
}

// ByteAlign discards any remaining bits of the current byte so that
// the next read starts at a byte boundary. A no-op when already
// aligned.
func (r *Reader) ByteAlign() {
	r.cur = 0
	r.nbits = 0
}

// ReadBits reads n bits (at most 64) and returns them as the low n
// bits of a uint64, assembled in the reader's bit order. Returns
// io.EOF only when the stream ends exactly at a byte boundary before
// any bit of this call was consumed; a mid-value end of input is
// io.ErrUnexpectedEOF.
func (r *Reader) ReadBits(n uint) (uint64, error) {
	if n > 64 {
		return 0, fmt.Errorf("bitio: cannot read %d bits in one call (max 64)", n)
	}

	var value uint64
	var shift uint // little-endian accumulation position
	read := n

	for n > 0 {
		if r.nbits == 0 {
			if _, err := io.ReadFull(r.r, r.tmp[:]); err != nil {
				if err == io.EOF && n != read {
					err = io.ErrUnexpectedEOF
				}
				return 0, err
			}
			r.cur = r.tmp[0]
			r.nbits = 8
		}

		take := n
		if take > r.nbits {
			take = r.nbits
		}
		mask := byte(1<<take - 1)

		if r.order == LittleEndian {
			bits := r.cur & mask
			r.cur >>= take
			value |= uint64(bits) << shift
			shift += take
		} else {
			bits := (r.cur >> (r.nbits - take)) & mask
			value = value<<take | uint64(bits)
		}
		r.nbits -= take
		n -= take
	}
	return value, nil
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.nbits == 0 {
		if _, err := io.ReadFull(r.r, r.tmp[:]); err != nil {
			return 0, err
		}
		return r.tmp[0], nil
	}
	v, err := r.ReadBits(8)
	return byte(v), err
}

// ReadBytes reads exactly n bytes. When the reader is byte-aligned
// this is a single io.ReadFull; otherwise each byte is assembled
// from the bit stream. Returns io.EOF if the stream ends before the
// first byte, io.ErrUnexpectedEOF if it ends after.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("bitio: negative byte count %d", n)
	}
	buf := make([]byte, n)
	if r.nbits == 0 {
		if _, err := io.ReadFull(r.r, buf); err != nil {
			return nil, err
		}
		return buf, nil
	}
	for i := range buf {
		v, err := r.ReadBits(8)
		if err != nil {
			if err == io.EOF && i > 0 {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		buf[i] = byte(v)
	}
	return buf, nil
}
