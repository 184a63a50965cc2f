// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package bitio

import (
	"encoding/binary"
	"fmt"
)

// Order selects the endianness of a bit stream. It controls the byte
// order of multi-byte primitives and the bit order within a byte for
// sub-byte fields.
type Order uint8

const (
	// BigEndian reads and writes the most significant byte and bit
	// first. This is the default network byte order.
	BigEndian Order = iota

	// LittleEndian reads and writes the least significant byte and
	// bit first.
	LittleEndian
)

// String returns the human-readable name of the order.
func (o Order) String() string {
	switch o {
	case BigEndian:
		return "big-endian"
	case LittleEndian:
		return "little-endian"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(o))
	}
}

// Binary returns the encoding/binary byte order corresponding to o,
// for interpreting whole-byte multi-byte primitives.
func (o Order) Binary() binary.ByteOrder {
	if o == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}
