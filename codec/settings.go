// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import "github.com/binproto/binproto/bitio"

// Settings carries the per-operation configuration threaded through
// every read and write call. A Settings value is never mutated by the
// engine; the same value may serve any number of sequential calls.
type Settings struct {
	// ByteOrder is the endianness of the wire format: byte order of
	// multi-byte primitives and bit order of sub-byte fields.
	ByteOrder bitio.Order

	// Context is optional caller state that outlives a single field
	// but not a single top-level call. External-tag dispatch and
	// custom codecs read it; the engine itself never inspects it.
	Context any
}

// DefaultSettings returns the default configuration: big-endian
// (network) byte order, no context.
func DefaultSettings() *Settings {
	return &Settings{ByteOrder: bitio.BigEndian}
}
