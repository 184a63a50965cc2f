// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

// Package bitio provides byte- and bit-granularity reading and writing
// over an underlying byte stream.
//
// [Reader] and [Writer] are parameterized by an [Order]. The order
// affects two things: the byte order used for multi-byte primitives
// built on top of this package, and the bit order within a byte for
// sub-byte fields. Big-endian streams consume and produce the most
// significant bit of each byte first; little-endian streams the least
// significant bit first.
//
// Both sides track their position within the current byte so that
// byte-boundary alignment can be applied (write side: zero-bit
// padding) or detected (read side). Neither type is safe for
// concurrent use; every encode or decode owns its reader or writer
// exclusively for the duration of the call.
package bitio
