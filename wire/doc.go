// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire layers whole-packet processing on top of the bit-level
// codecs in package codec: a middleware pipeline of reversible byte
// transforms (compression, checksumming, encryption), a packet codec
// abstraction for marshaling values to and from complete byte
// buffers, and stream/datagram wrappers that run packets through a
// pipeline on their way to and from a transport.
//
// Middleware operates on whole packets, never on partial reads. A
// Pipeline applies its stages in declared order on encode, and each
// stage's own decode in the same declared order on decode. Decoding
// does not iterate in reverse, so stages composed into one pipeline
// must commute; in practice pipelines hold a single stage (see
// Pipeline).
//
// Everything here is synchronous and unsynchronized. A Pipeline,
// Stream, or Datagram must not be shared between goroutines without
// external locking.
package wire
