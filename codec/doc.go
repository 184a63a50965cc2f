// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec implements the runtime engine for bit-exact binary
// protocols: the read/write contract every wire type satisfies, the
// per-aggregate hints resolver for cross-field length relationships,
// primitive and collection codecs, byte-alignment decorators, and the
// tagged-union discriminant system.
//
// The engine is declarative-layer agnostic: generated code and
// hand-written codecs call the same functions. An aggregate is
// described as an ordered field list (see [ReadStruct] and
// [WriteStruct]); a tagged union as a [Union] variant table. The only
// two entry points external callers need are [FromBytes] and
// [ToBytes].
//
// # Hints
//
// Real wire formats frequently encode one field's length as another
// field's value ("the count field says how long the payload is").
// The [Hints] value threads that relationship through a single
// aggregate's encode or decode pass: after the source field is
// processed, its runtime value is recorded as the length descriptor
// for the target field, and the target's collection codec consumes
// the descriptor instead of emitting its own prefix. A Hints value is
// stack-scoped: one per top-level call, never shared, never global.
//
// # Concurrency
//
// Everything in this package is synchronous and blocking. Readers,
// writers, and hints are exclusively owned by one call at a time;
// Settings values are read-only during a call and may be shared.
package codec
