// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import "fmt"

// Middleware is a reversible whole-packet byte transform. EncodeData
// runs on the outgoing path and DecodeData on the incoming path; for
// any stage, DecodeData(EncodeData(p)) must return p.
//
// Implementations may return the input slice unchanged, return a
// slice aliasing the input, or allocate. Callers must not reuse the
// input buffer after a call.
type Middleware interface {
	EncodeData(data []byte) ([]byte, error)
	DecodeData(data []byte) ([]byte, error)
}

// Stage is a named pipeline entry. The name appears in error wrapping
// and log output so a failing stage can be identified without
// guessing from the error text.
type Stage struct {
	Name       string
	Middleware Middleware
}

// Pipeline applies an ordered sequence of middleware stages to whole
// packets. Encode applies each stage's EncodeData in declared order.
// Decode applies each stage's DecodeData in the SAME declared order,
// not in reverse: each stage's decode undoes that stage's own encode,
// and the pipeline never re-pairs stages by reversing.
//
// The consequence is that stages sharing one pipeline must commute.
// Byte-local transforms such as offset ciphers do; a compressor and
// a checksum do not, and must live in separate pipelines applied at
// different layers (or the packet must pass through one pipeline per
// transform, outermost first).
type Pipeline struct {
	stages []Stage
}

// NewPipeline builds a pipeline from the given stages. Stages with a
// nil Middleware or an empty Name panic: a pipeline is assembled once
// at startup and a malformed stage is a programming error, not a
// runtime condition.
func NewPipeline(stages ...Stage) *Pipeline {
	for i, st := range stages {
		if st.Name == "" {
			panic(fmt.Sprintf("wire: pipeline stage %d has no name", i))
		}
		if st.Middleware == nil {
			panic("wire: pipeline stage " + st.Name + " has nil middleware")
		}
	}
	return &Pipeline{stages: stages}
}

// Stages returns the pipeline's stages in declared order. The
// returned slice is the pipeline's own; callers must not modify it.
func (p *Pipeline) Stages() []Stage {
	return p.stages
}

// Encode runs data through every stage's EncodeData in declared
// order. A stage failure aborts the pipeline and is wrapped with the
// stage name.
func (p *Pipeline) Encode(data []byte) ([]byte, error) {
	for _, st := range p.stages {
		out, err := st.Middleware.EncodeData(data)
		if err != nil {
			return nil, fmt.Errorf("wire: stage %s encode: %w", st.Name, err)
		}
		data = out
	}
	return data, nil
}

// Decode runs data through every stage's DecodeData in declared
// order.
func (p *Pipeline) Decode(data []byte) ([]byte, error) {
	for _, st := range p.stages {
		out, err := st.Middleware.DecodeData(data)
		if err != nil {
			return nil, fmt.Errorf("wire: stage %s decode: %w", st.Name, err)
		}
		data = out
	}
	return data, nil
}

// MiddlewareFunc adapts a pair of functions to the Middleware
// interface, for small transforms that do not warrant a named type.
type MiddlewareFunc struct {
	Encode func([]byte) ([]byte, error)
	Decode func([]byte) ([]byte, error)
}

func (f MiddlewareFunc) EncodeData(data []byte) ([]byte, error) { return f.Encode(data) }
func (f MiddlewareFunc) DecodeData(data []byte) ([]byte, error) { return f.Decode(data) }
