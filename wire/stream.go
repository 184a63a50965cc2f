// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"fmt"
	"io"
	"log/slog"
)

// Stream sends codec-marshaled packets through a pipeline to an
// io.Writer sink and decodes already-delimited incoming frames.
// Delimiting is the transport's job: a length-prefixed TCP framing
// layer, a WebSocket message, a record-oriented file. Stream hands
// the transport one complete encoded packet per Send and expects one
// complete frame per Receive.
type Stream struct {
	// Sink receives one complete encoded packet per Send call.
	Sink io.Writer

	// Codec marshals packet values. Nil means ParcelCodec with
	// default settings.
	Codec Codec

	// Pipeline transforms encoded packets. Nil means no
	// transformation.
	Pipeline *Pipeline

	// Logger receives debug events for packet sizes and failures.
	// Nil means slog.Default().
	Logger *slog.Logger
}

func (st *Stream) codec() Codec {
	if st.Codec != nil {
		return st.Codec
	}
	return &ParcelCodec{}
}

func (st *Stream) logger() *slog.Logger {
	if st.Logger != nil {
		return st.Logger
	}
	return slog.Default()
}

func (st *Stream) encode(v any) ([]byte, error) {
	data, err := st.codec().Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling packet: %w", err)
	}
	if st.Pipeline != nil {
		data, err = st.Pipeline.Encode(data)
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}

func (st *Stream) decode(frame []byte, v any) error {
	var err error
	if st.Pipeline != nil {
		frame, err = st.Pipeline.Decode(frame)
		if err != nil {
			return err
		}
	}
	if err := st.codec().Unmarshal(frame, v); err != nil {
		return fmt.Errorf("unmarshaling packet: %w", err)
	}
	return nil
}

// Send marshals v, runs it through the pipeline, and writes the
// result to the sink as one packet.
func (st *Stream) Send(v any) error {
	data, err := st.encode(v)
	if err != nil {
		st.logger().Debug("packet send failed", "codec", st.codec().Name(), "error", err)
		return err
	}
	if _, err := st.Sink.Write(data); err != nil {
		return fmt.Errorf("writing packet: %w", err)
	}
	st.logger().Debug("packet sent", "codec", st.codec().Name(), "bytes", len(data))
	return nil
}

// Receive decodes one complete incoming frame into v. The frame must
// contain exactly one encoded packet as produced by the peer's Send.
func (st *Stream) Receive(frame []byte, v any) error {
	if err := st.decode(frame, v); err != nil {
		st.logger().Debug("packet receive failed", "codec", st.codec().Name(), "error", err)
		return err
	}
	st.logger().Debug("packet received", "codec", st.codec().Name(), "bytes", len(frame))
	return nil
}
