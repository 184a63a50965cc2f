// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"fmt"
	"log/slog"
)

// Datagram marshals packets for message-oriented transports (UDP,
// unix datagram sockets) where the transport preserves message
// boundaries. Pack returns one complete buffer per packet and Unpack
// consumes one; there is no partial-delivery handling because
// datagram transports deliver whole messages or nothing.
type Datagram struct {
	// Codec marshals packet values. Nil means ParcelCodec with
	// default settings.
	Codec Codec

	// Pipeline transforms encoded packets. Nil means no
	// transformation.
	Pipeline *Pipeline

	// Logger receives debug events. Nil means slog.Default().
	Logger *slog.Logger
}

func (d *Datagram) codec() Codec {
	if d.Codec != nil {
		return d.Codec
	}
	return &ParcelCodec{}
}

func (d *Datagram) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// Pack marshals v and runs it through the pipeline, returning the
// bytes to hand to the transport as a single datagram.
func (d *Datagram) Pack(v any) ([]byte, error) {
	data, err := d.codec().Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling datagram: %w", err)
	}
	if d.Pipeline != nil {
		data, err = d.Pipeline.Encode(data)
		if err != nil {
			d.logger().Debug("datagram pack failed", "codec", d.codec().Name(), "error", err)
			return nil, err
		}
	}
	d.logger().Debug("datagram packed", "codec", d.codec().Name(), "bytes", len(data))
	return data, nil
}

// Unpack decodes one received datagram into v. The buffer must be
// exactly one datagram as produced by the peer's Pack.
func (d *Datagram) Unpack(data []byte, v any) error {
	var err error
	if d.Pipeline != nil {
		data, err = d.Pipeline.Decode(data)
		if err != nil {
			d.logger().Debug("datagram unpack failed", "codec", d.codec().Name(), "error", err)
			return err
		}
	}
	if err := d.codec().Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshaling datagram: %w", err)
	}
	return nil
}
