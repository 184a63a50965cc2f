// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"github.com/google/uuid"

	"github.com/binproto/binproto/bitio"
)

// ReadUUID reads a UUID as its raw 16-byte representation, with no
// prefix and independent of byte order (RFC 4122 defines the layout).
func ReadUUID(r *bitio.Reader, s *Settings) (uuid.UUID, error) {
	raw, err := r.ReadBytes(16)
	if err != nil {
		return uuid.UUID{}, err
	}
	return uuid.FromBytes(raw)
}

// WriteUUID writes a UUID as its raw 16 bytes.
func WriteUUID(w *bitio.Writer, s *Settings, v uuid.UUID) error {
	return w.WriteBytes(v[:])
}
