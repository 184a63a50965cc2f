// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"crypto/subtle"
	"fmt"

	"github.com/zeebo/blake3"
)

// ChecksumSize is the length of the BLAKE3 digest a Checksum stage
// appends to each packet.
const ChecksumSize = 32

// Checksum is a middleware stage that appends a BLAKE3 digest trailer
// on encode and verifies and strips it on decode. With a key it is a
// keyed hash (a MAC); without one it detects corruption only.
type Checksum struct {
	key []byte
}

// NewChecksum returns an unkeyed checksum stage.
func NewChecksum() *Checksum {
	return &Checksum{}
}

// NewKeyedChecksum returns a checksum stage using BLAKE3's keyed
// mode. The key must be exactly 32 bytes; the constructor panics
// otherwise, matching blake3.NewKeyed's contract. Stages are
// assembled at startup, so a bad key length is a configuration error.
func NewKeyedChecksum(key []byte) *Checksum {
	if len(key) != 32 {
		panic(fmt.Sprintf("wire: checksum key must be 32 bytes, got %d", len(key)))
	}
	c := &Checksum{key: make([]byte, 32)}
	copy(c.key, key)
	return c
}

func (c *Checksum) digest(data []byte) []byte {
	if c.key == nil {
		sum := blake3.Sum256(data)
		return sum[:]
	}
	hasher, err := blake3.NewKeyed(c.key)
	if err != nil {
		// NewKeyed only rejects keys that are not 32 bytes, which
		// the constructor already guarantees.
		panic("wire: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	return hasher.Sum(nil)[:ChecksumSize]
}

// EncodeData appends the digest of data.
func (c *Checksum) EncodeData(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data)+ChecksumSize)
	out = append(out, data...)
	out = append(out, c.digest(data)...)
	return out, nil
}

// DecodeData verifies the trailing digest and returns the packet with
// the trailer stripped. Comparison is constant-time so a keyed
// checksum does not leak digest bytes through timing.
func (c *Checksum) DecodeData(data []byte) ([]byte, error) {
	if len(data) < ChecksumSize {
		return nil, fmt.Errorf("packet is %d bytes, shorter than a %d-byte checksum", len(data), ChecksumSize)
	}
	payload := data[:len(data)-ChecksumSize]
	trailer := data[len(data)-ChecksumSize:]

	if subtle.ConstantTimeCompare(trailer, c.digest(payload)) != 1 {
		return nil, fmt.Errorf("checksum mismatch over %d payload bytes", len(payload))
	}
	return payload, nil
}
