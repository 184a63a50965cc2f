// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// EncryptedPacketVersion is the version byte prepended to every
// encrypted packet. It is included as additional authenticated data
// in the AEAD Seal/Open call, so tampering with the version byte
// causes authentication failure rather than a silent misparse.
const EncryptedPacketVersion byte = 0x01

// EncryptionOverhead is the per-packet byte overhead of an Encryption
// stage: 1 (version) + 24 (XChaCha20-Poly1305 nonce) + 16 (Poly1305
// tag).
const EncryptionOverhead = 1 + chacha20poly1305.NonceSizeX + chacha20poly1305.Overhead

// EncryptionKeySize is the required key length for an Encryption
// stage.
const EncryptionKeySize = chacha20poly1305.KeySize

// Encryption is a middleware stage sealing packets with
// XChaCha20-Poly1305. The encoded form is
//
//	[version: 1 byte] [nonce: 24 bytes (random)] [ciphertext+tag]
//
// The extended 24-byte nonce is drawn fresh from crypto/rand per
// packet, which is safe without nonce coordination between the two
// ends.
type Encryption struct {
	aead cipher.AEAD
}

// NewEncryption returns an encryption stage using the given 32-byte
// key. Returns an error if the key length is wrong.
func NewEncryption(key []byte) (*Encryption, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("creating XChaCha20-Poly1305 cipher: %w", err)
	}
	return &Encryption{aead: aead}, nil
}

// EncodeData seals data under a fresh random nonce.
func (e *Encryption) EncodeData(data []byte) ([]byte, error) {
	var nonce [chacha20poly1305.NonceSizeX]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("generating random nonce: %w", err)
	}

	output := make([]byte, 1+chacha20poly1305.NonceSizeX,
		1+chacha20poly1305.NonceSizeX+len(data)+e.aead.Overhead())
	output[0] = EncryptedPacketVersion
	copy(output[1:], nonce[:])

	aad := []byte{EncryptedPacketVersion}
	output = e.aead.Seal(output, nonce[:], data, aad)
	return output, nil
}

// DecodeData opens a packet produced by EncodeData. It fails if the
// packet is too short, carries an unknown version byte, or does not
// authenticate (wrong key, tampered ciphertext, tampered version).
func (e *Encryption) DecodeData(data []byte) ([]byte, error) {
	if len(data) < EncryptionOverhead {
		return nil, fmt.Errorf("encrypted packet is %d bytes, minimum is %d (version + nonce + tag)",
			len(data), EncryptionOverhead)
	}
	if data[0] != EncryptedPacketVersion {
		return nil, fmt.Errorf("encrypted packet version %d is not supported (expected %d)",
			data[0], EncryptedPacketVersion)
	}

	nonce := data[1 : 1+chacha20poly1305.NonceSizeX]
	ciphertext := data[1+chacha20poly1305.NonceSizeX:]

	plaintext, err := e.aead.Open(nil, nonce, ciphertext, []byte{data[0]})
	if err != nil {
		return nil, fmt.Errorf("AEAD decryption failed (wrong key or tampered packet): %w", err)
	}
	return plaintext, nil
}
