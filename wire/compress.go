// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionAlgorithm identifies the algorithm a Compression stage
// uses. The value is also the tag byte in the stage's wire header, so
// these are protocol constants.
type CompressionAlgorithm uint8

const (
	// CompressionNone passes data through unchanged apart from the
	// stage header. Useful for payloads known to be incompressible.
	CompressionNone CompressionAlgorithm = 0

	// CompressionLZ4 uses LZ4 block compression. Fast default for
	// binary payloads.
	CompressionLZ4 CompressionAlgorithm = 1

	// CompressionZstd uses zstd at its default level. Better ratios
	// for text-like payloads.
	CompressionZstd CompressionAlgorithm = 2
)

// String returns the algorithm's configuration name.
func (a CompressionAlgorithm) String() string {
	switch a {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(a))
	}
}

// ParseCompressionAlgorithm parses an algorithm from its
// configuration name.
func ParseCompressionAlgorithm(name string) (CompressionAlgorithm, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression algorithm: %q", name)
	}
}

// compressionHeaderSize is the per-packet overhead of a Compression
// stage: 1 tag byte plus a 4-byte big-endian uncompressed size.
const compressionHeaderSize = 5

// zstdEncoder and zstdDecoder are reused across calls to avoid
// repeated initialization overhead. Both are safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("wire: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("wire: zstd decoder initialization failed: " + err.Error())
	}
}

// Compression is a middleware stage that compresses packets. The
// encoded form carries a one-byte algorithm tag and the uncompressed
// size, so the decode side needs no out-of-band configuration:
//
//	[tag: 1 byte] [uncompressed size: 4 bytes big-endian] [payload]
//
// When the configured algorithm fails to shrink a packet the stage
// falls back to a CompressionNone header with the raw payload, so
// small or already-compressed packets never grow past the header
// overhead.
type Compression struct {
	// Algorithm selects the compressor for the encode path. The
	// decode path honors whatever tag the packet carries.
	Algorithm CompressionAlgorithm
}

// NewCompression returns a compression stage using the given
// algorithm.
func NewCompression(algorithm CompressionAlgorithm) *Compression {
	return &Compression{Algorithm: algorithm}
}

// EncodeData compresses data and prepends the stage header.
func (c *Compression) EncodeData(data []byte) ([]byte, error) {
	if len(data) > math.MaxUint32 {
		return nil, fmt.Errorf("packet of %d bytes exceeds the compression size header", len(data))
	}

	tag := c.Algorithm
	var compressed []byte
	var err error

	switch tag {
	case CompressionNone:
		compressed = data
	case CompressionLZ4:
		compressed, err = compressLZ4(data)
	case CompressionZstd:
		compressed, err = compressZstd(data)
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %d", tag)
	}
	if err != nil {
		if errors.Is(err, errIncompressible) {
			tag = CompressionNone
			compressed = data
		} else {
			return nil, err
		}
	}

	out := make([]byte, compressionHeaderSize+len(compressed))
	out[0] = byte(tag)
	binary.BigEndian.PutUint32(out[1:], uint32(len(data)))
	copy(out[compressionHeaderSize:], compressed)
	return out, nil
}

// DecodeData strips the stage header and decompresses the payload
// with the algorithm the tag names.
func (c *Compression) DecodeData(data []byte) ([]byte, error) {
	if len(data) < compressionHeaderSize {
		return nil, fmt.Errorf("compressed packet is %d bytes, minimum is %d", len(data), compressionHeaderSize)
	}
	tag := CompressionAlgorithm(data[0])
	uncompressedSize := int(binary.BigEndian.Uint32(data[1:]))
	payload := data[compressionHeaderSize:]

	switch tag {
	case CompressionNone:
		if len(payload) != uncompressedSize {
			return nil, fmt.Errorf("uncompressed packet: size %d does not match header %d",
				len(payload), uncompressedSize)
		}
		return payload, nil
	case CompressionLZ4:
		return decompressLZ4(payload, uncompressedSize)
	case CompressionZstd:
		return decompressZstd(payload, uncompressedSize)
	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", tag)
	}
}

// LZ4 compression: block-mode LZ4.

func compressLZ4(data []byte) ([]byte, error) {
	bound := lz4.CompressBlockBound(len(data))
	destination := make([]byte, bound)

	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}

	// CompressBlock returns 0 when it determines the data is
	// incompressible. Also reject output that did not actually
	// shrink.
	if written == 0 || written >= len(data) {
		return nil, errIncompressible
	}

	return destination[:written], nil
}

func decompressLZ4(compressed []byte, uncompressedSize int) ([]byte, error) {
	destination := make([]byte, uncompressedSize)
	read, err := lz4.UncompressBlock(compressed, destination)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if read != uncompressedSize {
		return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, uncompressedSize)
	}
	return destination, nil
}

func compressZstd(data []byte) ([]byte, error) {
	compressed := zstdEncoder.EncodeAll(data, nil)
	if len(compressed) >= len(data) {
		return nil, errIncompressible
	}
	return compressed, nil
}

func decompressZstd(compressed []byte, uncompressedSize int) ([]byte, error) {
	destination := make([]byte, 0, uncompressedSize)
	result, err := zstdDecoder.DecodeAll(compressed, destination)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	if len(result) != uncompressedSize {
		return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(result), uncompressedSize)
	}
	return result, nil
}

// errIncompressible signals the fallback to a CompressionNone header.
var errIncompressible = errors.New("data is incompressible")
