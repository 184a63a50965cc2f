// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/hex"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// PipelineConfig is the YAML shape for declaring a pipeline:
//
//	stages:
//	  - name: seal
//	    type: encryption
//	    key: 6368616e676520746869732070617373776f726420746f206120736563726574
//	  - name: shrink
//	    type: compression
//	    algorithm: zstd
//	  - name: sum
//	    type: checksum
//
// Stage order in the file is pipeline order. Keys are hex-encoded.
type PipelineConfig struct {
	Stages []StageConfig `yaml:"stages"`
}

// StageConfig declares one pipeline stage. Type selects the
// middleware; the remaining fields are per-type options and are
// rejected when set on a type that does not use them.
type StageConfig struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	// Algorithm names the compression algorithm for compression
	// stages: "none", "lz4", or "zstd".
	Algorithm string `yaml:"algorithm,omitempty"`

	// Key is a hex-encoded key. Required for encryption stages,
	// optional for checksum stages (keyed mode).
	Key string `yaml:"key,omitempty"`
}

// LoadPipeline reads a YAML pipeline declaration. Unknown fields are
// an error: a typo in a stage option must not silently produce a
// differently-shaped pipeline.
func LoadPipeline(r io.Reader) (*Pipeline, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var config PipelineConfig
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("parsing pipeline config: %w", err)
	}
	return PipelineFromConfig(&config)
}

// PipelineFromConfig builds a pipeline from a parsed declaration.
// Every validation error names the offending stage.
func PipelineFromConfig(config *PipelineConfig) (*Pipeline, error) {
	stages := make([]Stage, 0, len(config.Stages))
	seen := make(map[string]bool, len(config.Stages))

	for i, sc := range config.Stages {
		if sc.Name == "" {
			return nil, fmt.Errorf("stage %d: name is required", i)
		}
		if seen[sc.Name] {
			return nil, fmt.Errorf("stage %q: duplicate name", sc.Name)
		}
		seen[sc.Name] = true

		middleware, err := buildStage(sc)
		if err != nil {
			return nil, fmt.Errorf("stage %q: %w", sc.Name, err)
		}
		stages = append(stages, Stage{Name: sc.Name, Middleware: middleware})
	}

	return NewPipeline(stages...), nil
}

func buildStage(sc StageConfig) (Middleware, error) {
	switch sc.Type {
	case "compression":
		if sc.Key != "" {
			return nil, fmt.Errorf("compression stages take no key")
		}
		algorithm := CompressionZstd
		if sc.Algorithm != "" {
			var err error
			algorithm, err = ParseCompressionAlgorithm(sc.Algorithm)
			if err != nil {
				return nil, err
			}
		}
		return NewCompression(algorithm), nil

	case "checksum":
		if sc.Algorithm != "" {
			return nil, fmt.Errorf("checksum stages take no algorithm")
		}
		if sc.Key == "" {
			return NewChecksum(), nil
		}
		key, err := decodeKey(sc.Key)
		if err != nil {
			return nil, err
		}
		return NewKeyedChecksum(key), nil

	case "encryption":
		if sc.Algorithm != "" {
			return nil, fmt.Errorf("encryption stages take no algorithm")
		}
		if sc.Key == "" {
			return nil, fmt.Errorf("encryption stages require a key")
		}
		key, err := decodeKey(sc.Key)
		if err != nil {
			return nil, err
		}
		return NewEncryption(key)

	case "":
		return nil, fmt.Errorf("type is required")

	default:
		return nil, fmt.Errorf("unknown stage type: %q", sc.Type)
	}
}

// decodeKey decodes a hex key and checks the length up front so the
// error reaches the operator at load time, not at the first packet.
func decodeKey(hexKey string) ([]byte, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("key is not valid hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}
