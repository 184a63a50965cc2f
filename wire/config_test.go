// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"bytes"
	"strings"
	"testing"
)

const validPipelineYAML = `
stages:
  - name: shrink
    type: compression
    algorithm: lz4
  - name: seal
    type: encryption
    key: "4242424242424242424242424242424242424242424242424242424242424242"
  - name: sum
    type: checksum
`

func TestLoadPipeline(t *testing.T) {
	pipeline, err := LoadPipeline(strings.NewReader(validPipelineYAML))
	if err != nil {
		t.Fatalf("LoadPipeline: %v", err)
	}
	stages := pipeline.Stages()
	if len(stages) != 3 {
		t.Fatalf("got %d stages, want 3", len(stages))
	}
	for i, want := range []string{"shrink", "seal", "sum"} {
		if stages[i].Name != want {
			t.Fatalf("stage %d name %q, want %q", i, stages[i].Name, want)
		}
	}

}

func TestLoadPipelineRoundTrip(t *testing.T) {
	const yaml = `
stages:
  - name: seal
    type: encryption
    key: "4242424242424242424242424242424242424242424242424242424242424242"
`
	pipeline, err := LoadPipeline(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadPipeline: %v", err)
	}

	payload := []byte(strings.Repeat("configured pipeline ", 32))
	encoded, err := pipeline.Encode(payload)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := pipeline.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded, payload) {
		t.Fatal("round trip mismatch")
	}
}

func TestLoadPipelineErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "stages:\n  - name: a\n    type: checksum\n    level: 9\n",
			wantErr: "field level not found",
		},
		{
			name:    "missing name",
			yaml:    "stages:\n  - type: checksum\n",
			wantErr: "name is required",
		},
		{
			name:    "duplicate name",
			yaml:    "stages:\n  - name: a\n    type: checksum\n  - name: a\n    type: checksum\n",
			wantErr: "duplicate name",
		},
		{
			name:    "missing type",
			yaml:    "stages:\n  - name: a\n",
			wantErr: "type is required",
		},
		{
			name:    "unknown type",
			yaml:    "stages:\n  - name: a\n    type: base64\n",
			wantErr: "unknown stage type",
		},
		{
			name:    "unknown algorithm",
			yaml:    "stages:\n  - name: a\n    type: compression\n    algorithm: snappy\n",
			wantErr: "unknown compression algorithm",
		},
		{
			name:    "encryption without key",
			yaml:    "stages:\n  - name: a\n    type: encryption\n",
			wantErr: "require a key",
		},
		{
			name:    "bad hex key",
			yaml:    "stages:\n  - name: a\n    type: encryption\n    key: zz\n",
			wantErr: "not valid hex",
		},
		{
			name:    "short key",
			yaml:    "stages:\n  - name: a\n    type: encryption\n    key: \"4242\"\n",
			wantErr: "32 bytes",
		},
		{
			name:    "key on compression",
			yaml:    "stages:\n  - name: a\n    type: compression\n    key: \"4242\"\n",
			wantErr: "no key",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadPipeline(strings.NewReader(tc.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestPipelineFromConfigDefaultAlgorithm(t *testing.T) {
	pipeline, err := PipelineFromConfig(&PipelineConfig{
		Stages: []StageConfig{{Name: "shrink", Type: "compression"}},
	})
	if err != nil {
		t.Fatalf("PipelineFromConfig: %v", err)
	}
	compression, ok := pipeline.Stages()[0].Middleware.(*Compression)
	if !ok {
		t.Fatalf("stage is %T, want *Compression", pipeline.Stages()[0].Middleware)
	}
	if compression.Algorithm != CompressionZstd {
		t.Fatalf("default algorithm %v, want zstd", compression.Algorithm)
	}
}
