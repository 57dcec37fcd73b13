// pkg/v8coverage/codec.go
// Package v8coverage marshals and unmarshals cov.ProcessCov values in the
// wire shape V8's Profiler.takePreciseCoverage returns. It is a thin
// translation layer: pkg/cov's types already carry the matching json tags,
// so encoding is a straight json.Marshal/Unmarshal, gzip-aware the same way
// a file exporter handling compressed snapshots would be.
package v8coverage

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Voskan/covmerge/pkg/cov"
)

// Marshal encodes p as the Profiler.takePreciseCoverage JSON shape.
func Marshal(p cov.ProcessCov) ([]byte, error) {
	return json.Marshal(p)
}

// MarshalIndent is Marshal with two-space indentation, for human-readable
// output files.
func MarshalIndent(p cov.ProcessCov) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// Unmarshal decodes a Profiler.takePreciseCoverage JSON document into a
// ProcessCov.
func Unmarshal(data []byte) (cov.ProcessCov, error) {
	var p cov.ProcessCov
	if err := json.Unmarshal(data, &p); err != nil {
		return cov.ProcessCov{}, fmt.Errorf("v8coverage: decode: %w", err)
	}
	return p, nil
}

// Read decodes a ProcessCov from r. If gzipped is true, r is treated as a
// gzip stream and decompressed first.
func Read(r io.Reader, gzipped bool) (cov.ProcessCov, error) {
	src := r
	if gzipped {
		gr, err := gzip.NewReader(r)
		if err != nil {
			return cov.ProcessCov{}, fmt.Errorf("v8coverage: open gzip stream: %w", err)
		}
		defer gr.Close()
		src = gr
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return cov.ProcessCov{}, fmt.Errorf("v8coverage: read: %w", err)
	}
	return Unmarshal(data)
}

// Write encodes p to w. If gzipped is true, the output is gzip-compressed.
func Write(w io.Writer, p cov.ProcessCov, gzipped bool) error {
	data, err := Marshal(p)
	if err != nil {
		return fmt.Errorf("v8coverage: encode: %w", err)
	}

	if !gzipped {
		_, err := w.Write(data)
		return err
	}

	gw := gzip.NewWriter(w)
	if _, err := gw.Write(data); err != nil {
		_ = gw.Close()
		return fmt.Errorf("v8coverage: write gzip stream: %w", err)
	}
	return gw.Close()
}
