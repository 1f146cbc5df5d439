//
// Copyright 2026 The Licensecore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transform

import (
	"compress/flate"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Zstd is the default compression Transformation, grounded on the
// teacher's indirect klauspost/compress dependency (pulled in by its OCI
// layer handling) rather than hand-rolling a frame format over flate.
type Zstd struct{}

// NewWriter implements Transformation: compresses on write.
func (Zstd) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w)
}

// NewReader implements Transformation: decompresses on read.
func (Zstd) NewReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}

// AndThen implements Transformation.
func (t Zstd) AndThen(next Transformation) Transformation {
	return composite{first: t, second: next}
}

// Deflate is a lighter-weight compression Transformation kept for hosts
// that want a dependency-free fallback to the standard library's DEFLATE,
// e.g. when producing artifacts meant to be inspected with generic
// archive tooling.
type Deflate struct{}

// NewWriter implements Transformation.
func (Deflate) NewWriter(w io.Writer) (io.WriteCloser, error) {
	fw, err := flate.NewWriter(w, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	return fw, nil
}

// NewReader implements Transformation.
func (Deflate) NewReader(r io.Reader) (io.ReadCloser, error) {
	return flate.NewReader(r), nil
}

// AndThen implements Transformation.
func (t Deflate) AndThen(next Transformation) Transformation {
	return composite{first: t, second: next}
}
