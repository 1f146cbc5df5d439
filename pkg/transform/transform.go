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

// Package transform implements the reversible byte-stream filters of
// spec §6 (compression, encryption) and their composition via AndThen.
// A Transformation's NewWriter applies the forward direction (e.g.
// compress, or encrypt); NewReader applies the inverse (decompress,
// decrypt) so that source.Map(t) / sink.Map(t) invert one another across
// a write-then-read round trip, per spec §4.3's note on the artifact
// layout.
package transform

import "io"

// Transformation is the reversible byte-stream filter contract of spec §6.
type Transformation interface {
	// NewWriter wraps w so that bytes written to the result are
	// transformed (forward direction) before reaching w.
	NewWriter(w io.Writer) (io.WriteCloser, error)
	// NewReader wraps r so that bytes read from the result are the
	// inverse transform of what NewWriter produced.
	NewReader(r io.Reader) (io.ReadCloser, error)
	// AndThen composes t (applied first, outermost on write) with next
	// (applied second, innermost on write) into a single Transformation.
	AndThen(next Transformation) Transformation
}

// composite chains two transformations. On write, first wraps second's
// writer (data flows: caller -> first -> second -> underlying). On read,
// the same nesting is used, but each leg already reverses itself, so data
// flows: underlying -> second(inverse) -> first(inverse) -> caller.
type composite struct {
	first, second Transformation
}

// AndThen implements Transformation.
func (t composite) AndThen(next Transformation) Transformation {
	return composite{first: t, second: next}
}

func (t composite) NewWriter(w io.Writer) (io.WriteCloser, error) {
	inner, err := t.second.NewWriter(w)
	if err != nil {
		return nil, err
	}
	outer, err := t.first.NewWriter(inner)
	if err != nil {
		inner.Close()
		return nil, err
	}
	return &chainedWriteCloser{outer: outer, inner: inner}, nil
}

func (t composite) NewReader(r io.Reader) (io.ReadCloser, error) {
	inner, err := t.second.NewReader(r)
	if err != nil {
		return nil, err
	}
	outer, err := t.first.NewReader(inner)
	if err != nil {
		inner.Close()
		return nil, err
	}
	return &chainedReadCloser{outer: outer, inner: inner}, nil
}

type chainedWriteCloser struct {
	outer io.WriteCloser
	inner io.WriteCloser
}

func (c *chainedWriteCloser) Write(p []byte) (int, error) { return c.outer.Write(p) }

func (c *chainedWriteCloser) Close() error {
	if err := c.outer.Close(); err != nil {
		c.inner.Close()
		return err
	}
	return c.inner.Close()
}

type chainedReadCloser struct {
	outer io.ReadCloser
	inner io.ReadCloser
}

func (c *chainedReadCloser) Read(p []byte) (int, error) { return c.outer.Read(p) }

func (c *chainedReadCloser) Close() error {
	err := c.outer.Close()
	if ierr := c.inner.Close(); err == nil {
		err = ierr
	}
	return err
}

// Identity is the no-op Transformation, useful as a base case and in tests.
type Identity struct{}

// NewWriter implements Transformation.
func (Identity) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return nopWriteCloser{w}, nil
}

// NewReader implements Transformation.
func (Identity) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

// AndThen implements Transformation.
func (Identity) AndThen(next Transformation) Transformation {
	return composite{first: Identity{}, second: next}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
