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

// Package store implements the Source/Sink/Store external collaborators
// of spec §6: byte-stream endpoints, composable with a transform.
// Transformation, plus a persistent Store with existence/delete semantics.
// The managers never lock on a Store: install and uninstall run without a
// lock, and only the chained manager's retry-then-generate step is
// serialized, by a mutex that manager owns.
package store

import (
	"context"
	"io"

	"github.com/licensecore/licensecore/pkg/transform"
)

// Source is a readable byte-stream endpoint.
type Source interface {
	OpenReader(ctx context.Context) (io.ReadCloser, error)
}

// Sink is a writable byte-stream endpoint.
type Sink interface {
	OpenWriter(ctx context.Context) (io.WriteCloser, error)
}

// Store is a persistent Source+Sink with existence/delete semantics, per
// spec §6. Nothing locks on a Store's identity; see the package doc.
type Store interface {
	Source
	Sink
	Exists(ctx context.Context) (bool, error)
	Delete(ctx context.Context) error
}

// MapSource wraps src so reads are passed through t's inverse direction —
// the "source.map(t)" operation of spec §6.
func MapSource(src Source, t transform.Transformation) Source {
	return mappedSource{src: src, t: t}
}

// MapSink wraps dst so writes are passed through t's forward direction —
// the "sink.map(t)" operation of spec §6.
func MapSink(dst Sink, t transform.Transformation) Sink {
	return mappedSink{dst: dst, t: t}
}

type mappedSource struct {
	src Source
	t   transform.Transformation
}

func (m mappedSource) OpenReader(ctx context.Context) (io.ReadCloser, error) {
	r, err := m.src.OpenReader(ctx)
	if err != nil {
		return nil, err
	}
	tr, err := m.t.NewReader(r)
	if err != nil {
		r.Close()
		return nil, err
	}
	return chainedReader{tr: tr, underlying: r}, nil
}

type chainedReader struct {
	tr         io.ReadCloser
	underlying io.ReadCloser
}

func (c chainedReader) Read(p []byte) (int, error) { return c.tr.Read(p) }
func (c chainedReader) Close() error {
	err := c.tr.Close()
	if uerr := c.underlying.Close(); err == nil {
		err = uerr
	}
	return err
}

type mappedSink struct {
	dst Sink
	t   transform.Transformation
}

func (m mappedSink) OpenWriter(ctx context.Context) (io.WriteCloser, error) {
	w, err := m.dst.OpenWriter(ctx)
	if err != nil {
		return nil, err
	}
	tw, err := m.t.NewWriter(w)
	if err != nil {
		w.Close()
		return nil, err
	}
	return chainedWriter{tw: tw, underlying: w}, nil
}

type chainedWriter struct {
	tw         io.WriteCloser
	underlying io.WriteCloser
}

func (c chainedWriter) Write(p []byte) (int, error) { return c.tw.Write(p) }
func (c chainedWriter) Close() error {
	if err := c.tw.Close(); err != nil {
		c.underlying.Close()
		return err
	}
	return c.underlying.Close()
}

// Copy streams src through to dst, the byte-copy operation spec §4.3's
// install() performs after authenticating the source.
func Copy(ctx context.Context, dst Sink, src Source) error {
	r, err := src.OpenReader(ctx)
	if err != nil {
		return err
	}
	defer r.Close()

	w, err := dst.OpenWriter(ctx)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
