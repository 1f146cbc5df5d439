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

package store

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// Memory is an in-process Store backed by a byte buffer, suitable for
// tests, the capability-latch probe of spec §4.5, and free-trial storage
// in environments where nothing else is configured.
type Memory struct {
	mu   sync.Mutex
	data []byte
	set  bool
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory { return &Memory{} }

// OpenReader implements Source.
func (m *Memory) OpenReader(context.Context) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(m.data))
	copy(cp, m.data)
	return io.NopCloser(bytes.NewReader(cp)), nil
}

// OpenWriter implements Sink.
func (m *Memory) OpenWriter(context.Context) (io.WriteCloser, error) {
	return &memoryWriter{store: m}, nil
}

// Exists implements Store.
func (m *Memory) Exists(context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set, nil
}

// Delete implements Store.
func (m *Memory) Delete(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	m.set = false
	return nil
}

type memoryWriter struct {
	store *Memory
	buf   bytes.Buffer
}

func (w *memoryWriter) Write(p []byte) (int, error) { return w.buf.Write(p) }

func (w *memoryWriter) Close() error {
	w.store.mu.Lock()
	defer w.store.mu.Unlock()
	w.store.data = w.buf.Bytes()
	w.store.set = true
	return nil
}
