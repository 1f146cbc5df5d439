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
	"context"
	"io"
	"os"
)

// File is a Store backed by a single filesystem path — the closest
// analogue to the Java original's file-based consumer store, kept as an
// external collaborator per spec §1 ("the physical stores... are treated
// as external collaborators") but provided as a default so the module is
// directly usable from a CLI or service built on top of it.
type File struct {
	Path string
}

// NewFile returns a Store rooted at path.
func NewFile(path string) *File { return &File{Path: path} }

// OpenReader implements Source.
func (f *File) OpenReader(context.Context) (io.ReadCloser, error) {
	return os.Open(f.Path)
}

// OpenWriter implements Sink. Writes go to a temp file first and are
// renamed into place on Close, so a failed write never corrupts an
// already-installed artifact.
func (f *File) OpenWriter(context.Context) (io.WriteCloser, error) {
	tmp, err := os.CreateTemp("", "licensecore-*.tmp")
	if err != nil {
		return nil, err
	}
	return &fileWriter{file: tmp, finalPath: f.Path}, nil
}

// Exists implements Store.
func (f *File) Exists(context.Context) (bool, error) {
	_, err := os.Stat(f.Path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Delete implements Store.
func (f *File) Delete(context.Context) error {
	err := os.Remove(f.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

type fileWriter struct {
	file      *os.File
	finalPath string
}

func (w *fileWriter) Write(p []byte) (int, error) { return w.file.Write(p) }

func (w *fileWriter) Close() error {
	if err := w.file.Close(); err != nil {
		os.Remove(w.file.Name())
		return err
	}
	return os.Rename(w.file.Name(), w.finalPath)
}
