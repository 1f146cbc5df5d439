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

// Package repository implements the repository model + controller of
// spec §3/§6: the container carrying the signed payload and its
// signature, produced by a RepositoryContext external collaborator.
package repository

import (
	"bytes"
	"fmt"

	"github.com/licensecore/licensecore/pkg/codec"
)

// Model is the opaque container of spec §3: the encoded payload plus its
// signature. The exact byte format is owned by the Context; the core only
// requires the round-trip law (spec §3).
type Model struct {
	SignedPayload []byte `json:"signedPayload" yaml:"signedPayload"`
	Signature     []byte `json:"signature" yaml:"signature"`
}

// Controller is the spec §6 RepositoryController: bound to a Model and a
// Codec, it lets Authentication read/write the signed payload without
// knowing the Model's wire format.
type Controller interface {
	Model() *Model
	SetPayload(v any) error
	Decode(v any) error
}

// Context is the spec §6 RepositoryContext[M]: `model() -> M`,
// `controller(M, Codec) -> RepositoryController`.
type Context interface {
	NewModel() *Model
	Controller(m *Model, c codec.Codec) Controller
}

// Default is the Context used when none is configured: a straightforward
// Model carrying the codec-encoded payload bytes directly, with no extra
// envelope. Hosts that need a richer on-disk envelope (e.g. versioning,
// content-addressing) supply their own Context per spec §6.
type Default struct{}

// NewModel implements Context.
func (Default) NewModel() *Model { return &Model{} }

// Controller implements Context.
func (Default) Controller(m *Model, c codec.Codec) Controller {
	return &defaultController{model: m, codec: c}
}

type defaultController struct {
	model *Model
	codec codec.Codec
}

func (c *defaultController) Model() *Model { return c.model }

func (c *defaultController) SetPayload(v any) error {
	var buf bytes.Buffer
	if err := c.codec.NewEncoder(&buf).Encode(v); err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	c.model.SignedPayload = buf.Bytes()
	return nil
}

func (c *defaultController) Decode(v any) error {
	return c.codec.NewDecoder(bytes.NewReader(c.model.SignedPayload)).Decode(v)
}
