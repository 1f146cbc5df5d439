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

// Package auth implements the Authentication external collaborator of
// spec §6: a keystore-backed signer/verifier producing a Decoder that
// yields verified bytes. The default implementation is grounded on
// github.com/sigstore/sigstore/pkg/signature and pkg/cryptoutils, the
// same packages the teacher's pkg/webhook/validation.go and
// pkg/apis/config/sigstore_keys.go use for image-signature verification
// and trust-root key parsing respectively.
package auth

import (
	"github.com/licensecore/licensecore/pkg/license"
	"github.com/licensecore/licensecore/pkg/password"
	"github.com/licensecore/licensecore/pkg/repository"
)

// Decoder is the spec §6 collaborator yielding verified/signed bytes:
// `decode(Class) -> Any`.
type Decoder interface {
	Decode(v any) error
}

// DecoderFunc adapts a function to a Decoder.
type DecoderFunc func(v any) error

// Decode implements Decoder.
func (f DecoderFunc) Decode(v any) error { return f(v) }

// Authentication is the spec §6 collaborator: `sign(RepositoryController,
// License) -> Decoder`, `verify(RepositoryController) -> Decoder`.
type Authentication interface {
	Sign(ctrl repository.Controller, lic *license.License) (Decoder, error)
	Verify(ctrl repository.Controller) (Decoder, error)
}

// Factory is the spec §6 AuthenticationFactory: builds an Authentication
// from keystore parameters (spec §4.2's authentication sub-builder).
type Factory interface {
	New(params FactoryParams) (Authentication, error)
}

// FactoryParams bundles the spec §4.2 authentication sub-builder fields:
// keystore alias, optional algorithm, optional key/store password
// protection, store type (default: context.keystoreType), optional
// byte-stream source, optional resource name.
type FactoryParams struct {
	Alias         string
	Algorithm     string
	KeystoreType  string
	ResourceName  string
	Source        []byte // raw keystore bytes, when supplied out of band
	KeyPassword   password.Protection
	StorePassword password.Protection
}
