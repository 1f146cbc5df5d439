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

// Package codec implements the Codec external collaborator of spec §6:
// mapping beans and repository models to/from bytes. The core only
// requires round-trip fidelity (spec §3); concrete codecs are provided so
// the module is directly usable, the way the teacher round-trips
// SigstoreKeys ConfigMap entries through sigs.k8s.io/yaml in
// pkg/apis/config/sigstore_keys.go.
package codec

import "io"

// Encoder writes a single value.
type Encoder interface {
	Encode(v any) error
}

// Decoder reads a single value into v.
type Decoder interface {
	Decode(v any) error
}

// Codec is the spec §6 collaborator: `encoder(Sink).encode(Any)`,
// `decoder(Source).decode(Class) -> Any`.
type Codec interface {
	NewEncoder(w io.Writer) Encoder
	NewDecoder(r io.Reader) Decoder
}
