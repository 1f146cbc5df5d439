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

package codec

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAML is the default Codec, backed by gopkg.in/yaml.v3 — the teacher's
// direct dependency, used the same way the teacher YAML-encodes
// SigstoreKeys ConfigMap values before handing them to protojson.
type YAML struct{}

// NewEncoder implements Codec.
func (YAML) NewEncoder(w io.Writer) Encoder {
	return yamlEncoder{enc: yaml.NewEncoder(w)}
}

// NewDecoder implements Codec.
func (YAML) NewDecoder(r io.Reader) Decoder {
	return yamlDecoder{dec: yaml.NewDecoder(r)}
}

type yamlEncoder struct{ enc *yaml.Encoder }

func (e yamlEncoder) Encode(v any) error { return e.enc.Encode(v) }

type yamlDecoder struct{ dec *yaml.Decoder }

func (d yamlDecoder) Decode(v any) error { return d.dec.Decode(v) }
