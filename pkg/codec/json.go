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
	"encoding/json"
	"io"
)

// JSON is a secondary Codec for hosts that want a widely-interoperable
// wire format instead of YAML.
type JSON struct{}

// NewEncoder implements Codec.
func (JSON) NewEncoder(w io.Writer) Encoder {
	return json.NewEncoder(w)
}

// NewDecoder implements Codec.
func (JSON) NewDecoder(r io.Reader) Decoder {
	return json.NewDecoder(r)
}
