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
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func testCodecRoundTrip(t *testing.T, c Codec) {
	t.Helper()
	in := sample{Name: "acme", Count: 3}
	var buf bytes.Buffer
	require.NoError(t, c.NewEncoder(&buf).Encode(in))

	var out sample
	require.NoError(t, c.NewDecoder(bytes.NewReader(buf.Bytes())).Decode(&out))
	require.Equal(t, in, out)
}

func TestJSONRoundTrip(t *testing.T) {
	testCodecRoundTrip(t, JSON{})
}

func TestYAMLRoundTrip(t *testing.T) {
	testCodecRoundTrip(t, YAML{})
}
