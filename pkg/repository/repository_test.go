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

package repository

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/licensecore/licensecore/pkg/codec"
)

type samplePayload struct {
	Name string `json:"name"`
}

func TestDefaultContextNewModelIsEmpty(t *testing.T) {
	ctx := Default{}
	m := ctx.NewModel()
	require.Empty(t, m.SignedPayload)
	require.Empty(t, m.Signature)
}

func TestDefaultControllerSetPayloadThenDecode(t *testing.T) {
	ctx := Default{}
	model := ctx.NewModel()
	ctrl := ctx.Controller(model, codec.JSON{})

	require.NoError(t, ctrl.SetPayload(&samplePayload{Name: "acme"}))
	require.NotEmpty(t, model.SignedPayload)

	var out samplePayload
	require.NoError(t, ctrl.Decode(&out))
	require.Equal(t, "acme", out.Name)
}

func TestDefaultControllerModelReturnsBoundInstance(t *testing.T) {
	ctx := Default{}
	model := ctx.NewModel()
	ctrl := ctx.Controller(model, codec.JSON{})
	require.Same(t, model, ctrl.Model())
}
